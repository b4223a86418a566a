package types

import (
	ierr "github.com/billforge/billforge/internal/errors"
)

// PricingModelType discriminates the pricing model union.
type PricingModelType string

const (
	PRICING_MODEL_RATE            PricingModelType = "RATE"
	PRICING_MODEL_SLOT            PricingModelType = "SLOT"
	PRICING_MODEL_CAPACITY        PricingModelType = "CAPACITY"
	PRICING_MODEL_USAGE           PricingModelType = "USAGE"
	PRICING_MODEL_ONE_TIME        PricingModelType = "ONE_TIME"
	PRICING_MODEL_EXTRA_RECURRING PricingModelType = "EXTRA_RECURRING"
)

func (t PricingModelType) Validate() error {
	switch t {
	case PRICING_MODEL_RATE,
		PRICING_MODEL_SLOT,
		PRICING_MODEL_CAPACITY,
		PRICING_MODEL_USAGE,
		PRICING_MODEL_ONE_TIME,
		PRICING_MODEL_EXTRA_RECURRING:
		return nil
	default:
		return ierr.NewError("invalid pricing model type").
			WithHint("Invalid pricing model type").
			WithReportableDetails(map[string]interface{}{
				"pricing_model_type": t,
			}).
			Mark(ierr.ErrValidation)
	}
}

// UsageModelType discriminates the usage sub-model union.
type UsageModelType string

const (
	USAGE_MODEL_PER_UNIT UsageModelType = "PER_UNIT"
	USAGE_MODEL_TIERED   UsageModelType = "TIERED"
	USAGE_MODEL_VOLUME   UsageModelType = "VOLUME"
	USAGE_MODEL_PACKAGE  UsageModelType = "PACKAGE"
	USAGE_MODEL_MATRIX   UsageModelType = "MATRIX"
)

func (t UsageModelType) Validate() error {
	switch t {
	case USAGE_MODEL_PER_UNIT,
		USAGE_MODEL_TIERED,
		USAGE_MODEL_VOLUME,
		USAGE_MODEL_PACKAGE,
		USAGE_MODEL_MATRIX:
		return nil
	default:
		return ierr.NewError("invalid usage model type").
			WithHint("Invalid usage model type").
			WithReportableDetails(map[string]interface{}{
				"usage_model_type": t,
			}).
			Mark(ierr.ErrValidation)
	}
}

// SlotTransactionStatus is the lifecycle status of a slot transaction.
type SlotTransactionStatus string

const (
	SLOT_TRANSACTION_STATUS_PENDING   SlotTransactionStatus = "PENDING"
	SLOT_TRANSACTION_STATUS_ACTIVE    SlotTransactionStatus = "ACTIVE"
	SLOT_TRANSACTION_STATUS_CANCELLED SlotTransactionStatus = "CANCELLED"
)

func (s SlotTransactionStatus) Validate() error {
	switch s {
	case SLOT_TRANSACTION_STATUS_PENDING,
		SLOT_TRANSACTION_STATUS_ACTIVE,
		SLOT_TRANSACTION_STATUS_CANCELLED:
		return nil
	default:
		return ierr.NewError("invalid slot transaction status").
			WithHint("Invalid slot transaction status").
			WithReportableDetails(map[string]interface{}{
				"status": s,
			}).
			Mark(ierr.ErrValidation)
	}
}

// SlotBillingMode controls when a slot increase becomes effective.
// OPTIMISTIC activates the change immediately and bills later;
// ON_INVOICE_PAID keeps the change pending until its invoice is paid.
type SlotBillingMode string

const (
	SLOT_BILLING_MODE_OPTIMISTIC      SlotBillingMode = "OPTIMISTIC"
	SLOT_BILLING_MODE_ON_INVOICE_PAID SlotBillingMode = "ON_INVOICE_PAID"
)

func (m SlotBillingMode) Validate() error {
	switch m {
	case SLOT_BILLING_MODE_OPTIMISTIC, SLOT_BILLING_MODE_ON_INVOICE_PAID:
		return nil
	default:
		return ierr.NewError("invalid slot billing mode").
			WithHint("Billing mode must be OPTIMISTIC or ON_INVOICE_PAID").
			WithReportableDetails(map[string]interface{}{
				"billing_mode": m,
			}).
			Mark(ierr.ErrValidation)
	}
}

// PlanVersionStatus is the publication status of a plan version.
type PlanVersionStatus string

const (
	PLAN_VERSION_STATUS_DRAFT     PlanVersionStatus = "DRAFT"
	PLAN_VERSION_STATUS_PUBLISHED PlanVersionStatus = "PUBLISHED"
	PLAN_VERSION_STATUS_ARCHIVED  PlanVersionStatus = "ARCHIVED"
)

func (s PlanVersionStatus) Validate() error {
	switch s {
	case PLAN_VERSION_STATUS_DRAFT,
		PLAN_VERSION_STATUS_PUBLISHED,
		PLAN_VERSION_STATUS_ARCHIVED:
		return nil
	default:
		return ierr.NewError("invalid plan version status").
			WithHint("Invalid plan version status").
			WithReportableDetails(map[string]interface{}{
				"status": s,
			}).
			Mark(ierr.ErrValidation)
	}
}
