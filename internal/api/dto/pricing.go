package dto

import (
	"github.com/billforge/billforge/internal/domain/plan"
	"github.com/billforge/billforge/internal/domain/pricing"
	"github.com/billforge/billforge/internal/domain/subscription"
	ierr "github.com/billforge/billforge/internal/errors"
	"github.com/billforge/billforge/internal/validator"
)

// AppendTierRequest appends an editing row to a tier table. An empty
// table is seeded with the default two-row curve.
type AppendTierRequest struct {
	Rows pricing.TierTable `json:"rows"`
}

// RemoveTierRequest removes the row at Index.
type RemoveTierRequest struct {
	Rows  pricing.TierTable `json:"rows" validate:"required,min=1"`
	Index int               `json:"index" validate:"min=0"`
}

func (r *RemoveTierRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// SetTierBoundaryRequest changes the FirstUnit boundary of the row at
// Index, cascading later rows forward as needed.
type SetTierBoundaryRequest struct {
	Rows      pricing.TierTable `json:"rows" validate:"required,min=1"`
	Index     int               `json:"index" validate:"min=0"`
	FirstUnit uint64            `json:"first_unit"`
}

func (r *SetTierBoundaryRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// TierTableResponse returns an updated tier table after an edit.
type TierTableResponse struct {
	Rows pricing.TierTable `json:"rows"`
}

// ValidatePricingModelRequest runs full structural validation on a
// catalog price definition, used by the console before saving a draft.
type ValidatePricingModelRequest struct {
	Currency string               `json:"currency" validate:"required,len=3"`
	Cadence  string               `json:"cadence" validate:"required"`
	Pricing  pricing.PricingModel `json:"pricing"`
}

func (r *ValidatePricingModelRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// CreateSubscriptionFeeRequest converts a catalog price into a fee
// snapshot for one subscription.
type CreateSubscriptionFeeRequest struct {
	SubscriptionID string      `json:"subscription_id" validate:"required"`
	Price          *plan.Price `json:"price" validate:"required"`

	// InitialSlots applies to slot prices only; defaults to 1.
	InitialSlots *int64 `json:"initial_slots,omitempty"`
}

func (r *CreateSubscriptionFeeRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if r.InitialSlots != nil && *r.InitialSlots < 1 {
		return ierr.NewError("initial slots must be at least 1").
			WithHint("Initial slot count must be at least 1").
			WithReportableDetails(map[string]interface{}{
				"field":         "initial_slots",
				"initial_slots": *r.InitialSlots,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// SubscriptionFeeResponse wraps a fee snapshot.
type SubscriptionFeeResponse struct {
	*subscription.Fee
}
