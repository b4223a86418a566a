package dto

import (
	"github.com/billforge/billforge/internal/domain/subscription"
	ierr "github.com/billforge/billforge/internal/errors"
	"github.com/billforge/billforge/internal/types"
	"github.com/billforge/billforge/internal/validator"
	"github.com/shopspring/decimal"
)

// SlotPreviewRequest asks for a proration preview of a slot change
// before it is committed.
type SlotPreviewRequest struct {
	SubscriptionID   string `json:"subscription_id" validate:"required"`
	PriceComponentID string `json:"price_component_id" validate:"required"`
	CurrentSlots     int64  `json:"current_slots" validate:"min=0"`
	NewSlots         int64  `json:"new_slots" validate:"min=0"`
}

func (r *SlotPreviewRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// Delta returns the requested change in slot count.
func (r *SlotPreviewRequest) Delta() int64 {
	return r.NewSlots - r.CurrentSlots
}

// SlotPreviewResponse carries the proration preview for a slot change.
// Estimated is true when the amount is the local fallback estimate
// rather than the backend's authoritative proration.
type SlotPreviewResponse struct {
	Delta            int64           `json:"delta"`
	ProratedAmount   decimal.Decimal `json:"prorated_amount"`
	FullPeriodAmount decimal.Decimal `json:"full_period_amount"`
	DaysRemaining    int             `json:"days_remaining"`
	Currency         string          `json:"currency"`
	Estimated        bool            `json:"estimated"`
}

// SlotUpdateRequest commits a slot count change.
type SlotUpdateRequest struct {
	SubscriptionID   string                `json:"subscription_id" validate:"required"`
	PriceComponentID string                `json:"price_component_id" validate:"required"`
	CurrentSlots     int64                 `json:"current_slots" validate:"min=0"`
	NewSlots         int64                 `json:"new_slots" validate:"min=0"`
	BillingMode      types.SlotBillingMode `json:"billing_mode,omitempty"`
}

func (r *SlotUpdateRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if r.BillingMode == "" {
		r.BillingMode = types.SLOT_BILLING_MODE_OPTIMISTIC
	}
	return r.BillingMode.Validate()
}

// Delta returns the requested change in slot count.
func (r *SlotUpdateRequest) Delta() int64 {
	return r.NewSlots - r.CurrentSlots
}

// SlotUpdateResponse reports the effective count after a committed
// update, as returned by the backend.
type SlotUpdateResponse struct {
	CurrentSlots int64 `json:"current_slots"`
}

// CancelSlotTransactionRequest cancels a pending or future-effective
// slot transaction.
type CancelSlotTransactionRequest struct {
	SubscriptionID string `json:"subscription_id" validate:"required"`
	TransactionID  string `json:"transaction_id" validate:"required"`
}

func (r *CancelSlotTransactionRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// ListSlotTransactionsRequest lists the slot transactions of a
// subscription, optionally filtered by unit label.
type ListSlotTransactionsRequest struct {
	SubscriptionID string `json:"subscription_id" validate:"required"`
	Unit           string `json:"unit,omitempty"`
}

func (r *ListSlotTransactionsRequest) Validate() error {
	if r.SubscriptionID == "" {
		return ierr.NewError("subscription ID is required").
			WithHint("Please provide a valid subscription ID").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// ListSlotTransactionsResponse splits transactions into the upcoming
// and history views. Cancelled and no-op transactions appear in
// neither.
type ListSlotTransactionsResponse struct {
	Upcoming []*subscription.SlotTransaction `json:"upcoming"`
	History  []*subscription.SlotTransaction `json:"history"`
}
