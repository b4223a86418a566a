package billingapi

import (
	"time"

	"github.com/shopspring/decimal"
)

// All monetary amounts cross this boundary as currency-tagged decimal
// strings; decimal.Decimal marshals to a quoted string so no value ever
// travels as a native float.

// SlotPreviewRequest asks the backend what a slot delta would cost for
// the remainder of the current period.
type SlotPreviewRequest struct {
	PriceComponentID string `json:"price_component_id"`
	Delta            int64  `json:"delta"`
}

// SlotPreview is the backend's proration preview for a slot change.
// ProratedAmount is authoritative; the day-counting convention and
// rounding direction are entirely server-side.
type SlotPreview struct {
	ProratedAmount   decimal.Decimal `json:"prorated_amount"`
	FullPeriodAmount decimal.Decimal `json:"full_period_amount"`
	DaysRemaining    int             `json:"days_remaining"`
	Currency         string          `json:"currency"`
}

// SlotUpdateRequest commits a slot delta.
type SlotUpdateRequest struct {
	PriceComponentID string `json:"price_component_id"`
	Delta            int64  `json:"delta"`
	BillingMode      string `json:"billing_mode"`
}

// SlotUpdateResult reports the effective count after a committed
// update.
type SlotUpdateResult struct {
	CurrentValue int64 `json:"current_value"`
}

// PlanChangePreviewRequest asks the backend to price a plan change.
type PlanChangePreviewRequest struct {
	TargetPlanVersionID string `json:"target_plan_version_id"`
}

// PlanChangePreview carries the backend's proration numbers and the
// effective date for a plan change. EffectiveDate is displayed verbatim
// and never recomputed locally.
type PlanChangePreview struct {
	CreditAmount  decimal.Decimal `json:"credit_amount"`
	ChargeAmount  decimal.Decimal `json:"charge_amount"`
	NetAmount     decimal.Decimal `json:"net_amount"`
	Currency      string          `json:"currency"`
	DaysUsed      int             `json:"days_used"`
	DaysRemaining int             `json:"days_remaining"`
	EffectiveDate time.Time       `json:"effective_date"`
}

// PlanChangeRequest commits a plan change.
type PlanChangeRequest struct {
	TargetPlanVersionID string `json:"target_plan_version_id"`
}

// PlanChangeResult reports the server-side effective date of a
// committed plan change.
type PlanChangeResult struct {
	EffectiveDate time.Time `json:"effective_date"`
}
