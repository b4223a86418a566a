package dto

import (
	"time"

	"github.com/billforge/billforge/internal/types"
	"github.com/billforge/billforge/internal/validator"
	"github.com/shopspring/decimal"
)

// PlanChangePreviewRequest asks for the reconciliation diff and
// proration preview of moving a subscription to a target plan version.
type PlanChangePreviewRequest struct {
	SubscriptionID      string `json:"subscription_id" validate:"required"`
	TargetPlanVersionID string `json:"target_plan_version_id" validate:"required"`
}

func (r *PlanChangePreviewRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// FeeSummary is the display form of one price component in a diff.
type FeeSummary struct {
	DisplayName   string              `json:"display_name"`
	DisplayAmount string              `json:"display_amount"`
	BillingPeriod types.BillingPeriod `json:"billing_period"`
}

// MatchedComponent pairs a current fee with its counterpart on the
// target plan version, matched by product identity.
type MatchedComponent struct {
	ProductID string     `json:"product_id"`
	Current   FeeSummary `json:"current"`
	New       FeeSummary `json:"new"`
}

// AddedComponent exists only on the target plan version.
type AddedComponent struct {
	ProductID string     `json:"product_id,omitempty"`
	New       FeeSummary `json:"new"`
}

// RemovedComponent exists only on the current subscription.
type RemovedComponent struct {
	ProductID string     `json:"product_id,omitempty"`
	Current   FeeSummary `json:"current"`
}

// PlanChangeDiff is the transient reconciliation result between the
// current subscription's fees and a target plan version's components.
// It is recomputed whenever the target selection changes and never
// persisted. EffectiveDate is the server-reported date, shown verbatim.
type PlanChangeDiff struct {
	Matched       []MatchedComponent `json:"matched"`
	Added         []AddedComponent   `json:"added"`
	Removed       []RemovedComponent `json:"removed"`
	EffectiveDate time.Time          `json:"effective_date"`
}

// ProrationSummary carries the backend's proration numbers for the
// change, passed through as decimal strings.
type ProrationSummary struct {
	CreditAmount  decimal.Decimal `json:"credit_amount"`
	ChargeAmount  decimal.Decimal `json:"charge_amount"`
	NetAmount     decimal.Decimal `json:"net_amount"`
	Currency      string          `json:"currency"`
	DaysUsed      int             `json:"days_used"`
	DaysRemaining int             `json:"days_remaining"`
}

// PlanChangePreviewResponse is the confirmation-step payload.
type PlanChangePreviewResponse struct {
	Diff      *PlanChangeDiff   `json:"diff"`
	Proration *ProrationSummary `json:"proration,omitempty"`
}

// PlanChangeCommitRequest executes a previously previewed plan change.
type PlanChangeCommitRequest struct {
	SubscriptionID      string `json:"subscription_id" validate:"required"`
	TargetPlanVersionID string `json:"target_plan_version_id" validate:"required"`
}

func (r *PlanChangeCommitRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// PlanChangeCommitResponse reports the server-side effective date of
// the committed change.
type PlanChangeCommitResponse struct {
	EffectiveDate time.Time `json:"effective_date"`
}
