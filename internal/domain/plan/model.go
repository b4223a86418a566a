package plan

import (
	"fmt"

	"github.com/billforge/billforge/internal/domain/pricing"
	ierr "github.com/billforge/billforge/internal/errors"
	"github.com/billforge/billforge/internal/types"
)

// Plan is a sellable plan. Its pricing lives on versions; publishing a
// new version creates a fresh set of prices.
type Plan struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	types.BaseModel
}

// PlanVersion is one published revision of a plan's price-component
// list. Versions are immutable once published.
type PlanVersion struct {
	ID      string                  `json:"id"`
	PlanID  string                  `json:"plan_id"`
	Version int                     `json:"version"`
	Status  types.PlanVersionStatus `json:"status"`
	Prices  []*Price                `json:"prices"`
	types.BaseModel
}

// Price is a catalog-level pricing definition owned by a plan version.
// ProductID links the component to the product it charges for and is
// the stable identity used when reconciling components across plan
// versions; price IDs themselves are recreated per version.
type Price struct {
	ID          string               `json:"id"`
	ProductID   string               `json:"product_id,omitempty"`
	DisplayName string               `json:"display_name"`
	Currency    string               `json:"currency"`
	Cadence     types.BillingCadence `json:"cadence"`
	Pricing     pricing.PricingModel `json:"pricing"`
	types.BaseModel
}

// Validate checks the price's structural invariants, including that the
// pricing model and cadence are compatible.
func (p *Price) Validate() error {
	if p.Currency == "" {
		return ierr.NewError("currency is required").
			WithHint("Price currency is required").
			WithReportableDetails(map[string]interface{}{
				"field": "currency",
			}).
			Mark(ierr.ErrValidation)
	}
	if err := p.Cadence.Validate(); err != nil {
		return err
	}
	if err := p.Pricing.Validate(); err != nil {
		return err
	}
	if !pricing.CadenceCompatible(p.Pricing.Type, p.Cadence) {
		return ierr.NewError("pricing model is not compatible with billing cadence").
			WithHintf("Pricing model %s cannot be billed %s", p.Pricing.Type, p.Cadence).
			WithReportableDetails(map[string]interface{}{
				"field":              "cadence",
				"pricing_model_type": p.Pricing.Type,
				"billing_cadence":    p.Cadence,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// GetDisplayAmount returns the headline amount of the price formatted
// with its currency symbol, at currency precision. Usage and capacity
// pricing have no single headline amount and return an empty string.
func (p *Price) GetDisplayAmount() string {
	symbol := types.GetCurrencySymbol(p.Currency)
	precision := int32(types.GetCurrencyPrecision(p.Currency))

	switch p.Pricing.Type {
	case types.PRICING_MODEL_RATE:
		if p.Pricing.Rate != nil {
			return fmt.Sprintf("%s%s", symbol, p.Pricing.Rate.Amount.StringFixed(precision))
		}
	case types.PRICING_MODEL_SLOT:
		if p.Pricing.Slot != nil {
			return fmt.Sprintf("%s%s", symbol, p.Pricing.Slot.UnitAmount.StringFixed(precision))
		}
	case types.PRICING_MODEL_ONE_TIME:
		if p.Pricing.OneTime != nil {
			return fmt.Sprintf("%s%s", symbol, p.Pricing.OneTime.UnitAmount.StringFixed(precision))
		}
	case types.PRICING_MODEL_EXTRA_RECURRING:
		if p.Pricing.ExtraRecurring != nil {
			return fmt.Sprintf("%s%s", symbol, p.Pricing.ExtraRecurring.UnitAmount.StringFixed(precision))
		}
	}
	return ""
}
