package subscription

import (
	"fmt"

	"github.com/billforge/billforge/internal/domain/pricing"
	"github.com/billforge/billforge/internal/types"
	"github.com/shopspring/decimal"
)

// Fee is an immutable snapshot of a catalog price attached to one
// subscription. It is taken when the subscription is created or a
// component is added and is never mutated in place; slot count changes
// append SlotTransaction records instead, and the backend derives the
// currently effective count from them.
type Fee struct {
	ID             string `json:"id"`
	SubscriptionID string `json:"subscription_id"`

	// PriceID references the catalog price the snapshot was taken from.
	PriceID string `json:"price_id"`

	// ProductID is the stable component identity carried over from the
	// price; plan-change reconciliation matches on it.
	ProductID string `json:"product_id,omitempty"`

	DisplayName   string               `json:"display_name"`
	Currency      string               `json:"currency"`
	BillingPeriod types.BillingPeriod  `json:"billing_period"`
	Pricing       pricing.PricingModel `json:"pricing"`

	// InitialSlots is set for slot fees only: the count the
	// subscription started with.
	InitialSlots *int64 `json:"initial_slots,omitempty"`

	// ResolvedMetricID stays empty until the backend resolves the
	// metric from the plan's linked product. The snapshot never guesses
	// a metric identifier.
	ResolvedMetricID string `json:"resolved_metric_id,omitempty"`

	// Total is a derived display amount for quantity-based fees
	// (unit amount times quantity). The backend recomputes billed
	// amounts and is the source of truth.
	Total *decimal.Decimal `json:"total,omitempty"`

	types.BaseModel
}

// SlotConfig returns the slot configuration for slot fees, nil
// otherwise.
func (f *Fee) SlotConfig() *pricing.SlotConfig {
	if f.Pricing.Type != types.PRICING_MODEL_SLOT {
		return nil
	}
	return f.Pricing.Slot
}

// GetDisplayTotal returns the derived total formatted with the fee's
// currency symbol, or an empty string when no total applies.
func (f *Fee) GetDisplayTotal() string {
	if f.Total == nil {
		return ""
	}
	symbol := types.GetCurrencySymbol(f.Currency)
	precision := int32(types.GetCurrencyPrecision(f.Currency))
	return fmt.Sprintf("%s%s", symbol, f.Total.StringFixed(precision))
}
