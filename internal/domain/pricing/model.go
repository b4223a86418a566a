package pricing

import (
	ierr "github.com/billforge/billforge/internal/errors"
	"github.com/billforge/billforge/internal/types"
	"github.com/shopspring/decimal"
)

// PricingModel is the tagged union describing how a price component is
// charged. Type selects the variant; exactly one of the config fields
// matching the type must be set. Amounts are decimals in the currency
// carried by the owning price or fee.
type PricingModel struct {
	Type types.PricingModelType `json:"type"`

	Rate           *RateConfig           `json:"rate,omitempty"`
	Slot           *SlotConfig           `json:"slot,omitempty"`
	Capacity       *CapacityConfig       `json:"capacity,omitempty"`
	Usage          *UsageConfig          `json:"usage,omitempty"`
	OneTime        *OneTimeConfig        `json:"one_time,omitempty"`
	ExtraRecurring *ExtraRecurringConfig `json:"extra_recurring,omitempty"`
}

// RateConfig is a fixed recurring charge.
type RateConfig struct {
	Amount decimal.Decimal `json:"amount"`
}

// SlotConfig is a per-unit recurring charge scaled by an active count,
// e.g. seats or licenses.
type SlotConfig struct {
	UnitLabel  string          `json:"unit_label"`
	UnitAmount decimal.Decimal `json:"unit_amount"`
	MinSlots   *int64          `json:"min_slots,omitempty"`
	MaxSlots   *int64          `json:"max_slots,omitempty"`
}

// CapacityConfig is prepaid capacity with overage, described by an
// ordered list of thresholds.
type CapacityConfig struct {
	Thresholds ThresholdList `json:"thresholds"`
}

// UsageConfig is metered usage priced by one of the usage sub-models.
// MetricID stays empty on fee snapshots until the backend resolves it
// from the plan's linked product.
type UsageConfig struct {
	MetricID string     `json:"metric_id,omitempty"`
	Model    UsageModel `json:"model"`
}

// OneTimeConfig is a single non-recurring charge.
type OneTimeConfig struct {
	UnitAmount decimal.Decimal `json:"unit_amount"`
	Quantity   int64           `json:"quantity"`
}

// ExtraRecurringConfig is an additional recurring charge billed in
// advance or in arrears.
type ExtraRecurringConfig struct {
	UnitAmount  decimal.Decimal   `json:"unit_amount"`
	Quantity    int64             `json:"quantity"`
	BillingType types.BillingType `json:"billing_type"`
}

// Validate checks the structural invariants of the pricing model.
func (m *PricingModel) Validate() error {
	if err := m.Type.Validate(); err != nil {
		return err
	}

	switch m.Type {
	case types.PRICING_MODEL_RATE:
		if m.Rate == nil {
			return missingConfigError("rate", m.Type)
		}
		return m.Rate.Validate()
	case types.PRICING_MODEL_SLOT:
		if m.Slot == nil {
			return missingConfigError("slot", m.Type)
		}
		return m.Slot.Validate()
	case types.PRICING_MODEL_CAPACITY:
		if m.Capacity == nil {
			return missingConfigError("capacity", m.Type)
		}
		return m.Capacity.Validate()
	case types.PRICING_MODEL_USAGE:
		if m.Usage == nil {
			return missingConfigError("usage", m.Type)
		}
		return m.Usage.Validate()
	case types.PRICING_MODEL_ONE_TIME:
		if m.OneTime == nil {
			return missingConfigError("one_time", m.Type)
		}
		return m.OneTime.Validate()
	case types.PRICING_MODEL_EXTRA_RECURRING:
		if m.ExtraRecurring == nil {
			return missingConfigError("extra_recurring", m.Type)
		}
		return m.ExtraRecurring.Validate()
	}
	return nil
}

func missingConfigError(field string, modelType types.PricingModelType) error {
	return ierr.NewErrorf("%s config is required", field).
		WithHintf("Pricing model of type %s requires the %s config", modelType, field).
		WithReportableDetails(map[string]interface{}{
			"field":              field,
			"pricing_model_type": modelType,
		}).
		Mark(ierr.ErrValidation)
}

func (c *RateConfig) Validate() error {
	if c.Amount.LessThan(decimal.Zero) {
		return ierr.NewError("rate amount cannot be negative").
			WithHint("Rate amount cannot be negative").
			WithReportableDetails(map[string]interface{}{
				"field":  "amount",
				"amount": c.Amount.String(),
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

func (c *SlotConfig) Validate() error {
	if c.UnitAmount.LessThan(decimal.Zero) {
		return ierr.NewError("slot unit amount cannot be negative").
			WithHint("Slot unit amount cannot be negative").
			WithReportableDetails(map[string]interface{}{
				"field":       "unit_amount",
				"unit_amount": c.UnitAmount.String(),
			}).
			Mark(ierr.ErrValidation)
	}
	if c.MinSlots != nil && *c.MinSlots < 0 {
		return ierr.NewError("min slots cannot be negative").
			WithHint("Minimum slot count cannot be negative").
			WithReportableDetails(map[string]interface{}{
				"field":     "min_slots",
				"min_slots": *c.MinSlots,
			}).
			Mark(ierr.ErrValidation)
	}
	if c.MinSlots != nil && c.MaxSlots != nil && *c.MinSlots > *c.MaxSlots {
		return ierr.NewError("min slots cannot exceed max slots").
			WithHint("Minimum slot count cannot exceed the maximum").
			WithReportableDetails(map[string]interface{}{
				"field":     "min_slots",
				"min_slots": *c.MinSlots,
				"max_slots": *c.MaxSlots,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

func (c *CapacityConfig) Validate() error {
	if len(c.Thresholds) == 0 {
		return ierr.NewError("capacity thresholds cannot be empty").
			WithHint("Capacity pricing requires at least one threshold").
			WithReportableDetails(map[string]interface{}{
				"field": "thresholds",
			}).
			Mark(ierr.ErrValidation)
	}
	return c.Thresholds.Validate()
}

func (c *UsageConfig) Validate() error {
	return c.Model.Validate()
}

func (c *OneTimeConfig) Validate() error {
	if c.UnitAmount.LessThan(decimal.Zero) {
		return ierr.NewError("unit amount cannot be negative").
			WithHint("Unit amount cannot be negative").
			WithReportableDetails(map[string]interface{}{
				"field":       "unit_amount",
				"unit_amount": c.UnitAmount.String(),
			}).
			Mark(ierr.ErrValidation)
	}
	if c.Quantity < 1 {
		return ierr.NewError("quantity must be at least 1").
			WithHint("Quantity must be at least 1").
			WithReportableDetails(map[string]interface{}{
				"field":    "quantity",
				"quantity": c.Quantity,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

func (c *ExtraRecurringConfig) Validate() error {
	if c.UnitAmount.LessThan(decimal.Zero) {
		return ierr.NewError("unit amount cannot be negative").
			WithHint("Unit amount cannot be negative").
			WithReportableDetails(map[string]interface{}{
				"field":       "unit_amount",
				"unit_amount": c.UnitAmount.String(),
			}).
			Mark(ierr.ErrValidation)
	}
	if c.Quantity < 1 {
		return ierr.NewError("quantity must be at least 1").
			WithHint("Quantity must be at least 1").
			WithReportableDetails(map[string]interface{}{
				"field":    "quantity",
				"quantity": c.Quantity,
			}).
			Mark(ierr.ErrValidation)
	}
	return c.BillingType.Validate()
}

// CadenceCompatible reports whether the pricing model can be sold at
// the given billing cadence. One-time pricing only pairs with the
// one-time cadence; every recurring variant rejects it.
func CadenceCompatible(modelType types.PricingModelType, cadence types.BillingCadence) bool {
	if modelType == types.PRICING_MODEL_ONE_TIME {
		return cadence == types.BILLING_CADENCE_ONE_TIME
	}
	return cadence != types.BILLING_CADENCE_ONE_TIME
}
