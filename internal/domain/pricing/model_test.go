package pricing

import (
	"testing"

	ierr "github.com/billforge/billforge/internal/errors"
	"github.com/billforge/billforge/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPricingModelValidate(t *testing.T) {
	tests := []struct {
		name    string
		model   PricingModel
		wantErr bool
	}{
		{
			name: "valid rate",
			model: PricingModel{
				Type: types.PRICING_MODEL_RATE,
				Rate: &RateConfig{Amount: decimal.RequireFromString("19.99")},
			},
		},
		{
			name:    "rate without config",
			model:   PricingModel{Type: types.PRICING_MODEL_RATE},
			wantErr: true,
		},
		{
			name: "negative rate",
			model: PricingModel{
				Type: types.PRICING_MODEL_RATE,
				Rate: &RateConfig{Amount: decimal.NewFromInt(-1)},
			},
			wantErr: true,
		},
		{
			name: "valid slot",
			model: PricingModel{
				Type: types.PRICING_MODEL_SLOT,
				Slot: &SlotConfig{
					UnitLabel:  "seats",
					UnitAmount: decimal.NewFromInt(12),
					MinSlots:   lo.ToPtr(int64(1)),
					MaxSlots:   lo.ToPtr(int64(100)),
				},
			},
		},
		{
			name: "slot min above max",
			model: PricingModel{
				Type: types.PRICING_MODEL_SLOT,
				Slot: &SlotConfig{
					UnitLabel:  "seats",
					UnitAmount: decimal.NewFromInt(12),
					MinSlots:   lo.ToPtr(int64(10)),
					MaxSlots:   lo.ToPtr(int64(5)),
				},
			},
			wantErr: true,
		},
		{
			name: "slot negative min",
			model: PricingModel{
				Type: types.PRICING_MODEL_SLOT,
				Slot: &SlotConfig{
					UnitLabel:  "seats",
					UnitAmount: decimal.NewFromInt(12),
					MinSlots:   lo.ToPtr(int64(-1)),
				},
			},
			wantErr: true,
		},
		{
			name: "capacity with empty thresholds",
			model: PricingModel{
				Type:     types.PRICING_MODEL_CAPACITY,
				Capacity: &CapacityConfig{Thresholds: ThresholdList{}},
			},
			wantErr: true,
		},
		{
			name: "valid capacity",
			model: PricingModel{
				Type: types.PRICING_MODEL_CAPACITY,
				Capacity: &CapacityConfig{Thresholds: ThresholdList{
					{IncludedAmount: 1000, TierAmount: decimal.NewFromInt(50), PerUnitOverage: decimal.RequireFromString("0.05")},
				}},
			},
		},
		{
			name: "one time zero quantity",
			model: PricingModel{
				Type:    types.PRICING_MODEL_ONE_TIME,
				OneTime: &OneTimeConfig{UnitAmount: decimal.NewFromInt(10), Quantity: 0},
			},
			wantErr: true,
		},
		{
			name: "valid extra recurring",
			model: PricingModel{
				Type: types.PRICING_MODEL_EXTRA_RECURRING,
				ExtraRecurring: &ExtraRecurringConfig{
					UnitAmount:  decimal.RequireFromString("4.50"),
					Quantity:    2,
					BillingType: types.BILLING_TYPE_ADVANCE,
				},
			},
		},
		{
			name:    "unknown type",
			model:   PricingModel{Type: "BOGUS"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.model.Validate()
			if tt.wantErr {
				assert.True(t, ierr.IsValidation(err), "expected validation error, got %v", err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCadenceCompatible(t *testing.T) {
	recurring := []types.BillingCadence{
		types.BILLING_CADENCE_MONTHLY,
		types.BILLING_CADENCE_QUARTERLY,
		types.BILLING_CADENCE_SEMIANNUAL,
		types.BILLING_CADENCE_ANNUAL,
	}

	for _, cadence := range recurring {
		assert.False(t, CadenceCompatible(types.PRICING_MODEL_ONE_TIME, cadence), "one-time pricing with %s", cadence)
		assert.True(t, CadenceCompatible(types.PRICING_MODEL_RATE, cadence), "rate pricing with %s", cadence)
		assert.True(t, CadenceCompatible(types.PRICING_MODEL_SLOT, cadence), "slot pricing with %s", cadence)
	}

	assert.True(t, CadenceCompatible(types.PRICING_MODEL_ONE_TIME, types.BILLING_CADENCE_ONE_TIME))
	assert.False(t, CadenceCompatible(types.PRICING_MODEL_RATE, types.BILLING_CADENCE_ONE_TIME))
	assert.False(t, CadenceCompatible(types.PRICING_MODEL_USAGE, types.BILLING_CADENCE_ONE_TIME))
}

func TestPricingModelClone(t *testing.T) {
	model := PricingModel{
		Type: types.PRICING_MODEL_SLOT,
		Slot: &SlotConfig{
			UnitLabel:  "seats",
			UnitAmount: decimal.NewFromInt(12),
			MinSlots:   lo.ToPtr(int64(1)),
		},
	}

	clone := model.Clone()
	clone.Slot.UnitAmount = decimal.NewFromInt(99)
	*clone.Slot.MinSlots = 5

	assert.Equal(t, "12", model.Slot.UnitAmount.String())
	assert.Equal(t, int64(1), *model.Slot.MinSlots)
}
