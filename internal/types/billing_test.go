package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBillingCadenceToBillingPeriod(t *testing.T) {
	tests := []struct {
		cadence BillingCadence
		period  BillingPeriod
	}{
		{BILLING_CADENCE_MONTHLY, BILLING_PERIOD_MONTHLY},
		{BILLING_CADENCE_QUARTERLY, BILLING_PERIOD_QUARTERLY},
		{BILLING_CADENCE_SEMIANNUAL, BILLING_PERIOD_SEMIANNUAL},
		{BILLING_CADENCE_ANNUAL, BILLING_PERIOD_YEARLY},
		{BILLING_CADENCE_ONE_TIME, BILLING_PERIOD_ONE_TIME},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.period, tt.cadence.ToBillingPeriod(), "cadence %s", tt.cadence)
	}
}

func TestBillingCadenceValidate(t *testing.T) {
	assert.NoError(t, BILLING_CADENCE_MONTHLY.Validate())
	assert.Error(t, BillingCadence("WEEKLY").Validate())
	assert.True(t, BILLING_CADENCE_MONTHLY.IsRecurring())
	assert.False(t, BILLING_CADENCE_ONE_TIME.IsRecurring())
}

func TestGetCurrencyPrecision(t *testing.T) {
	assert.Equal(t, 2, GetCurrencyPrecision("usd"))
	assert.Equal(t, 2, GetCurrencyPrecision("USD"))
	assert.Equal(t, 0, GetCurrencyPrecision("jpy"))
	assert.Equal(t, 3, GetCurrencyPrecision("kwd"))
	// Unknown currencies fall back to 2 decimals.
	assert.Equal(t, 2, GetCurrencyPrecision("xyz"))
}

func TestGetCurrencySymbol(t *testing.T) {
	assert.Equal(t, "$", GetCurrencySymbol("usd"))
	assert.Equal(t, "€", GetCurrencySymbol("eur"))
	assert.Equal(t, "XYZ", GetCurrencySymbol("xyz"))
}
