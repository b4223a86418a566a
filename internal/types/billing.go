package types

import (
	ierr "github.com/billforge/billforge/internal/errors"
)

// BillingCadence is how often a catalog price recurs. ONE_TIME is never
// combined with a recurring cadence.
type BillingCadence string

const (
	BILLING_CADENCE_MONTHLY    BillingCadence = "MONTHLY"
	BILLING_CADENCE_QUARTERLY  BillingCadence = "QUARTERLY"
	BILLING_CADENCE_SEMIANNUAL BillingCadence = "SEMIANNUAL"
	BILLING_CADENCE_ANNUAL     BillingCadence = "ANNUAL"
	BILLING_CADENCE_ONE_TIME   BillingCadence = "ONE_TIME"
)

func (c BillingCadence) Validate() error {
	switch c {
	case BILLING_CADENCE_MONTHLY,
		BILLING_CADENCE_QUARTERLY,
		BILLING_CADENCE_SEMIANNUAL,
		BILLING_CADENCE_ANNUAL,
		BILLING_CADENCE_ONE_TIME:
		return nil
	default:
		return ierr.NewError("invalid billing cadence").
			WithHint("Invalid billing cadence").
			WithReportableDetails(map[string]interface{}{
				"billing_cadence": c,
				"allowed": []BillingCadence{
					BILLING_CADENCE_MONTHLY,
					BILLING_CADENCE_QUARTERLY,
					BILLING_CADENCE_SEMIANNUAL,
					BILLING_CADENCE_ANNUAL,
					BILLING_CADENCE_ONE_TIME,
				},
			}).
			Mark(ierr.ErrValidation)
	}
}

// IsRecurring reports whether the cadence repeats.
func (c BillingCadence) IsRecurring() bool {
	return c != BILLING_CADENCE_ONE_TIME
}

// BillingPeriod is the billing period recorded on a subscription fee
// snapshot. It mirrors BillingCadence 1:1 except ANNUAL maps to YEARLY.
type BillingPeriod string

const (
	BILLING_PERIOD_MONTHLY    BillingPeriod = "MONTHLY"
	BILLING_PERIOD_QUARTERLY  BillingPeriod = "QUARTERLY"
	BILLING_PERIOD_SEMIANNUAL BillingPeriod = "SEMIANNUAL"
	BILLING_PERIOD_YEARLY     BillingPeriod = "YEARLY"
	BILLING_PERIOD_ONE_TIME   BillingPeriod = "ONE_TIME"
)

func (p BillingPeriod) Validate() error {
	switch p {
	case BILLING_PERIOD_MONTHLY,
		BILLING_PERIOD_QUARTERLY,
		BILLING_PERIOD_SEMIANNUAL,
		BILLING_PERIOD_YEARLY,
		BILLING_PERIOD_ONE_TIME:
		return nil
	default:
		return ierr.NewError("invalid billing period").
			WithHint("Invalid billing period").
			WithReportableDetails(map[string]interface{}{
				"billing_period": p,
			}).
			Mark(ierr.ErrValidation)
	}
}

// ToBillingPeriod maps a catalog cadence to the fee snapshot period.
func (c BillingCadence) ToBillingPeriod() BillingPeriod {
	switch c {
	case BILLING_CADENCE_QUARTERLY:
		return BILLING_PERIOD_QUARTERLY
	case BILLING_CADENCE_SEMIANNUAL:
		return BILLING_PERIOD_SEMIANNUAL
	case BILLING_CADENCE_ANNUAL:
		return BILLING_PERIOD_YEARLY
	case BILLING_CADENCE_ONE_TIME:
		return BILLING_PERIOD_ONE_TIME
	default:
		return BILLING_PERIOD_MONTHLY
	}
}

// BillingType determines whether an extra recurring charge is billed in
// advance or in arrears.
type BillingType string

const (
	BILLING_TYPE_ADVANCE BillingType = "ADVANCE"
	BILLING_TYPE_ARREAR  BillingType = "ARREAR"
)

func (t BillingType) Validate() error {
	switch t {
	case BILLING_TYPE_ADVANCE, BILLING_TYPE_ARREAR:
		return nil
	default:
		return ierr.NewError("invalid billing type").
			WithHint("Billing type must be ADVANCE or ARREAR").
			WithReportableDetails(map[string]interface{}{
				"billing_type": t,
			}).
			Mark(ierr.ErrValidation)
	}
}
