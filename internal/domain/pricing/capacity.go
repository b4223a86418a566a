package pricing

import (
	ierr "github.com/billforge/billforge/internal/errors"
	"github.com/shopspring/decimal"
)

// Threshold is one band of capacity pricing: a prepaid amount of
// included units at a tier price, with a per-unit rate for overage
// beyond it. Overage rates keep full decimal precision (at least eight
// fractional digits survive the wire format).
type Threshold struct {
	IncludedAmount uint64          `json:"included_amount"`
	TierAmount     decimal.Decimal `json:"tier_amount"`
	PerUnitOverage decimal.Decimal `json:"per_unit_overage"`
}

// ThresholdList is the ordered, non-empty list of capacity thresholds.
// IncludedAmount is strictly increasing across the list.
type ThresholdList []Threshold

// Validate checks ordering and amount invariants.
func (l ThresholdList) Validate() error {
	if len(l) == 0 {
		return ierr.NewError("threshold list cannot be empty").
			WithHint("Capacity pricing requires at least one threshold").
			WithReportableDetails(map[string]interface{}{
				"field": "thresholds",
			}).
			Mark(ierr.ErrValidation)
	}
	for i := 1; i < len(l); i++ {
		if l[i].IncludedAmount <= l[i-1].IncludedAmount {
			return ierr.NewError("threshold included amounts must be strictly increasing").
				WithHint("Each threshold must include more units than the previous one").
				WithReportableDetails(map[string]interface{}{
					"field":                    "included_amount",
					"threshold_index":          i,
					"included_amount":          l[i].IncludedAmount,
					"previous_included_amount": l[i-1].IncludedAmount,
				}).
				Mark(ierr.ErrValidation)
		}
	}
	for i, th := range l {
		if th.TierAmount.LessThan(decimal.Zero) {
			return ierr.NewError("threshold tier amount cannot be negative").
				WithHint("Threshold tier amount cannot be negative").
				WithReportableDetails(map[string]interface{}{
					"field":           "tier_amount",
					"threshold_index": i,
				}).
				Mark(ierr.ErrValidation)
		}
		if th.PerUnitOverage.LessThan(decimal.Zero) {
			return ierr.NewError("per unit overage cannot be negative").
				WithHint("Per-unit overage rate cannot be negative").
				WithReportableDetails(map[string]interface{}{
					"field":           "per_unit_overage",
					"threshold_index": i,
				}).
				Mark(ierr.ErrValidation)
		}
	}
	return nil
}

// AppendThreshold returns a new list with one threshold appended. The
// new threshold's included amount defaults to the previous one plus
// one, which keeps the strictly-increasing invariant without input.
func (l ThresholdList) AppendThreshold() ThresholdList {
	included := uint64(0)
	if len(l) > 0 {
		included = l[len(l)-1].IncludedAmount + 1
	}

	out := make(ThresholdList, len(l), len(l)+1)
	copy(out, l)
	return append(out, Threshold{
		IncludedAmount: included,
		TierAmount:     decimal.Zero,
		PerUnitOverage: decimal.Zero,
	})
}

// RemoveThreshold returns a new list with the threshold at index
// removed. The remaining included amounts keep their declared values.
func (l ThresholdList) RemoveThreshold(index int) (ThresholdList, error) {
	if index < 0 || index >= len(l) {
		return nil, ierr.NewError("threshold index out of range").
			WithHint("The requested threshold does not exist").
			WithReportableDetails(map[string]interface{}{
				"field":           "threshold_index",
				"threshold_index": index,
				"threshold_count": len(l),
			}).
			Mark(ierr.ErrValidation)
	}
	if len(l) == 1 {
		return nil, ierr.NewError("cannot remove the only threshold").
			WithHint("Capacity pricing must keep at least one threshold").
			WithReportableDetails(map[string]interface{}{
				"field": "thresholds",
			}).
			Mark(ierr.ErrValidation)
	}

	out := make(ThresholdList, 0, len(l)-1)
	out = append(out, l[:index]...)
	out = append(out, l[index+1:]...)
	return out, nil
}

// SetIncludedAmount returns a new list with the threshold's included
// amount changed. Values at or below the previous threshold are
// rejected; following thresholds cascade forward the same way tier
// boundaries do.
func (l ThresholdList) SetIncludedAmount(index int, value uint64) (ThresholdList, error) {
	if index < 0 || index >= len(l) {
		return nil, ierr.NewError("threshold index out of range").
			WithHint("The requested threshold does not exist").
			WithReportableDetails(map[string]interface{}{
				"field":           "threshold_index",
				"threshold_index": index,
				"threshold_count": len(l),
			}).
			Mark(ierr.ErrValidation)
	}
	if index > 0 && value <= l[index-1].IncludedAmount {
		return nil, ierr.NewError("included amount must exceed the previous threshold").
			WithHint("The included amount must be greater than the previous threshold's").
			WithReportableDetails(map[string]interface{}{
				"field":                    "included_amount",
				"threshold_index":          index,
				"included_amount":          value,
				"previous_included_amount": l[index-1].IncludedAmount,
			}).
			Mark(ierr.ErrValidation)
	}

	out := make(ThresholdList, len(l))
	copy(out, l)
	out[index].IncludedAmount = value
	for i := index + 1; i < len(out); i++ {
		if out[i].IncludedAmount > out[i-1].IncludedAmount {
			break
		}
		out[i].IncludedAmount = out[i-1].IncludedAmount + 1
	}
	return out, nil
}
