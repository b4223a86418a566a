package pricing

import (
	ierr "github.com/billforge/billforge/internal/errors"
	"github.com/shopspring/decimal"
)

// TierRow is one band of a stepped pricing curve. FirstUnit is the
// inclusive lower boundary; the implicit upper boundary is the next
// row's FirstUnit minus one, and the last row is unbounded.
type TierRow struct {
	FirstUnit  uint64           `json:"first_unit"`
	UnitAmount decimal.Decimal  `json:"unit_amount"`
	FlatAmount *decimal.Decimal `json:"flat_amount,omitempty"`
	FlatCap    *decimal.Decimal `json:"flat_cap,omitempty"`
}

// TierTable is an ordered, non-empty sequence of tier rows used by
// tiered and volume usage pricing. All editing operations are pure:
// they return a new table and never leave one with duplicate or
// unsorted boundaries.
type TierTable []TierRow

// seedUpperFirstUnit is the default boundary of the second row seeded
// into an empty table, chosen as a sensible editing starting point.
const seedUpperFirstUnit = 100

// Validate checks the table's ordering invariants: rows sorted strictly
// ascending by FirstUnit and the first row anchored at 0.
func (t TierTable) Validate() error {
	if len(t) == 0 {
		return ierr.NewError("tier table cannot be empty").
			WithHint("At least one tier is required").
			WithReportableDetails(map[string]interface{}{
				"field": "tiers",
			}).
			Mark(ierr.ErrValidation)
	}
	if t[0].FirstUnit != 0 {
		return ierr.NewError("first tier must start at unit 0").
			WithHint("The first tier must start at unit 0").
			WithReportableDetails(map[string]interface{}{
				"field":      "first_unit",
				"tier_index": 0,
				"first_unit": t[0].FirstUnit,
			}).
			Mark(ierr.ErrValidation)
	}
	for i := 1; i < len(t); i++ {
		if t[i].FirstUnit <= t[i-1].FirstUnit {
			return ierr.NewError("tier boundaries must be strictly increasing").
				WithHint("Each tier must start after the previous tier").
				WithReportableDetails(map[string]interface{}{
					"field":               "first_unit",
					"tier_index":          i,
					"first_unit":          t[i].FirstUnit,
					"previous_first_unit": t[i-1].FirstUnit,
				}).
				Mark(ierr.ErrValidation)
		}
	}
	for i, row := range t {
		if row.UnitAmount.LessThan(decimal.Zero) {
			return ierr.NewError("tier unit amount cannot be negative").
				WithHint("Tier unit amount cannot be negative").
				WithReportableDetails(map[string]interface{}{
					"field":      "unit_amount",
					"tier_index": i,
				}).
				Mark(ierr.ErrValidation)
		}
		if row.FlatAmount != nil && row.FlatAmount.LessThan(decimal.Zero) {
			return ierr.NewError("tier flat amount cannot be negative").
				WithHint("Tier flat amount cannot be negative").
				WithReportableDetails(map[string]interface{}{
					"field":      "flat_amount",
					"tier_index": i,
				}).
				Mark(ierr.ErrValidation)
		}
	}
	return nil
}

// AppendTier returns a new table with one row appended after the last.
// An empty table is seeded with two rows at boundaries 0 and 100 so the
// editor starts from a meaningful curve.
func (t TierTable) AppendTier() TierTable {
	if len(t) == 0 {
		return TierTable{
			{FirstUnit: 0, UnitAmount: decimal.Zero},
			{FirstUnit: seedUpperFirstUnit, UnitAmount: decimal.Zero},
		}
	}

	out := t.clone()
	out = append(out, TierRow{
		FirstUnit:  t[len(t)-1].FirstUnit + 1,
		UnitAmount: decimal.Zero,
	})
	return out
}

// RemoveTier returns a new table with the row at index removed. The
// remaining boundaries are user-declared values and are kept as-is, so
// removal never rewrites the following row. The only adjustment is
// re-anchoring the new first row at 0 when row 0 is removed. Removing
// the only row is rejected since a table is never empty.
func (t TierTable) RemoveTier(index int) (TierTable, error) {
	if index < 0 || index >= len(t) {
		return nil, ierr.NewError("tier index out of range").
			WithHint("The requested tier does not exist").
			WithReportableDetails(map[string]interface{}{
				"field":      "tier_index",
				"tier_index": index,
				"tier_count": len(t),
			}).
			Mark(ierr.ErrValidation)
	}
	if len(t) == 1 {
		return nil, ierr.NewError("cannot remove the only tier").
			WithHint("A tier table must keep at least one tier").
			WithReportableDetails(map[string]interface{}{
				"field": "tiers",
			}).
			Mark(ierr.ErrValidation)
	}

	out := make(TierTable, 0, len(t)-1)
	out = append(out, t[:index]...)
	out = append(out, t[index+1:]...)
	if index == 0 {
		out[0].FirstUnit = 0
	}
	return out, nil
}

// SetFirstUnit returns a new table with the row's boundary changed. A
// value at or below the previous row's boundary is rejected; rows after
// the edited one are pushed forward (value+1, value+2, ...) as far as
// needed to keep boundaries strictly increasing.
func (t TierTable) SetFirstUnit(index int, value uint64) (TierTable, error) {
	if index < 0 || index >= len(t) {
		return nil, ierr.NewError("tier index out of range").
			WithHint("The requested tier does not exist").
			WithReportableDetails(map[string]interface{}{
				"field":      "tier_index",
				"tier_index": index,
				"tier_count": len(t),
			}).
			Mark(ierr.ErrValidation)
	}
	if index == 0 {
		if value != 0 {
			return nil, ierr.NewError("first tier must start at unit 0").
				WithHint("The first tier always starts at unit 0").
				WithReportableDetails(map[string]interface{}{
					"field":      "first_unit",
					"tier_index": 0,
					"first_unit": value,
				}).
				Mark(ierr.ErrValidation)
		}
		return t.clone(), nil
	}
	if value <= t[index-1].FirstUnit {
		return nil, ierr.NewError("tier boundary must exceed the previous tier").
			WithHint("The tier boundary must be greater than the previous tier's boundary").
			WithReportableDetails(map[string]interface{}{
				"field":               "first_unit",
				"tier_index":          index,
				"first_unit":          value,
				"previous_first_unit": t[index-1].FirstUnit,
			}).
			Mark(ierr.ErrValidation)
	}

	out := t.clone()
	out[index].FirstUnit = value
	for i := index + 1; i < len(out); i++ {
		if out[i].FirstUnit > out[i-1].FirstUnit {
			break
		}
		out[i].FirstUnit = out[i-1].FirstUnit + 1
	}
	return out, nil
}

// UpperBound returns the inclusive upper boundary of the row at index,
// or nil for the last row which is unbounded.
func (t TierTable) UpperBound(index int) *uint64 {
	if index < 0 || index >= len(t)-1 {
		return nil
	}
	upper := t[index+1].FirstUnit - 1
	return &upper
}

// LastRowIsUnbounded reports whether the table's last row has no upper
// boundary. It holds for every non-empty table.
func (t TierTable) LastRowIsUnbounded() bool {
	return len(t) > 0
}

func (t TierTable) clone() TierTable {
	out := make(TierTable, len(t))
	copy(out, t)
	return out
}
