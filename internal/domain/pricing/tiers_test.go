package pricing

import (
	"testing"

	ierr "github.com/billforge/billforge/internal/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func table(firstUnits ...uint64) TierTable {
	t := make(TierTable, len(firstUnits))
	for i, fu := range firstUnits {
		t[i] = TierRow{FirstUnit: fu, UnitAmount: decimal.NewFromInt(int64(i + 1))}
	}
	return t
}

func firstUnits(t TierTable) []uint64 {
	out := make([]uint64, len(t))
	for i, row := range t {
		out[i] = row.FirstUnit
	}
	return out
}

func TestTierTableValidate(t *testing.T) {
	tests := []struct {
		name    string
		table   TierTable
		wantErr bool
	}{
		{name: "valid single row", table: table(0)},
		{name: "valid ascending", table: table(0, 50, 100)},
		{name: "empty table", table: TierTable{}, wantErr: true},
		{name: "first row not zero", table: table(1, 50), wantErr: true},
		{name: "duplicate boundary", table: table(0, 50, 50), wantErr: true},
		{name: "descending boundary", table: table(0, 100, 50), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.table.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, ierr.IsValidation(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTierTableValidateNegativeAmounts(t *testing.T) {
	neg := decimal.NewFromInt(-1)

	bad := TierTable{{FirstUnit: 0, UnitAmount: neg}}
	assert.True(t, ierr.IsValidation(bad.Validate()))

	badFlat := TierTable{{FirstUnit: 0, UnitAmount: decimal.Zero, FlatAmount: &neg}}
	assert.True(t, ierr.IsValidation(badFlat.Validate()))
}

func TestTierTableAppendTier(t *testing.T) {
	t.Run("empty table seeds two rows", func(t *testing.T) {
		out := TierTable{}.AppendTier()
		require.Len(t, out, 2)
		assert.Equal(t, []uint64{0, 100}, firstUnits(out))
		assert.NoError(t, out.Validate())
	})

	t.Run("appends after the last boundary", func(t *testing.T) {
		out := table(0, 50).AppendTier()
		require.Len(t, out, 3)
		assert.Equal(t, []uint64{0, 50, 51}, firstUnits(out))
		assert.NoError(t, out.Validate())
	})

	t.Run("input table is not mutated", func(t *testing.T) {
		in := table(0, 50)
		_ = in.AppendTier()
		assert.Equal(t, []uint64{0, 50}, firstUnits(in))
	})
}

func TestTierTableRemoveTier(t *testing.T) {
	t.Run("middle row keeps remaining boundaries", func(t *testing.T) {
		out, err := table(0, 50, 100).RemoveTier(1)
		require.NoError(t, err)
		assert.Equal(t, []uint64{0, 100}, firstUnits(out))
	})

	t.Run("removing row zero re-anchors the new first row", func(t *testing.T) {
		out, err := table(0, 50, 100).RemoveTier(0)
		require.NoError(t, err)
		assert.Equal(t, []uint64{0, 100}, firstUnits(out))
		assert.NoError(t, out.Validate())
	})

	t.Run("only row is rejected", func(t *testing.T) {
		_, err := table(0).RemoveTier(0)
		assert.True(t, ierr.IsValidation(err))
	})

	t.Run("index out of range", func(t *testing.T) {
		_, err := table(0, 50).RemoveTier(2)
		assert.True(t, ierr.IsValidation(err))

		_, err = table(0, 50).RemoveTier(-1)
		assert.True(t, ierr.IsValidation(err))
	})
}

func TestTierTableSetFirstUnit(t *testing.T) {
	t.Run("simple boundary change", func(t *testing.T) {
		out, err := table(0, 50, 100).SetFirstUnit(1, 60)
		require.NoError(t, err)
		assert.Equal(t, []uint64{0, 60, 100}, firstUnits(out))
	})

	t.Run("cascades later rows forward", func(t *testing.T) {
		out, err := table(0, 50, 100).SetFirstUnit(1, 120)
		require.NoError(t, err)
		assert.Equal(t, []uint64{0, 120, 121}, firstUnits(out))
		assert.NoError(t, out.Validate())
	})

	t.Run("cascade stops at the first already-larger boundary", func(t *testing.T) {
		out, err := table(0, 10, 20, 500).SetFirstUnit(1, 30)
		require.NoError(t, err)
		assert.Equal(t, []uint64{0, 30, 31, 500}, firstUnits(out))
	})

	t.Run("row zero only accepts zero", func(t *testing.T) {
		out, err := table(0, 50).SetFirstUnit(0, 0)
		require.NoError(t, err)
		assert.Equal(t, []uint64{0, 50}, firstUnits(out))

		_, err = table(0, 50).SetFirstUnit(0, 10)
		assert.True(t, ierr.IsValidation(err))
	})

	t.Run("value at or below previous boundary is rejected", func(t *testing.T) {
		_, err := table(0, 50, 100).SetFirstUnit(2, 50)
		assert.True(t, ierr.IsValidation(err))

		_, err = table(0, 50, 100).SetFirstUnit(2, 30)
		assert.True(t, ierr.IsValidation(err))
	})

	t.Run("input table is not mutated", func(t *testing.T) {
		in := table(0, 50, 100)
		_, err := in.SetFirstUnit(1, 120)
		require.NoError(t, err)
		assert.Equal(t, []uint64{0, 50, 100}, firstUnits(in))
	})
}

func TestTierTableUpperBound(t *testing.T) {
	tbl := table(0, 50, 100)

	upper := tbl.UpperBound(0)
	require.NotNil(t, upper)
	assert.Equal(t, uint64(49), *upper)

	upper = tbl.UpperBound(1)
	require.NotNil(t, upper)
	assert.Equal(t, uint64(99), *upper)

	assert.Nil(t, tbl.UpperBound(2))
	assert.Nil(t, tbl.UpperBound(-1))
	assert.True(t, tbl.LastRowIsUnbounded())
}
