package pricing

import (
	"testing"

	ierr "github.com/billforge/billforge/internal/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func thresholds(included ...uint64) ThresholdList {
	l := make(ThresholdList, len(included))
	for i, inc := range included {
		l[i] = Threshold{
			IncludedAmount: inc,
			TierAmount:     decimal.NewFromInt(int64(10 * (i + 1))),
			PerUnitOverage: decimal.RequireFromString("0.00000001"),
		}
	}
	return l
}

func includedAmounts(l ThresholdList) []uint64 {
	out := make([]uint64, len(l))
	for i, th := range l {
		out[i] = th.IncludedAmount
	}
	return out
}

func TestThresholdListValidate(t *testing.T) {
	assert.NoError(t, thresholds(100, 500, 1000).Validate())
	assert.True(t, ierr.IsValidation(ThresholdList{}.Validate()))
	assert.True(t, ierr.IsValidation(thresholds(100, 100).Validate()))
	assert.True(t, ierr.IsValidation(thresholds(500, 100).Validate()))
}

func TestThresholdListAppendThreshold(t *testing.T) {
	t.Run("empty list starts at zero", func(t *testing.T) {
		out := ThresholdList{}.AppendThreshold()
		require.Len(t, out, 1)
		assert.Equal(t, uint64(0), out[0].IncludedAmount)
	})

	t.Run("defaults to previous plus one", func(t *testing.T) {
		out := thresholds(100, 500).AppendThreshold()
		require.Len(t, out, 3)
		assert.Equal(t, uint64(501), out[2].IncludedAmount)
		assert.NoError(t, out.Validate())
	})
}

func TestThresholdListRemoveThreshold(t *testing.T) {
	out, err := thresholds(100, 500, 1000).RemoveThreshold(1)
	require.NoError(t, err)
	assert.Equal(t, []uint64{100, 1000}, includedAmounts(out))

	_, err = thresholds(100).RemoveThreshold(0)
	assert.True(t, ierr.IsValidation(err))

	_, err = thresholds(100, 500).RemoveThreshold(5)
	assert.True(t, ierr.IsValidation(err))
}

func TestThresholdListSetIncludedAmount(t *testing.T) {
	t.Run("cascades following thresholds", func(t *testing.T) {
		out, err := thresholds(100, 500, 1000).SetIncludedAmount(0, 600)
		require.NoError(t, err)
		assert.Equal(t, []uint64{600, 601, 1000}, includedAmounts(out))
		assert.NoError(t, out.Validate())
	})

	t.Run("rejects value at or below previous", func(t *testing.T) {
		_, err := thresholds(100, 500).SetIncludedAmount(1, 100)
		assert.True(t, ierr.IsValidation(err))
	})

	t.Run("input list is not mutated", func(t *testing.T) {
		in := thresholds(100, 500)
		_, err := in.SetIncludedAmount(0, 600)
		require.NoError(t, err)
		assert.Equal(t, []uint64{100, 500}, includedAmounts(in))
	})
}

func TestOverageRatePrecisionSurvives(t *testing.T) {
	l := ThresholdList{{
		IncludedAmount: 100,
		TierAmount:     decimal.NewFromInt(10),
		PerUnitOverage: decimal.RequireFromString("0.00012345"),
	}}
	require.NoError(t, l.Validate())
	assert.Equal(t, "0.00012345", l[0].PerUnitOverage.String())
}
