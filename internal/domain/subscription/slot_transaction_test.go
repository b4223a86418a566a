package subscription

import (
	"testing"
	"time"

	ierr "github.com/billforge/billforge/internal/errors"
	"github.com/billforge/billforge/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	now       = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	periodEnd = time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
)

func TestNewSlotTransaction(t *testing.T) {
	t.Run("optimistic increase activates immediately", func(t *testing.T) {
		txn, err := NewSlotTransaction("subs_1", "price_1", 5, 8, types.SLOT_BILLING_MODE_OPTIMISTIC, now, periodEnd)
		require.NoError(t, err)
		assert.Equal(t, int64(3), txn.Delta)
		assert.Equal(t, types.SLOT_TRANSACTION_STATUS_ACTIVE, txn.Status)
		assert.Equal(t, now, txn.EffectiveAt)
	})

	t.Run("on-invoice-paid increase starts pending", func(t *testing.T) {
		txn, err := NewSlotTransaction("subs_1", "price_1", 5, 8, types.SLOT_BILLING_MODE_ON_INVOICE_PAID, now, periodEnd)
		require.NoError(t, err)
		assert.Equal(t, types.SLOT_TRANSACTION_STATUS_PENDING, txn.Status)
	})

	t.Run("decrease takes effect at period end", func(t *testing.T) {
		txn, err := NewSlotTransaction("subs_1", "price_1", 8, 5, types.SLOT_BILLING_MODE_OPTIMISTIC, now, periodEnd)
		require.NoError(t, err)
		assert.Equal(t, int64(-3), txn.Delta)
		assert.Equal(t, types.SLOT_TRANSACTION_STATUS_ACTIVE, txn.Status)
		assert.Equal(t, periodEnd, txn.EffectiveAt)
	})

	t.Run("decrease under on-invoice-paid still activates", func(t *testing.T) {
		txn, err := NewSlotTransaction("subs_1", "price_1", 8, 5, types.SLOT_BILLING_MODE_ON_INVOICE_PAID, now, periodEnd)
		require.NoError(t, err)
		assert.Equal(t, types.SLOT_TRANSACTION_STATUS_ACTIVE, txn.Status)
		assert.Equal(t, periodEnd, txn.EffectiveAt)
	})

	t.Run("unchanged count is rejected", func(t *testing.T) {
		_, err := NewSlotTransaction("subs_1", "price_1", 5, 5, types.SLOT_BILLING_MODE_OPTIMISTIC, now, periodEnd)
		assert.True(t, ierr.IsValidation(err))
	})

	t.Run("invalid billing mode is rejected", func(t *testing.T) {
		_, err := NewSlotTransaction("subs_1", "price_1", 5, 8, "EVENTUALLY", now, periodEnd)
		assert.True(t, ierr.IsValidation(err))
	})
}

func TestSlotTransactionMarkActive(t *testing.T) {
	txn, err := NewSlotTransaction("subs_1", "price_1", 5, 8, types.SLOT_BILLING_MODE_ON_INVOICE_PAID, now, periodEnd)
	require.NoError(t, err)

	require.NoError(t, txn.MarkActive("inv_123"))
	assert.Equal(t, types.SLOT_TRANSACTION_STATUS_ACTIVE, txn.Status)
	require.NotNil(t, txn.InvoiceRef)
	assert.Equal(t, "inv_123", *txn.InvoiceRef)

	// Already active, cannot activate twice.
	err = txn.MarkActive("inv_456")
	assert.True(t, ierr.IsInvalidOperation(err))
}

func TestSlotTransactionCancel(t *testing.T) {
	t.Run("pending cancels", func(t *testing.T) {
		txn, err := NewSlotTransaction("subs_1", "price_1", 5, 8, types.SLOT_BILLING_MODE_ON_INVOICE_PAID, now, periodEnd)
		require.NoError(t, err)
		assert.True(t, txn.CanCancel(now))
		require.NoError(t, txn.Cancel(now))
		assert.Equal(t, types.SLOT_TRANSACTION_STATUS_CANCELLED, txn.Status)
	})

	t.Run("future-effective active cancels", func(t *testing.T) {
		txn, err := NewSlotTransaction("subs_1", "price_1", 8, 5, types.SLOT_BILLING_MODE_OPTIMISTIC, now, periodEnd)
		require.NoError(t, err)
		assert.True(t, txn.CanCancel(now))
		assert.NoError(t, txn.Cancel(now))
	})

	t.Run("past-effective active is immutable history", func(t *testing.T) {
		txn, err := NewSlotTransaction("subs_1", "price_1", 5, 8, types.SLOT_BILLING_MODE_OPTIMISTIC, now, periodEnd)
		require.NoError(t, err)

		later := now.Add(time.Hour)
		assert.False(t, txn.CanCancel(later))
		assert.True(t, ierr.IsInvalidOperation(txn.Cancel(later)))
	})

	t.Run("cancelled is terminal", func(t *testing.T) {
		txn, err := NewSlotTransaction("subs_1", "price_1", 5, 8, types.SLOT_BILLING_MODE_ON_INVOICE_PAID, now, periodEnd)
		require.NoError(t, err)
		require.NoError(t, txn.Cancel(now))
		assert.True(t, ierr.IsInvalidOperation(txn.Cancel(now)))
		assert.True(t, ierr.IsInvalidOperation(txn.MarkActive("inv_1")))
	})
}

func TestSplitTransactions(t *testing.T) {
	pending, err := NewSlotTransaction("subs_1", "price_1", 5, 10, types.SLOT_BILLING_MODE_ON_INVOICE_PAID, now, periodEnd)
	require.NoError(t, err)

	futureDecrease, err := NewSlotTransaction("subs_1", "price_1", 10, 7, types.SLOT_BILLING_MODE_OPTIMISTIC, now, periodEnd)
	require.NoError(t, err)

	past, err := NewSlotTransaction("subs_1", "price_1", 2, 5, types.SLOT_BILLING_MODE_OPTIMISTIC, now.Add(-48*time.Hour), periodEnd)
	require.NoError(t, err)

	cancelled, err := NewSlotTransaction("subs_1", "price_1", 5, 6, types.SLOT_BILLING_MODE_ON_INVOICE_PAID, now, periodEnd)
	require.NoError(t, err)
	require.NoError(t, cancelled.Cancel(now))

	noop := &SlotTransaction{Delta: 0, Status: types.SLOT_TRANSACTION_STATUS_ACTIVE, EffectiveAt: now.Add(-time.Hour)}

	upcoming, history := SplitTransactions([]*SlotTransaction{pending, futureDecrease, past, cancelled, noop}, now)

	require.Len(t, upcoming, 2)
	assert.Equal(t, pending.ID, upcoming[0].ID)
	assert.Equal(t, futureDecrease.ID, upcoming[1].ID)

	require.Len(t, history, 1)
	assert.Equal(t, past.ID, history[0].ID)
}
