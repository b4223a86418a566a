package subscription

import (
	"time"

	ierr "github.com/billforge/billforge/internal/errors"
	"github.com/billforge/billforge/internal/types"
)

// SlotTransaction records one incremental change to a slot fee's active
// count. Transactions transition PENDING -> ACTIVE when the associated
// invoice is paid, and PENDING or future-effective ACTIVE -> CANCELLED
// on explicit cancellation. A past-effective ACTIVE transaction is
// immutable history and a CANCELLED one is terminal.
type SlotTransaction struct {
	ID               string                      `json:"id"`
	SubscriptionID   string                      `json:"subscription_id"`
	PriceComponentID string                      `json:"price_component_id"`
	Delta            int64                       `json:"delta"`
	PrevActive       int64                       `json:"prev_active"`
	NewActive        int64                       `json:"new_active"`
	Status           types.SlotTransactionStatus `json:"status"`
	EffectiveAt      time.Time                   `json:"effective_at"`
	BillingMode      types.SlotBillingMode       `json:"billing_mode"`
	InvoiceRef       *string                     `json:"invoice_ref,omitempty"`
	types.BaseModel
}

// NewSlotTransaction builds a transaction for a slot count change.
// Increases under ON_INVOICE_PAID start PENDING; every other change
// starts ACTIVE, effective immediately for increases and at the end of
// the current billing period for decreases.
func NewSlotTransaction(
	subscriptionID string,
	priceComponentID string,
	prevActive int64,
	newActive int64,
	billingMode types.SlotBillingMode,
	now time.Time,
	periodEnd time.Time,
) (*SlotTransaction, error) {
	delta := newActive - prevActive
	if delta == 0 {
		return nil, ierr.NewError("slot count is unchanged").
			WithHint("The requested slot count equals the current count").
			WithReportableDetails(map[string]interface{}{
				"field":      "new_active",
				"new_active": newActive,
			}).
			Mark(ierr.ErrValidation)
	}
	if err := billingMode.Validate(); err != nil {
		return nil, err
	}

	txn := &SlotTransaction{
		ID:               types.GenerateUUIDWithPrefix(types.UUID_PREFIX_SLOT_TRANSACTION),
		SubscriptionID:   subscriptionID,
		PriceComponentID: priceComponentID,
		Delta:            delta,
		PrevActive:       prevActive,
		NewActive:        newActive,
		BillingMode:      billingMode,
	}

	switch {
	case delta > 0 && billingMode == types.SLOT_BILLING_MODE_ON_INVOICE_PAID:
		txn.Status = types.SLOT_TRANSACTION_STATUS_PENDING
		txn.EffectiveAt = now
	case delta > 0:
		txn.Status = types.SLOT_TRANSACTION_STATUS_ACTIVE
		txn.EffectiveAt = now
	default:
		// Decreases keep the paid-for capacity until the period ends.
		txn.Status = types.SLOT_TRANSACTION_STATUS_ACTIVE
		txn.EffectiveAt = periodEnd
	}

	return txn, nil
}

// MarkActive records the backend-reported invoice payment that
// activates a pending transaction. Only PENDING transactions activate.
func (t *SlotTransaction) MarkActive(invoiceRef string) error {
	if t.Status != types.SLOT_TRANSACTION_STATUS_PENDING {
		return ierr.NewError("only pending transactions can be activated").
			WithHint("The transaction is not awaiting payment").
			WithReportableDetails(map[string]interface{}{
				"transaction_id": t.ID,
				"status":         t.Status,
			}).
			Mark(ierr.ErrInvalidOperation)
	}
	t.Status = types.SLOT_TRANSACTION_STATUS_ACTIVE
	if invoiceRef != "" {
		t.InvoiceRef = &invoiceRef
	}
	return nil
}

// CanCancel reports whether cancellation is permitted: PENDING always,
// ACTIVE only while its effective time is still in the future.
func (t *SlotTransaction) CanCancel(now time.Time) bool {
	switch t.Status {
	case types.SLOT_TRANSACTION_STATUS_PENDING:
		return true
	case types.SLOT_TRANSACTION_STATUS_ACTIVE:
		return t.EffectiveAt.After(now)
	default:
		return false
	}
}

// Cancel transitions the transaction to CANCELLED. Past-effective
// ACTIVE transactions are immutable history and CANCELLED is terminal.
func (t *SlotTransaction) Cancel(now time.Time) error {
	if !t.CanCancel(now) {
		return ierr.NewError("transaction can no longer be cancelled").
			WithHint("Only pending or future-effective transactions can be cancelled").
			WithReportableDetails(map[string]interface{}{
				"transaction_id": t.ID,
				"status":         t.Status,
				"effective_at":   t.EffectiveAt,
			}).
			Mark(ierr.ErrInvalidOperation)
	}
	t.Status = types.SLOT_TRANSACTION_STATUS_CANCELLED
	return nil
}

// IsUpcoming reports whether the transaction belongs in the upcoming
// view: pending, or active with an effective time not yet reached.
// No-op transactions (delta zero) appear in no view.
func (t *SlotTransaction) IsUpcoming(now time.Time) bool {
	if t.Delta == 0 {
		return false
	}
	if t.Status == types.SLOT_TRANSACTION_STATUS_PENDING {
		return true
	}
	return t.Status == types.SLOT_TRANSACTION_STATUS_ACTIVE && !t.EffectiveAt.Before(now)
}

// IsHistory reports whether the transaction belongs in the history
// view: active and already effective.
func (t *SlotTransaction) IsHistory(now time.Time) bool {
	if t.Delta == 0 {
		return false
	}
	return t.Status == types.SLOT_TRANSACTION_STATUS_ACTIVE && t.EffectiveAt.Before(now)
}

// SplitTransactions partitions transactions into the upcoming and
// history views. Cancelled and no-op transactions fall out of both.
func SplitTransactions(txns []*SlotTransaction, now time.Time) (upcoming, history []*SlotTransaction) {
	for _, txn := range txns {
		switch {
		case txn.IsUpcoming(now):
			upcoming = append(upcoming, txn)
		case txn.IsHistory(now):
			history = append(history, txn)
		}
	}
	return upcoming, history
}
