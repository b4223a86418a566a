package service

import (
	"context"
	"time"

	"github.com/billforge/billforge/internal/api/dto"
	"github.com/billforge/billforge/internal/domain/pricing"
	"github.com/billforge/billforge/internal/domain/subscription"
	ierr "github.com/billforge/billforge/internal/errors"
	"github.com/shopspring/decimal"
)

// SlotService manages incremental changes to slot-based fees: proration
// previews, committed updates, cancellation of pending or
// future-effective transactions, and the upcoming/history views.
type SlotService interface {
	PreviewSlotChange(ctx context.Context, req dto.SlotPreviewRequest) (*dto.SlotPreviewResponse, error)
	CommitSlotChange(ctx context.Context, req dto.SlotUpdateRequest) (*dto.SlotUpdateResponse, error)
	CancelSlotTransaction(ctx context.Context, req dto.CancelSlotTransactionRequest) error
	ListSlotTransactions(ctx context.Context, req dto.ListSlotTransactionsRequest) (*dto.ListSlotTransactionsResponse, error)
}

type slotService struct {
	ServiceParams
}

func NewSlotService(params ServiceParams) SlotService {
	return &slotService{ServiceParams: params}
}

func (s *slotService) PreviewSlotChange(ctx context.Context, req dto.SlotPreviewRequest) (*dto.SlotPreviewResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	fee, err := s.findSlotFee(ctx, req.SubscriptionID, req.PriceComponentID)
	if err != nil {
		return nil, err
	}

	// Local invariants are checked before any round-trip.
	if err := validateSlotBounds(fee.SlotConfig(), req.NewSlots, req.Delta()); err != nil {
		return nil, err
	}

	preview, err := s.BillingAPI.ResolveSlotPreview(ctx, req.SubscriptionID, req.PriceComponentID, req.Delta())
	if err != nil {
		return nil, err
	}

	resp := &dto.SlotPreviewResponse{
		Delta:            req.Delta(),
		ProratedAmount:   preview.ProratedAmount,
		FullPeriodAmount: preview.FullPeriodAmount,
		DaysRemaining:    preview.DaysRemaining,
		Currency:         preview.Currency,
	}

	// Without time-based proration data from the backend, fall back to
	// the degenerate full-rate estimate. The flag keeps the UI from
	// presenting it as authoritative.
	if preview.DaysRemaining == 0 && preview.ProratedAmount.IsZero() {
		resp.ProratedAmount = estimateProration(fee.SlotConfig(), req.Delta())
		resp.Currency = fee.Currency
		resp.Estimated = true
	}

	return resp, nil
}

func (s *slotService) CommitSlotChange(ctx context.Context, req dto.SlotUpdateRequest) (*dto.SlotUpdateResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	fee, err := s.findSlotFee(ctx, req.SubscriptionID, req.PriceComponentID)
	if err != nil {
		return nil, err
	}

	if err := validateSlotBounds(fee.SlotConfig(), req.NewSlots, req.Delta()); err != nil {
		return nil, err
	}

	result, err := s.BillingAPI.CommitSlotUpdate(ctx, req.SubscriptionID, req.PriceComponentID, req.Delta(), string(req.BillingMode))
	if err != nil {
		// No local state was touched; the failure surfaces as-is.
		return nil, err
	}

	s.Logger.Infow("committed slot update",
		"subscription_id", req.SubscriptionID,
		"price_component_id", req.PriceComponentID,
		"delta", req.Delta(),
		"billing_mode", req.BillingMode,
		"current_slots", result.CurrentValue,
	)

	return &dto.SlotUpdateResponse{CurrentSlots: result.CurrentValue}, nil
}

func (s *slotService) CancelSlotTransaction(ctx context.Context, req dto.CancelSlotTransactionRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	txns, err := s.BillingAPI.ListSlotTransactions(ctx, req.SubscriptionID, "")
	if err != nil {
		return err
	}

	var target *subscription.SlotTransaction
	for _, txn := range txns {
		if txn.ID == req.TransactionID {
			target = txn
			break
		}
	}
	if target == nil {
		return ierr.NewError("slot transaction not found").
			WithHint("The transaction does not belong to this subscription").
			WithReportableDetails(map[string]interface{}{
				"subscription_id": req.SubscriptionID,
				"transaction_id":  req.TransactionID,
			}).
			Mark(ierr.ErrNotFound)
	}

	if !target.CanCancel(time.Now().UTC()) {
		return ierr.NewError("transaction can no longer be cancelled").
			WithHint("Only pending or future-effective transactions can be cancelled").
			WithReportableDetails(map[string]interface{}{
				"transaction_id": target.ID,
				"status":         target.Status,
				"effective_at":   target.EffectiveAt,
			}).
			Mark(ierr.ErrInvalidOperation)
	}

	return s.BillingAPI.CancelSlotTransaction(ctx, req.TransactionID)
}

func (s *slotService) ListSlotTransactions(ctx context.Context, req dto.ListSlotTransactionsRequest) (*dto.ListSlotTransactionsResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	txns, err := s.BillingAPI.ListSlotTransactions(ctx, req.SubscriptionID, req.Unit)
	if err != nil {
		return nil, err
	}

	upcoming, history := subscription.SplitTransactions(txns, time.Now().UTC())
	return &dto.ListSlotTransactionsResponse{
		Upcoming: upcoming,
		History:  history,
	}, nil
}

// findSlotFee locates the slot fee for a price component on the
// subscription's resolved fee list.
func (s *slotService) findSlotFee(ctx context.Context, subscriptionID, priceComponentID string) (*subscription.Fee, error) {
	fees, err := s.BillingAPI.GetSubscriptionFees(ctx, subscriptionID)
	if err != nil {
		return nil, err
	}

	for _, fee := range fees {
		if fee.PriceID != priceComponentID {
			continue
		}
		if fee.SlotConfig() == nil {
			return nil, ierr.NewError("price component is not slot-based").
				WithHint("Slot updates only apply to slot-based price components").
				WithReportableDetails(map[string]interface{}{
					"price_component_id": priceComponentID,
					"pricing_model_type": fee.Pricing.Type,
				}).
				Mark(ierr.ErrInvalidOperation)
		}
		return fee, nil
	}

	return nil, ierr.NewError("price component not found on subscription").
		WithHint("The subscription has no fee for this price component").
		WithReportableDetails(map[string]interface{}{
			"subscription_id":    subscriptionID,
			"price_component_id": priceComponentID,
		}).
		Mark(ierr.ErrNotFound)
}

// validateSlotBounds enforces the fee's inclusive slot bounds and
// rejects no-op changes before any external call is made.
func validateSlotBounds(cfg *pricing.SlotConfig, newSlots, delta int64) error {
	if delta == 0 {
		return ierr.NewError("slot count is unchanged").
			WithHint("The requested slot count equals the current count").
			WithReportableDetails(map[string]interface{}{
				"field":     "new_slots",
				"new_slots": newSlots,
			}).
			Mark(ierr.ErrValidation)
	}
	if cfg.MinSlots != nil && newSlots < *cfg.MinSlots {
		return ierr.NewError("slot count below minimum").
			WithHintf("At least %d %s required", *cfg.MinSlots, cfg.UnitLabel).
			WithReportableDetails(map[string]interface{}{
				"field":     "min_slots",
				"new_slots": newSlots,
				"min_slots": *cfg.MinSlots,
			}).
			Mark(ierr.ErrValidation)
	}
	if cfg.MaxSlots != nil && newSlots > *cfg.MaxSlots {
		return ierr.NewError("slot count above maximum").
			WithHintf("At most %d %s allowed", *cfg.MaxSlots, cfg.UnitLabel).
			WithReportableDetails(map[string]interface{}{
				"field":     "max_slots",
				"new_slots": newSlots,
				"max_slots": *cfg.MaxSlots,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// estimateProration is the degenerate fallback shown while no
// time-based proration data is available: the full per-unit rate for
// each changed slot. The backend's preview replaces it as the
// authoritative number.
func estimateProration(cfg *pricing.SlotConfig, delta int64) decimal.Decimal {
	if delta < 0 {
		delta = -delta
	}
	return cfg.UnitAmount.Mul(decimal.NewFromInt(delta))
}
