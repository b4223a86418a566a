package service

import (
	"context"

	"github.com/billforge/billforge/internal/api/dto"
	"github.com/billforge/billforge/internal/domain/plan"
	"github.com/billforge/billforge/internal/domain/subscription"
	ierr "github.com/billforge/billforge/internal/errors"
)

// PlanChangeService reconciles a subscription's current price
// components against a target plan version and drives the plan-change
// confirmation flow.
type PlanChangeService interface {
	// PreviewPlanChange recomputes the diff for the selected target
	// version and fetches the backend's proration preview. The result
	// is transient; nothing is cached or persisted.
	PreviewPlanChange(ctx context.Context, req dto.PlanChangePreviewRequest) (*dto.PlanChangePreviewResponse, error)

	// CommitPlanChange executes the change and returns the
	// server-reported effective date verbatim.
	CommitPlanChange(ctx context.Context, req dto.PlanChangeCommitRequest) (*dto.PlanChangeCommitResponse, error)
}

type planChangeService struct {
	ServiceParams
}

func NewPlanChangeService(params ServiceParams) PlanChangeService {
	return &planChangeService{ServiceParams: params}
}

func (s *planChangeService) PreviewPlanChange(ctx context.Context, req dto.PlanChangePreviewRequest) (*dto.PlanChangePreviewResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	fees, err := s.BillingAPI.GetSubscriptionFees(ctx, req.SubscriptionID)
	if err != nil {
		return nil, err
	}

	target, err := s.BillingAPI.GetPlanVersion(ctx, req.TargetPlanVersionID)
	if err != nil {
		return nil, err
	}
	if len(target.Prices) == 0 {
		return nil, ierr.NewError("target plan version has no price components").
			WithHint("The selected plan version defines no pricing").
			WithReportableDetails(map[string]interface{}{
				"target_plan_version_id": req.TargetPlanVersionID,
			}).
			Mark(ierr.ErrValidation)
	}

	diff := ComputePlanChangeDiff(fees, target.Prices)

	preview, err := s.BillingAPI.ResolvePlanChangePreview(ctx, req.SubscriptionID, req.TargetPlanVersionID)
	if err != nil {
		return nil, err
	}
	diff.EffectiveDate = preview.EffectiveDate

	s.Logger.Debugw("computed plan change diff",
		"subscription_id", req.SubscriptionID,
		"target_plan_version_id", req.TargetPlanVersionID,
		"matched", len(diff.Matched),
		"added", len(diff.Added),
		"removed", len(diff.Removed),
	)

	return &dto.PlanChangePreviewResponse{
		Diff: diff,
		Proration: &dto.ProrationSummary{
			CreditAmount:  preview.CreditAmount,
			ChargeAmount:  preview.ChargeAmount,
			NetAmount:     preview.NetAmount,
			Currency:      preview.Currency,
			DaysUsed:      preview.DaysUsed,
			DaysRemaining: preview.DaysRemaining,
		},
	}, nil
}

func (s *planChangeService) CommitPlanChange(ctx context.Context, req dto.PlanChangeCommitRequest) (*dto.PlanChangeCommitResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	result, err := s.BillingAPI.CommitPlanChange(ctx, req.SubscriptionID, req.TargetPlanVersionID)
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("committed plan change",
		"subscription_id", req.SubscriptionID,
		"target_plan_version_id", req.TargetPlanVersionID,
		"effective_date", result.EffectiveDate,
	)

	return &dto.PlanChangeCommitResponse{EffectiveDate: result.EffectiveDate}, nil
}

// ComputePlanChangeDiff diffs the subscription's resolved fees against
// the target version's price components. Identity is the linked product
// ID: price component IDs are recreated per plan version, so they never
// match across versions. Components without a product linkage are
// treated as remove+add rather than matched, so unrelated fees are
// never silently swapped.
func ComputePlanChangeDiff(currentFees []*subscription.Fee, targetPrices []*plan.Price) *dto.PlanChangeDiff {
	diff := &dto.PlanChangeDiff{
		Matched: []dto.MatchedComponent{},
		Added:   []dto.AddedComponent{},
		Removed: []dto.RemovedComponent{},
	}

	targetByProduct := make(map[string]*plan.Price, len(targetPrices))
	for _, price := range targetPrices {
		if price.ProductID == "" {
			continue
		}
		targetByProduct[price.ProductID] = price
	}

	matchedProducts := make(map[string]bool)
	for _, fee := range currentFees {
		if fee.ProductID != "" {
			if price, ok := targetByProduct[fee.ProductID]; ok {
				diff.Matched = append(diff.Matched, dto.MatchedComponent{
					ProductID: fee.ProductID,
					Current:   feeSummary(fee),
					New:       priceSummary(price),
				})
				matchedProducts[fee.ProductID] = true
				continue
			}
		}
		diff.Removed = append(diff.Removed, dto.RemovedComponent{
			ProductID: fee.ProductID,
			Current:   feeSummary(fee),
		})
	}

	for _, price := range targetPrices {
		if price.ProductID != "" && matchedProducts[price.ProductID] {
			continue
		}
		diff.Added = append(diff.Added, dto.AddedComponent{
			ProductID: price.ProductID,
			New:       priceSummary(price),
		})
	}

	return diff
}

func feeSummary(fee *subscription.Fee) dto.FeeSummary {
	summary := dto.FeeSummary{
		DisplayName:   fee.DisplayName,
		BillingPeriod: fee.BillingPeriod,
		DisplayAmount: fee.GetDisplayTotal(),
	}
	if summary.DisplayAmount == "" {
		price := plan.Price{
			Currency: fee.Currency,
			Pricing:  fee.Pricing,
		}
		summary.DisplayAmount = price.GetDisplayAmount()
	}
	return summary
}

func priceSummary(price *plan.Price) dto.FeeSummary {
	return dto.FeeSummary{
		DisplayName:   price.DisplayName,
		BillingPeriod: price.Cadence.ToBillingPeriod(),
		DisplayAmount: price.GetDisplayAmount(),
	}
}
