package testutil

import (
	"context"

	"github.com/billforge/billforge/internal/domain/plan"
	"github.com/billforge/billforge/internal/domain/subscription"
	ierr "github.com/billforge/billforge/internal/errors"
	"github.com/billforge/billforge/internal/integration/billingapi"
)

// FakeBillingClient implements billingapi.Client with scripted
// responses so service tests run without the remote billing service.
// Unset responses return a not-found style error; set Err to force a
// failure on every call.
type FakeBillingClient struct {
	SlotPreviews      map[string]*billingapi.SlotPreview
	SlotUpdateResults map[string]*billingapi.SlotUpdateResult
	Transactions      map[string][]*subscription.SlotTransaction
	PlanChangePreview *billingapi.PlanChangePreview
	PlanChangeResult  *billingapi.PlanChangeResult
	Fees              map[string][]*subscription.Fee
	PlanVersions      map[string]*plan.PlanVersion

	Err error

	CancelledTransactionIDs []string
	CommittedSlotUpdates    []SlotUpdateCall
	CommittedPlanChanges    []PlanChangeCall
}

type SlotUpdateCall struct {
	SubscriptionID   string
	PriceComponentID string
	Delta            int64
	BillingMode      string
}

type PlanChangeCall struct {
	SubscriptionID      string
	TargetPlanVersionID string
}

func NewFakeBillingClient() *FakeBillingClient {
	return &FakeBillingClient{
		SlotPreviews:      make(map[string]*billingapi.SlotPreview),
		SlotUpdateResults: make(map[string]*billingapi.SlotUpdateResult),
		Transactions:      make(map[string][]*subscription.SlotTransaction),
		Fees:              make(map[string][]*subscription.Fee),
		PlanVersions:      make(map[string]*plan.PlanVersion),
	}
}

func (f *FakeBillingClient) ResolveSlotPreview(ctx context.Context, subscriptionID, priceComponentID string, delta int64) (*billingapi.SlotPreview, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	if preview, ok := f.SlotPreviews[subscriptionID]; ok {
		return preview, nil
	}
	return nil, notFound("slot preview", subscriptionID)
}

func (f *FakeBillingClient) CommitSlotUpdate(ctx context.Context, subscriptionID, priceComponentID string, delta int64, billingMode string) (*billingapi.SlotUpdateResult, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	f.CommittedSlotUpdates = append(f.CommittedSlotUpdates, SlotUpdateCall{
		SubscriptionID:   subscriptionID,
		PriceComponentID: priceComponentID,
		Delta:            delta,
		BillingMode:      billingMode,
	})
	if result, ok := f.SlotUpdateResults[subscriptionID]; ok {
		return result, nil
	}
	return nil, notFound("slot update", subscriptionID)
}

func (f *FakeBillingClient) CancelSlotTransaction(ctx context.Context, transactionID string) error {
	if f.Err != nil {
		return f.Err
	}
	f.CancelledTransactionIDs = append(f.CancelledTransactionIDs, transactionID)
	return nil
}

func (f *FakeBillingClient) ListSlotTransactions(ctx context.Context, subscriptionID, unit string) ([]*subscription.SlotTransaction, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	return f.Transactions[subscriptionID], nil
}

func (f *FakeBillingClient) ResolvePlanChangePreview(ctx context.Context, subscriptionID, targetPlanVersionID string) (*billingapi.PlanChangePreview, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	if f.PlanChangePreview == nil {
		return nil, notFound("plan change preview", subscriptionID)
	}
	return f.PlanChangePreview, nil
}

func (f *FakeBillingClient) CommitPlanChange(ctx context.Context, subscriptionID, targetPlanVersionID string) (*billingapi.PlanChangeResult, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	f.CommittedPlanChanges = append(f.CommittedPlanChanges, PlanChangeCall{
		SubscriptionID:      subscriptionID,
		TargetPlanVersionID: targetPlanVersionID,
	})
	if f.PlanChangeResult == nil {
		return nil, notFound("plan change", subscriptionID)
	}
	return f.PlanChangeResult, nil
}

func (f *FakeBillingClient) GetSubscriptionFees(ctx context.Context, subscriptionID string) ([]*subscription.Fee, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	fees, ok := f.Fees[subscriptionID]
	if !ok {
		return nil, notFound("subscription", subscriptionID)
	}
	return fees, nil
}

func (f *FakeBillingClient) GetPlanVersion(ctx context.Context, planVersionID string) (*plan.PlanVersion, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	pv, ok := f.PlanVersions[planVersionID]
	if !ok {
		return nil, notFound("plan version", planVersionID)
	}
	return pv, nil
}

func notFound(entity, id string) error {
	return ierr.NewErrorf("%s not found", entity).
		WithReportableDetails(map[string]interface{}{"id": id}).
		Mark(ierr.ErrNotFound)
}
