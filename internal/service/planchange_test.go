package service

import (
	"testing"
	"time"

	"github.com/billforge/billforge/internal/api/dto"
	"github.com/billforge/billforge/internal/domain/plan"
	"github.com/billforge/billforge/internal/domain/pricing"
	"github.com/billforge/billforge/internal/domain/subscription"
	ierr "github.com/billforge/billforge/internal/errors"
	"github.com/billforge/billforge/internal/integration/billingapi"
	"github.com/billforge/billforge/internal/testutil"
	"github.com/billforge/billforge/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type PlanChangeServiceSuite struct {
	testutil.BaseServiceTestSuite
	service PlanChangeService
}

func TestPlanChangeService(t *testing.T) {
	suite.Run(t, new(PlanChangeServiceSuite))
}

func (s *PlanChangeServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewPlanChangeService(ServiceParams{
		Logger:     s.GetLogger(),
		Config:     s.GetConfig(),
		BillingAPI: s.GetBillingClient(),
	})
}

func rateFee(id, productID, name, amount string) *subscription.Fee {
	total := decimal.RequireFromString(amount)
	return &subscription.Fee{
		ID:            id,
		PriceID:       "price_" + id,
		ProductID:     productID,
		DisplayName:   name,
		Currency:      "usd",
		BillingPeriod: types.BILLING_PERIOD_MONTHLY,
		Pricing: pricing.PricingModel{
			Type: types.PRICING_MODEL_RATE,
			Rate: &pricing.RateConfig{Amount: total},
		},
	}
}

func targetPrice(id, productID, name, amount string) *plan.Price {
	return &plan.Price{
		ID:          id,
		ProductID:   productID,
		DisplayName: name,
		Currency:    "usd",
		Cadence:     types.BILLING_CADENCE_MONTHLY,
		Pricing: pricing.PricingModel{
			Type: types.PRICING_MODEL_RATE,
			Rate: &pricing.RateConfig{Amount: decimal.RequireFromString(amount)},
		},
	}
}

func TestComputePlanChangeDiff(t *testing.T) {
	currentFees := []*subscription.Fee{
		rateFee("a", "prod_x", "Base Plan", "49.00"),
		rateFee("b", "prod_y", "Support", "15.00"),
	}
	targetPrices := []*plan.Price{
		targetPrice("price_a2", "prod_x", "Base Plan v2", "59.00"),
		targetPrice("price_c", "prod_z", "Analytics", "25.00"),
	}

	diff := ComputePlanChangeDiff(currentFees, targetPrices)

	if len(diff.Matched) != 1 || diff.Matched[0].ProductID != "prod_x" {
		t.Fatalf("expected one match on prod_x, got %+v", diff.Matched)
	}
	if diff.Matched[0].Current.DisplayName != "Base Plan" || diff.Matched[0].New.DisplayName != "Base Plan v2" {
		t.Fatalf("match pairs wrong components: %+v", diff.Matched[0])
	}
	if len(diff.Removed) != 1 || diff.Removed[0].ProductID != "prod_y" {
		t.Fatalf("expected Support removed, got %+v", diff.Removed)
	}
	if len(diff.Added) != 1 || diff.Added[0].ProductID != "prod_z" {
		t.Fatalf("expected Analytics added, got %+v", diff.Added)
	}
}

func TestComputePlanChangeDiffEmptyProductNeverMatches(t *testing.T) {
	currentFees := []*subscription.Fee{
		rateFee("a", "", "Legacy Fee", "10.00"),
	}
	targetPrices := []*plan.Price{
		targetPrice("price_b", "", "New Fee", "10.00"),
	}

	diff := ComputePlanChangeDiff(currentFees, targetPrices)

	if len(diff.Matched) != 0 {
		t.Fatalf("components without product identity must not match: %+v", diff.Matched)
	}
	if len(diff.Removed) != 1 || len(diff.Added) != 1 {
		t.Fatalf("expected remove+add, got removed=%+v added=%+v", diff.Removed, diff.Added)
	}
}

func TestComputePlanChangeDiffOrdering(t *testing.T) {
	currentFees := []*subscription.Fee{
		rateFee("a", "prod_1", "A", "1.00"),
		rateFee("b", "prod_2", "B", "2.00"),
		rateFee("c", "prod_3", "C", "3.00"),
	}
	targetPrices := []*plan.Price{
		targetPrice("p3", "prod_3", "C2", "3.50"),
		targetPrice("p4", "prod_4", "D", "4.00"),
		targetPrice("p1", "prod_1", "A2", "1.50"),
	}

	diff := ComputePlanChangeDiff(currentFees, targetPrices)

	// Matched follows current fee order, added follows target order.
	if diff.Matched[0].ProductID != "prod_1" || diff.Matched[1].ProductID != "prod_3" {
		t.Fatalf("matched order should follow current fees: %+v", diff.Matched)
	}
	if diff.Added[0].ProductID != "prod_4" {
		t.Fatalf("added order should follow target prices: %+v", diff.Added)
	}
	if diff.Removed[0].ProductID != "prod_2" {
		t.Fatalf("expected prod_2 removed: %+v", diff.Removed)
	}
}

func (s *PlanChangeServiceSuite) TestPreviewPlanChange() {
	effective := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	s.GetBillingClient().Fees["subs_1"] = []*subscription.Fee{
		rateFee("a", "prod_x", "Base Plan", "49.00"),
	}
	s.GetBillingClient().PlanVersions["pver_2"] = &plan.PlanVersion{
		ID:      "pver_2",
		PlanID:  "plan_1",
		Version: 2,
		Status:  types.PLAN_VERSION_STATUS_PUBLISHED,
		Prices: []*plan.Price{
			targetPrice("price_a2", "prod_x", "Base Plan v2", "59.00"),
		},
	}
	s.GetBillingClient().PlanChangePreview = &billingapi.PlanChangePreview{
		CreditAmount:  decimal.RequireFromString("24.50"),
		ChargeAmount:  decimal.RequireFromString("29.50"),
		NetAmount:     decimal.RequireFromString("5.00"),
		Currency:      "usd",
		DaysUsed:      15,
		DaysRemaining: 15,
		EffectiveDate: effective,
	}

	resp, err := s.service.PreviewPlanChange(s.GetContext(), dto.PlanChangePreviewRequest{
		SubscriptionID:      "subs_1",
		TargetPlanVersionID: "pver_2",
	})
	s.NoError(err)
	s.Len(resp.Diff.Matched, 1)
	// The server's effective date is shown verbatim.
	s.Equal(effective, resp.Diff.EffectiveDate)
	s.Equal("5", resp.Proration.NetAmount.String())
	s.Equal(15, resp.Proration.DaysRemaining)
}

func (s *PlanChangeServiceSuite) TestPreviewRejectsEmptyTargetVersion() {
	s.GetBillingClient().Fees["subs_1"] = []*subscription.Fee{
		rateFee("a", "prod_x", "Base Plan", "49.00"),
	}
	s.GetBillingClient().PlanVersions["pver_empty"] = &plan.PlanVersion{
		ID:     "pver_empty",
		PlanID: "plan_1",
		Status: types.PLAN_VERSION_STATUS_DRAFT,
	}

	_, err := s.service.PreviewPlanChange(s.GetContext(), dto.PlanChangePreviewRequest{
		SubscriptionID:      "subs_1",
		TargetPlanVersionID: "pver_empty",
	})
	s.True(ierr.IsValidation(err))
}

func (s *PlanChangeServiceSuite) TestCommitPlanChange() {
	effective := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	s.GetBillingClient().PlanChangeResult = &billingapi.PlanChangeResult{EffectiveDate: effective}

	resp, err := s.service.CommitPlanChange(s.GetContext(), dto.PlanChangeCommitRequest{
		SubscriptionID:      "subs_1",
		TargetPlanVersionID: "pver_2",
	})
	s.NoError(err)
	s.Equal(effective, resp.EffectiveDate)

	calls := s.GetBillingClient().CommittedPlanChanges
	s.Len(calls, 1)
	s.Equal("pver_2", calls[0].TargetPlanVersionID)
}

func (s *PlanChangeServiceSuite) TestCommitSurfacesBackendFailure() {
	s.GetBillingClient().Err = ierr.NewError("subscription has unpaid invoices").
		Mark(ierr.ErrHTTPClient)

	_, err := s.service.CommitPlanChange(s.GetContext(), dto.PlanChangeCommitRequest{
		SubscriptionID:      "subs_1",
		TargetPlanVersionID: "pver_2",
	})
	s.True(ierr.IsHTTPClient(err))
	s.Empty(s.GetBillingClient().CommittedPlanChanges)
}
