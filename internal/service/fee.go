package service

import (
	"context"

	"github.com/billforge/billforge/internal/api/dto"
	"github.com/billforge/billforge/internal/domain/plan"
	"github.com/billforge/billforge/internal/domain/subscription"
	ierr "github.com/billforge/billforge/internal/errors"
	"github.com/billforge/billforge/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// FeeService converts catalog prices into subscription fee snapshots.
type FeeService interface {
	// CreateSubscriptionFee validates the request and produces the fee
	// snapshot for one subscription.
	CreateSubscriptionFee(ctx context.Context, req dto.CreateSubscriptionFeeRequest) (*dto.SubscriptionFeeResponse, error)

	// ToSubscriptionFee is the pure conversion. Converting the same
	// price with the same params twice yields structurally equal
	// snapshots, the generated fee ID aside.
	ToSubscriptionFee(ctx context.Context, price *plan.Price, params ConversionParams) (*subscription.Fee, error)
}

// ConversionParams are the subscription-specific inputs to a
// conversion.
type ConversionParams struct {
	SubscriptionID string

	// InitialSlots applies to slot prices; nil defaults to 1.
	InitialSlots *int64
}

type feeService struct {
	ServiceParams
}

func NewFeeService(params ServiceParams) FeeService {
	return &feeService{ServiceParams: params}
}

func (s *feeService) CreateSubscriptionFee(ctx context.Context, req dto.CreateSubscriptionFeeRequest) (*dto.SubscriptionFeeResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	fee, err := s.ToSubscriptionFee(ctx, req.Price, ConversionParams{
		SubscriptionID: req.SubscriptionID,
		InitialSlots:   req.InitialSlots,
	})
	if err != nil {
		return nil, err
	}

	return &dto.SubscriptionFeeResponse{Fee: fee}, nil
}

func (s *feeService) ToSubscriptionFee(ctx context.Context, price *plan.Price, params ConversionParams) (*subscription.Fee, error) {
	if price == nil {
		return nil, ierr.NewError("price is required").
			WithHint("A catalog price is required for conversion").
			WithReportableDetails(map[string]interface{}{
				"field": "price",
			}).
			Mark(ierr.ErrValidation)
	}
	if err := price.Validate(); err != nil {
		return nil, err
	}

	fee := &subscription.Fee{
		ID:             types.GenerateUUIDWithPrefix(types.UUID_PREFIX_SUBSCRIPTION_FEE),
		SubscriptionID: params.SubscriptionID,
		PriceID:        price.ID,
		ProductID:      price.ProductID,
		DisplayName:    price.DisplayName,
		Currency:       price.Currency,
		BillingPeriod:  price.Cadence.ToBillingPeriod(),
		Pricing:        price.Pricing.Clone(),
		BaseModel:      types.GetDefaultBaseModel(ctx),
	}

	switch price.Pricing.Type {
	case types.PRICING_MODEL_SLOT:
		// Slots are the one variant parameterized at subscription time.
		fee.InitialSlots = lo.ToPtr(lo.FromPtrOr(params.InitialSlots, int64(1)))

	case types.PRICING_MODEL_ONE_TIME:
		// Derived display total; the backend recomputes billed amounts.
		total := price.Pricing.OneTime.UnitAmount.Mul(decimal.NewFromInt(price.Pricing.OneTime.Quantity))
		fee.Total = &total

	case types.PRICING_MODEL_EXTRA_RECURRING:
		total := price.Pricing.ExtraRecurring.UnitAmount.Mul(decimal.NewFromInt(price.Pricing.ExtraRecurring.Quantity))
		fee.Total = &total

	case types.PRICING_MODEL_USAGE:
		// Metric resolution happens server-side from the plan's linked
		// product at subscription-creation time; the snapshot never
		// fabricates a metric identifier.
		fee.Pricing.Usage.MetricID = ""
	}

	return fee, nil
}
