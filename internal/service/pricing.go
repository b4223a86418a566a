package service

import (
	"context"

	"github.com/billforge/billforge/internal/api/dto"
	"github.com/billforge/billforge/internal/domain/pricing"
	ierr "github.com/billforge/billforge/internal/errors"
	"github.com/billforge/billforge/internal/types"
)

// PricingService backs the catalog price editor: tier-table edits and
// full structural validation of a draft pricing model. Edits are pure
// value transformations; the caller owns the table being edited.
type PricingService interface {
	AppendTier(ctx context.Context, req dto.AppendTierRequest) (*dto.TierTableResponse, error)
	RemoveTier(ctx context.Context, req dto.RemoveTierRequest) (*dto.TierTableResponse, error)
	SetTierBoundary(ctx context.Context, req dto.SetTierBoundaryRequest) (*dto.TierTableResponse, error)
	ValidatePricingModel(ctx context.Context, req dto.ValidatePricingModelRequest) error
}

type pricingService struct {
	ServiceParams
}

func NewPricingService(params ServiceParams) PricingService {
	return &pricingService{ServiceParams: params}
}

func (s *pricingService) AppendTier(ctx context.Context, req dto.AppendTierRequest) (*dto.TierTableResponse, error) {
	if len(req.Rows) > 0 {
		if err := req.Rows.Validate(); err != nil {
			return nil, err
		}
	}
	return &dto.TierTableResponse{Rows: req.Rows.AppendTier()}, nil
}

func (s *pricingService) RemoveTier(ctx context.Context, req dto.RemoveTierRequest) (*dto.TierTableResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := req.Rows.Validate(); err != nil {
		return nil, err
	}

	rows, err := req.Rows.RemoveTier(req.Index)
	if err != nil {
		return nil, err
	}
	return &dto.TierTableResponse{Rows: rows}, nil
}

func (s *pricingService) SetTierBoundary(ctx context.Context, req dto.SetTierBoundaryRequest) (*dto.TierTableResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := req.Rows.Validate(); err != nil {
		return nil, err
	}

	rows, err := req.Rows.SetFirstUnit(req.Index, req.FirstUnit)
	if err != nil {
		return nil, err
	}
	return &dto.TierTableResponse{Rows: rows}, nil
}

func (s *pricingService) ValidatePricingModel(ctx context.Context, req dto.ValidatePricingModelRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	cadence := types.BillingCadence(req.Cadence)
	if err := cadence.Validate(); err != nil {
		return err
	}
	if err := req.Pricing.Validate(); err != nil {
		return err
	}
	if !pricing.CadenceCompatible(req.Pricing.Type, cadence) {
		return ierr.NewError("pricing model is not compatible with billing cadence").
			WithHintf("Pricing model %s cannot be billed %s", req.Pricing.Type, cadence).
			WithReportableDetails(map[string]interface{}{
				"field":              "cadence",
				"pricing_model_type": req.Pricing.Type,
				"billing_cadence":    cadence,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}
