package v1

import (
	"net/http"

	"github.com/billforge/billforge/internal/api/dto"
	ierr "github.com/billforge/billforge/internal/errors"
	"github.com/billforge/billforge/internal/logger"
	"github.com/billforge/billforge/internal/service"
	"github.com/gin-gonic/gin"
)

type PricingHandler struct {
	pricingService service.PricingService
	feeService     service.FeeService
	log            *logger.Logger
}

func NewPricingHandler(pricingService service.PricingService, feeService service.FeeService, log *logger.Logger) *PricingHandler {
	return &PricingHandler{
		pricingService: pricingService,
		feeService:     feeService,
		log:            log,
	}
}

// AppendTier appends an editing row to a tier table.
func (h *PricingHandler) AppendTier(c *gin.Context) {
	var req dto.AppendTierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.pricingService.AppendTier(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// RemoveTier removes a tier row.
func (h *PricingHandler) RemoveTier(c *gin.Context) {
	var req dto.RemoveTierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.pricingService.RemoveTier(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// SetTierBoundary changes a tier row's boundary.
func (h *PricingHandler) SetTierBoundary(c *gin.Context) {
	var req dto.SetTierBoundaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.pricingService.SetTierBoundary(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ValidatePricingModel validates a draft catalog price definition.
func (h *PricingHandler) ValidatePricingModel(c *gin.Context) {
	var req dto.ValidatePricingModelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	if err := h.pricingService.ValidatePricingModel(c.Request.Context(), req); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"valid": true})
}

// CreateSubscriptionFee converts a catalog price into a fee snapshot.
func (h *PricingHandler) CreateSubscriptionFee(c *gin.Context) {
	var req dto.CreateSubscriptionFeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.feeService.CreateSubscriptionFee(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}
