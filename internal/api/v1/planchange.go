package v1

import (
	"net/http"

	"github.com/billforge/billforge/internal/api/dto"
	ierr "github.com/billforge/billforge/internal/errors"
	"github.com/billforge/billforge/internal/logger"
	"github.com/billforge/billforge/internal/service"
	"github.com/gin-gonic/gin"
)

type PlanChangeHandler struct {
	service service.PlanChangeService
	log     *logger.Logger
}

func NewPlanChangeHandler(service service.PlanChangeService, log *logger.Logger) *PlanChangeHandler {
	return &PlanChangeHandler{service: service, log: log}
}

// PreviewPlanChange returns the reconciliation diff and proration
// preview for a target plan version.
func (h *PlanChangeHandler) PreviewPlanChange(c *gin.Context) {
	var req dto.PlanChangePreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}
	req.SubscriptionID = c.Param("id")

	resp, err := h.service.PreviewPlanChange(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// CommitPlanChange executes a previously previewed plan change.
func (h *PlanChangeHandler) CommitPlanChange(c *gin.Context) {
	var req dto.PlanChangeCommitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}
	req.SubscriptionID = c.Param("id")

	resp, err := h.service.CommitPlanChange(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
