package v1

import (
	"net/http"

	"github.com/billforge/billforge/internal/api/dto"
	ierr "github.com/billforge/billforge/internal/errors"
	"github.com/billforge/billforge/internal/logger"
	"github.com/billforge/billforge/internal/service"
	"github.com/gin-gonic/gin"
)

type SlotHandler struct {
	service service.SlotService
	log     *logger.Logger
}

func NewSlotHandler(service service.SlotService, log *logger.Logger) *SlotHandler {
	return &SlotHandler{service: service, log: log}
}

// PreviewSlotChange returns the proration preview for a slot change.
func (h *SlotHandler) PreviewSlotChange(c *gin.Context) {
	var req dto.SlotPreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}
	req.SubscriptionID = c.Param("id")

	resp, err := h.service.PreviewSlotChange(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// CommitSlotChange commits a slot count change.
func (h *SlotHandler) CommitSlotChange(c *gin.Context) {
	var req dto.SlotUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}
	req.SubscriptionID = c.Param("id")

	resp, err := h.service.CommitSlotChange(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// CancelSlotTransaction cancels a pending or future-effective slot
// transaction.
func (h *SlotHandler) CancelSlotTransaction(c *gin.Context) {
	req := dto.CancelSlotTransactionRequest{
		SubscriptionID: c.Param("id"),
		TransactionID:  c.Param("txn_id"),
	}

	if err := h.service.CancelSlotTransaction(c.Request.Context(), req); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ListSlotTransactions returns the upcoming and history views of a
// subscription's slot transactions.
func (h *SlotHandler) ListSlotTransactions(c *gin.Context) {
	req := dto.ListSlotTransactionsRequest{
		SubscriptionID: c.Param("id"),
		Unit:           c.Query("unit"),
	}

	resp, err := h.service.ListSlotTransactions(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
