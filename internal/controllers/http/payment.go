package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"storefront/internal/domain"
	"storefront/internal/services"
	"storefront/internal/validation"
)

// CreatePaymentOrder reserves a gateway order for a client that drives the widget itself.
func (h *Handler) CreatePaymentOrder(c *gin.Context) {
	if h.deps.Gateway == nil {
		h.fail(c, services.ErrPaymentsDisabled)
		return
	}
	var req CreatePaymentOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if !validation.Amount(req.Amount) {
		h.fail(c, domain.Invalid("amount must be between 0 and %s", validation.MaxAmount))
		return
	}
	if req.Currency == "" {
		req.Currency = h.deps.Currency
	}
	receipt := validation.Clean(req.Receipt)
	if receipt == "" {
		receipt = "rcpt_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	}

	order, err := h.deps.Gateway.CreateOrder(c.Request.Context(), req.Amount, req.Currency, receipt, req.Notes)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, CreatePaymentOrderResponse{
		ID:       order.ID,
		Amount:   order.Amount,
		Currency: order.Currency,
		KeyID:    h.deps.Gateway.KeyID(),
	})
}

func (h *Handler) VerifyPayment(c *gin.Context) {
	var req VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if !h.deps.Verifier.Verify(req.OrderID, req.PaymentID, req.Signature) {
		h.log.WithField("gatewayOrderId", req.OrderID).Warn("payment signature mismatch")
		c.JSON(http.StatusBadRequest, gin.H{"verified": false, "error": "invalid payment signature"})
		return
	}
	c.JSON(http.StatusOK, VerifyPaymentResponse{Verified: true})
}
