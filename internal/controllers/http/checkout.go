package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/domain"
)

func (h *Handler) ValidateCheckoutPhase(c *gin.Context) {
	var req ValidatePhaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	next, err := h.deps.Checkout.ValidatePhase(req.Phase, req.CheckoutForm)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, ValidatePhaseResponse{Next: next})
}

// SubmitCheckout answers 201 with a confirmation for cash on delivery, or 200 with
// the payment hand-off for online payment.
func (h *Handler) SubmitCheckout(c *gin.Context) {
	var form domain.CheckoutForm
	if err := c.ShouldBindJSON(&form); err != nil {
		badRequest(c, err)
		return
	}

	result, err := h.deps.Checkout.Submit(c.Request.Context(), sessionID(c), form)
	if err != nil {
		h.fail(c, err)
		return
	}
	if result.Confirmation != nil {
		c.JSON(http.StatusCreated, result)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) ResolvePayment(c *gin.Context) {
	var req PaymentOutcomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	outcome := domain.PaymentOutcome{Kind: req.Outcome, GatewayOrderID: req.GatewayOrderID}
	if req.Outcome == domain.OutcomeCompleted {
		outcome.Assertion = &domain.PaymentAssertion{
			GatewayOrderID: req.GatewayOrderID,
			PaymentID:      req.PaymentID,
			Signature:      req.Signature,
		}
	}

	conf, err := h.deps.Checkout.ResolvePayment(c.Request.Context(), sessionID(c), outcome)
	if err != nil {
		h.fail(c, err)
		return
	}
	if conf == nil {
		c.JSON(http.StatusOK, gin.H{"outcome": req.Outcome})
		return
	}
	c.JSON(http.StatusCreated, domain.CheckoutResult{Confirmation: conf})
}
