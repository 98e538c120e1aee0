package http

import (
	"github.com/shopspring/decimal"

	"storefront/internal/domain"
)

type AddCartItemRequest struct {
	ProductID      string            `json:"productId" binding:"required"`
	Customizations map[string]string `json:"customizations"`
	Quantity       int               `json:"quantity" binding:"omitempty,min=1,max=100"`
}

type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// CartResponse is the cart plus whether the client should open its cart view.
type CartResponse struct {
	*domain.Cart
	Open bool `json:"open"`
}

type ValidatePhaseRequest struct {
	Phase domain.CheckoutPhase `json:"phase" binding:"required"`
	domain.CheckoutForm
}

type ValidatePhaseResponse struct {
	Next domain.CheckoutPhase `json:"next"`
}

type PaymentOutcomeRequest struct {
	Outcome        domain.OutcomeKind `json:"outcome" binding:"required"`
	GatewayOrderID string             `json:"gatewayOrderId"`
	PaymentID      string             `json:"paymentId"`
	Signature      string             `json:"signature"`
}

type CreatePaymentOrderRequest struct {
	Amount   decimal.Decimal   `json:"amount"`
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt"`
	Notes    map[string]string `json:"notes"`
}

type CreatePaymentOrderResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	KeyID    string `json:"keyId"`
}

type VerifyPaymentRequest struct {
	OrderID   string `json:"orderId" binding:"required"`
	PaymentID string `json:"paymentId" binding:"required"`
	Signature string `json:"signature" binding:"required"`
}

type VerifyPaymentResponse struct {
	Verified bool `json:"verified"`
}

type CreateOrderResponse struct {
	ID            uint64               `json:"id"`
	OrderNumber   string               `json:"orderNumber"`
	PaymentStatus domain.PaymentStatus `json:"paymentStatus"`
	Total         decimal.Decimal      `json:"total"`
}

type UpdateStatusRequest struct {
	Status   string `json:"status" binding:"required"`
	AdminKey string `json:"adminKey"`
}

type AdminRequest struct {
	AdminKey string `json:"adminKey"`
}
