package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CheckoutPhase only sequences the form on the storefront; submission is a single step.
type CheckoutPhase string

const (
	PhaseInformation CheckoutPhase = "information"
	PhaseShipping    CheckoutPhase = "shipping"
	PhasePayment     CheckoutPhase = "payment"
)

func (p CheckoutPhase) Valid() bool {
	return p == PhaseInformation || p == PhaseShipping || p == PhasePayment
}

func (p CheckoutPhase) Next() CheckoutPhase {
	switch p {
	case PhaseInformation:
		return PhaseShipping
	default:
		return PhasePayment
	}
}

func (p CheckoutPhase) Back() CheckoutPhase {
	switch p {
	case PhasePayment:
		return PhaseShipping
	default:
		return PhaseInformation
	}
}

type CheckoutForm struct {
	Name            string          `json:"name"`
	Email           string          `json:"email"`
	Phone           string          `json:"phone"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	PaymentMethod   PaymentMethod   `json:"paymentMethod"`
	Notes           string          `json:"notes,omitempty"`
}

// PendingCheckout is held between gateway order creation and the widget callback.
type PendingCheckout struct {
	SessionID      string          `json:"sessionId"`
	GatewayOrderID string          `json:"gatewayOrderId"`
	Form           CheckoutForm    `json:"form"`
	Items          []OrderItem     `json:"items"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	Total          decimal.Decimal `json:"total"`
	Currency       string          `json:"currency"`
	CreatedAt      time.Time       `json:"createdAt"`
}

type PaymentAssertion struct {
	GatewayOrderID string `json:"gatewayOrderId"`
	PaymentID      string `json:"paymentId"`
	Signature      string `json:"signature"`
}

type OutcomeKind string

const (
	OutcomeCompleted OutcomeKind = "completed"
	OutcomeCancelled OutcomeKind = "cancelled"
	OutcomeAborted   OutcomeKind = "aborted"
)

// PaymentOutcome is what the payment widget reported, or the absence of a report.
type PaymentOutcome struct {
	Kind           OutcomeKind       `json:"kind"`
	GatewayOrderID string            `json:"gatewayOrderId"`
	Assertion      *PaymentAssertion `json:"assertion,omitempty"`
}

type Prefill struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Contact string `json:"contact"`
}

// PaymentHandoff carries everything the client needs to open the gateway widget.
type PaymentHandoff struct {
	GatewayOrderID string          `json:"gatewayOrderId"`
	KeyID          string          `json:"keyId"`
	Amount         int64           `json:"amount"`
	Currency       string          `json:"currency"`
	Total          decimal.Decimal `json:"total"`
	Prefill        Prefill         `json:"prefill"`
	Theme          string          `json:"theme,omitempty"`
}

type Confirmation struct {
	OrderNumber   string          `json:"orderNumber"`
	PaymentMethod PaymentMethod   `json:"paymentMethod"`
	PaymentStatus PaymentStatus   `json:"paymentStatus"`
	Total         decimal.Decimal `json:"total"`
}

type CheckoutResult struct {
	Confirmation *Confirmation   `json:"confirmation,omitempty"`
	Payment      *PaymentHandoff `json:"payment,omitempty"`
}
