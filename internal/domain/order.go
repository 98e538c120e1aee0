package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusProcessing OrderStatus = "processing"
	StatusShipped    OrderStatus = "shipped"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

type PaymentMethod string

const (
	PaymentCOD    PaymentMethod = "cod"
	PaymentOnline PaymentMethod = "online"
)

func (m PaymentMethod) Valid() bool {
	return m == PaymentCOD || m == PaymentOnline
}

type ShippingAddress struct {
	Street     string `json:"street"`
	Unit       string `json:"unit,omitempty"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// OrderItem is the snapshot of a cart line taken when the order is submitted.
type OrderItem struct {
	ID             string                   `json:"id"`
	ProductID      string                   `json:"productId"`
	Name           string                   `json:"name"`
	Image          string                   `json:"image,omitempty"`
	BasePrice      decimal.Decimal          `json:"basePrice"`
	Quantity       int                      `json:"quantity"`
	Customizations map[string]Customization `json:"customizations,omitempty"`
	TotalPrice     decimal.Decimal          `json:"totalPrice"`
	Currency       string                   `json:"currency"`
}

type Order struct {
	ID               uint64          `json:"id" gorm:"primaryKey;autoIncrement"`
	OrderNumber      string          `json:"orderNumber" gorm:"size:40;not null;uniqueIndex"`
	CustomerName     string          `json:"customerName" gorm:"size:120;not null"`
	CustomerEmail    string          `json:"customerEmail" gorm:"size:254;not null;index"`
	CustomerPhone    string          `json:"customerPhone,omitempty" gorm:"size:20"`
	ShippingAddress  ShippingAddress `json:"shippingAddress" gorm:"type:json;serializer:json"`
	Items            []OrderItem     `json:"items" gorm:"type:json;serializer:json"`
	Subtotal         decimal.Decimal `json:"subtotal" gorm:"type:decimal(12,2);not null"`
	Tax              decimal.Decimal `json:"tax" gorm:"type:decimal(12,2);not null"`
	Shipping         decimal.Decimal `json:"shipping" gorm:"type:decimal(12,2);not null"`
	Total            decimal.Decimal `json:"total" gorm:"type:decimal(12,2);not null"`
	Status           OrderStatus     `json:"status" gorm:"type:enum('pending','processing','shipped','delivered','cancelled');default:'pending'"`
	PaymentMethod    PaymentMethod   `json:"paymentMethod" gorm:"type:enum('cod','online');not null"`
	PaymentStatus    PaymentStatus   `json:"paymentStatus" gorm:"type:enum('pending','completed','failed');default:'pending'"`
	GatewayOrderID   string          `json:"gatewayOrderId,omitempty" gorm:"size:64"`
	GatewayPaymentID *string         `json:"gatewayPaymentId,omitempty" gorm:"size:64;uniqueIndex"`
	GatewaySignature string          `json:"-" gorm:"size:128"`
	Notes            string          `json:"notes,omitempty" gorm:"type:text"`
	CreatedAt        time.Time       `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt        time.Time       `json:"updatedAt" gorm:"autoUpdateTime"`
}
