package services

import (
	"time"

	"github.com/shopspring/decimal"

	"storefront/internal/domain"
)

func CreateMockOrder(id uint64, number string, total int64, status domain.OrderStatus) *domain.Order {
	return &domain.Order{
		ID:            id,
		OrderNumber:   number,
		CustomerName:  TestCustomerName,
		CustomerEmail: TestCustomerEmail,
		Total:         decimal.NewFromInt(total),
		Status:        status,
		PaymentMethod: domain.PaymentCOD,
		PaymentStatus: domain.PaymentPending,
		CreatedAt:     time.Now(),
	}
}

// CreateMockDraft returns a draft every order rule accepts: one item of quantity 2
// totalling TestTotal.
func CreateMockDraft(method domain.PaymentMethod) OrderDraft {
	return OrderDraft{
		CustomerName:    TestCustomerName,
		CustomerEmail:   TestCustomerEmail,
		CustomerPhone:   TestCustomerPhone,
		ShippingAddress: CreateMockAddress(),
		Items: []domain.OrderItem{{
			ID:         "line-1",
			ProductID:  TestProductID,
			Name:       TestProductName,
			BasePrice:  decimal.RequireFromString("1249.50"),
			Quantity:   2,
			TotalPrice: decimal.NewFromInt(TestTotal),
			Currency:   "INR",
		}},
		Subtotal:      decimal.NewFromInt(TestTotal),
		Total:         decimal.NewFromInt(TestTotal),
		PaymentMethod: method,
	}
}

func CreateMockAddress() domain.ShippingAddress {
	return domain.ShippingAddress{
		Street:     "12 FC Road",
		City:       "Pune",
		State:      "Maharashtra",
		PostalCode: TestPostalCode,
		Country:    "India",
	}
}

func CreateMockForm(method domain.PaymentMethod) domain.CheckoutForm {
	return domain.CheckoutForm{
		Name:            TestCustomerName,
		Email:           TestCustomerEmail,
		Phone:           TestCustomerPhone,
		ShippingAddress: CreateMockAddress(),
		PaymentMethod:   method,
	}
}

const (
	TestOrderID       = uint64(1)
	TestOrderNumber   = "ORD-1760000000000-ABCDEFGHI"
	TestAdminSecret   = "s3cret-admin"
	TestGatewaySecret = "gw-secret"
	TestCustomerName  = "Asha Patil"
	TestCustomerEmail = "buyer@example.com"
	TestCustomerPhone = "9876543210"
	TestPostalCode    = "411001"
	TestProductID     = "lamp"
	TestProductName   = "Lithophane Lamp"
	TestTotal         = int64(2499)
)
