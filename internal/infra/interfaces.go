package infra

import (
	"context"

	"github.com/shopspring/decimal"
)

type PaymentGatewayInterface interface {
	CreateOrder(ctx context.Context, amount decimal.Decimal, currency, receipt string, notes map[string]string) (*GatewayOrder, error)
	KeyID() string
}

var _ PaymentGatewayInterface = (*GatewayClient)(nil)
