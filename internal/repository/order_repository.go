package repository

import (
	"context"
	"errors"

	"storefront/internal/domain"
)

// ErrDuplicateKey is returned by Save when a unique column already holds the value.
var ErrDuplicateKey = errors.New("duplicate key")

// Finders return (nil, nil) when nothing matches. UpdateStatus and Delete report
// whether a row was found.
type OrderRepository interface {
	Save(ctx context.Context, order *domain.Order) error
	FindByID(ctx context.Context, id uint64) (*domain.Order, error)
	FindByNumber(ctx context.Context, orderNumber string) (*domain.Order, error)
	FindByPaymentID(ctx context.Context, paymentID string) (*domain.Order, error)
	List(ctx context.Context) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id uint64, status domain.OrderStatus) (bool, error)
	Delete(ctx context.Context, id uint64) (bool, error)
}

// RecordRepository stores one kind of intake record.
type RecordRepository[T any] interface {
	Save(ctx context.Context, record *T) error
	List(ctx context.Context) ([]T, error)
	UpdateStatus(ctx context.Context, id uint64, status string) (bool, error)
	Delete(ctx context.Context, id uint64) (bool, error)
}
