package mysql

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"storefront/internal/repository"
)

type recordRepo[T any] struct {
	db *gorm.DB
}

// NewRecordRepository stores intake records of type T in T's table.
func NewRecordRepository[T any](db *gorm.DB) repository.RecordRepository[T] {
	return &recordRepo[T]{db: db}
}

func (r *recordRepo[T]) Save(ctx context.Context, record *T) error {
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return repository.ErrDuplicateKey
		}
		return fmt.Errorf("failed to save record: %w", err)
	}
	return nil
}

func (r *recordRepo[T]) List(ctx context.Context) ([]T, error) {
	out := []T{}
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	return out, nil
}

func (r *recordRepo[T]) UpdateStatus(ctx context.Context, id uint64, status string) (bool, error) {
	result := r.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return false, fmt.Errorf("failed to update record status: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *recordRepo[T]) Delete(ctx context.Context, id uint64) (bool, error) {
	result := r.db.WithContext(ctx).Delete(new(T), id)
	if result.Error != nil {
		return false, fmt.Errorf("failed to delete record: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}
