package repositories

import (
	"context"
	"errors"
	"fmt"

	"inventory/internal/models"

	"gorm.io/gorm"
)

// GORMRepository is a GORM implementation of Repository.
type GORMRepository[T any] struct {
	db *gorm.DB
}

// NewGORMRepository creates a new instance of GORMRepository.
func NewGORMRepository[T any](db *gorm.DB) *GORMRepository[T] {
	return &GORMRepository[T]{
		db: db,
	}
}

// NewGORMProductRepository creates a GORM-backed ProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMRepository[models.Product] {
	return NewGORMRepository[models.Product](db)
}

// Save creates the record when its primary key is zero and updates every
// column otherwise.
func (r *GORMRepository[T]) Save(ctx context.Context, record *T) error {
	if err := r.db.WithContext(ctx).Save(record).Error; err != nil {
		return fmt.Errorf("failed to save record: %w", err)
	}
	return nil
}

// FindByID retrieves a single record by its primary key.
func (r *GORMRepository[T]) FindByID(ctx context.Context, id uint64) (*T, error) {
	var record T
	if err := r.db.WithContext(ctx).First(&record, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get record by ID %d: %w", id, err)
	}
	return &record, nil
}

// FindAll retrieves all records from the table.
func (r *GORMRepository[T]) FindAll(ctx context.Context) ([]T, error) {
	records := make([]T, 0)
	if err := r.db.WithContext(ctx).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to get all records: %w", err)
	}
	return records, nil
}

// Delete removes the row matching the record's primary key.
func (r *GORMRepository[T]) Delete(ctx context.Context, record *T) error {
	if err := r.db.WithContext(ctx).Delete(record).Error; err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}
	return nil
}
