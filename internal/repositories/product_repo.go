package repositories

import (
	"context"

	"inventory/internal/models"
)

// Repository is the generic record store: keyed create/read/update/delete
// over one table.
type Repository[T any] interface {
	// Save inserts record when it has no id yet and overwrites the stored
	// row otherwise. Generated columns are written back into record.
	Save(ctx context.Context, record *T) error
	// FindByID returns nil and no error when nothing matches id.
	FindByID(ctx context.Context, id uint64) (*T, error)
	FindAll(ctx context.Context) ([]T, error)
	Delete(ctx context.Context, record *T) error
}

// ProductRepository defines the interface for product data access.
type ProductRepository = Repository[models.Product]
