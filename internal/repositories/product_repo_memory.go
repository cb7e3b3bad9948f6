package repositories

import (
	"context"
	"sync"
	"time"

	"inventory/internal/models"
)

// MemoryProductRepository is an in-memory implementation of ProductRepository.
// Ids are handed out sequentially and never reused.
type MemoryProductRepository struct {
	products map[uint64]models.Product
	order    []uint64
	nextID   uint64
	mu       sync.RWMutex
}

// NewMemoryProductRepository creates a new instance of MemoryProductRepository.
func NewMemoryProductRepository() *MemoryProductRepository {
	return &MemoryProductRepository{
		products: make(map[uint64]models.Product),
	}
}

// Save inserts a new product or overwrites an existing one.
func (r *MemoryProductRepository) Save(_ context.Context, product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	product.Price = product.Price.Round(models.PriceScale)

	if product.ID == 0 {
		r.nextID++
		product.ID = r.nextID
		product.StampCreated(time.Now())
		r.products[product.ID] = *product
		r.order = append(r.order, product.ID)
		return nil
	}

	existing, ok := r.products[product.ID]
	if !ok {
		product.StampCreated(time.Now())
		r.order = append(r.order, product.ID)
		if product.ID > r.nextID {
			r.nextID = product.ID
		}
	} else {
		// created_at is write-once.
		product.CreatedAt = existing.CreatedAt
	}
	r.products[product.ID] = *product
	return nil
}

// FindByID returns a product by its ID, or nil if there is none.
func (r *MemoryProductRepository) FindByID(_ context.Context, id uint64) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	return &product, nil
}

// FindAll returns all products in insertion order.
func (r *MemoryProductRepository) FindAll(_ context.Context) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	productList := make([]models.Product, 0, len(r.products))
	for _, id := range r.order {
		productList = append(productList, r.products[id])
	}
	return productList, nil
}

// Delete removes a product. Deleting a missing product is a no-op.
func (r *MemoryProductRepository) Delete(_ context.Context, product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[product.ID]; !ok {
		return nil
	}
	delete(r.products, product.ID)
	for i, id := range r.order {
		if id == product.ID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
