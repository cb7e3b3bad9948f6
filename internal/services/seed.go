package services

import (
	"context"
	"fmt"

	"inventory/internal/models"

	"github.com/shopspring/decimal"
)

// demoProducts is the starter catalogue used when SEED_DATA is enabled.
var demoProducts = []struct {
	name, description, price string
	stock                    int
}{
	{"Laptop", "High performance laptop", "1200.00", 10},
	{"Keyboard", "Mechanical keyboard", "75.00", 25},
	{"Mouse", "Ergonomic wireless mouse", "25.00", 50},
}

// SeedProducts populates an empty store with demo products. It returns the
// number of products created.
func (s *ProductService) SeedProducts(ctx context.Context) (int, error) {
	existing, err := s.repo.FindAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to check existing products: %w", err)
	}
	if len(existing) > 0 {
		return 0, nil
	}

	for i, p := range demoProducts {
		price := decimal.RequireFromString(p.price)
		stock := p.stock
		req := models.ProductRequest{Name: p.name, Description: p.description, Price: &price, Stock: &stock}
		product, err := s.CreateProduct(ctx, req)
		if err != nil {
			return i, fmt.Errorf("failed to seed product %s: %w", p.name, err)
		}
		s.log.WithField("product_id", product.ID).Infof("Seeded product: %s", product.Name)
	}
	return len(demoProducts), nil
}
