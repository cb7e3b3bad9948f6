package services

import "inventory/internal/models"

// ProductMapper copies the four editable fields between a ProductRequest and
// a Product. It never touches ID or CreatedAt and performs no validation.
type ProductMapper struct{}

// ToEntity builds a new, unsaved Product from req.
func (ProductMapper) ToEntity(req models.ProductRequest) *models.Product {
	product := &models.Product{}
	copyRequest(req, product)
	return product
}

// UpdateEntity overwrites the editable fields of product in place.
func (ProductMapper) UpdateEntity(req models.ProductRequest, product *models.Product) {
	copyRequest(req, product)
}

// ToRequest projects product back into the request shape, used to pre-fill
// the edit form.
func (ProductMapper) ToRequest(product *models.Product) models.ProductRequest {
	price := product.Price
	stock := product.Stock
	return models.ProductRequest{
		Name:        product.Name,
		Description: product.Description,
		Price:       &price,
		Stock:       &stock,
	}
}

func copyRequest(req models.ProductRequest, product *models.Product) {
	product.Name = req.Name
	product.Description = req.Description
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
}
