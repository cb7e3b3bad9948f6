package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func init() {
	// Prices go over the wire as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// PriceScale is the number of fractional digits stored for a price.
const PriceScale = 2

// Product represents a product held in the inventory.
type Product struct {
	ID          uint64          `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string          `json:"name" gorm:"type:varchar(100);not null"`
	Description string          `json:"description" gorm:"type:text"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(15,2);not null"`
	Stock       int             `json:"stock" gorm:"not null"`
	CreatedAt   time.Time       `json:"createdAt" gorm:"not null;<-:create"`
}

// TableName returns the table name for the Product model.
func (Product) TableName() string {
	return "products"
}

// BeforeCreate stamps the creation time when the caller did not set one.
func (p *Product) BeforeCreate(_ *gorm.DB) error {
	p.StampCreated(time.Now())
	return nil
}

// BeforeSave keeps the price at the stored scale.
func (p *Product) BeforeSave(_ *gorm.DB) error {
	p.Price = p.Price.Round(PriceScale)
	return nil
}

// StampCreated sets CreatedAt to now if it is still zero.
func (p *Product) StampCreated(now time.Time) {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
}

// ProductRequest is the create/update input accepted by both the JSON API
// and the HTML forms. Price and Stock are pointers so a missing value can be
// told apart from zero.
type ProductRequest struct {
	Name        string           `json:"name" validate:"notblank,max=100"`
	Description string           `json:"description"`
	Price       *decimal.Decimal `json:"price" validate:"required,gte=0.01"`
	Stock       *int             `json:"stock" validate:"required,gte=0"`
}
