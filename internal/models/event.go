package models

import "time"

const (
	EventProductCreated = "product_created"
	EventProductUpdated = "product_updated"
	EventProductDeleted = "product_deleted"
)

// ProductEvent is published after a product changes.
type ProductEvent struct {
	EventType string    `json:"event_type"`
	ProductID uint64    `json:"product_id"`
	Name      string    `json:"name,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
