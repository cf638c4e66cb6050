package kafka

import "time"

// ProductEvent is emitted when the admin panel creates or updates a
// catalog product. Downstream consumers (search indexer, cache warmers)
// reload the product by id.
type ProductEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	ProductID uint      `json:"product_id"`
	Slug      string    `json:"slug"`
	Category  string    `json:"category"`
	Featured  bool      `json:"featured"`
	Timestamp time.Time `json:"timestamp"`
}

// Event types
const (
	EventTypeProductCreated = "product.created"
	EventTypeProductUpdated = "product.updated"
)

// TopicCatalogEvents carries every catalog change.
const TopicCatalogEvents = "catalog-events"
