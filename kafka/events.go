package kafka

import "time"

// Event types
const (
	EventTypeItemCreated = "inventory_item_created"
	EventTypeItemUpdated = "inventory_item_updated"
	EventTypeItemDeleted = "inventory_item_deleted"
)

// TopicInventoryEvents is the durable topic all inventory events land on.
// Consumers filter on the routing key (message key + routing_key header),
// dot-separated like a topic-exchange binding.
const TopicInventoryEvents = "inventory_events"

// Routing keys
const (
	RoutingKeyItemCreated = "inventory.created"
	RoutingKeyItemUpdated = "inventory.updated"
	RoutingKeyItemDeleted = "inventory.deleted"
)

// ItemCreatedEvent announces a newly created inventory item.
type ItemCreatedEvent struct {
	EventType string    `json:"event_type"`
	ItemID    string    `json:"item_id"`
	ShopID    string    `json:"shop_id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Price     float64   `json:"price"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
}

// ItemUpdatedEvent announces a partial update to an item.
type ItemUpdatedEvent struct {
	EventType string `json:"event_type"`
	ItemID    string `json:"item_id"`
	ShopID    string `json:"shop_id"`
	Name      string `json:"name"`
}

// ItemDeletedEvent announces a soft-deleted item.
type ItemDeletedEvent struct {
	EventType string `json:"event_type"`
	ItemID    string `json:"item_id"`
	ShopID    string `json:"shop_id"`
}
