package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

var (
	// ErrItemNotFound is returned when no item exists for the given identifier.
	ErrItemNotFound = errors.New("inventory item not found")

	// ErrValidation wraps all input validation failures.
	ErrValidation = errors.New("validation failed")
)

// InventoryItem represents a single sellable item owned by a shop.
// Soft-deleted items keep their row with is_active=false; they stay
// retrievable by id but disappear from listings.
type InventoryItem struct {
	ID          uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	ShopID      uuid.UUID      `json:"shop_id" gorm:"type:uuid;not null;index"`
	Name        string         `json:"name" gorm:"not null"`
	Description string         `json:"description" gorm:"not null"`
	Category    string         `json:"category" gorm:"not null"`
	Price       float64        `json:"price" gorm:"not null"`
	Quantity    int            `json:"quantity" gorm:"not null"`
	ImageURLs   pq.StringArray `json:"image_urls" gorm:"type:text[]"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	IsActive    bool           `json:"is_active" gorm:"not null;default:true"`
}

// TableName specifies the table name
func (InventoryItem) TableName() string {
	return "inventory_items"
}

// BeforeCreate assigns the identifier and activates the item.
func (i *InventoryItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	i.IsActive = true
	return nil
}

// ItemRepository defines the contract for inventory item data access.
type ItemRepository interface {
	Create(ctx context.Context, item *InventoryItem) error
	FindByID(ctx context.Context, id uuid.UUID) (*InventoryItem, error)
	FindByShop(ctx context.Context, shopID uuid.UUID, offset, limit int) ([]InventoryItem, error)
	FindAll(ctx context.Context, offset, limit int) ([]InventoryItem, error)
	Update(ctx context.Context, id uuid.UUID, patch ItemPatch) (*InventoryItem, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

// EventPublisher delivers best-effort domain event notifications to the
// message bus. A failed publish must never undo an already committed write;
// callers log the error and move on.
type EventPublisher interface {
	Publish(ctx context.Context, topic, routingKey string, body any) error
}
