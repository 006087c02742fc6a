package command

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pixelbloom/inventory-service/internal/inventory/domain"
	"github.com/pixelbloom/inventory-service/kafka"
	"github.com/pixelbloom/inventory-service/pkg/logger"
)

// CreateItemCommand represents the command to create an inventory item
type CreateItemCommand struct {
	ShopID      uuid.UUID
	Name        string
	Description string
	Category    string
	Price       float64
	Quantity    int
	ImageURLs   []string
}

// CreateItemHandler handles create item command
type CreateItemHandler struct {
	repo      domain.ItemRepository
	publisher domain.EventPublisher
}

// NewCreateItemHandler creates a new create item handler
func NewCreateItemHandler(repo domain.ItemRepository, publisher domain.EventPublisher) *CreateItemHandler {
	return &CreateItemHandler{repo: repo, publisher: publisher}
}

// Handle validates the command, persists the item and announces it on the
// bus. The publish is best-effort: a bus failure is logged and the created
// item is still returned.
func (h *CreateItemHandler) Handle(ctx context.Context, cmd CreateItemCommand) (*domain.InventoryItem, error) {
	if err := validateNewItem(cmd); err != nil {
		return nil, err
	}

	item := &domain.InventoryItem{
		ShopID:      cmd.ShopID,
		Name:        cmd.Name,
		Description: cmd.Description,
		Category:    cmd.Category,
		Price:       cmd.Price,
		Quantity:    cmd.Quantity,
		ImageURLs:   cmd.ImageURLs,
	}

	if err := h.repo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create inventory item: %w", err)
	}

	event := kafka.ItemCreatedEvent{
		EventType: kafka.EventTypeItemCreated,
		ItemID:    item.ID.String(),
		ShopID:    item.ShopID.String(),
		Name:      item.Name,
		Category:  item.Category,
		Price:     item.Price,
		Quantity:  item.Quantity,
		CreatedAt: item.CreatedAt,
	}
	if err := h.publisher.Publish(ctx, kafka.TopicInventoryEvents, kafka.RoutingKeyItemCreated, event); err != nil {
		logger.Warn(ctx).
			Err(err).
			Str("item_id", item.ID.String()).
			Str("routing_key", kafka.RoutingKeyItemCreated).
			Msg("Failed to publish item created event")
	}

	return item, nil
}
