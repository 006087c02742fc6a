package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/pixelbloom/inventory-service/internal/inventory/domain"
	"github.com/pixelbloom/inventory-service/kafka"
	"github.com/pixelbloom/inventory-service/pkg/logger"
)

// UpdateItemCommand represents the command to partially update an item
type UpdateItemCommand struct {
	ID    uuid.UUID
	Patch domain.ItemPatch
}

// UpdateItemHandler handles update item command
type UpdateItemHandler struct {
	repo      domain.ItemRepository
	publisher domain.EventPublisher
}

// NewUpdateItemHandler creates a new update item handler
func NewUpdateItemHandler(repo domain.ItemRepository, publisher domain.EventPublisher) *UpdateItemHandler {
	return &UpdateItemHandler{repo: repo, publisher: publisher}
}

// Handle applies the patch and announces the update. domain.ErrItemNotFound
// is returned untouched so the API layer can map it to a 404.
func (h *UpdateItemHandler) Handle(ctx context.Context, cmd UpdateItemCommand) (*domain.InventoryItem, error) {
	if err := validatePatch(cmd.Patch); err != nil {
		return nil, err
	}

	item, err := h.repo.Update(ctx, cmd.ID, cmd.Patch)
	if err != nil {
		if errors.Is(err, domain.ErrItemNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update inventory item: %w", err)
	}

	event := kafka.ItemUpdatedEvent{
		EventType: kafka.EventTypeItemUpdated,
		ItemID:    item.ID.String(),
		ShopID:    item.ShopID.String(),
		Name:      item.Name,
	}
	if err := h.publisher.Publish(ctx, kafka.TopicInventoryEvents, kafka.RoutingKeyItemUpdated, event); err != nil {
		logger.Warn(ctx).
			Err(err).
			Str("item_id", item.ID.String()).
			Str("routing_key", kafka.RoutingKeyItemUpdated).
			Msg("Failed to publish item updated event")
	}

	return item, nil
}
