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

// DeleteItemCommand represents the command to soft-delete an item
type DeleteItemCommand struct {
	ID uuid.UUID
}

// DeleteItemHandler handles delete item command
type DeleteItemHandler struct {
	repo      domain.ItemRepository
	publisher domain.EventPublisher
}

// NewDeleteItemHandler creates a new delete item handler
func NewDeleteItemHandler(repo domain.ItemRepository, publisher domain.EventPublisher) *DeleteItemHandler {
	return &DeleteItemHandler{repo: repo, publisher: publisher}
}

// Handle looks the item up first, both to capture the shop id for the event
// and to tell "already absent" from "now deleted". An absent id publishes
// nothing. Deleting an already inactive item succeeds again and re-stamps
// updated_at.
func (h *DeleteItemHandler) Handle(ctx context.Context, cmd DeleteItemCommand) error {
	item, err := h.repo.FindByID(ctx, cmd.ID)
	if err != nil {
		if errors.Is(err, domain.ErrItemNotFound) {
			return err
		}
		return fmt.Errorf("failed to load inventory item: %w", err)
	}

	if err := h.repo.SoftDelete(ctx, cmd.ID); err != nil {
		if errors.Is(err, domain.ErrItemNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete inventory item: %w", err)
	}

	event := kafka.ItemDeletedEvent{
		EventType: kafka.EventTypeItemDeleted,
		ItemID:    item.ID.String(),
		ShopID:    item.ShopID.String(),
	}
	if err := h.publisher.Publish(ctx, kafka.TopicInventoryEvents, kafka.RoutingKeyItemDeleted, event); err != nil {
		logger.Warn(ctx).
			Err(err).
			Str("item_id", item.ID.String()).
			Str("routing_key", kafka.RoutingKeyItemDeleted).
			Msg("Failed to publish item deleted event")
	}

	return nil
}
