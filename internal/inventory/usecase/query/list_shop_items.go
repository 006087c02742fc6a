package query

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pixelbloom/inventory-service/internal/inventory/domain"
)

// ListShopItemsQuery represents the query to list a shop's active items
type ListShopItemsQuery struct {
	ShopID uuid.UUID
	Skip   int
	Limit  int
}

// ListShopItemsHandler handles list shop items query
type ListShopItemsHandler struct {
	repo domain.ItemRepository
}

// NewListShopItemsHandler creates a new list shop items handler
func NewListShopItemsHandler(repo domain.ItemRepository) *ListShopItemsHandler {
	return &ListShopItemsHandler{repo: repo}
}

// Handle returns the shop's active items; soft-deleted rows never appear.
func (h *ListShopItemsHandler) Handle(ctx context.Context, q ListShopItemsQuery) ([]domain.InventoryItem, error) {
	items, err := h.repo.FindByShop(ctx, q.ShopID, q.Skip, clampLimit(q.Limit))
	if err != nil {
		return nil, fmt.Errorf("failed to list shop inventory: %w", err)
	}
	return items, nil
}
