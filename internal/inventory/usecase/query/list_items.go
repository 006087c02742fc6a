package query

import (
	"context"
	"fmt"

	"github.com/pixelbloom/inventory-service/internal/inventory/domain"
)

const (
	defaultLimit = 100
	maxLimit     = 1000
)

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultLimit
	}
	if limit > maxLimit {
		return maxLimit
	}
	return limit
}

// ListItemsQuery represents the query to list active items across all shops
type ListItemsQuery struct {
	Skip  int
	Limit int
}

// ListItemsHandler handles list items query
type ListItemsHandler struct {
	repo domain.ItemRepository
}

// NewListItemsHandler creates a new list items handler
func NewListItemsHandler(repo domain.ItemRepository) *ListItemsHandler {
	return &ListItemsHandler{repo: repo}
}

// Handle returns active items only; soft-deleted rows never appear here.
func (h *ListItemsHandler) Handle(ctx context.Context, q ListItemsQuery) ([]domain.InventoryItem, error) {
	items, err := h.repo.FindAll(ctx, q.Skip, clampLimit(q.Limit))
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory items: %w", err)
	}
	return items, nil
}
