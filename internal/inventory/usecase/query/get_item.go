package query

import (
	"context"

	"github.com/google/uuid"

	"github.com/pixelbloom/inventory-service/internal/inventory/domain"
)

// GetItemQuery represents the query to get a single item
type GetItemQuery struct {
	ID uuid.UUID
}

// GetItemHandler handles get item query
type GetItemHandler struct {
	repo domain.ItemRepository
}

// NewGetItemHandler creates a new get item handler
func NewGetItemHandler(repo domain.ItemRepository) *GetItemHandler {
	return &GetItemHandler{repo: repo}
}

// Handle returns the item regardless of its active state.
func (h *GetItemHandler) Handle(ctx context.Context, q GetItemQuery) (*domain.InventoryItem, error) {
	return h.repo.FindByID(ctx, q.ID)
}
