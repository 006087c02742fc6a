package command

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/pixelbloom/inventory-service/internal/inventory/domain"
)

// mockItemRepo is an in-memory ItemRepository that mirrors the row-level
// behavior of the real one: soft-deleted rows stay loadable by id but are
// filtered from listings, and updates re-stamp updated_at.
type mockItemRepo struct {
	items map[uuid.UUID]*domain.InventoryItem

	createErr error
	updateErr error
	deleteErr error

	createCalls int
}

func newMockItemRepo() *mockItemRepo {
	return &mockItemRepo{items: make(map[uuid.UUID]*domain.InventoryItem)}
}

func (m *mockItemRepo) Create(_ context.Context, item *domain.InventoryItem) error {
	m.createCalls++
	if m.createErr != nil {
		return m.createErr
	}
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	now := time.Now().UTC()
	item.CreatedAt = now
	item.UpdatedAt = now
	item.IsActive = true
	stored := *item
	m.items[item.ID] = &stored
	return nil
}

func (m *mockItemRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.InventoryItem, error) {
	item, ok := m.items[id]
	if !ok {
		return nil, domain.ErrItemNotFound
	}
	found := *item
	return &found, nil
}

func (m *mockItemRepo) FindByShop(_ context.Context, shopID uuid.UUID, _, _ int) ([]domain.InventoryItem, error) {
	var out []domain.InventoryItem
	for _, item := range m.items {
		if item.ShopID == shopID && item.IsActive {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (m *mockItemRepo) FindAll(_ context.Context, _, _ int) ([]domain.InventoryItem, error) {
	var out []domain.InventoryItem
	for _, item := range m.items {
		if item.IsActive {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (m *mockItemRepo) Update(_ context.Context, id uuid.UUID, patch domain.ItemPatch) (*domain.InventoryItem, error) {
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	item, ok := m.items[id]
	if !ok {
		return nil, domain.ErrItemNotFound
	}
	for column, value := range patch.Updates() {
		switch column {
		case "name":
			item.Name = value.(string)
		case "description":
			item.Description = value.(string)
		case "category":
			item.Category = value.(string)
		case "price":
			item.Price = value.(float64)
		case "quantity":
			item.Quantity = value.(int)
		case "image_urls":
			item.ImageURLs = value.(pq.StringArray)
		}
	}
	item.UpdatedAt = time.Now().UTC()
	updated := *item
	return &updated, nil
}

func (m *mockItemRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	item, ok := m.items[id]
	if !ok {
		return domain.ErrItemNotFound
	}
	item.IsActive = false
	item.UpdatedAt = time.Now().UTC()
	return nil
}

type publishedEvent struct {
	topic      string
	routingKey string
	body       any
}

// mockPublisher records every publish and optionally fails them all.
type mockPublisher struct {
	events []publishedEvent
	err    error
}

func (m *mockPublisher) Publish(_ context.Context, topic, routingKey string, body any) error {
	if m.err != nil {
		return m.err
	}
	m.events = append(m.events, publishedEvent{topic: topic, routingKey: routingKey, body: body})
	return nil
}
