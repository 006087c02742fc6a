package query

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/pixelbloom/inventory-service/internal/inventory/domain"
)

// stubItemRepo returns canned results and records the paging it was given.
type stubItemRepo struct {
	items []domain.InventoryItem
	err   error

	gotShopID uuid.UUID
	gotOffset int
	gotLimit  int
}

func (s *stubItemRepo) Create(context.Context, *domain.InventoryItem) error { return nil }

func (s *stubItemRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.InventoryItem, error) {
	if s.err != nil {
		return nil, s.err
	}
	for i := range s.items {
		if s.items[i].ID == id {
			return &s.items[i], nil
		}
	}
	return nil, domain.ErrItemNotFound
}

func (s *stubItemRepo) FindByShop(_ context.Context, shopID uuid.UUID, offset, limit int) ([]domain.InventoryItem, error) {
	s.gotShopID, s.gotOffset, s.gotLimit = shopID, offset, limit
	return s.items, s.err
}

func (s *stubItemRepo) FindAll(_ context.Context, offset, limit int) ([]domain.InventoryItem, error) {
	s.gotOffset, s.gotLimit = offset, limit
	return s.items, s.err
}

func (s *stubItemRepo) Update(context.Context, uuid.UUID, domain.ItemPatch) (*domain.InventoryItem, error) {
	return nil, errors.New("not implemented")
}

func (s *stubItemRepo) SoftDelete(context.Context, uuid.UUID) error {
	return errors.New("not implemented")
}

func TestGetItem_ReturnsInactiveItem(t *testing.T) {
	id := uuid.New()
	repo := &stubItemRepo{items: []domain.InventoryItem{
		{ID: id, Name: "Wilted Roses", IsActive: false},
	}}
	handler := NewGetItemHandler(repo)

	item, err := handler.Handle(context.Background(), GetItemQuery{ID: id})
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if item.IsActive {
		t.Error("expected the inactive item back unchanged")
	}
}

func TestGetItem_NotFound(t *testing.T) {
	handler := NewGetItemHandler(&stubItemRepo{})

	_, err := handler.Handle(context.Background(), GetItemQuery{ID: uuid.New()})
	if !errors.Is(err, domain.ErrItemNotFound) {
		t.Fatalf("Handle() error = %v, want ErrItemNotFound", err)
	}
}

func TestListItems_LimitDefaultsAndCaps(t *testing.T) {
	tests := []struct {
		name      string
		limit     int
		wantLimit int
	}{
		{"zero uses default", 0, defaultLimit},
		{"negative uses default", -3, defaultLimit},
		{"in range passes through", 25, 25},
		{"above cap is clamped", 5000, maxLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &stubItemRepo{}
			handler := NewListItemsHandler(repo)

			if _, err := handler.Handle(context.Background(), ListItemsQuery{Skip: 7, Limit: tt.limit}); err != nil {
				t.Fatalf("Handle() error = %v", err)
			}
			if repo.gotLimit != tt.wantLimit {
				t.Errorf("limit = %d, want %d", repo.gotLimit, tt.wantLimit)
			}
			if repo.gotOffset != 7 {
				t.Errorf("offset = %d, want 7", repo.gotOffset)
			}
		})
	}
}

func TestListItems_StoreFailureWrapped(t *testing.T) {
	repo := &stubItemRepo{err: errors.New("connection reset")}
	handler := NewListItemsHandler(repo)

	_, err := handler.Handle(context.Background(), ListItemsQuery{})
	if err == nil {
		t.Fatal("Handle() error = nil, want wrapped store error")
	}
}

func TestListShopItems_PassesShopAndPaging(t *testing.T) {
	shopID := uuid.New()
	repo := &stubItemRepo{items: []domain.InventoryItem{
		{ID: uuid.New(), ShopID: shopID, Name: "Roses", IsActive: true},
		{ID: uuid.New(), ShopID: shopID, Name: "Tulips", IsActive: true},
	}}
	handler := NewListShopItemsHandler(repo)

	items, err := handler.Handle(context.Background(), ListShopItemsQuery{ShopID: shopID, Skip: 2, Limit: 10})
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	if repo.gotShopID != shopID {
		t.Errorf("shop id = %s, want %s", repo.gotShopID, shopID)
	}
	if repo.gotOffset != 2 || repo.gotLimit != 10 {
		t.Errorf("paging = (%d, %d), want (2, 10)", repo.gotOffset, repo.gotLimit)
	}
}
