package command

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/pixelbloom/inventory-service/internal/inventory/domain"
	"github.com/pixelbloom/inventory-service/kafka"
)

func seedItem(t *testing.T, repo *mockItemRepo) *domain.InventoryItem {
	t.Helper()
	item := &domain.InventoryItem{
		ShopID:      uuid.New(),
		Name:        "Red Roses",
		Description: "A dozen red roses",
		Category:    "bouquet",
		Price:       29.99,
		Quantity:    10,
		ImageURLs:   []string{"https://cdn.example.com/roses.jpg"},
	}
	if err := repo.Create(context.Background(), item); err != nil {
		t.Fatalf("seed item: %v", err)
	}
	return item
}

func TestUpdateItem_PartialPatchPreservesOtherFields(t *testing.T) {
	repo := newMockItemRepo()
	pub := &mockPublisher{}
	handler := NewUpdateItemHandler(repo, pub)

	seeded := seedItem(t, repo)
	time.Sleep(time.Millisecond)

	patch := domain.ItemPatch{Price: domain.Some(34.99)}
	updated, err := handler.Handle(context.Background(), UpdateItemCommand{ID: seeded.ID, Patch: patch})
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}

	if updated.Price != 34.99 {
		t.Errorf("price = %v, want 34.99", updated.Price)
	}
	if updated.Name != seeded.Name || updated.Quantity != seeded.Quantity {
		t.Errorf("untouched fields changed: name=%q quantity=%d", updated.Name, updated.Quantity)
	}
	if !updated.CreatedAt.Equal(seeded.CreatedAt) {
		t.Error("created_at must not change on update")
	}
	if !updated.UpdatedAt.After(seeded.UpdatedAt) {
		t.Errorf("updated_at = %v, want after %v", updated.UpdatedAt, seeded.UpdatedAt)
	}

	if len(pub.events) != 1 {
		t.Fatalf("published %d events, want 1", len(pub.events))
	}
	ev := pub.events[0]
	if ev.routingKey != kafka.RoutingKeyItemUpdated {
		t.Errorf("routing key = %q, want %q", ev.routingKey, kafka.RoutingKeyItemUpdated)
	}
	body, ok := ev.body.(kafka.ItemUpdatedEvent)
	if !ok {
		t.Fatalf("event body is %T, want kafka.ItemUpdatedEvent", ev.body)
	}
	if body.ItemID != seeded.ID.String() {
		t.Errorf("event item id = %s, want %s", body.ItemID, seeded.ID)
	}
}

func TestUpdateItem_NullImageURLsClearsList(t *testing.T) {
	repo := newMockItemRepo()
	pub := &mockPublisher{}
	handler := NewUpdateItemHandler(repo, pub)

	seeded := seedItem(t, repo)

	patch := domain.ItemPatch{ImageURLs: domain.Optional[[]string]{Set: true}}
	updated, err := handler.Handle(context.Background(), UpdateItemCommand{ID: seeded.ID, Patch: patch})
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if len(updated.ImageURLs) != 0 {
		t.Errorf("image_urls = %v, want cleared", updated.ImageURLs)
	}
}

func TestUpdateItem_InvalidPatchRejected(t *testing.T) {
	repo := newMockItemRepo()
	pub := &mockPublisher{}
	handler := NewUpdateItemHandler(repo, pub)

	seeded := seedItem(t, repo)

	tests := []struct {
		name  string
		patch domain.ItemPatch
	}{
		{"null name", domain.ItemPatch{Name: domain.Optional[string]{Set: true}}},
		{"empty category", domain.ItemPatch{Category: domain.Some("")}},
		{"null price", domain.ItemPatch{Price: domain.Optional[float64]{Set: true}}},
		{"zero price", domain.ItemPatch{Price: domain.Some(0.0)}},
		{"null quantity", domain.ItemPatch{Quantity: domain.Optional[int]{Set: true}}},
		{"negative quantity", domain.ItemPatch{Quantity: domain.Some(-1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := handler.Handle(context.Background(), UpdateItemCommand{ID: seeded.ID, Patch: tt.patch})
			if !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("Handle() error = %v, want ErrValidation", err)
			}
		})
	}

	if len(pub.events) != 0 {
		t.Errorf("published %d events, want 0", len(pub.events))
	}
}

func TestUpdateItem_NotFoundPublishesNothing(t *testing.T) {
	repo := newMockItemRepo()
	pub := &mockPublisher{}
	handler := NewUpdateItemHandler(repo, pub)

	_, err := handler.Handle(context.Background(), UpdateItemCommand{
		ID:    uuid.New(),
		Patch: domain.ItemPatch{Price: domain.Some(5.0)},
	})
	if !errors.Is(err, domain.ErrItemNotFound) {
		t.Fatalf("Handle() error = %v, want ErrItemNotFound", err)
	}
	if len(pub.events) != 0 {
		t.Errorf("published %d events, want 0", len(pub.events))
	}
}
