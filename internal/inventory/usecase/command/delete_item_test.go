package command

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/pixelbloom/inventory-service/internal/inventory/domain"
	"github.com/pixelbloom/inventory-service/kafka"
)

func TestDeleteItem_SoftDeletesAndPublishes(t *testing.T) {
	repo := newMockItemRepo()
	pub := &mockPublisher{}
	handler := NewDeleteItemHandler(repo, pub)

	seeded := seedItem(t, repo)

	if err := handler.Handle(context.Background(), DeleteItemCommand{ID: seeded.ID}); err != nil {
		t.Fatalf("Handle() error = %v", err)
	}

	got, err := repo.FindByID(context.Background(), seeded.ID)
	if err != nil {
		t.Fatalf("deleted item must stay loadable by id: %v", err)
	}
	if got.IsActive {
		t.Error("expected item to be inactive after delete")
	}

	listed, err := repo.FindByShop(context.Background(), seeded.ShopID, 0, 100)
	if err != nil {
		t.Fatalf("FindByShop() error = %v", err)
	}
	if len(listed) != 0 {
		t.Errorf("shop listing has %d items, want 0 after delete", len(listed))
	}

	if len(pub.events) != 1 {
		t.Fatalf("published %d events, want 1", len(pub.events))
	}
	ev := pub.events[0]
	if ev.routingKey != kafka.RoutingKeyItemDeleted {
		t.Errorf("routing key = %q, want %q", ev.routingKey, kafka.RoutingKeyItemDeleted)
	}
	body, ok := ev.body.(kafka.ItemDeletedEvent)
	if !ok {
		t.Fatalf("event body is %T, want kafka.ItemDeletedEvent", ev.body)
	}
	if body.ItemID != seeded.ID.String() || body.ShopID != seeded.ShopID.String() {
		t.Errorf("event ids = (%s, %s), want (%s, %s)", body.ItemID, body.ShopID, seeded.ID, seeded.ShopID)
	}
}

func TestDeleteItem_NotFoundPublishesNothing(t *testing.T) {
	repo := newMockItemRepo()
	pub := &mockPublisher{}
	handler := NewDeleteItemHandler(repo, pub)

	err := handler.Handle(context.Background(), DeleteItemCommand{ID: uuid.New()})
	if !errors.Is(err, domain.ErrItemNotFound) {
		t.Fatalf("Handle() error = %v, want ErrItemNotFound", err)
	}
	if len(pub.events) != 0 {
		t.Errorf("published %d events, want 0", len(pub.events))
	}
}

func TestDeleteItem_AlreadyInactiveSucceedsAgain(t *testing.T) {
	repo := newMockItemRepo()
	pub := &mockPublisher{}
	handler := NewDeleteItemHandler(repo, pub)

	seeded := seedItem(t, repo)

	if err := handler.Handle(context.Background(), DeleteItemCommand{ID: seeded.ID}); err != nil {
		t.Fatalf("first delete: %v", err)
	}
	if err := handler.Handle(context.Background(), DeleteItemCommand{ID: seeded.ID}); err != nil {
		t.Fatalf("second delete: %v", err)
	}
	if len(pub.events) != 2 {
		t.Errorf("published %d events, want 2", len(pub.events))
	}
}

func TestDeleteItem_StoreFailureWrapped(t *testing.T) {
	repo := newMockItemRepo()
	pub := &mockPublisher{}
	handler := NewDeleteItemHandler(repo, pub)

	seeded := seedItem(t, repo)
	repo.deleteErr = errors.New("connection reset")

	err := handler.Handle(context.Background(), DeleteItemCommand{ID: seeded.ID})
	if err == nil {
		t.Fatal("Handle() error = nil, want wrapped store error")
	}
	if errors.Is(err, domain.ErrItemNotFound) {
		t.Fatalf("Handle() error = %v, must not be ErrItemNotFound", err)
	}
	if len(pub.events) != 0 {
		t.Errorf("published %d events, want 0", len(pub.events))
	}
}
