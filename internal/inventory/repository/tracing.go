package repository

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/pixelbloom/inventory-service/internal/inventory/domain"
)

var tracer = otel.Tracer("inventory-repository")

// TracingItemRepository wraps GormItemRepository with otel spans.
type TracingItemRepository struct {
	inner *GormItemRepository
}

// NewTracingItemRepository creates an item repository that records a span
// per data-access call.
func NewTracingItemRepository(db *gorm.DB) *TracingItemRepository {
	return &TracingItemRepository{inner: NewGormItemRepository(db)}
}

func (r *TracingItemRepository) AutoMigrate() error {
	return r.inner.AutoMigrate()
}

func (r *TracingItemRepository) Create(ctx context.Context, item *domain.InventoryItem) error {
	ctx, span := tracer.Start(ctx, "repository.Create",
		trace.WithAttributes(
			attribute.String("item.shop_id", item.ShopID.String()),
			attribute.String("item.category", item.Category),
		),
	)
	defer span.End()

	if err := r.inner.Create(ctx, item); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	span.SetAttributes(attribute.String("item.id", item.ID.String()))
	return nil
}

func (r *TracingItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.InventoryItem, error) {
	ctx, span := tracer.Start(ctx, "repository.FindByID",
		trace.WithAttributes(attribute.String("item.id", id.String())),
	)
	defer span.End()

	item, err := r.inner.FindByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Bool("item.is_active", item.IsActive))
	return item, nil
}

func (r *TracingItemRepository) FindByShop(ctx context.Context, shopID uuid.UUID, offset, limit int) ([]domain.InventoryItem, error) {
	ctx, span := tracer.Start(ctx, "repository.FindByShop",
		trace.WithAttributes(
			attribute.String("item.shop_id", shopID.String()),
			attribute.Int("query.offset", offset),
			attribute.Int("query.limit", limit),
		),
	)
	defer span.End()

	items, err := r.inner.FindByShop(ctx, shopID, offset, limit)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("result.count", len(items)))
	return items, nil
}

func (r *TracingItemRepository) FindAll(ctx context.Context, offset, limit int) ([]domain.InventoryItem, error) {
	ctx, span := tracer.Start(ctx, "repository.FindAll",
		trace.WithAttributes(
			attribute.Int("query.offset", offset),
			attribute.Int("query.limit", limit),
		),
	)
	defer span.End()

	items, err := r.inner.FindAll(ctx, offset, limit)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("result.count", len(items)))
	return items, nil
}

func (r *TracingItemRepository) Update(ctx context.Context, id uuid.UUID, patch domain.ItemPatch) (*domain.InventoryItem, error) {
	ctx, span := tracer.Start(ctx, "repository.Update",
		trace.WithAttributes(
			attribute.String("item.id", id.String()),
			attribute.Int("patch.fields", len(patch.Updates())),
		),
	)
	defer span.End()

	item, err := r.inner.Update(ctx, id, patch)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return item, nil
}

func (r *TracingItemRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	ctx, span := tracer.Start(ctx, "repository.SoftDelete",
		trace.WithAttributes(attribute.String("item.id", id.String())),
	)
	defer span.End()

	if err := r.inner.SoftDelete(ctx, id); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}
