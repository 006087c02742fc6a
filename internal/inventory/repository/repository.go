package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pixelbloom/inventory-service/internal/inventory/domain"
)

// GormItemRepository implements domain.ItemRepository on PostgreSQL.
type GormItemRepository struct {
	db *gorm.DB
}

// NewGormItemRepository creates a new GORM item repository
func NewGormItemRepository(db *gorm.DB) *GormItemRepository {
	return &GormItemRepository{db: db}
}

func (r *GormItemRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.InventoryItem{})
}

// Create inserts a new item. The id is assigned in the entity's BeforeCreate
// hook, timestamps by GORM.
func (r *GormItemRepository) Create(ctx context.Context, item *domain.InventoryItem) error {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return fmt.Errorf("failed to create inventory item: %w", err)
	}
	return nil
}

// FindByID retrieves an item by id regardless of its active state.
func (r *GormItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.InventoryItem, error) {
	var item domain.InventoryItem
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to find inventory item: %w", err)
	}
	return &item, nil
}

// FindByShop retrieves the active items of a shop in insertion order.
func (r *GormItemRepository) FindByShop(ctx context.Context, shopID uuid.UUID, offset, limit int) ([]domain.InventoryItem, error) {
	var items []domain.InventoryItem
	query := r.db.WithContext(ctx).
		Where("shop_id = ? AND is_active = ?", shopID, true).
		Order("created_at")
	if offset > 0 {
		query = query.Offset(offset)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to find shop inventory: %w", err)
	}
	return items, nil
}

// FindAll retrieves active items across all shops.
func (r *GormItemRepository) FindAll(ctx context.Context, offset, limit int) ([]domain.InventoryItem, error) {
	var items []domain.InventoryItem
	query := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at")
	if offset > 0 {
		query = query.Offset(offset)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list inventory items: %w", err)
	}
	return items, nil
}

// Update applies the fields present in the patch and returns the reloaded
// row. updated_at is refreshed even for an empty patch.
func (r *GormItemRepository) Update(ctx context.Context, id uuid.UUID, patch domain.ItemPatch) (*domain.InventoryItem, error) {
	updates := patch.Updates()
	if len(updates) == 0 {
		updates["updated_at"] = time.Now().UTC()
	}

	result := r.db.WithContext(ctx).
		Model(&domain.InventoryItem{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update inventory item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, domain.ErrItemNotFound
	}

	return r.FindByID(ctx, id)
}

// SoftDelete flips is_active to false. Deleting an already inactive item
// still succeeds and re-stamps updated_at; the row is never removed.
func (r *GormItemRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&domain.InventoryItem{}).
		Where("id = ?", id).
		Updates(map[string]any{"is_active": false})
	if result.Error != nil {
		return fmt.Errorf("failed to delete inventory item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}
