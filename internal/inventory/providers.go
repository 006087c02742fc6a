package inventory

import (
	"gorm.io/gorm"

	"github.com/pixelbloom/inventory-service/internal/inventory/domain"
	"github.com/pixelbloom/inventory-service/internal/inventory/repository"
)

// ProvideItemRepository provides the item repository with tracing enabled.
func ProvideItemRepository(db *gorm.DB) domain.ItemRepository {
	return repository.NewTracingItemRepository(db)
}
