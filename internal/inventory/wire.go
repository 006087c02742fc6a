//go:build wireinject
// +build wireinject

package inventory

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/pixelbloom/inventory-service/internal/inventory/delivery/http"
	"github.com/pixelbloom/inventory-service/internal/inventory/domain"
)

// RepositorySet bundles the data-access providers.
var RepositorySet = wire.NewSet(
	ProvideItemRepository,
)

// InitializeItemHandler initializes the HTTP handler with all dependencies.
func InitializeItemHandler(db *gorm.DB, publisher domain.EventPublisher) (*http.ItemHandler, error) {
	wire.Build(
		RepositorySet,
		http.NewItemHandler,
	)
	return nil, nil
}
