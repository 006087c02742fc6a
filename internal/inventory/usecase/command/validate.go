package command

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/pixelbloom/inventory-service/internal/inventory/domain"
)

// The price/quantity rules are the one business rule shared between create
// and update, so they live here once.

func validatePrice(price float64) error {
	if price <= 0 {
		return fmt.Errorf("%w: price must be greater than 0", domain.ErrValidation)
	}
	return nil
}

func validateQuantity(quantity int) error {
	if quantity < 0 {
		return fmt.Errorf("%w: quantity must be non-negative", domain.ErrValidation)
	}
	return nil
}

func validateNewItem(cmd CreateItemCommand) error {
	if cmd.ShopID == uuid.Nil {
		return fmt.Errorf("%w: shop_id is required", domain.ErrValidation)
	}
	if cmd.Name == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if cmd.Description == "" {
		return fmt.Errorf("%w: description is required", domain.ErrValidation)
	}
	if cmd.Category == "" {
		return fmt.Errorf("%w: category is required", domain.ErrValidation)
	}
	if err := validatePrice(cmd.Price); err != nil {
		return err
	}
	return validateQuantity(cmd.Quantity)
}

// validatePatch checks only the fields the caller included. Text fields and
// price/quantity reject explicit nulls; image_urls accepts null as "clear".
func validatePatch(patch domain.ItemPatch) error {
	if patch.Name.Set && (!patch.Name.Valid || patch.Name.Value == "") {
		return fmt.Errorf("%w: name must be non-empty", domain.ErrValidation)
	}
	if patch.Description.Set && (!patch.Description.Valid || patch.Description.Value == "") {
		return fmt.Errorf("%w: description must be non-empty", domain.ErrValidation)
	}
	if patch.Category.Set && (!patch.Category.Valid || patch.Category.Value == "") {
		return fmt.Errorf("%w: category must be non-empty", domain.ErrValidation)
	}
	if patch.Price.Set {
		if !patch.Price.Valid {
			return fmt.Errorf("%w: price must not be null", domain.ErrValidation)
		}
		if err := validatePrice(patch.Price.Value); err != nil {
			return err
		}
	}
	if patch.Quantity.Set {
		if !patch.Quantity.Valid {
			return fmt.Errorf("%w: quantity must not be null", domain.ErrValidation)
		}
		if err := validateQuantity(patch.Quantity.Value); err != nil {
			return err
		}
	}
	return nil
}
