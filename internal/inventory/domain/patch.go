package domain

import (
	"encoding/json"

	"github.com/lib/pq"
)

// Optional is a tri-state JSON field: absent, explicit null, or a value.
// Set reports whether the key appeared in the payload at all; Valid reports
// whether it carried a non-null value.
type Optional[T any] struct {
	Set   bool
	Valid bool
	Value T
}

// Some returns an Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Valid: true, Value: v}
}

// UnmarshalJSON is only invoked for keys present in the payload, which is
// what makes the absent/null distinction observable.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		return nil
	}
	if err := json.Unmarshal(data, &o.Value); err != nil {
		return err
	}
	o.Valid = true
	return nil
}

// MarshalJSON round-trips the carried value; absent and null both encode
// as null.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set || !o.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// ItemPatch carries the fields of a partial update. Absent fields leave the
// stored value untouched. Identifier, shop, timestamps and the active flag
// are not patchable.
type ItemPatch struct {
	Name        Optional[string]   `json:"name"`
	Description Optional[string]   `json:"description"`
	Category    Optional[string]   `json:"category"`
	Price       Optional[float64]  `json:"price"`
	Quantity    Optional[int]      `json:"quantity"`
	ImageURLs   Optional[[]string] `json:"image_urls"`
}

// Updates returns the column assignments for the fields present in the
// patch. An explicit image_urls null clears the list; for the other fields
// null is rejected at the validation boundary before this is called.
func (p ItemPatch) Updates() map[string]any {
	updates := make(map[string]any)
	if p.Name.Set {
		updates["name"] = p.Name.Value
	}
	if p.Description.Set {
		updates["description"] = p.Description.Value
	}
	if p.Category.Set {
		updates["category"] = p.Category.Value
	}
	if p.Price.Set {
		updates["price"] = p.Price.Value
	}
	if p.Quantity.Set {
		updates["quantity"] = p.Quantity.Value
	}
	if p.ImageURLs.Set {
		updates["image_urls"] = pq.StringArray(p.ImageURLs.Value)
	}
	return updates
}

// IsEmpty reports whether the patch carries no fields at all.
func (p ItemPatch) IsEmpty() bool {
	return !p.Name.Set && !p.Description.Set && !p.Category.Set &&
		!p.Price.Set && !p.Quantity.Set && !p.ImageURLs.Set
}
