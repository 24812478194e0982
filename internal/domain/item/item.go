package item

import (
	"fmt"
	"regexp"
	"strings"
)

var idRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// Searchable text fields, in matching priority order.
const (
	FieldName           = "name"
	FieldAlternateNames = "alternateNames"
	FieldBrand          = "brand"
	FieldModel          = "model"
	FieldDescription    = "description"
)

// SearchFields returns the text fields in matching priority order.
func SearchFields() []string {
	return []string{FieldName, FieldAlternateNames, FieldBrand, FieldModel, FieldDescription}
}

// MaxDescriptionSize is the maximum description size in bytes.
const MaxDescriptionSize = 16384

// Attrs are the filterable, non-text attributes of an item.
type Attrs struct {
	LocationID  string
	CategoryID  string
	StorageType string
	ExpiresAt   int64 // unix seconds, 0 = does not expire
	Perishable  bool
}

// Item is an inventory record (immutable value object).
// The search engine only reads it; identity is the ID.
type Item struct {
	id             string
	name           string
	alternateNames []string
	brand          string
	model          string
	description    string
	attrs          Attrs
}

// New validates and creates an Item.
// ID: ^[a-zA-Z0-9_-]+$, 1-256 chars. Name: non-empty.
func New(
	id, name string, alternateNames []string,
	brand, model, description string, attrs Attrs,
) (Item, error) {
	if id == "" {
		return Item{}, fmt.Errorf("item ID is required")
	}
	if len(id) > 256 {
		return Item{}, fmt.Errorf("item ID too long (max 256)")
	}
	if !idRegex.MatchString(id) {
		return Item{}, fmt.Errorf("item ID must be alphanumeric with underscores and hyphens")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return Item{}, fmt.Errorf("item name is required")
	}
	if len(description) > MaxDescriptionSize {
		return Item{}, fmt.Errorf("description too large (max %d bytes)", MaxDescriptionSize)
	}
	if attrs.ExpiresAt < 0 {
		return Item{}, fmt.Errorf("expires_at must not be negative")
	}

	return Item{
		id:             id,
		name:           name,
		alternateNames: cleanList(alternateNames),
		brand:          strings.TrimSpace(brand),
		model:          strings.TrimSpace(model),
		description:    strings.TrimSpace(description),
		attrs:          attrs,
	}, nil
}

// Reconstruct creates an Item without validation (storage hydration).
func Reconstruct(
	id, name string, alternateNames []string,
	brand, model, description string, attrs Attrs,
) Item {
	return Item{
		id: id, name: name, alternateNames: alternateNames,
		brand: brand, model: model, description: description, attrs: attrs,
	}
}

// ID returns the item identifier.
func (i *Item) ID() string { return i.id }

// Name returns the primary display name.
func (i *Item) Name() string { return i.name }

// AlternateNames returns the alternative names.
func (i *Item) AlternateNames() []string { return i.alternateNames }

// Brand returns the manufacturer brand.
func (i *Item) Brand() string { return i.brand }

// Model returns the model designation.
func (i *Item) Model() string { return i.model }

// Description returns the free-text description.
func (i *Item) Description() string { return i.description }

// Attrs returns the filterable attributes.
func (i *Item) Attrs() Attrs { return i.attrs }

// Values returns the non-empty values of a text field. Unknown fields have none.
func (i *Item) Values(field string) []string {
	switch field {
	case FieldName:
		return single(i.name)
	case FieldAlternateNames:
		return i.alternateNames
	case FieldBrand:
		return single(i.brand)
	case FieldModel:
		return single(i.model)
	case FieldDescription:
		return single(i.description)
	default:
		return nil
	}
}

func single(s string) []string {
	if s == "" {
		return nil
	}
	return []string{s}
}

func cleanList(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
