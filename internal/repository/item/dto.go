package item

import (
	"strconv"
	"strings"

	"github.com/kailas-cloud/itemsearch/internal/domain/item"
)

// Hash field names. Text fields are indexed as TEXT, attributes as TAG/NUMERIC.
const (
	hashID             = "id"
	hashName           = "name"
	hashAlternateNames = "alternate_names"
	hashBrand          = "brand"
	hashModel          = "model"
	hashDescription    = "description"
	hashLocationID     = "location_id"
	hashCategoryID     = "category_id"
	hashStorageType    = "storage_type"
	hashPerishable     = "perishable"
	hashExpiresAt      = "expires_at"
)

// alternate names are newline-joined: newlines tokenize as whitespace in TEXT fields
const altSeparator = "\n"

// textFields maps domain search fields to their hash fields.
var textFields = map[string]string{
	item.FieldName:           hashName,
	item.FieldAlternateNames: hashAlternateNames,
	item.FieldBrand:          hashBrand,
	item.FieldModel:          hashModel,
	item.FieldDescription:    hashDescription,
}

// itemToHash converts an item into HSET fields. Empty optional fields and a zero
// expiry are omitted, which keeps them out of the index.
func itemToHash(it item.Item) map[string]string {
	m := map[string]string{
		hashID:         it.ID(),
		hashName:       it.Name(),
		hashPerishable: strconv.FormatBool(it.Attrs().Perishable),
	}
	put := func(k, v string) {
		if v != "" {
			m[k] = v
		}
	}
	put(hashAlternateNames, strings.Join(it.AlternateNames(), altSeparator))
	put(hashBrand, it.Brand())
	put(hashModel, it.Model())
	put(hashDescription, it.Description())

	attrs := it.Attrs()
	put(hashLocationID, attrs.LocationID)
	put(hashCategoryID, attrs.CategoryID)
	put(hashStorageType, attrs.StorageType)
	if attrs.ExpiresAt > 0 {
		m[hashExpiresAt] = strconv.FormatInt(attrs.ExpiresAt, 10)
	}
	return m
}

// itemFromHash hydrates an item from hash fields. id is used when the hash
// predates the id field.
func itemFromHash(id string, m map[string]string) item.Item {
	if v := m[hashID]; v != "" {
		id = v
	}

	var alt []string
	if raw := m[hashAlternateNames]; raw != "" {
		alt = strings.Split(raw, altSeparator)
	}

	attrs := item.Attrs{
		LocationID:  m[hashLocationID],
		CategoryID:  m[hashCategoryID],
		StorageType: m[hashStorageType],
	}
	attrs.Perishable, _ = strconv.ParseBool(m[hashPerishable])
	if raw := m[hashExpiresAt]; raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
			attrs.ExpiresAt = v
		}
	}

	return item.Reconstruct(id, m[hashName], alt, m[hashBrand], m[hashModel], m[hashDescription], attrs)
}
