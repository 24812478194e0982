// Package seed reads synonym groups and catalog items from YAML files.
package seed

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/itemsearch/internal/domain"
	"github.com/kailas-cloud/itemsearch/internal/domain/item"
	domsyn "github.com/kailas-cloud/itemsearch/internal/domain/synonym"
)

type synonymFile struct {
	Groups []synonymRow `yaml:"groups"`
}

type synonymRow struct {
	Canonical string   `yaml:"canonical"`
	Category  string   `yaml:"category"`
	Synonyms  []string `yaml:"synonyms"`
}

type itemFile struct {
	Items []itemRow `yaml:"items"`
}

type itemRow struct {
	ID             string   `yaml:"id"`
	Name           string   `yaml:"name"`
	AlternateNames []string `yaml:"alternate_names"`
	Brand          string   `yaml:"brand"`
	Model          string   `yaml:"model"`
	Description    string   `yaml:"description"`
	LocationID     string   `yaml:"location_id"`
	CategoryID     string   `yaml:"category_id"`
	StorageType    string   `yaml:"storage_type"`
	ExpiresAt      int64    `yaml:"expires_at"`
	Perishable     bool     `yaml:"perishable"`
}

// ParseSynonyms decodes a synonym seed document. Seeded groups are system groups.
func ParseSynonyms(data []byte) ([]domsyn.Group, error) {
	var f synonymFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse synonyms: %w", err)
	}
	groups := make([]domsyn.Group, 0, len(f.Groups))
	for i, row := range f.Groups {
		g, err := domsyn.New(row.Canonical, row.Synonyms, row.Category, true)
		if err != nil {
			return nil, fmt.Errorf("group %d: %w: %w", i, domain.ErrInvalidSynonymGroup, err)
		}
		groups = append(groups, g)
	}
	return groups, nil
}

// ParseItems decodes a catalog seed document.
func ParseItems(data []byte) ([]item.Item, error) {
	var f itemFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse items: %w", err)
	}
	seen := make(map[string]struct{}, len(f.Items))
	items := make([]item.Item, 0, len(f.Items))
	for i, row := range f.Items {
		it, err := item.New(row.ID, row.Name, row.AlternateNames, row.Brand, row.Model, row.Description,
			item.Attrs{
				LocationID:  row.LocationID,
				CategoryID:  row.CategoryID,
				StorageType: row.StorageType,
				ExpiresAt:   row.ExpiresAt,
				Perishable:  row.Perishable,
			})
		if err != nil {
			return nil, fmt.Errorf("item %d: %w: %w", i, domain.ErrInvalidItem, err)
		}
		if _, dup := seen[row.ID]; dup {
			return nil, fmt.Errorf("item %d: %w: duplicate id %q", i, domain.ErrInvalidItem, row.ID)
		}
		seen[row.ID] = struct{}{}
		items = append(items, it)
	}
	return items, nil
}

// LoadSynonyms reads and parses a synonym seed file.
func LoadSynonyms(path string) ([]domsyn.Group, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return ParseSynonyms(data)
}

// LoadItems reads and parses a catalog seed file.
func LoadItems(path string) ([]item.Item, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return ParseItems(data)
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}
