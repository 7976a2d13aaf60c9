package product

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"
)

const (
	WardrobeIDField   = "ID"
	WardrobeTypeField = "ProductType"
)

type Wardrobe struct {
	Items []WardrobeItem
}

// WardrobeItem is a garment the shopper already owns.
type WardrobeItem struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name,omitempty" yaml:"name"`
	ProductType int    `json:"product_type" yaml:"product_type" mapstructure:"product_type"`
	Sizes       []Size `json:"sizes" yaml:"sizes"`
	Archived    bool   `json:"archived,omitempty" yaml:"archived"`
}

func (w *Wardrobe) Len() int {
	return len(w.Items)
}

func (w *Wardrobe) FindByID(id string) *WardrobeItem {
	for i := range w.Items {
		if w.Items[i].ID == id {
			return &w.Items[i]
		}
	}
	return nil
}

func (i *WardrobeItem) GetStringField(name string) string {
	switch name {
	case WardrobeIDField:
		return i.ID
	case WardrobeTypeField:
		return fmt.Sprintf("%d", i.ProductType)
	default:
		return ""
	}
}

// Measured reports whether at least one size carries a measurement.
func (i *WardrobeItem) Measured() bool {
	for _, s := range i.Sizes {
		if s.Measurements.Present() > 0 {
			return true
		}
	}
	return false
}

// Exclude removes items whose field matches one of the targets and returns the removed ids.
// The order of the remaining items is preserved.
func (w *Wardrobe) Exclude(name string, targets []string) []string {
	var excluded []string
	w.Items = slices.DeleteFunc(w.Items, func(item WardrobeItem) bool {
		if slices.Contains(targets, item.GetStringField(name)) {
			excluded = append(excluded, item.ID)
			return true
		}
		return false
	})
	return excluded
}

// ExcludeFunc removes items matching drop and returns the removed ids, preserving order.
func (w *Wardrobe) ExcludeFunc(drop func(WardrobeItem) bool) []string {
	var excluded []string
	w.Items = slices.DeleteFunc(w.Items, func(item WardrobeItem) bool {
		if drop(item) {
			excluded = append(excluded, item.ID)
			return true
		}
		return false
	})
	return excluded
}

// ExcludedItems is the on-disk list of wardrobe items that must never be used for comparison.
type ExcludedItems struct {
	Items []*ExcludedItem
}

type ExcludedItem struct {
	ID     string
	Name   string
	Reason string
}

func GetExcludedItemsFromFile(path string) (*ExcludedItems, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, err
	}

	if stat.Size() == 0 {
		return &ExcludedItems{}, nil
	}

	var excluded ExcludedItems
	if err := json.NewDecoder(file).Decode(&excluded); err != nil {
		return nil, err
	}
	return &excluded, nil
}

func (e *ExcludedItems) IDs() []string {
	ids := make([]string, 0, len(e.Items))
	for _, item := range e.Items {
		ids = append(ids, item.ID)
	}
	return ids
}

// Append adds the item unless an entry with the same ID is already listed.
func (e *ExcludedItems) Append(item *ExcludedItem) bool {
	if item == nil || slices.Contains(e.IDs(), item.ID) {
		return false
	}
	e.Items = append(e.Items, item)
	return true
}

func (e *ExcludedItems) ToFile(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(e); err != nil {
		return fmt.Errorf("writing exclude file %s: %w", path, err)
	}
	return nil
}

// ToExcluded builds an exclude entry for the item.
func (i *WardrobeItem) ToExcluded(reason string) *ExcludedItem {
	return &ExcludedItem{ID: i.ID, Name: i.Name, Reason: reason}
}
