package catalog

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/spigell/fitcheck/internal/product"
)

// ProductType is reference data describing how products of one type are compared.
type ProductType struct {
	ID        int    `json:"id" yaml:"id" mapstructure:"id"`
	Name      string `json:"name,omitempty" yaml:"name" mapstructure:"name"`
	Accessory bool   `json:"accessory,omitempty" yaml:"accessory" mapstructure:"accessory"`
	// Weights holds the comparison weight per dimension. Weights must be positive.
	Weights map[product.Dimension]float64 `json:"weights" yaml:"weights" mapstructure:"weights"`
	// CompatibleWith lists the type ids that may be compared against this type.
	CompatibleWith []int `json:"compatible_with" yaml:"compatible_with" mapstructure:"compatible_with"`
}

// IsCompatible reports whether products of type id may be compared against this type.
func (t ProductType) IsCompatible(id int) bool {
	return slices.Contains(t.CompatibleWith, id)
}

// Catalog is an immutable set of product types keyed by id.
type Catalog struct {
	types map[int]ProductType
}

type file struct {
	ProductTypes []ProductType `yaml:"product_types"`
}

// New builds a catalog from the provided product types after validating them.
func New(types []ProductType) (*Catalog, error) {
	c := &Catalog{types: make(map[int]ProductType, len(types))}
	for _, t := range types {
		if err := t.Validate(); err != nil {
			return nil, err
		}
		if _, ok := c.types[t.ID]; ok {
			return nil, fmt.Errorf("duplicate product type id %d", t.ID)
		}
		c.types[t.ID] = t.clone()
	}
	return c, nil
}

// Load reads a catalog from a YAML or JSON file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	return New(f.ProductTypes)
}

// Validate checks the weights. A type without weights is valid and compares as a perfect fit.
func (t ProductType) Validate() error {
	for d, w := range t.Weights {
		if d == "" {
			return fmt.Errorf("product type %d: empty dimension name", t.ID)
		}
		if w <= 0 {
			return fmt.Errorf("product type %d: weight for %q must be positive, got %v", t.ID, d, w)
		}
	}
	return nil
}

func (t ProductType) clone() ProductType {
	weights := make(map[product.Dimension]float64, len(t.Weights))
	for d, w := range t.Weights {
		weights[d] = w
	}
	t.Weights = weights
	t.CompatibleWith = slices.Clone(t.CompatibleWith)
	return t
}

// Lookup returns a copy of the product type with the given id.
func (c *Catalog) Lookup(id int) (ProductType, bool) {
	if c == nil {
		return ProductType{}, false
	}
	t, ok := c.types[id]
	if !ok {
		return ProductType{}, false
	}
	return t.clone(), true
}

func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.types)
}

// IDs returns all product type ids in ascending order.
func (c *Catalog) IDs() []int {
	if c == nil {
		return nil
	}
	ids := make([]int, 0, len(c.types))
	for id := range c.types {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

var ErrUnknownType = errors.New("unknown product type")

// Annotate fills the product category from its product type.
func (c *Catalog) Annotate(p *product.Product) error {
	t, ok := c.Lookup(p.ProductType)
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownType, p.ProductType)
	}
	if t.Accessory {
		p.Category = product.CategoryAccessory
	} else {
		p.Category = product.CategoryApparel
	}
	return nil
}
