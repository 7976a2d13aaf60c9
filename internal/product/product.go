package product

const (
	CategoryApparel   = "apparel"
	CategoryAccessory = "accessory"
)

// Dimension names a body or garment measurement, e.g. "bust" or "sleeve".
type Dimension string

// Measurements maps a dimension to a value in millimeters.
// A nil value means the dimension was published without a number and must be skipped.
type Measurements map[Dimension]*int

// Get returns the value for the dimension and whether it is present.
func (m Measurements) Get(d Dimension) (int, bool) {
	v, ok := m[d]
	if !ok || v == nil {
		return 0, false
	}
	return *v, true
}

// Present returns how many dimensions carry a value.
func (m Measurements) Present() int {
	count := 0
	for _, v := range m {
		if v != nil {
			count++
		}
	}
	return count
}

// Size is one published size with its measurements.
type Size struct {
	Name         string       `json:"name,omitempty" yaml:"name"`
	Measurements Measurements `json:"measurements,omitempty" yaml:"measurements"`
}

// Product is the item being checked.
type Product struct {
	ExternalID  string `json:"external_id" yaml:"external_id" mapstructure:"external_id"`
	ProductType int    `json:"product_type" yaml:"product_type" mapstructure:"product_type"`
	Sizes       []Size `json:"sizes" yaml:"sizes"`
	// Category is derived from the product type, see catalog.Annotate.
	Category string `json:"category,omitempty" yaml:"category"`
	Brand    string `json:"brand,omitempty" yaml:"brand"`
	Style    string `json:"style,omitempty" yaml:"style"`
}

// IsAccessory reports whether the product was categorized as an accessory.
func (p *Product) IsAccessory() bool {
	return p.Category == CategoryAccessory
}

// IsOneSize reports whether the product publishes exactly one size.
func (p *Product) IsOneSize() bool {
	return len(p.Sizes) == 1
}

// SizeNames returns the names of all sizes in the published order.
func (p *Product) SizeNames() []string {
	names := make([]string, 0, len(p.Sizes))
	for _, s := range p.Sizes {
		names = append(names, s.Name)
	}
	return names
}

// HasSize reports whether the product publishes a size with the given name.
func (p *Product) HasSize(name string) bool {
	for _, s := range p.Sizes {
		if s.Name == name {
			return true
		}
	}
	return false
}
