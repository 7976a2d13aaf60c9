package shop

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/spigell/fitcheck/internal/catalog"
	"github.com/spigell/fitcheck/internal/fit"
	"github.com/spigell/fitcheck/internal/product"
)

// Files reads the inputs of a check from local YAML or JSON files.
type Files struct {
	CatalogPath     string
	ProductPath     string
	WardrobePath    string
	BodyProfilePath string
}

type productsFile struct {
	Products []product.Product `yaml:"products"`
}

type wardrobeFile struct {
	Items []product.WardrobeItem `yaml:"items"`
}

func (f *Files) Catalog(_ context.Context) (*catalog.Catalog, error) {
	if strings.TrimSpace(f.CatalogPath) == "" {
		return nil, errors.New("catalog file is not configured")
	}
	return catalog.Load(f.CatalogPath)
}

// Product returns the product with the given id from the products file.
// An empty id selects the first product.
func (f *Files) Product(_ context.Context, id string) (*product.Product, error) {
	var file productsFile
	if err := readYAML(f.ProductPath, &file); err != nil {
		return nil, fmt.Errorf("read products: %w", err)
	}

	for i := range file.Products {
		if id == "" || file.Products[i].ExternalID == id {
			return &file.Products[i], nil
		}
	}

	return nil, fmt.Errorf("product %q: %w", id, ErrNotFound)
}

func (f *Files) Wardrobe(_ context.Context) (*product.Wardrobe, error) {
	if strings.TrimSpace(f.WardrobePath) == "" {
		return &product.Wardrobe{}, nil
	}

	var file wardrobeFile
	if err := readYAML(f.WardrobePath, &file); err != nil {
		return nil, fmt.Errorf("read wardrobe: %w", err)
	}

	return &product.Wardrobe{Items: file.Items}, nil
}

// BodyProfile reads the recommendation file. The file is keyed by product id.
func (f *Files) BodyProfile(_ context.Context, productID string) (*fit.BodyProfile, error) {
	if strings.TrimSpace(f.BodyProfilePath) == "" {
		return nil, nil
	}

	profiles := make(map[string]*fit.BodyProfile)
	if err := readYAML(f.BodyProfilePath, &profiles); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read body profiles: %w", err)
	}

	return profiles[productID], nil
}

func readYAML(path string, target any) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return errors.New("file path is not configured")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	return yaml.Unmarshal(data, target)
}
