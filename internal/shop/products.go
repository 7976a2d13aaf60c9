package shop

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/url"
	"reflect"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"github.com/spigell/fitcheck/internal/catalog"
	"github.com/spigell/fitcheck/internal/fit"
	"github.com/spigell/fitcheck/internal/product"
)

const (
	ProductTypesPath = "/product-types"
	ProductsPath     = "/products"
	WardrobePath     = "/users/me/products"
)

type productTypesResponse struct {
	ProductTypes []catalog.ProductType `json:"product_types"`
}

// Catalog loads the product type catalog.
func (c *Client) Catalog(ctx context.Context) (*catalog.Catalog, error) {
	var resp productTypesResponse
	if err := c.getJSON(ctx, c.APIURL+ProductTypesPath, &resp); err != nil {
		return nil, fmt.Errorf("get product types: %w", err)
	}

	return catalog.New(resp.ProductTypes)
}

// Product loads the product with the given external id.
func (c *Client) Product(ctx context.Context, id string) (*product.Product, error) {
	if id == "" {
		return nil, fmt.Errorf("product id is required")
	}

	var p product.Product
	if err := c.getJSON(ctx, fmt.Sprintf("%s%s/%s", c.APIURL, ProductsPath, url.PathEscape(id)), &p); err != nil {
		return nil, fmt.Errorf("get product %s: %w", id, err)
	}

	if p.ExternalID == "" {
		p.ExternalID = id
	}

	return &p, nil
}

// Wardrobe loads the shopper's own products in the order the API returns them.
func (c *Client) Wardrobe(ctx context.Context) (*product.Wardrobe, error) {
	q := url.Values{}
	q.Set("per_page", perPage)

	items, err := c.GetItems(ctx, c.APIURL+WardrobePath, q)
	if err != nil {
		return nil, fmt.Errorf("get user products: %w", err)
	}

	var owned []product.WardrobeItem
	cfg := &mapstructure.DecoderConfig{
		Result:     &owned,
		TagName:    "json",
		DecodeHook: wholeNumbers,
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(items); err != nil {
		return nil, fmt.Errorf("decode user products: %w", err)
	}

	c.logger.Debug("got user products", zap.Int("count", len(owned)))

	return &product.Wardrobe{Items: owned}, nil
}

// wholeNumbers rejects fractional values for integer fields, the same way encoding/json does for products.
func wholeNumbers(_ reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	switch to.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
	default:
		return data, nil
	}

	if f, ok := data.(float64); ok && f != math.Trunc(f) {
		return nil, fmt.Errorf("%v is not a whole number", f)
	}
	return data, nil
}

// BodyProfile loads the size recommendation computed from the shopper's body measurements.
// A response without a size name that also says the product will not fit carries no recommendation
// and is reported as nil.
func (c *Client) BodyProfile(ctx context.Context, productID string) (*fit.BodyProfile, error) {
	var profile fit.BodyProfile

	path := fmt.Sprintf("%s%s/%s/size-recommendation", c.APIURL, ProductsPath, url.PathEscape(productID))
	if err := c.getJSON(ctx, path, &profile); err != nil {
		if errors.Is(err, ErrNotFound) {
			c.logger.Debug("no body profile recommendation", zap.String("product_id", productID))
			return nil, nil
		}
		return nil, fmt.Errorf("get size recommendation: %w", err)
	}

	if profile.RecommendedSizeName == "" && !profile.WillFit {
		return nil, nil
	}

	return &profile, nil
}
