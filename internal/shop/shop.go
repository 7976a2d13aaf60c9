package shop

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/fitcheck/internal/catalog"
	"github.com/spigell/fitcheck/internal/fit"
	"github.com/spigell/fitcheck/internal/product"
)

const (
	userAgent = "spigell/fitcheck (spigelly@gmail.com)"
	// Max value for user products per page.
	perPage = "100"
)

// ErrNotFound is returned when the shop API answers 404.
var ErrNotFound = errors.New("not found")

// Source provides everything the engine needs for one check.
type Source interface {
	Catalog(ctx context.Context) (*catalog.Catalog, error)
	Product(ctx context.Context, id string) (*product.Product, error)
	Wardrobe(ctx context.Context) (*product.Wardrobe, error)
	// BodyProfile returns nil without an error when no recommendation is available.
	BodyProfile(ctx context.Context, productID string) (*fit.BodyProfile, error)
}

type Client struct {
	token      string
	logger     *zap.Logger
	HTTPClient *http.Client
	UserAgent  string
	APIURL     string
}

func New(apiURL, token string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		token:  token,
		APIURL: apiURL,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger:    logger,
		UserAgent: userAgent,
	}
}

var (
	_ Source = (*Client)(nil)
	_ Source = (*Files)(nil)
)
