package ai

import (
	"context"

	"github.com/spigell/fitcheck/internal/fit"
	"github.com/spigell/fitcheck/internal/product"
)

// SizeAdvisor recommends a size of the candidate from the shopper's body measurements.
type SizeAdvisor interface {
	Recommend(ctx context.Context, body product.Measurements, candidate *product.Product) (*fit.BodyProfile, error)
}
