package fit

import (
	"github.com/spigell/fitcheck/internal/catalog"
	"github.com/spigell/fitcheck/internal/product"
)

// Match is the best comparison found across the wardrobe.
type Match struct {
	BestFitScore float64               `json:"best_fit_score"`
	BestUserItem *product.WardrobeItem `json:"best_user_item,omitempty"`
	// BestItemSize is the candidate size closest to the matched wardrobe item.
	BestItemSize          *product.Size `json:"best_item_size,omitempty"`
	IsStoreProductSmaller *bool         `json:"is_store_product_smaller,omitempty"`
}

// Valid reports whether a wardrobe item was matched.
func (m *Match) Valid() bool {
	return m != nil && m.BestUserItem != nil
}

// BodyProfile is a size recommendation computed outside of the engine from the shopper's body measurements.
type BodyProfile struct {
	RecommendedSizeName string `json:"recommended_size_name" yaml:"recommended_size_name" mapstructure:"recommended_size_name"`
	WillFit             bool   `json:"will_fit" yaml:"will_fit" mapstructure:"will_fit"`
}

// ItemScore is the best comparison of a single wardrobe item against the candidate.
type ItemScore struct {
	Item          product.WardrobeItem
	UserSize      product.Size
	CandidateSize product.Size
	Result        Result
}

// FindBestMatch scores every compatible wardrobe item against the candidate and returns the best one.
// Equal scores keep the item that comes first in the wardrobe.
func FindBestMatch(wardrobe []product.WardrobeItem, candidate product.Product, cat *catalog.Catalog) Match {
	var best Match

	for _, scored := range ScoreWardrobe(wardrobe, candidate, cat) {
		if best.Valid() && scored.Result.Score <= best.BestFitScore {
			continue
		}

		item := scored.Item
		size := scored.CandidateSize
		best = Match{
			BestFitScore:          scored.Result.Score,
			BestUserItem:          &item,
			BestItemSize:          &size,
			IsStoreProductSmaller: scored.Result.IsSmaller,
		}
	}

	return best
}

// ScoreWardrobe returns, in wardrobe order, the best comparison for every item compatible with the candidate.
// Items without sizes are skipped.
func ScoreWardrobe(wardrobe []product.WardrobeItem, candidate product.Product, cat *catalog.Catalog) []ItemScore {
	candidateType, ok := cat.Lookup(candidate.ProductType)
	if !ok {
		return nil
	}

	var scores []ItemScore
	for _, item := range wardrobe {
		if !candidateType.IsCompatible(item.ProductType) {
			continue
		}

		scored, ok := bestForItem(item, candidate, candidateType.Weights)
		if !ok {
			continue
		}
		scores = append(scores, scored)
	}

	return scores
}

func bestForItem(item product.WardrobeItem, candidate product.Product, weights map[product.Dimension]float64) (ItemScore, bool) {
	var (
		best  ItemScore
		found bool
	)

	for _, userSize := range item.Sizes {
		for _, candidateSize := range candidate.Sizes {
			res := Compute(userSize, candidateSize, weights)
			if found && res.Score <= best.Result.Score {
				continue
			}
			best = ItemScore{Item: item, UserSize: userSize, CandidateSize: candidateSize, Result: res}
			found = true
		}
	}

	return best, found
}
