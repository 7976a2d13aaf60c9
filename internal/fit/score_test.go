package fit

import (
	"testing"

	"github.com/spigell/fitcheck/internal/product"
)

var calibrationWeights = map[product.Dimension]float64{
	"bust":   2,
	"sleeve": 1,
	"height": 0.5,
}

func mm(v int) *int { return &v }

func size(name string, values map[product.Dimension]int) product.Size {
	m := make(product.Measurements, len(values))
	for d, v := range values {
		m[d] = mm(v)
	}
	return product.Size{Name: name, Measurements: m}
}

func candidateSize() product.Size {
	return size("M", map[product.Dimension]int{"bust": 530, "sleeve": 770, "height": 690})
}

func TestComputeCalibration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		user        product.Size
		wantScore   float64
		wantSmaller bool
	}{
		{
			name:        "user garment is smaller everywhere",
			user:        size("", map[product.Dimension]int{"bust": 500, "sleeve": 730, "height": 665}),
			wantScore:   88.75,
			wantSmaller: false,
		},
		{
			name:        "store product runs smaller",
			user:        size("", map[product.Dimension]int{"bust": 540, "sleeve": 760, "height": 705}),
			wantScore:   96.25,
			wantSmaller: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Compute(tt.user, candidateSize(), calibrationWeights)
			if got.Score != tt.wantScore {
				t.Fatalf("expected score %v, got %v", tt.wantScore, got.Score)
			}
			if got.IsSmaller == nil || *got.IsSmaller != tt.wantSmaller {
				t.Fatalf("expected is_smaller %v, got %v", tt.wantSmaller, got.IsSmaller)
			}
		})
	}
}

func TestComputeNoComparableDimensions(t *testing.T) {
	t.Parallel()

	user := size("", map[product.Dimension]int{"waist": 700})
	got := Compute(user, candidateSize(), calibrationWeights)

	if got.Score != PerfectScore {
		t.Fatalf("expected neutral score, got %v", got.Score)
	}
	if got.IsSmaller != nil {
		t.Fatalf("expected nil direction, got %v", *got.IsSmaller)
	}
}

func TestComputeWithoutWeights(t *testing.T) {
	t.Parallel()

	user := size("", map[product.Dimension]int{"bust": 600})
	for _, weights := range []map[product.Dimension]float64{nil, {}} {
		got := Compute(user, candidateSize(), weights)
		if got.Score != PerfectScore || got.IsSmaller != nil {
			t.Fatalf("expected neutral result without weights, got %v %v", got.Score, got.IsSmaller)
		}
	}
}

func TestComputeSkipsNilMeasurements(t *testing.T) {
	t.Parallel()

	user := product.Size{Measurements: product.Measurements{
		"bust":   mm(540),
		"sleeve": nil,
		"height": nil,
	}}

	got := Compute(user, candidateSize(), calibrationWeights)
	// only bust is compared: 2 * 10 / 10
	if got.Score != 98 {
		t.Fatalf("expected 98, got %v", got.Score)
	}
	if got.IsSmaller == nil || !*got.IsSmaller {
		t.Fatalf("expected store product to be smaller")
	}
}

func TestComputeIdenticalSizes(t *testing.T) {
	t.Parallel()

	got := Compute(candidateSize(), candidateSize(), calibrationWeights)
	if got.Score != PerfectScore {
		t.Fatalf("expected perfect score, got %v", got.Score)
	}
	if got.IsSmaller == nil || *got.IsSmaller {
		t.Fatalf("expected tie to resolve to not smaller, got %v", got.IsSmaller)
	}
}

func TestComputeIgnoresUnweightedDimensions(t *testing.T) {
	t.Parallel()

	user := size("", map[product.Dimension]int{"bust": 540, "sleeve": 760, "height": 705})
	base := Compute(user, candidateSize(), calibrationWeights)

	user.Measurements["waist"] = mm(10)
	candidate := candidateSize()
	candidate.Measurements["hips"] = mm(9999)

	got := Compute(user, candidate, calibrationWeights)
	if got.Score != base.Score || *got.IsSmaller != *base.IsSmaller {
		t.Fatalf("extra dimensions changed the result: %+v vs %+v", got, base)
	}
}

func TestComputeSymmetry(t *testing.T) {
	t.Parallel()

	a := size("", map[product.Dimension]int{"bust": 540, "sleeve": 760, "height": 705})
	b := candidateSize()

	ab := Compute(a, b, calibrationWeights)
	ba := Compute(b, a, calibrationWeights)

	if ab.Score != ba.Score {
		t.Fatalf("expected symmetric score, got %v and %v", ab.Score, ba.Score)
	}
	if *ab.IsSmaller == *ba.IsSmaller {
		t.Fatalf("expected opposite directions")
	}
}

func TestComputeDoesNotClamp(t *testing.T) {
	t.Parallel()

	user := size("", map[product.Dimension]int{"bust": 1530})
	got := Compute(user, candidateSize(), calibrationWeights)
	if got.Score != -100 {
		t.Fatalf("expected unclamped -100, got %v", got.Score)
	}
	if Percent(got.Score) != 0 {
		t.Fatalf("expected percent 0, got %v", Percent(got.Score))
	}
	if Percent(150) != 100 {
		t.Fatalf("expected percent 100")
	}
}
