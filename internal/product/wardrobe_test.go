package product

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func mm(v int) *int { return &v }

func testWardrobe() *Wardrobe {
	return &Wardrobe{Items: []WardrobeItem{
		{ID: "a", ProductType: 1, Sizes: []Size{{Name: "M", Measurements: Measurements{"bust": mm(500)}}}},
		{ID: "b", ProductType: 2, Sizes: []Size{{Name: "L", Measurements: Measurements{"bust": nil}}}},
		{ID: "c", ProductType: 1},
		{ID: "d", ProductType: 1, Archived: true},
	}}
}

func TestWardrobeExcludePreservesOrder(t *testing.T) {
	t.Parallel()

	w := testWardrobe()
	removed := w.Exclude(WardrobeIDField, []string{"c", "a", "missing"})

	if !slices.Equal(removed, []string{"a", "c"}) {
		t.Fatalf("unexpected removed ids %v", removed)
	}

	var left []string
	for _, item := range w.Items {
		left = append(left, item.ID)
	}
	if !slices.Equal(left, []string{"b", "d"}) {
		t.Fatalf("unexpected items left %v", left)
	}
}

func TestWardrobeExcludeByType(t *testing.T) {
	t.Parallel()

	w := testWardrobe()
	removed := w.Exclude(WardrobeTypeField, []string{"1"})
	if len(removed) != 3 || w.Len() != 1 || w.Items[0].ID != "b" {
		t.Fatalf("unexpected result: removed %v, left %+v", removed, w.Items)
	}
}

func TestWardrobeExcludeFunc(t *testing.T) {
	t.Parallel()

	w := testWardrobe()
	removed := w.ExcludeFunc(func(item WardrobeItem) bool { return !item.Measured() })

	if !slices.Equal(removed, []string{"b", "c", "d"}) {
		t.Fatalf("unexpected removed ids %v", removed)
	}
	if w.FindByID("a") == nil || w.FindByID("b") != nil {
		t.Fatalf("unexpected wardrobe %+v", w.Items)
	}
}

func TestMeasurements(t *testing.T) {
	t.Parallel()

	m := Measurements{"bust": mm(0), "waist": nil}
	if v, ok := m.Get("bust"); !ok || v != 0 {
		t.Fatalf("expected present zero measurement, got %d %v", v, ok)
	}
	if _, ok := m.Get("waist"); ok {
		t.Fatalf("expected nil measurement to be absent")
	}
	if _, ok := m.Get("hips"); ok {
		t.Fatalf("expected unknown dimension to be absent")
	}
	if m.Present() != 1 {
		t.Fatalf("expected a single present measurement, got %d", m.Present())
	}
}

func TestProductSizes(t *testing.T) {
	t.Parallel()

	p := Product{Sizes: []Size{{Name: "S"}, {Name: "M"}}}
	if p.IsOneSize() {
		t.Fatalf("two sizes are not one size")
	}
	if !p.HasSize("M") || p.HasSize("XL") {
		t.Fatalf("unexpected HasSize result")
	}
	if !slices.Equal(p.SizeNames(), []string{"S", "M"}) {
		t.Fatalf("unexpected size names %v", p.SizeNames())
	}

	p.Sizes = p.Sizes[:1]
	if !p.IsOneSize() {
		t.Fatalf("single size expected to be one size")
	}
}

func TestExcludedItemsRoundTripFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "exclude.json")
	if err := os.WriteFile(path, nil, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	excluded, err := GetExcludedItemsFromFile(path)
	if err != nil {
		t.Fatalf("empty file must be accepted: %v", err)
	}

	item := testWardrobe().FindByID("a")
	if !excluded.Append(item.ToExcluded("shrunk")) {
		t.Fatalf("expected item to be appended")
	}
	if excluded.Append(item.ToExcluded("again")) {
		t.Fatalf("duplicate id must not be appended")
	}
	if err := excluded.ToFile(path); err != nil {
		t.Fatalf("to file: %v", err)
	}

	loaded, err := GetExcludedItemsFromFile(path)
	if err != nil {
		t.Fatalf("reading back: %v", err)
	}
	if !slices.Equal(loaded.IDs(), []string{"a"}) || loaded.Items[0].Reason != "shrunk" {
		t.Fatalf("unexpected excluded items %+v", loaded.Items)
	}
}
