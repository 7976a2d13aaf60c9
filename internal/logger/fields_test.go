package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/fitcheck/internal/product"
)

func TestStringFields(t *testing.T) {
	fields := StringFields(
		StringField{Key: "  source  ", Value: "  shop  "},
		StringField{Key: "ignored", Value: "   "},
		StringField{Key: "   ", Value: "empty key"},
	)

	if len(fields) != 1 {
		t.Fatalf("expected 1 field, got %d", len(fields))
	}

	if fields[0].Key != "source" || fields[0].String != "shop" {
		t.Fatalf("unexpected source field: %+v", fields[0])
	}

	if empty := StringFields(); len(empty) != 0 {
		t.Fatalf("expected empty fields, got %d", len(empty))
	}
}

func TestWithFields(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)

	enriched := WithFields(logger, zap.String("foo", "bar"))
	enriched.Info("test log")

	entries := observed.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}

	if ctx := entries[0].ContextMap(); ctx["foo"] != "bar" {
		t.Fatalf("expected field to be bar, got %q", ctx["foo"])
	}

	enriched = WithFields(nil, zap.String("baz", "qux"))
	if enriched == nil {
		t.Fatalf("expected fallback logger when nil provided")
	}

	// Ensure logging with the fallback logger does not panic.
	enriched.Info("another log")
}

func TestWithProduct(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)

	p := &product.Product{ExternalID: "sku-1", ProductType: 4, Sizes: []product.Size{{Name: "S"}, {Name: "M"}}}
	WithProduct(zap.New(core), p).Info("checking")

	entries := observed.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}

	ctx := entries[0].ContextMap()
	if ctx[FieldProductID] != "sku-1" {
		t.Fatalf("unexpected product id %v", ctx[FieldProductID])
	}
	if ctx[FieldProductType] != int64(4) {
		t.Fatalf("unexpected product type %v", ctx[FieldProductType])
	}
	if _, ok := ctx["brand"]; ok {
		t.Fatalf("empty brand must be omitted")
	}

	if fields := ProductFields(nil); fields != nil {
		t.Fatalf("expected no fields for nil product")
	}
}
