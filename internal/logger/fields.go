package logger

import (
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/fitcheck/internal/product"
)

const (
	FieldProductID   = "product_id"
	FieldProductType = "product_type"
	FieldSource      = "source"
)

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts the provided key/value pairs into zap fields, trimming
// whitespace and omitting entries with empty keys or values.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		if key == "" {
			continue
		}

		value := strings.TrimSpace(field.Value)
		if value == "" {
			continue
		}

		result = append(result, zap.String(key, value))
	}

	return result
}

// WithFields attaches the provided fields to the logger, defaulting to a no-op logger when nil.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// ProductFields describes the checked product.
func ProductFields(p *product.Product) []zap.Field {
	if p == nil {
		return nil
	}

	fields := StringFields(
		StringField{Key: FieldProductID, Value: p.ExternalID},
		StringField{Key: "brand", Value: p.Brand},
		StringField{Key: "category", Value: p.Category},
	)
	return append(fields, zap.Int(FieldProductType, p.ProductType), zap.Int("sizes", len(p.Sizes)))
}

// WithProduct attaches the product fields to the logger.
func WithProduct(logger *zap.Logger, p *product.Product) *zap.Logger {
	return WithFields(logger, ProductFields(p)...)
}
