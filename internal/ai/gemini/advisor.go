package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	_ "embed"

	"go.uber.org/zap"

	"github.com/spigell/fitcheck/internal/ai"
	"github.com/spigell/fitcheck/internal/fit"
	"github.com/spigell/fitcheck/internal/product"
	"github.com/spigell/fitcheck/internal/utils"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// Advisor asks Gemini for a size recommendation based on body measurements.
type Advisor struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

//go:embed prompt.md
var promptTemplate string

const defaultMaxLogLength = 200

var _ ai.SizeAdvisor = (*Advisor)(nil)

// Recommendation is the parsed answer of the model.
type Recommendation struct {
	Size    string
	WillFit bool
	Reason  string
}

func NewAdvisor(generator contentGenerator, maxLogLength int, logger *zap.Logger) *Advisor {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Advisor{
		generator: generator,
		logger:    logger,
		maxLogLen: maxLogLength,
	}
}

func (a *Advisor) Recommend(ctx context.Context, body product.Measurements, candidate *product.Product) (*fit.BodyProfile, error) {
	if candidate == nil {
		return nil, errors.New("product is required")
	}
	if body.Present() == 0 {
		return nil, errors.New("body measurements are required")
	}
	if len(candidate.Sizes) == 0 {
		return nil, fmt.Errorf("product %s has no sizes", candidate.ExternalID)
	}

	bodyJSON, err := json.MarshalIndent(body, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal body payload: %w", err)
	}

	productJSON, err := json.MarshalIndent(map[string]any{
		"id":    candidate.ExternalID,
		"brand": candidate.Brand,
		"style": candidate.Style,
		"sizes": candidate.Sizes,
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal product payload: %w", err)
	}

	prompt := buildPrompt(string(bodyJSON), string(productJSON))

	a.logger.Debug("gemini generate content request",
		zap.String("product_id", candidate.ExternalID),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, a.maxLogLen)),
	)

	raw, err := a.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, err
	}

	a.logger.Debug("gemini generate content response",
		zap.String("product_id", candidate.ExternalID),
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, a.maxLogLen)),
	)

	rec, err := parseResponse(raw)
	if err != nil {
		return nil, err
	}

	size, err := resolveSize(rec.Size, candidate)
	if err != nil {
		return nil, err
	}

	a.logger.Info("size recommended by ai",
		zap.String("product_id", candidate.ExternalID),
		zap.String("size", size),
		zap.Bool("will_fit", rec.WillFit),
		zap.String("reason", rec.Reason),
	)

	return &fit.BodyProfile{RecommendedSizeName: size, WillFit: rec.WillFit}, nil
}

func buildPrompt(bodyJSON, productJSON string) string {
	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Body:\n{{BODY_JSON}}\n\nGarment:\n{{PRODUCT_JSON}}\n\nJSON Response:"
	}
	prompt := strings.ReplaceAll(template, "{{BODY_JSON}}", bodyJSON)
	prompt = strings.ReplaceAll(prompt, "{{PRODUCT_JSON}}", productJSON)
	return prompt
}

// resolveSize maps the model answer onto one of the published size names.
func resolveSize(answer string, candidate *product.Product) (string, error) {
	answer = strings.TrimSpace(answer)
	for _, name := range candidate.SizeNames() {
		if strings.EqualFold(name, answer) {
			return name, nil
		}
	}

	if candidate.IsOneSize() {
		return candidate.Sizes[0].Name, nil
	}

	return "", fmt.Errorf("gemini recommended unknown size %q, expected one of %v", answer, candidate.SizeNames())
}

func parseResponse(raw string) (*Recommendation, error) {
	cleaned := extractJSON(raw)

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, fmt.Errorf("parse gemini response: %w", err)
	}

	return &Recommendation{
		Size:    coerceString(data["recommended_size"]),
		WillFit: coerceBool(data["will_fit"]),
		Reason:  coerceString(data["reason"]),
	}, nil
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}

func coerceBool(v any) bool {
	switch val := v.(type) {
	case bool:
		return val
	case string:
		lower := strings.ToLower(strings.TrimSpace(val))
		return lower == "true" || lower == "yes"
	case float64:
		return val != 0
	default:
		return false
	}
}

func coerceString(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case float64:
		return strings.TrimSpace(fmt.Sprintf("%v", val))
	case nil:
		return ""
	default:
		bytes, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(bytes)
	}
}
