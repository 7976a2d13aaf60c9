package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/fitcheck/internal/ai"
	"github.com/spigell/fitcheck/internal/filtering"
	"github.com/spigell/fitcheck/internal/fit"
	"github.com/spigell/fitcheck/internal/logger"
	"github.com/spigell/fitcheck/internal/product"
	"github.com/spigell/fitcheck/internal/recommendation"
	"github.com/spigell/fitcheck/internal/shop"
)

// checkDeps aggregates collaborators of a single check.
type checkDeps struct {
	Source  shop.Source
	Filters *filtering.Filtering
	// Advisor and Body are optional.
	Advisor ai.SizeAdvisor
	Body    product.Measurements
	Logger  *zap.Logger
}

// outcome is everything a check produced, kept for the interactive menu.
type outcome struct {
	Product     *product.Product
	Wardrobe    *product.Wardrobe
	Match       fit.Match
	Scores      []fit.ItemScore
	BodyProfile *fit.BodyProfile
	Message     recommendation.Message
}

// evaluate fetches every input, then runs the engine synchronously.
func evaluate(ctx context.Context, deps checkDeps, productID string) (*outcome, error) {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}

	cat, err := deps.Source.Catalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	log.Debug("catalog loaded", zap.Int("product_types", cat.Len()))

	var (
		p        *product.Product
		wardrobe *product.Wardrobe
		body     *fit.BodyProfile
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		p, err = deps.Source.Product(gctx, productID)
		return err
	})
	g.Go(func() error {
		var err error
		wardrobe, err = deps.Source.Wardrobe(gctx)
		return err
	})
	if productID != "" {
		g.Go(func() error {
			var err error
			body, err = deps.Source.BodyProfile(gctx, productID)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if productID == "" {
		if body, err = deps.Source.BodyProfile(ctx, p.ExternalID); err != nil {
			return nil, err
		}
	}

	if err := cat.Annotate(p); err != nil {
		// Unknown types compare against nothing; the resolver falls back on its own.
		log.Warn("product type is not in the catalog", zap.Error(err))
	}

	log = logger.WithProduct(log, p)

	if body == nil && deps.Advisor != nil && deps.Body.Present() > 0 && !p.IsAccessory() {
		advised, err := deps.Advisor.Recommend(ctx, deps.Body, p)
		if err != nil {
			log.Warn("size advisor failed", zap.Error(err))
		} else {
			body = advised
		}
	}

	if deps.Filters != nil {
		if wardrobe, err = deps.Filters.RunFilters(ctx, wardrobe); err != nil {
			return nil, fmt.Errorf("filtering wardrobe: %w", err)
		}
	}

	match := fit.FindBestMatch(wardrobe.Items, *p, cat)
	scores := fit.ScoreWardrobe(wardrobe.Items, *p, cat)
	msg := recommendation.Resolve(*p, &match, body)

	fields := []zap.Field{
		zap.Int("wardrobe_items", wardrobe.Len()),
		zap.Int("compared_items", len(scores)),
		zap.Bool("matched", match.Valid()),
		zap.Bool("body_profile", body != nil),
		zap.String("rule", msg.Rule),
	}
	if match.Valid() {
		fields = append(fields,
			zap.String("best_item", match.BestUserItem.ID),
			zap.Float64("best_fit_score", match.BestFitScore),
		)
	}
	log.Info("recommendation resolved", fields...)

	return &outcome{
		Product:     p,
		Wardrobe:    wardrobe,
		Match:       match,
		Scores:      scores,
		BodyProfile: body,
		Message:     msg,
	}, nil
}

// bodyMeasurements converts the configured body map into measurements.
func bodyMeasurements(cfg map[string]int) product.Measurements {
	if len(cfg) == 0 {
		return nil
	}
	m := make(product.Measurements, len(cfg))
	for d, v := range cfg {
		d = strings.TrimSpace(strings.ToLower(d))
		if d == "" || v <= 0 {
			continue
		}
		value := v
		m[product.Dimension(d)] = &value
	}
	return m
}

func buildSource(cfg *Config, log *zap.Logger) (shop.Source, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Source)) {
	case sourceFiles:
		if cfg.Files == nil {
			return nil, errors.New("files section is required for the files source")
		}
		return &shop.Files{
			CatalogPath:     cfg.Files.Catalog,
			ProductPath:     cfg.Files.Product,
			WardrobePath:    cfg.Files.Wardrobe,
			BodyProfilePath: cfg.Files.BodyProfile,
		}, nil
	case sourceShop, "":
		if cfg.Shop == nil || strings.TrimSpace(cfg.Shop.URL) == "" {
			return nil, errors.New("shop.url is required for the shop source")
		}
		token, err := resolveToken(cfg.Shop)
		if err != nil {
			return nil, err
		}
		client := shop.New(strings.TrimRight(cfg.Shop.URL, "/"), token, log)
		if cfg.Shop.UserAgent != "" {
			client.UserAgent = cfg.Shop.UserAgent
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unsupported source: %s", cfg.Source)
	}
}

func buildFilters(cfg *WardrobeConfig, excludeFile string, log *zap.Logger) *filtering.Filtering {
	skipUnmeasured := false
	if cfg != nil {
		if excludeFile == "" {
			excludeFile = cfg.ExcludeFile
		}
		skipUnmeasured = cfg.SkipUnmeasured
	}

	steps := []filtering.Filter{
		filtering.NewArchived(log),
		filtering.NewExcludeFile(strings.TrimSpace(excludeFile), log),
		filtering.NewUnmeasured(log),
	}

	f := filtering.New(steps, log)
	if !skipUnmeasured {
		f.DisableByName("unmeasured", "wardrobe.skip-unmeasured is not set")
	}

	return f
}
