package filtering

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spigell/fitcheck/internal/product"
)

type archivedFilter struct {
	logger *zap.Logger
}

// NewArchived creates a filter that removes returned or archived wardrobe items.
func NewArchived(logger *zap.Logger) Filter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &archivedFilter{logger: logger}
}

func (f *archivedFilter) Name() string { return "archived" }

func (f *archivedFilter) Disable(string) {}

func (f *archivedFilter) IsEnabled() bool { return true }

func (f *archivedFilter) Validate() error { return nil }

func (f *archivedFilter) Apply(_ context.Context, w *product.Wardrobe) (*product.Wardrobe, Step, error) {
	initial := w.Len()
	excluded := w.ExcludeFunc(func(item product.WardrobeItem) bool { return item.Archived })
	if len(excluded) > 0 {
		f.logger.Info("excluding archived wardrobe items",
			zap.Strings("excluded_items", excluded),
			zap.Int("items_left", w.Len()),
		)
	}

	return w, Step{Initial: initial, Dropped: len(excluded), Left: w.Len()}, nil
}

type excludeFileFilter struct {
	path   string
	logger *zap.Logger
}

// NewExcludeFile creates a filter that removes wardrobe items listed in the exclude file.
func NewExcludeFile(path string, logger *zap.Logger) Filter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &excludeFileFilter{path: path, logger: logger}
}

func (f *excludeFileFilter) Name() string { return "exclude_file" }

func (f *excludeFileFilter) Disable(string) {}

func (f *excludeFileFilter) IsEnabled() bool { return true }

func (f *excludeFileFilter) Validate() error { return nil }

func (f *excludeFileFilter) Apply(_ context.Context, w *product.Wardrobe) (*product.Wardrobe, Step, error) {
	initial := w.Len()
	if f.path == "" {
		return w, Step{Initial: initial, Dropped: 0, Left: w.Len()}, nil
	}

	excluded, err := product.GetExcludedItemsFromFile(f.path)
	if err != nil {
		return w, Step{}, fmt.Errorf("getting excluded items from file: %w", err)
	}

	removed := w.Exclude(product.WardrobeIDField, excluded.IDs())
	if len(removed) > 0 {
		f.logger.Info("excluding wardrobe items based on exclude file",
			zap.String("path", f.path),
			zap.Strings("excluded_items", removed),
			zap.Int("items_left", w.Len()),
		)
	}

	return w, Step{Initial: initial, Dropped: len(removed), Left: w.Len()}, nil
}

func (f *excludeFileFilter) Status() Status {
	details := map[string]string{}
	if f.path != "" {
		details["path"] = f.path
	}
	return Status{Name: f.Name(), Enabled: true, Details: details}
}

type unmeasuredFilter struct {
	disabled bool
	reason   string
	logger   *zap.Logger
}

// NewUnmeasured creates a filter that removes wardrobe items without any measurement.
// Such items would otherwise compare as a neutral perfect score.
func NewUnmeasured(logger *zap.Logger) Filter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &unmeasuredFilter{logger: logger}
}

func (f *unmeasuredFilter) Name() string { return "unmeasured" }

func (f *unmeasuredFilter) Disable(reason string) {
	f.disabled = true
	f.reason = reason
}

func (f *unmeasuredFilter) IsEnabled() bool { return !f.disabled }

func (f *unmeasuredFilter) Validate() error { return nil }

func (f *unmeasuredFilter) Apply(_ context.Context, w *product.Wardrobe) (*product.Wardrobe, Step, error) {
	initial := w.Len()
	excluded := w.ExcludeFunc(func(item product.WardrobeItem) bool { return !item.Measured() })
	if len(excluded) > 0 {
		f.logger.Info("excluding wardrobe items without measurements",
			zap.Strings("excluded_items", excluded),
			zap.Int("items_left", w.Len()),
		)
	}

	return w, Step{Initial: initial, Dropped: len(excluded), Left: w.Len()}, nil
}

func (f *unmeasuredFilter) Status() Status {
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason}
}
