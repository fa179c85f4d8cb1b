package paint

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tessellaviz/tessella/pkg/cache"
	"github.com/tessellaviz/tessella/pkg/layout"
	"github.com/tessellaviz/tessella/pkg/observability"
)

// Runner encapsulates paint execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store paint results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute paints a layout with caching.
func (r *Runner) Execute(ctx context.Context, l layout.Layout, opts Options) (*Result, error) {
	result, hit, err := r.PaintWithCacheInfo(ctx, l, opts)
	if err != nil {
		return nil, err
	}
	result.CacheInfo.Hit = hit
	return result, nil
}

// PaintWithCacheInfo paints a layout with caching and returns cache hit info.
func (r *Runner) PaintWithCacheInfo(ctx context.Context, l layout.Layout, opts Options) (*Result, bool, error) {
	r.applyLogger(&opts)

	// Compute cache key from the layout content and effective paint inputs
	layoutData, err := layout.Marshal(l)
	if err != nil {
		return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	layoutHash := cache.Hash(layoutData)
	mutation, seed := opts.Effective(&l)
	cacheKey := r.Keyer.PaintKey(layoutHash, cache.PaintKeyOpts{
		Mutation: mutation,
		Seed:     seed,
	})

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if cached, err := UnmarshalResult(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "paint")
				return cached, true, nil // Cache hit
			}
			// If deserialization fails, fall through to recompute
		}
		observability.Cache().OnCacheMiss(ctx, "paint")
	}

	// Paint
	start := time.Now()
	observability.Paint().OnPaintStart(ctx, l.Name, len(l.Nodes))
	result, err := Paint(&l, opts)
	observability.Paint().OnPaintComplete(ctx, l.Name, len(l.Nodes), time.Since(start), err)
	if err != nil {
		return nil, false, err
	}
	result.LayoutHash = layoutHash

	r.Logger.Info("painted layout",
		"layout", l.Name,
		"nodes", result.Stats.NodeCount,
		"duration", result.Stats.PaintTime)

	// Cache the result
	if data, err := MarshalResult(result); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLPaint); err == nil {
			observability.Cache().OnCacheSet(ctx, "paint", len(data))
		}
	}

	return result, false, nil // Cache miss
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
