// Package paint computes the visual attributes of every node in a laid-out
// treemap: colour (explicit, root, or inherited with bounded random
// perturbation), integer canvas bounds, labels and geographic centres.
//
// This package is the core engine shared by the CLI and the API server. The
// entry points are Paint, which runs a single attribute pass over a layout,
// and Runner, which adds content-addressed caching on top.
//
// # Usage
//
// Paint a layout directly:
//
//	result, err := paint.Paint(&l, paint.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, a := range result.Attrs {
//	    fmt.Println(a.ID, a.Color)
//	}
//
// Or through a caching runner:
//
//	runner := paint.NewRunner(fileCache, nil, logger)
//	result, err := runner.Execute(ctx, l, paint.Options{})
package paint

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tessellaviz/tessella/pkg/geom"
	"github.com/tessellaviz/tessella/pkg/layout"
	"github.com/tessellaviz/tessella/pkg/tree"
	"github.com/tessellaviz/tessella/pkg/treemap"
)

// DefaultSeed is the random seed used when neither the layout nor the
// options carry one, for reproducibility.
const DefaultSeed = uint64(42)

// =============================================================================
// Options
// =============================================================================

// Options configures a paint run. The zero value paints with the layout's
// own mutation magnitude and seed.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Mutation overrides the layout's colour mutation magnitude when set.
	Mutation *float64 `json:"mutation,omitempty"`

	// Seed overrides the layout's random seed when set.
	Seed *uint64 `json:"seed,omitempty"`

	// Refresh bypasses the cache and recomputes.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
}

// Effective resolves the mutation magnitude and seed for a layout, applying
// option overrides first, then the layout's values, then DefaultSeed.
func (o Options) Effective(l *layout.Layout) (mutation float64, seed uint64) {
	mutation = l.Mutation
	if o.Mutation != nil {
		mutation = *o.Mutation
	}
	seed = l.Seed
	if o.Seed != nil {
		seed = *o.Seed
	}
	if seed == 0 {
		seed = DefaultSeed
	}
	return mutation, seed
}

// =============================================================================
// Results
// =============================================================================

// NodeAttrs is the serializable attribute record for one painted node.
type NodeAttrs struct {
	ID     string `json:"id" bson:"id"`
	Label  string `json:"label,omitempty" bson:"label,omitempty"`
	Parent string `json:"parent,omitempty" bson:"parent,omitempty"`
	Level  int    `json:"level" bson:"level"`
	Leaf   bool   `json:"leaf,omitempty" bson:"leaf,omitempty"`
	Dummy  bool   `json:"dummy,omitempty" bson:"dummy,omitempty"`

	// Bounds is the node footprint in render-surface coordinates.
	Bounds geom.Rect `json:"bounds" bson:"bounds"`

	// Geo is the node's geographic centroid in render coordinates.
	Geo geom.Point `json:"geo" bson:"geo"`

	// Color is the resolved "#rrggbb" colour, empty for colourless nodes.
	Color string `json:"color,omitempty" bson:"color,omitempty"`
}

// Result contains the outputs of a paint run.
type Result struct {
	// LayoutName echoes the painted layout's name.
	LayoutName string `json:"layout_name,omitempty" bson:"layout_name,omitempty"`

	// LayoutHash is the content hash of the layout, when painted through a
	// Runner.
	LayoutHash string `json:"layout_hash,omitempty" bson:"layout_hash,omitempty"`

	// Mutation and Seed are the effective values the run used.
	Mutation float64 `json:"mutation" bson:"mutation"`
	Seed     uint64  `json:"seed" bson:"seed"`

	// Attrs holds one record per node in depth-first pre-order: every
	// parent precedes its children.
	Attrs []NodeAttrs `json:"attrs" bson:"attrs"`

	// Canvas is the union of the integer outer bounds of all node
	// footprints.
	Canvas geom.IntRect `json:"canvas" bson:"canvas"`

	// Stats contains timing information (not cached).
	Stats Stats `json:"-" bson:"-"`

	// CacheInfo reports whether the result came from cache (not cached).
	CacheInfo CacheInfo `json:"-" bson:"-"`
}

// Stats contains paint run statistics.
type Stats struct {
	NodeCount int
	PaintTime time.Duration
}

// CacheInfo tracks cache usage for a paint run.
type CacheInfo struct {
	Hit bool // Whether the result came from cache
}

// MarshalResult serializes a Result to JSON bytes for caching and storage.
func MarshalResult(r *Result) ([]byte, error) {
	return json.Marshal(r)
}

// UnmarshalResult deserializes a cached Result.
func UnmarshalResult(data []byte) (*Result, error) {
	var r Result
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("decode paint result: %w", err)
	}
	return &r, nil
}

// =============================================================================
// Paint
// =============================================================================

// Paint computes attributes for every node in the layout.
//
// Nodes are visited in depth-first pre-order so each child sees its parent's
// resolved colour. Dummy nodes without an explicit colour stay colourless
// and consume no random draws.
func Paint(l *layout.Layout, opts Options) (*Result, error) {
	if err := l.Validate(); err != nil {
		return nil, err
	}
	t, err := l.BuildTree()
	if err != nil {
		return nil, err
	}

	mutation, seed := opts.Effective(l)
	rc := treemap.NewRenderContext(mutation, seed)

	byID := make(map[string]layout.Node, len(l.Nodes))
	for _, n := range l.Nodes {
		byID[n.ID] = n
	}

	start := time.Now()
	resolved := make(map[string]*treemap.NodeAttributes, len(l.Nodes))
	attrs := make([]NodeAttrs, 0, len(l.Nodes))

	t.PreOrder(func(n *tree.Node, parentID string, depth int) {
		ln := byID[n.ID]
		spec := treemap.NodeSpec{
			Label:     ln.Label,
			Footprint: ln.Footprint(),
			GeoCenter: ln.GeoCenter(),
			Leaf:      t.IsLeaf(n.ID),
			Dummy:     ln.Dummy,
			Level:     depth,
			Hue:       ln.Hue,
			Colorless: ln.Dummy && ln.Color == "",
		}
		if ln.Color != "" {
			c, _ := treemap.ParseHex(ln.Color) // validated above
			spec.Color = &c
		}
		if parentID != "" {
			if pc, ok := resolved[parentID].Color(); ok {
				spec.ParentColor = &pc
			}
		}

		na := treemap.New(rc, spec)
		resolved[n.ID] = na

		rec := NodeAttrs{
			ID:     n.ID,
			Label:  na.Label(),
			Parent: parentID,
			Level:  na.Level(),
			Leaf:   na.IsLeaf(),
			Dummy:  na.IsDummy(),
			Bounds: na.Bounds(),
			Geo:    na.GeoCenter(),
		}
		if hex, ok := na.HexColor(); ok {
			rec.Color = hex
		}
		attrs = append(attrs, rec)
	})

	result := &Result{
		LayoutName: l.Name,
		Mutation:   mutation,
		Seed:       seed,
		Attrs:      attrs,
		Stats: Stats{
			NodeCount: len(attrs),
			PaintTime: time.Since(start),
		},
	}
	if canvas, ok := rc.CanvasBounds(); ok {
		result.Canvas = canvas
	}
	return result, nil
}
