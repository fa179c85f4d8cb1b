package treemap

import (
	"math/rand/v2"

	"github.com/tessellaviz/tessella/pkg/geom"
)

// Context provides the capabilities NodeAttributes construction consumes:
// the colour mutation magnitude, a uniform random source, and a sink for
// bounds registration. Implementations need not be safe for concurrent use;
// construction calls them synchronously.
type Context interface {
	// MutationMagnitude returns the colour mutation strength in [0,1].
	// It is queried once per construction. Values outside [0,1] are not
	// rejected; they simply scale the perturbation amplitude accordingly.
	MutationMagnitude() float64

	// Random returns a uniform random float in [0,1). Construction draws
	// zero times on the explicit-colour and root paths and exactly three
	// times (one per RGB channel) on the perturbation path.
	Random() float64

	// RegisterBounds records a node's integer outer bounds. It is called
	// exactly once per construction.
	RegisterBounds(r geom.IntRect)
}

// RenderContext is the default Context implementation: a seeded random
// source plus a canvas-extent accumulator. The same seed always yields the
// same colour assignment for the same construction order.
type RenderContext struct {
	mutation float64
	rng      *rand.Rand
	canvas   geom.IntRect
	touched  bool
}

// NewRenderContext creates a render context with the given mutation
// magnitude and random seed.
func NewRenderContext(mutation float64, seed uint64) *RenderContext {
	return &RenderContext{
		mutation: mutation,
		rng:      rand.New(rand.NewPCG(seed, seed^0xdeadbeef)),
	}
}

// MutationMagnitude returns the configured colour mutation strength.
func (rc *RenderContext) MutationMagnitude() float64 { return rc.mutation }

// Random returns the next uniform float in [0,1) from the seeded source.
func (rc *RenderContext) Random() float64 { return rc.rng.Float64() }

// RegisterBounds grows the tracked canvas extent to include r.
func (rc *RenderContext) RegisterBounds(r geom.IntRect) {
	rc.canvas = rc.canvas.Union(r)
	rc.touched = true
}

// CanvasBounds returns the union of all registered bounds and whether any
// bounds were registered at all.
func (rc *RenderContext) CanvasBounds() (geom.IntRect, bool) {
	return rc.canvas, rc.touched
}
