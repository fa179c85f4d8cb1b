package paint

import (
	"context"
	"io"
	"reflect"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tessellaviz/tessella/pkg/geom"
	"github.com/tessellaviz/tessella/pkg/layout"
)

func testLayout() layout.Layout {
	return layout.Layout{
		Name:   "world",
		Width:  100,
		Height: 60,
		Nodes: []layout.Node{
			{ID: "world", Label: "World", X: 0, Y: 0, Width: 100, Height: 60},
			{ID: "europe", Label: "Europe", Parent: "world", X: 0, Y: 0, Width: 60, Height: 60},
			{ID: "asia", Label: "Asia", Parent: "world", X: 60, Y: 0, Width: 40, Height: 60},
			{ID: "france", Label: "France", Parent: "europe", X: 0, Y: 0, Width: 30, Height: 60},
		},
	}
}

func TestPaintPreOrderAndInheritance(t *testing.T) {
	l := testLayout() // mutation 0: children inherit the root colour exactly

	result, err := Paint(&l, Options{})
	if err != nil {
		t.Fatalf("Paint() error = %v", err)
	}

	wantOrder := []string{"world", "europe", "france", "asia"}
	if len(result.Attrs) != len(wantOrder) {
		t.Fatalf("len(Attrs) = %d, want %d", len(result.Attrs), len(wantOrder))
	}
	for i, a := range result.Attrs {
		if a.ID != wantOrder[i] {
			t.Errorf("Attrs[%d].ID = %q, want %q", i, a.ID, wantOrder[i])
		}
		// Hue 0 root resolves to HSB(0, 0.4, 0.8); with zero mutation the
		// whole tree carries the same colour.
		if a.Color != "#cc7a7a" {
			t.Errorf("Attrs[%d] (%s) color = %q, want #cc7a7a", i, a.ID, a.Color)
		}
	}

	byID := make(map[string]NodeAttrs)
	for _, a := range result.Attrs {
		byID[a.ID] = a
	}
	if byID["world"].Level != 0 || byID["europe"].Level != 1 || byID["france"].Level != 2 {
		t.Errorf("levels = %d/%d/%d, want 0/1/2",
			byID["world"].Level, byID["europe"].Level, byID["france"].Level)
	}
	if byID["world"].Leaf || !byID["france"].Leaf || !byID["asia"].Leaf {
		t.Error("leaf flags wrong")
	}
	if byID["france"].Parent != "europe" {
		t.Errorf("france parent = %q, want europe", byID["france"].Parent)
	}

	wantCanvas := geom.IntRect{X: 0, Y: 0, Width: 100, Height: 60}
	if result.Canvas != wantCanvas {
		t.Errorf("Canvas = %+v, want %+v", result.Canvas, wantCanvas)
	}
	if result.Seed != DefaultSeed {
		t.Errorf("Seed = %d, want default %d", result.Seed, DefaultSeed)
	}
	if result.Stats.NodeCount != 4 {
		t.Errorf("NodeCount = %d, want 4", result.Stats.NodeCount)
	}
}

func TestPaintDeterminism(t *testing.T) {
	l := testLayout()
	l.Mutation = 1.0
	l.Seed = 7

	first, err := Paint(&l, Options{})
	if err != nil {
		t.Fatalf("Paint() error = %v", err)
	}
	second, err := Paint(&l, Options{})
	if err != nil {
		t.Fatalf("Paint() error = %v", err)
	}
	if !reflect.DeepEqual(first.Attrs, second.Attrs) {
		t.Error("same layout and seed produced different attributes")
	}

	l.Seed = 8
	third, err := Paint(&l, Options{})
	if err != nil {
		t.Fatalf("Paint() error = %v", err)
	}
	if reflect.DeepEqual(first.Attrs, third.Attrs) {
		t.Error("different seeds produced identical attributes")
	}
}

func TestPaintExplicitColor(t *testing.T) {
	l := testLayout()
	l.Mutation = 1.0
	l.Nodes[3].Color = "#4878a8" // france

	result, err := Paint(&l, Options{})
	if err != nil {
		t.Fatalf("Paint() error = %v", err)
	}
	for _, a := range result.Attrs {
		if a.ID == "france" && a.Color != "#4878a8" {
			t.Errorf("explicit color not preserved: got %q", a.Color)
		}
	}
}

func TestPaintDummyColorless(t *testing.T) {
	l := testLayout()
	l.Nodes = append(l.Nodes,
		layout.Node{ID: "spacer", Parent: "world", Dummy: true, X: 0, Y: 0, Width: 1, Height: 1},
		layout.Node{ID: "atlantis", Parent: "spacer", Hue: 0.33, X: 0, Y: 0, Width: 1, Height: 1},
	)

	result, err := Paint(&l, Options{})
	if err != nil {
		t.Fatalf("Paint() error = %v", err)
	}
	byID := make(map[string]NodeAttrs)
	for _, a := range result.Attrs {
		byID[a.ID] = a
	}

	if byID["spacer"].Color != "" {
		t.Errorf("dummy node color = %q, want none", byID["spacer"].Color)
	}
	if !byID["spacer"].Dummy {
		t.Error("dummy flag not carried through")
	}
	// A child of a colourless node has no parent colour to inherit, so it
	// falls back to its own hue: HSB(0.33, 0.4, 0.8).
	if byID["atlantis"].Color != "#7ccc7a" {
		t.Errorf("atlantis color = %q, want #7ccc7a", byID["atlantis"].Color)
	}
}

func TestPaintInvalidLayout(t *testing.T) {
	l := layout.Layout{Nodes: []layout.Node{
		{ID: "a", Parent: "missing"},
	}}
	if _, err := Paint(&l, Options{}); err == nil {
		t.Error("Paint() accepted a layout with no root")
	}
}

func TestOptionsEffective(t *testing.T) {
	l := layout.Layout{Mutation: 0.3, Seed: 9}

	m, s := Options{}.Effective(&l)
	if m != 0.3 || s != 9 {
		t.Errorf("Effective() = %v, %v; want layout values 0.3, 9", m, s)
	}

	mut, seed := 0.7, uint64(11)
	m, s = Options{Mutation: &mut, Seed: &seed}.Effective(&l)
	if m != 0.7 || s != 11 {
		t.Errorf("Effective() = %v, %v; want overrides 0.7, 11", m, s)
	}

	m, s = Options{}.Effective(&layout.Layout{})
	if m != 0 || s != DefaultSeed {
		t.Errorf("Effective() = %v, %v; want 0, DefaultSeed", m, s)
	}
}

// mapCache is an in-memory Cache for runner tests.
type mapCache struct {
	data map[string][]byte
	sets int
}

func newMapCache() *mapCache { return &mapCache{data: make(map[string][]byte)} }

func (c *mapCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	d, ok := c.data[key]
	return d, ok, nil
}

func (c *mapCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	c.data[key] = data
	c.sets++
	return nil
}

func (c *mapCache) Delete(ctx context.Context, key string) error {
	delete(c.data, key)
	return nil
}

func (c *mapCache) Close() error { return nil }

func TestRunnerCaching(t *testing.T) {
	ctx := context.Background()
	mc := newMapCache()
	runner := NewRunner(mc, nil, log.New(io.Discard))
	l := testLayout()

	first, hit, err := runner.PaintWithCacheInfo(ctx, l, Options{})
	if err != nil {
		t.Fatalf("PaintWithCacheInfo() error = %v", err)
	}
	if hit {
		t.Error("first run reported a cache hit")
	}
	if mc.sets != 1 {
		t.Errorf("cache writes = %d, want 1", mc.sets)
	}
	if first.LayoutHash == "" {
		t.Error("LayoutHash not set on computed result")
	}

	second, hit, err := runner.PaintWithCacheInfo(ctx, l, Options{})
	if err != nil {
		t.Fatalf("PaintWithCacheInfo() error = %v", err)
	}
	if !hit {
		t.Error("second run missed the cache")
	}
	if !reflect.DeepEqual(first.Attrs, second.Attrs) {
		t.Error("cached attributes differ from computed ones")
	}

	// Refresh bypasses the cache
	_, hit, err = runner.PaintWithCacheInfo(ctx, l, Options{Refresh: true})
	if err != nil {
		t.Fatalf("PaintWithCacheInfo() error = %v", err)
	}
	if hit {
		t.Error("refresh run reported a cache hit")
	}
}

func TestRunnerExecuteSetsCacheInfo(t *testing.T) {
	ctx := context.Background()
	runner := NewRunner(newMapCache(), nil, log.New(io.Discard))
	l := testLayout()

	first, err := runner.Execute(ctx, l, Options{})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if first.CacheInfo.Hit {
		t.Error("first Execute() reported a cache hit")
	}

	second, err := runner.Execute(ctx, l, Options{})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !second.CacheInfo.Hit {
		t.Error("second Execute() missed the cache")
	}
}

func TestRunnerDifferentSeedsDifferentKeys(t *testing.T) {
	ctx := context.Background()
	mc := newMapCache()
	runner := NewRunner(mc, nil, log.New(io.Discard))
	l := testLayout()
	l.Mutation = 1.0

	seed := uint64(1)
	if _, _, err := runner.PaintWithCacheInfo(ctx, l, Options{Seed: &seed}); err != nil {
		t.Fatalf("PaintWithCacheInfo() error = %v", err)
	}
	other := uint64(2)
	_, hit, err := runner.PaintWithCacheInfo(ctx, l, Options{Seed: &other})
	if err != nil {
		t.Fatalf("PaintWithCacheInfo() error = %v", err)
	}
	if hit {
		t.Error("different seed hit the other seed's cache entry")
	}
	if mc.sets != 2 {
		t.Errorf("cache writes = %d, want 2", mc.sets)
	}
}
