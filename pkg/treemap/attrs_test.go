package treemap

import (
	"testing"

	"github.com/tessellaviz/tessella/pkg/geom"
)

// stubContext scripts random draws and records bounds registrations.
type stubContext struct {
	mutation float64
	draws    []float64
	next     int
	bounds   []geom.IntRect
}

func (s *stubContext) MutationMagnitude() float64 { return s.mutation }

func (s *stubContext) Random() float64 {
	d := s.draws[s.next]
	s.next++
	return d
}

func (s *stubContext) RegisterBounds(r geom.IntRect) { s.bounds = append(s.bounds, r) }

func rgb(r, g, b uint8) *RGB { return &RGB{R: r, G: g, B: b} }

func TestExplicitColorWinsOverEverything(t *testing.T) {
	rc := &stubContext{mutation: 1.0}
	n := New(rc, NodeSpec{
		Label:       "france",
		Footprint:   geom.Rect{X: 0, Y: 0, Width: 10, Height: 10},
		Hue:         0.7,
		Color:       rgb(1, 2, 3),
		ParentColor: rgb(200, 200, 200),
	})

	got, ok := n.Color()
	if !ok {
		t.Fatal("Color() reported absent for explicit color")
	}
	if got != (RGB{R: 1, G: 2, B: 3}) {
		t.Errorf("Color() = %+v, want {1 2 3}", got)
	}
	if rc.next != 0 {
		t.Errorf("explicit color consumed %d random draws, want 0", rc.next)
	}
}

func TestRootColorIsDeterministicFromHue(t *testing.T) {
	tests := []struct {
		name string
		hue  float64
		want RGB
	}{
		{name: "hue zero", hue: 0.0, want: RGB{R: 204, G: 122, B: 122}},
		{name: "hue 0.33", hue: 0.33, want: RGB{R: 124, G: 204, B: 122}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for range 3 {
				rc := &stubContext{mutation: 0.5}
				n := New(rc, NodeSpec{Hue: tt.hue})
				got, ok := n.Color()
				if !ok {
					t.Fatal("Color() reported absent on root path")
				}
				if got != tt.want {
					t.Errorf("Color() = %+v, want %+v", got, tt.want)
				}
				if rc.next != 0 {
					t.Errorf("root path consumed %d random draws, want 0", rc.next)
				}
			}
		})
	}
}

func TestZeroMutationInheritsParentExactly(t *testing.T) {
	parents := []RGB{
		{R: 0, G: 0, B: 0},
		{R: 255, G: 255, B: 255},
		{R: 17, G: 130, B: 201},
	}

	for _, parent := range parents {
		rc := &stubContext{mutation: 0, draws: []float64{0.99, 0.01, 0.42}}
		n := New(rc, NodeSpec{ParentColor: &parent})
		got, _ := n.Color()
		if got != parent {
			t.Errorf("mutation 0: got %+v, want parent %+v", got, parent)
		}
		if rc.next != 3 {
			t.Errorf("perturbation consumed %d draws, want 3", rc.next)
		}
	}
}

func TestPerturbationTruncatesTowardZero(t *testing.T) {
	rc := &stubContext{mutation: 1.0, draws: []float64{0.9, 0.1, 0.5}}
	n := New(rc, NodeSpec{ParentColor: rgb(100, 150, 200)})

	got, _ := n.Color()
	// R: 100 + 0.4*127 = 150.8 -> 150, G: 150 - 0.4*127 = 99.2 -> 99, B: 200 + 0.
	want := RGB{R: 150, G: 99, B: 200}
	if got != want {
		t.Errorf("Color() = %+v, want %+v", got, want)
	}
}

func TestPerturbationClampsToChannelRange(t *testing.T) {
	rc := &stubContext{mutation: 1.0, draws: []float64{0.0, 0.999, 0.0}}
	n := New(rc, NodeSpec{ParentColor: rgb(0, 255, 10)})

	got, _ := n.Color()
	// R: 0 - 63.5 clamps to 0, G: 255 + 63.37 clamps to 255, B: 10 - 63.5 clamps to 0.
	want := RGB{R: 0, G: 255, B: 0}
	if got != want {
		t.Errorf("Color() = %+v, want %+v", got, want)
	}
}

func TestPerturbationStaysInRangeForManyDraws(t *testing.T) {
	rc := NewRenderContext(1.0, 7)
	parent := RGB{R: 3, G: 250, B: 128}
	for range 500 {
		n := New(rc, NodeSpec{ParentColor: &parent})
		c, ok := n.Color()
		if !ok {
			t.Fatal("Color() reported absent on perturbation path")
		}
		// uint8 channels cannot escape [0,255]; walk the family instead to
		// exercise chained inheritance.
		parent = c
	}
}

func TestColorlessNode(t *testing.T) {
	rc := &stubContext{mutation: 1.0}
	n := New(rc, NodeSpec{Dummy: true, Colorless: true, ParentColor: rgb(10, 20, 30)})

	if _, ok := n.Color(); ok {
		t.Error("Color() should report absent for a colorless node")
	}
	if _, ok := n.HexColor(); ok {
		t.Error("HexColor() should report absent for a colorless node")
	}
	if rc.next != 0 {
		t.Errorf("colorless node consumed %d random draws, want 0", rc.next)
	}
}

func TestRegisterBoundsCalledOncePerConstruction(t *testing.T) {
	rc := &stubContext{}
	footprint := geom.Rect{X: 1.2, Y: 3.7, Width: 10.1, Height: 4.4}
	New(rc, NodeSpec{Footprint: footprint, Colorless: true})

	if len(rc.bounds) != 1 {
		t.Fatalf("RegisterBounds called %d times, want 1", len(rc.bounds))
	}
	if rc.bounds[0] != footprint.Outer() {
		t.Errorf("registered %+v, want outer bounds %+v", rc.bounds[0], footprint.Outer())
	}
}

func TestAccessors(t *testing.T) {
	rc := &stubContext{}
	spec := NodeSpec{
		Label:     "japan",
		Footprint: geom.Rect{X: 5, Y: 6, Width: 7, Height: 8},
		GeoCenter: geom.Point{X: 139.7, Y: 35.7},
		Leaf:      true,
		Dummy:     false,
		Level:     2,
		Color:     rgb(18, 52, 86),
	}
	n := New(rc, spec)

	if n.Label() != "japan" {
		t.Errorf("Label() = %q, want %q", n.Label(), "japan")
	}
	if n.Bounds() != spec.Footprint {
		t.Errorf("Bounds() = %+v, want %+v", n.Bounds(), spec.Footprint)
	}
	if n.GeoCenter() != spec.GeoCenter {
		t.Errorf("GeoCenter() = %+v, want %+v", n.GeoCenter(), spec.GeoCenter)
	}
	if !n.IsLeaf() || n.IsDummy() {
		t.Errorf("IsLeaf()/IsDummy() = %v/%v, want true/false", n.IsLeaf(), n.IsDummy())
	}
	if n.Level() != 2 {
		t.Errorf("Level() = %d, want 2", n.Level())
	}
	if hex, _ := n.HexColor(); hex != "#123456" {
		t.Errorf("HexColor() = %q, want %q", hex, "#123456")
	}
}

func TestExplicitColorIsCopied(t *testing.T) {
	override := rgb(10, 20, 30)
	n := New(&stubContext{}, NodeSpec{Color: override})

	override.R = 99
	got, _ := n.Color()
	if got != (RGB{R: 10, G: 20, B: 30}) {
		t.Errorf("attributes share the caller's color pointer: got %+v", got)
	}
}
