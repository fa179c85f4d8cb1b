// Package layout defines the serialized form of a laid-out treemap: the
// document Tessella consumes. A layout carries the frame dimensions, the
// colour mutation magnitude and random seed, and one entry per node with its
// precomputed footprint. Tessella never computes rectangle packing itself;
// the geometry in a layout comes from an external layout engine.
package layout

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/tessellaviz/tessella/pkg/errors"
	"github.com/tessellaviz/tessella/pkg/geom"
	"github.com/tessellaviz/tessella/pkg/tree"
	"github.com/tessellaviz/tessella/pkg/treemap"
)

// =============================================================================
// Types
// =============================================================================

// Layout is a laid-out treemap ready for attribute computation.
//
// Nodes may appear in any order; the hierarchy is rebuilt from Parent
// references. Exactly one node must have an empty Parent (the root).
type Layout struct {
	// Name identifies the layout (used in logs and stored documents).
	Name string `json:"name,omitempty" bson:"name,omitempty"`

	// Width and Height are the frame dimensions in render-surface units.
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`

	// Mutation is the colour mutation magnitude in [0,1] by convention.
	// Out-of-range values are not rejected; they scale the perturbation
	// amplitude beyond its nominal bound.
	Mutation float64 `json:"mutation" bson:"mutation"`

	// Seed drives the colour perturbation random source. The same layout
	// and seed always produce the same colours.
	Seed uint64 `json:"seed,omitempty" bson:"seed,omitempty"`

	Nodes []Node `json:"nodes" bson:"nodes"`
}

// Node is one laid-out treemap node.
type Node struct {
	ID     string `json:"id" bson:"id"`
	Label  string `json:"label,omitempty" bson:"label,omitempty"`
	Parent string `json:"parent,omitempty" bson:"parent,omitempty"`

	// Footprint in render-surface coordinates.
	X      float64 `json:"x" bson:"x"`
	Y      float64 `json:"y" bson:"y"`
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`

	// Geographic centroid, pre-transformed into render coordinates.
	GeoX float64 `json:"geo_x,omitempty" bson:"geo_x,omitempty"`
	GeoY float64 `json:"geo_y,omitempty" bson:"geo_y,omitempty"`

	// Hue selects the node colour when no explicit colour and no parent
	// colour apply (in practice, the root). Wrapping fraction in [0,1).
	Hue float64 `json:"hue,omitempty" bson:"hue,omitempty"`

	// Color is an optional explicit "#rrggbb" override.
	Color string `json:"color,omitempty" bson:"color,omitempty"`

	// Dummy marks a blank spacer node.
	Dummy bool `json:"dummy,omitempty" bson:"dummy,omitempty"`
}

// Footprint returns the node's rectangle as a geom.Rect.
func (n Node) Footprint() geom.Rect {
	return geom.Rect{X: n.X, Y: n.Y, Width: n.Width, Height: n.Height}
}

// GeoCenter returns the node's geographic centroid as a geom.Point.
func (n Node) GeoCenter() geom.Point {
	return geom.Point{X: n.GeoX, Y: n.GeoY}
}

// =============================================================================
// Validation
// =============================================================================

// Validate checks the layout for structural problems: it must contain nodes,
// node IDs must be unique and non-empty, parents must exist, explicit
// colours must parse, and the Parent references must form a single rooted
// tree. Returns a structured error with code INVALID_LAYOUT or
// INVALID_COLOR.
func (l *Layout) Validate() error {
	if len(l.Nodes) == 0 {
		return errors.New(errors.ErrCodeInvalidLayout, "layout contains no nodes")
	}
	for _, n := range l.Nodes {
		if n.Color == "" {
			continue
		}
		if _, err := treemap.ParseHex(n.Color); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidColor, err, "node %q", n.ID)
		}
	}
	_, err := l.BuildTree()
	return err
}

// BuildTree reconstructs the hierarchy from the Parent references.
// Children keep the order in which they appear in Nodes.
func (l *Layout) BuildTree() (*tree.Tree, error) {
	t := tree.New()

	roots := 0
	for _, n := range l.Nodes {
		if n.Parent == "" {
			roots++
			if err := t.AddRoot(tree.Node{ID: n.ID, Label: n.Label, Dummy: n.Dummy}); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidLayout, err, "root node %q", n.ID)
			}
		}
	}
	if roots == 0 {
		return nil, errors.New(errors.ErrCodeInvalidLayout, "layout has no root node")
	}
	if roots > 1 {
		return nil, errors.New(errors.ErrCodeInvalidLayout, "layout has %d root nodes, want exactly 1", roots)
	}

	// Nodes may reference parents that appear later in the slice, so insert
	// children in passes until the tree stops growing.
	pending := make([]Node, 0, len(l.Nodes)-1)
	for _, n := range l.Nodes {
		if n.Parent != "" {
			pending = append(pending, n)
		}
	}
	for len(pending) > 0 {
		progressed := false
		remaining := pending[:0]
		for _, n := range pending {
			if _, ok := t.Node(n.Parent); !ok {
				remaining = append(remaining, n)
				continue
			}
			if err := t.AddChild(n.Parent, tree.Node{ID: n.ID, Label: n.Label, Dummy: n.Dummy}); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidLayout, err, "node %q", n.ID)
			}
			progressed = true
		}
		if !progressed {
			return nil, errors.New(errors.ErrCodeInvalidLayout,
				"node %q references unknown or cyclic parent %q", remaining[0].ID, remaining[0].Parent)
		}
		pending = remaining
	}

	if err := t.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidTree, err, "layout hierarchy")
	}
	return t, nil
}

// =============================================================================
// Serialization API
// =============================================================================

// Marshal serializes a Layout to pretty-printed JSON bytes.
func Marshal(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// Unmarshal deserializes JSON bytes into a Layout and validates it.
func Unmarshal(data []byte) (Layout, error) {
	return Read(bytes.NewReader(data))
}

// Read decodes and validates a Layout from an io.Reader.
func Read(r io.Reader) (Layout, error) {
	var l Layout
	if err := json.NewDecoder(r).Decode(&l); err != nil {
		return Layout{}, fmt.Errorf("decode layout: %w", err)
	}
	if err := l.Validate(); err != nil {
		return Layout{}, err
	}
	return l, nil
}

// ReadFile reads a Layout from a JSON file.
func ReadFile(path string) (Layout, error) {
	f, err := os.Open(path)
	if err != nil {
		return Layout{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}

// WriteFile writes a Layout to a JSON file.
// The file is created with 0644 permissions.
func WriteFile(l Layout, path string) error {
	data, err := Marshal(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
