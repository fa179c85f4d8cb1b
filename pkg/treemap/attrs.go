package treemap

import "github.com/tessellaviz/tessella/pkg/geom"

// NodeSpec carries the construction inputs for one node's attributes.
//
// Color, ParentColor and Colorless select the colour resolution path:
// an explicit Color wins outright, otherwise a present ParentColor is
// perturbed, otherwise Hue is used. Colorless short-circuits all three and
// produces a node with no colour at all (spacer nodes typically set it).
type NodeSpec struct {
	Label     string
	Footprint geom.Rect
	GeoCenter geom.Point
	Leaf      bool
	Dummy     bool
	Level     int

	// Hue selects the node colour when neither Color nor ParentColor is
	// set. It is a wrapping fraction of the colour wheel.
	Hue float64

	// Color is an explicit colour override. When set it is used verbatim,
	// with no randomness and no inheritance.
	Color *RGB

	// ParentColor is the resolved colour of the immediate ancestor. It is
	// consulted only when Color is nil.
	ParentColor *RGB

	// Colorless marks a node that carries no colour. Color(), HexColor()
	// report absence and no random draws are consumed.
	Colorless bool
}

// NodeAttributes is the immutable visual representation of a single treemap
// node. All fields are fixed at construction; every accessor is pure.
type NodeAttributes struct {
	footprint geom.Rect
	geoCenter geom.Point
	label     string
	color     *RGB
	leaf      bool
	dummy     bool
	level     int
}

// New constructs the attributes for one node, resolving its colour and
// registering its integer outer bounds with the render context. Callers
// must construct parents before children so spec.ParentColor can carry the
// parent's resolved colour. Construction always succeeds.
func New(rc Context, spec NodeSpec) *NodeAttributes {
	n := &NodeAttributes{
		footprint: spec.Footprint,
		geoCenter: spec.GeoCenter,
		label:     spec.Label,
		leaf:      spec.Leaf,
		dummy:     spec.Dummy,
		level:     spec.Level,
	}

	rc.RegisterBounds(spec.Footprint.Outer())
	n.color = resolveColor(rc, spec)
	return n
}

func resolveColor(rc Context, spec NodeSpec) *RGB {
	switch {
	case spec.Colorless:
		return nil
	case spec.Color != nil:
		c := *spec.Color
		return &c
	case spec.ParentColor == nil:
		c := FromHSB(spec.Hue, 0.4, 0.8)
		return &c
	default:
		c := mutate(rc, *spec.ParentColor)
		return &c
	}
}

// mutate walks each channel away from the parent colour by an independent
// uniform step of at most ±mutation*127/2 before clamping. Magnitude 0
// reproduces the parent exactly.
func mutate(rc Context, parent RGB) RGB {
	colorVar := rc.MutationMagnitude() * 127 // scale between 0-255
	return RGB{
		R: mutateChannel(parent.R, rc.Random(), colorVar),
		G: mutateChannel(parent.G, rc.Random(), colorVar),
		B: mutateChannel(parent.B, rc.Random(), colorVar),
	}
}

// mutateChannel truncates toward zero rather than rounding; the slight bias
// is kept for compatibility with existing colour assignments.
func mutateChannel(parent uint8, draw, colorVar float64) uint8 {
	v := int(float64(parent) + (draw-0.5)*colorVar)
	if v < 0 {
		v = 0
	} else if v > 255 {
		v = 255
	}
	return uint8(v)
}

// Bounds returns the spatial footprint of the node in render-surface
// coordinates.
func (n *NodeAttributes) Bounds() geom.Rect { return n.footprint }

// GeoCenter returns the transformed geographic centroid of the node.
func (n *NodeAttributes) GeoCenter() geom.Point { return n.geoCenter }

// Label returns the node's display text, which may be empty.
func (n *NodeAttributes) Label() string { return n.label }

// Color returns the node's colour and true, or a zero colour and false for
// colourless nodes.
func (n *NodeAttributes) Color() (RGB, bool) {
	if n.color == nil {
		return RGB{}, false
	}
	return *n.color, true
}

// HexColor returns the node's colour as "#rrggbb" and true, or "" and false
// for colourless nodes.
func (n *NodeAttributes) HexColor() (string, bool) {
	if n.color == nil {
		return "", false
	}
	return n.color.Hex(), true
}

// Level returns the node's depth: 0 for the root, 1 for its children, etc.
func (n *NodeAttributes) Level() int { return n.level }

// IsLeaf reports whether the node has no children.
func (n *NodeAttributes) IsLeaf() bool { return n.leaf }

// IsDummy reports whether the node is a blank spacer.
func (n *NodeAttributes) IsDummy() bool { return n.dummy }
