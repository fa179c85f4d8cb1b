// Package geom provides the small set of 2D primitives used by treemap
// attribute computation: float-precision rectangles and points for node
// footprints, and integer rectangles for canvas-extent bookkeeping.
package geom

import "math"

// Point is a 2D point in render-surface coordinates.
type Point struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// Rect is an axis-aligned rectangle in render-surface coordinates.
type Rect struct {
	X      float64 `json:"x" bson:"x"`
	Y      float64 `json:"y" bson:"y"`
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`
}

func (r Rect) MaxX() float64    { return r.X + r.Width }
func (r Rect) MaxY() float64    { return r.Y + r.Height }
func (r Rect) CenterX() float64 { return r.X + r.Width/2 }
func (r Rect) CenterY() float64 { return r.Y + r.Height/2 }

// Center returns the rectangle's midpoint.
func (r Rect) Center() Point { return Point{X: r.CenterX(), Y: r.CenterY()} }

// Outer returns the smallest integer rectangle that fully contains r.
// The origin is floored and the far corner is ceiled, so a footprint of
// (0.4, 0.4, 1.2, 1.2) yields the integer rectangle (0, 0, 2, 2).
func (r Rect) Outer() IntRect {
	x1 := int(math.Floor(r.X))
	y1 := int(math.Floor(r.Y))
	x2 := int(math.Ceil(r.X + r.Width))
	y2 := int(math.Ceil(r.Y + r.Height))
	return IntRect{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
}

// IntRect is an axis-aligned rectangle with integer coordinates.
type IntRect struct {
	X      int `json:"x" bson:"x"`
	Y      int `json:"y" bson:"y"`
	Width  int `json:"width" bson:"width"`
	Height int `json:"height" bson:"height"`
}

func (r IntRect) MaxX() int { return r.X + r.Width }
func (r IntRect) MaxY() int { return r.Y + r.Height }

// IsEmpty reports whether the rectangle covers no area.
func (r IntRect) IsEmpty() bool { return r.Width <= 0 || r.Height <= 0 }

// Union returns the smallest rectangle containing both r and o.
// An empty rectangle acts as the identity element.
func (r IntRect) Union(o IntRect) IntRect {
	if r.IsEmpty() {
		return o
	}
	if o.IsEmpty() {
		return r
	}
	x1 := min(r.X, o.X)
	y1 := min(r.Y, o.Y)
	x2 := max(r.MaxX(), o.MaxX())
	y2 := max(r.MaxY(), o.MaxY())
	return IntRect{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
}
