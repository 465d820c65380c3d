// Package graphics provides geometry, color, and render-surface primitives
// shared by the widget tree and the page manager.
package graphics

import "math"

// epsilon is the tolerance for floating-point comparisons.
const epsilon = 0.0001

// Offset represents a 2D point or vector in pixel coordinates.
type Offset struct {
	X float64
	Y float64
}

// Add returns the component-wise sum of two offsets.
func (o Offset) Add(other Offset) Offset {
	return Offset{X: o.X + other.X, Y: o.Y + other.Y}
}

// Sub returns the component-wise difference of two offsets.
func (o Offset) Sub(other Offset) Offset {
	return Offset{X: o.X - other.X, Y: o.Y - other.Y}
}

// Distance returns the Euclidean distance from o to other.
//
// All gesture threshold comparisons use this one metric so that a single
// configured threshold means the same thing everywhere.
func (o Offset) Distance(other Offset) float64 {
	dx := other.X - o.X
	dy := other.Y - o.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Size represents width and height dimensions in pixels.
type Size struct {
	Width  float64
	Height float64
}

// IsEmpty reports whether the size has no area.
func (s Size) IsEmpty() bool {
	return s.Width <= 0 || s.Height <= 0
}

// Rect represents a rectangle by its top-left corner and size.
//
// Widget bounds use this form because the tree's core invariant is additive:
// a child's absolute rect is its relative rect translated by the parent's
// absolute origin.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// RectFromLTWH constructs a Rect from left, top, width, height values.
func RectFromLTWH(left, top, width, height float64) Rect {
	return Rect{X: left, Y: top, Width: width, Height: height}
}

// Origin returns the top-left corner of the rectangle.
func (r Rect) Origin() Offset {
	return Offset{X: r.X, Y: r.Y}
}

// Size returns the size of the rectangle.
func (r Rect) Size() Size {
	return Size{Width: r.Width, Height: r.Height}
}

// Center returns the center point of the rectangle.
func (r Rect) Center() Offset {
	return Offset{X: r.X + r.Width*0.5, Y: r.Y + r.Height*0.5}
}

// Translate returns a copy of the rectangle shifted by the given offset.
func (r Rect) Translate(by Offset) Rect {
	return Rect{X: r.X + by.X, Y: r.Y + by.Y, Width: r.Width, Height: r.Height}
}

// Contains reports whether the point lies inside the rectangle.
// Points on the right and bottom edges are outside, so adjacent
// rectangles never both claim a shared edge.
func (r Rect) Contains(p Offset) bool {
	return p.X >= r.X && p.X < r.X+r.Width && p.Y >= r.Y && p.Y < r.Y+r.Height
}

// Equals reports whether two rectangles are equal within epsilon.
func (r Rect) Equals(other Rect) bool {
	return math.Abs(r.X-other.X) < epsilon &&
		math.Abs(r.Y-other.Y) < epsilon &&
		math.Abs(r.Width-other.Width) < epsilon &&
		math.Abs(r.Height-other.Height) < epsilon
}

// Lerp linearly interpolates between two float64 values.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp clamps a value to the range [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp01 clamps a value to the range [0, 1].
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
