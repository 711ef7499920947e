package shapetree

import "math"

// Aabb is an axis-aligned bounding box: a pair of corners containing a
// subtree's geometry.
type Aabb struct {
	Min, Max Vec2
}

// InvalidAabb is the identity element for [unionAabb]: min = +Inf, max = -Inf.
// No finite box intersects it, and unioning it with any box returns that
// box unchanged.
var InvalidAabb = Aabb{
	Min: Vec2{X: math.Inf(1), Y: math.Inf(1)},
	Max: Vec2{X: math.Inf(-1), Y: math.Inf(-1)},
}

// unionAabb returns the smallest box containing both a and b.
func unionAabb(a, b Aabb) Aabb {
	return Aabb{
		Min: Vec2{X: math.Min(a.Min.X, b.Min.X), Y: math.Min(a.Min.Y, b.Min.Y)},
		Max: Vec2{X: math.Max(a.Max.X, b.Max.X), Y: math.Max(a.Max.Y, b.Max.Y)},
	}
}

// isIntersecting reports whether a and b overlap. Touching boxes (sharing
// only an edge) do not intersect — the comparison is strict on both axes.
func isIntersecting(a, b Aabb) bool {
	return a.Min.X < b.Max.X && a.Max.X > b.Min.X &&
		a.Min.Y < b.Max.Y && a.Max.Y > b.Min.Y
}

// isInvalidAabb reports whether a has any non-finite component. [InvalidAabb]
// itself is the canonical instance, but anything reached via it (an Empty
// shape, an empty Group, an operation wrapping either) also carries ±Inf
// components through unionAabb untouched, so this check catches all of them
// without comparing against the sentinel value directly.
func isInvalidAabb(a Aabb) bool {
	return !isFinite(a.Min.X) || !isFinite(a.Min.Y) || !isFinite(a.Max.X) || !isFinite(a.Max.Y)
}

func isFinite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}

// corners returns the four corners of a box in a fixed order: min,
// (min.x, max.y), (max.x, min.y), max. Used to transform a box through a
// rotation (or any affine matrix) without assuming it stays axis-aligned
// until the result is re-unioned.
func corners(a Aabb) [4]Vec2 {
	return [4]Vec2{
		a.Min,
		{X: a.Min.X, Y: a.Max.Y},
		{X: a.Max.X, Y: a.Min.Y},
		a.Max,
	}
}

// transformAabb maps a through an affine matrix by transforming its four
// corners and re-unioning the result, so rotated boxes stay a valid
// axis-aligned bound of the rotated geometry.
func transformAabb(m [6]float64, a Aabb) Aabb {
	c := corners(a)
	out := InvalidAabb
	for _, p := range c {
		x, y := transformPoint(m, p.X, p.Y)
		out = unionAabb(out, Aabb{Min: Vec2{X: x, Y: y}, Max: Vec2{X: x, Y: y}})
	}
	return out
}
