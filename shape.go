package shapetree

import "unicode/utf8"

// ShapeKind discriminates the variant held by a [Shape] value.
type ShapeKind uint8

const (
	// ShapeEmpty draws nothing. Its AABB is [InvalidAabb].
	ShapeEmpty ShapeKind = iota
	// ShapeCircle is a circle centered on the origin with the given radius.
	ShapeCircle
	// ShapeRectangle is an axis-aligned rectangle with the given corners.
	ShapeRectangle
	// ShapeRoundedRectangle is a [ShapeRectangle] with per-corner radii that
	// round the drawn edges without enlarging the cached AABB.
	ShapeRoundedRectangle
	// ShapeText draws a string using a named font. Its AABB is a
	// conservative placeholder box until real text shaping lands.
	ShapeText
)

// Shape is a leaf node's content: a single flat struct carrying the union
// of fields for every variant, discriminated by Kind, instead of a tagged
// interface — avoiding dispatch on the hot traversal path.
type Shape struct {
	Kind ShapeKind `json:"kind"`

	// Circle fields (Kind == ShapeCircle)
	Radius float64 `json:"radius,omitempty"`

	// Rectangle / RoundedRectangle fields
	Min Vec2 `json:"min,omitempty"`
	Max Vec2 `json:"max,omitempty"`
	// Radii holds per-corner radii for ShapeRoundedRectangle, in the order
	// (top-left, top-right, bottom-right, bottom-left). Ignored for every
	// other kind, and ignored by the AABB formula even for
	// ShapeRoundedRectangle — radii round corners, they never enlarge the
	// bound.
	Radii Vec4 `json:"radii,omitempty"`

	// Text fields (Kind == ShapeText)
	Content string `json:"content,omitempty"`
	Font    string `json:"font,omitempty"`
}

// shapeAabb computes the AABB of a shape from its kind and fields alone —
// shapes are leaves, so this never looks at other nodes.
func shapeAabb(s Shape) Aabb {
	switch s.Kind {
	case ShapeEmpty:
		return InvalidAabb
	case ShapeCircle:
		r := s.Radius
		return Aabb{Min: Vec2{X: -r, Y: -r}, Max: Vec2{X: r, Y: r}}
	case ShapeRectangle, ShapeRoundedRectangle:
		return Aabb{Min: s.Min, Max: s.Max}
	case ShapeText:
		n := float64(utf8.RuneCountInString(s.Content))
		return Aabb{
			Min: Vec2{X: -5, Y: -10},
			Max: Vec2{X: n * 10, Y: 5},
		}
	default:
		return InvalidAabb
	}
}
