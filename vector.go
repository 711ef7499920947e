package shapetree

import "math"

// Vec2 is a 2D vector used for positions, offsets, and extents throughout
// the API. The origin is wherever the embedder places it; Y increasing
// downward is NOT assumed by the core (only the AABB algebra and the
// affine math care, and both are agnostic to axis direction).
type Vec2 struct {
	X, Y float64
}

// Vec3 is a 3-component vector, used for the solid stroke color.
type Vec3 struct {
	X, Y, Z float64
}

// Vec4 is a 4-component vector, used for per-corner rounded-rectangle radii
// in the order (top-left, top-right, bottom-right, bottom-left).
type Vec4 struct {
	X, Y, Z, W float64
}

// identityTransform is the identity affine matrix: [a, b, c, d, tx, ty].
var identityTransform = [6]float64{1, 0, 0, 1, 0, 0}

// multiplyAffine multiplies two 2D affine matrices: result = p * c.
//
//	Matrix layout: [a, b, c, d, tx, ty]
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
func multiplyAffine(p, c [6]float64) [6]float64 {
	return [6]float64{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// translationMatrix returns the affine matrix for a pure translation.
func translationMatrix(offset Vec2) [6]float64 {
	return [6]float64{1, 0, 0, 1, offset.X, offset.Y}
}

// rotationMatrix returns the affine matrix for a pure rotation (radians).
func rotationMatrix(angle float64) [6]float64 {
	sin, cos := math.Sincos(angle)
	return [6]float64{cos, sin, -sin, cos, 0, 0}
}

// scaleMatrix returns the affine matrix for a uniform scale.
func scaleMatrix(scale float64) [6]float64 {
	return [6]float64{scale, 0, 0, scale, 0, 0}
}
