package shapetree

// OperationKind discriminates the variant held by an [Operation] value.
type OperationKind uint8

const (
	// OpStroke applies a solid-color stroke frame to all children.
	OpStroke OperationKind = iota
	// OpTranslate offsets the child by a fixed vector.
	OpTranslate
	// OpRotation rotates the child by a fixed angle, in radians.
	OpRotation
	// OpScale uniformly scales the child.
	OpScale
	// OpOpacity composites the child's subtree into an opacity layer after
	// it is drawn, rather than applying alpha to each descendant
	// independently.
	OpOpacity
	// OpBlur composites the child's subtree into a blurred layer after it
	// is drawn.
	OpBlur
)

// Operation is a unary node's content: transforms or styles its single
// child. Like [Shape], it is one flat struct over every variant rather than
// a tagged interface.
type Operation struct {
	Kind OperationKind `json:"kind"`

	// OpStroke fields
	StrokeColor Vec3 `json:"strokeColor,omitempty"`

	// OpTranslate fields
	Offset Vec2 `json:"offset,omitempty"`

	// OpRotation fields
	Angle float64 `json:"angle,omitempty"`

	// OpScale fields
	Scale float64 `json:"scale,omitempty"`

	// OpOpacity fields
	Opacity float64 `json:"opacity,omitempty"`

	// OpBlur fields
	BlurRadius float64 `json:"blurRadius,omitempty"`
}

// isTransform reports whether this operation contributes a matrix to the
// traversal driver's transform stack.
func (k OperationKind) isTransform() bool {
	return k == OpTranslate || k == OpRotation || k == OpScale
}

// localMatrix returns the affine matrix this operation contributes, valid
// only when Kind.isTransform() is true.
func (op Operation) localMatrix() [6]float64 {
	switch op.Kind {
	case OpTranslate:
		return translationMatrix(op.Offset)
	case OpRotation:
		return rotationMatrix(op.Angle)
	case OpScale:
		return scaleMatrix(op.Scale)
	default:
		return identityTransform
	}
}

// operationAabb computes the AABB of an operation node from its kind and
// its (already-cached) child AABB.
func operationAabb(op Operation, child Aabb) Aabb {
	// A child with no geometry (an Empty shape, an empty Group, or anything
	// built on top of either) stays INVALID under every operation: its ±Inf
	// components would otherwise poison the matrix math below with NaN
	// (0 * ±Inf, or ±Inf - ±Inf when a rotation's sine/cosine terms combine
	// two infinite corner components of the same sign), and a NaN box both
	// fails every isIntersecting check and corrupts unionAabb for every
	// ancestor it's folded into.
	if isInvalidAabb(child) {
		return InvalidAabb
	}
	switch op.Kind {
	case OpTranslate:
		offset := op.Offset
		return Aabb{
			Min: Vec2{X: child.Min.X + offset.X, Y: child.Min.Y + offset.Y},
			Max: Vec2{X: child.Max.X + offset.X, Y: child.Max.Y + offset.Y},
		}
	case OpRotation:
		// Rotation genuinely tilts the box, so the corners must be
		// transformed and re-unioned rather than shifted componentwise.
		return transformAabb(op.localMatrix(), child)
	case OpScale:
		return scaleAabb(child, op.Scale)
	case OpBlur:
		r := op.BlurRadius
		return Aabb{
			Min: Vec2{X: child.Min.X - r, Y: child.Min.Y - r},
			Max: Vec2{X: child.Max.X + r, Y: child.Max.Y + r},
		}
	default:
		// OpStroke, OpOpacity: the child's bound is unchanged.
		return child
	}
}

// scaleAabb scales child componentwise by scale. A negative scale flips
// min and max on the affected axis, so each axis is re-ordered after
// scaling rather than relying on the matrix-corner-transform path.
func scaleAabb(child Aabb, scale float64) Aabb {
	minX, maxX := child.Min.X*scale, child.Max.X*scale
	minY, maxY := child.Min.Y*scale, child.Max.Y*scale
	if minX > maxX {
		minX, maxX = maxX, minX
	}
	if minY > maxY {
		minY, maxY = maxY, minY
	}
	return Aabb{Min: Vec2{X: minX, Y: minY}, Max: Vec2{X: maxX, Y: maxY}}
}
