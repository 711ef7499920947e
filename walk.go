package shapetree

// Renderer is the capability set the traversal driver calls into. An
// implementation draws into whatever pixel backend it owns and tracks its
// own style/transform state between calls — the driver only guarantees
// ordering and balance, never the content of the state.
type Renderer interface {
	// OnShape draws a leaf. The renderer reads its own current style and
	// transform state; shape is never nil.
	OnShape(shape *Shape)
	// PushOperation enters a frame: the renderer updates its style/transform
	// stacks accordingly. op is never nil.
	PushOperation(op *Operation)
	// PopOperation leaves a frame, undoing exactly what the matching
	// PushOperation did. op is never nil and is the same value that was
	// passed to the matching PushOperation call.
	PopOperation(op *Operation)
}

// AABBReporter is an optional debug hook: a [Renderer] may additionally
// implement it to observe the world-space AABB of every node that passed
// culling. The driver checks for this with a type assertion rather than
// requiring every Renderer to implement a no-op method, keeping the
// required surface small.
type AABBReporter interface {
	OnAABB(aabb Aabb)
}

// frame is one entry of the traversal's explicit stack. Ascending means
// "first visit" (descend/emit); its absence means "leave" (pop state).
type frame struct {
	id        NodeID
	ascending bool
}

// Walk performs a depth-first traversal starting at the root (id 0),
// driving renderer through OnShape/PushOperation/PopOperation and culling
// any subtree whose world-space AABB doesn't intersect viewport.
//
// The driver trusts invariants 1–3 (root exists, referential integrity, no
// cycles/sharing) and has no failure modes of its own; Renderer callbacks
// are infallible from its point of view.
func (t *Tree) Walk(renderer Renderer, viewport Aabb) {
	reporter, _ := renderer.(AABBReporter)

	stack := []frame{{id: 0, ascending: true}}
	transforms := [][6]float64{identityTransform}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !f.ascending {
			n, ok := t.get(f.id)
			if !ok {
				continue
			}
			op := n.Operation
			renderer.PopOperation(&op)
			if op.Kind.isTransform() {
				transforms = transforms[:len(transforms)-1]
			}
			continue
		}

		n, ok := t.get(f.id)
		if !ok {
			continue
		}

		current := transforms[len(transforms)-1]
		worldBox := transformAabb(current, n.AABB)
		if !isIntersecting(worldBox, viewport) {
			continue
		}
		if reporter != nil {
			reporter.OnAABB(worldBox)
		}

		switch n.Class {
		case ClassShape:
			shape := n.Shape
			renderer.OnShape(&shape)
		case ClassOperation:
			op := n.Operation
			renderer.PushOperation(&op)
			// Schedule the matching pop before the descend so the stack
			// (LIFO) processes the child first, then the pop.
			stack = append(stack, frame{id: f.id, ascending: false})
			stack = append(stack, frame{id: n.Child, ascending: true})
			if op.Kind.isTransform() {
				transforms = append(transforms, multiplyAffine(current, op.localMatrix()))
			}
		case ClassGroup:
			// Push in reverse so LIFO pops visit children in declaration order.
			for i := len(n.Children) - 1; i >= 0; i-- {
				stack = append(stack, frame{id: n.Children[i], ascending: true})
			}
		}
	}
}
