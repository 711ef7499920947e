package shapetree

// NodeID is an opaque, non-negative integer identity into a [Tree]'s arena.
// It is stable across any update that doesn't delete the node; the identity
// space is dense and slot-reusing, so the id of a deleted node may be
// reissued by a future allocation.
type NodeID uint32

// NodeClass discriminates how a [Node]'s content is interpreted.
type NodeClass uint8

const (
	// ClassShape: the node is a leaf drawing a [Shape].
	ClassShape NodeClass = iota
	// ClassOperation: the node applies an [Operation] to a single child.
	ClassOperation
	// ClassGroup: the node is an ordered list of children.
	ClassGroup
)

// Node is the arena's storage unit: a single flat struct shared by every
// node class rather than a tagged interface, with fields grouped into
// commented sections per class — avoiding interface dispatch on the
// traversal hot path.
type Node struct {
	Class NodeClass

	// Shape fields (Class == ClassShape)
	Shape Shape

	// Operation fields (Class == ClassOperation)
	Operation Operation
	Child     NodeID

	// Group fields (Class == ClassGroup)
	Children []NodeID

	// AABB is computed once at construction from Class's content and (for
	// Operation/Group) the already-cached AABBs of direct children. It is
	// never recomputed by mutation: because the update engine replaces
	// nodes instead of mutating them in place, a cached AABB can never go
	// stale while still reachable from the root.
	AABB Aabb

	// owned and reused are transient scaffolding, valid only during a
	// single Tree.UpdateNode call. Outside of that call every node has
	// both false.
	owned  bool
	reused bool
}
