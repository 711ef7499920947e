package shapetree

// slot is one arena entry: a node plus whether the slot is currently live.
// Dead slots form a singly-linked free list threaded through nextFree, so
// ids stay stable and reissuable integers rather than living pointers.
type slot struct {
	node     Node
	alive    bool
	nextFree NodeID // valid only when !alive; index of next free slot, or freeListEnd
}

const freeListEnd = NodeID(^uint32(0))

// Tree is an arena mapping [NodeID] to [Node]. A freshly created Tree
// contains exactly one node, at id 0, of kind [ClassShape]/[ShapeEmpty].
// This root slot is never removed by [Tree.UpdateNode]; it is only
// replaced in place.
//
// A Tree provides no internal locking: Tree.UpdateNode and Tree.Walk are synchronous, bounded by the
// size of the affected subtree, and mutually exclusive — callers must
// serialize access themselves (the transport package does this with one
// mutex per tree).
type Tree struct {
	slots    []slot
	freeHead NodeID
}

// NewTree creates a new tree with the single required root node.
func NewTree() *Tree {
	t := &Tree{freeHead: freeListEnd}
	t.slots = append(t.slots, slot{
		node:  Node{Class: ClassShape, Shape: Shape{Kind: ShapeEmpty}, AABB: InvalidAabb},
		alive: true,
	})
	return t
}

// get returns the node at id and whether it exists.
func (t *Tree) get(id NodeID) (Node, bool) {
	if int(id) >= len(t.slots) || !t.slots[id].alive {
		return Node{}, false
	}
	return t.slots[id].node, true
}

// set overwrites the node stored at id. id must currently be alive.
func (t *Tree) set(id NodeID, n Node) {
	t.slots[id].node = n
}

// insert allocates a new slot for n, preferring a recycled slot over
// growing the backing array, and returns its id.
func (t *Tree) insert(n Node) NodeID {
	if t.freeHead != freeListEnd {
		id := t.freeHead
		t.freeHead = t.slots[id].nextFree
		t.slots[id] = slot{node: n, alive: true}
		return id
	}
	id := NodeID(len(t.slots))
	t.slots = append(t.slots, slot{node: n, alive: true})
	return id
}

// remove frees the slot at id so it may be recycled by a later insert. It
// does not touch any other slot — transitively freeing a subtree is the
// caller's responsibility (see removeSubtree).
func (t *Tree) remove(id NodeID) {
	t.slots[id] = slot{alive: false, nextFree: t.freeHead}
	t.freeHead = id
}

// removeSubtree frees id and, transitively, every node reachable only
// through it. Under invariant 3 (no sharing), every node below id in the
// reachability graph has no other parent, so a plain recursive walk is
// safe: nothing here is freed twice and nothing reachable from elsewhere in
// the tree is touched.
func (t *Tree) removeSubtree(id NodeID) {
	n, ok := t.get(id)
	if !ok {
		return
	}
	switch n.Class {
	case ClassOperation:
		t.removeSubtree(n.Child)
	case ClassGroup:
		for _, child := range n.Children {
			t.removeSubtree(child)
		}
	}
	t.remove(id)
}

// setOwned sets the transient owned flag on the node at id. No-op if id
// doesn't exist (it always does when called from UpdateNode, since ids come
// from a freshly-taken children snapshot).
func (t *Tree) setOwned(id NodeID, owned bool) {
	if int(id) < len(t.slots) && t.slots[id].alive {
		t.slots[id].node.owned = owned
	}
}

// setReused sets the transient reused flag on the node at id.
func (t *Tree) setReused(id NodeID, reused bool) {
	if int(id) < len(t.slots) && t.slots[id].alive {
		t.slots[id].node.reused = reused
	}
}

// NodeCount returns the number of currently-live nodes. Intended for
// diagnostics (the transport package's debug endpoint uses it); not part of
// the update/traversal contract.
func (t *Tree) NodeCount() int {
	n := 0
	for _, s := range t.slots {
		if s.alive {
			n++
		}
	}
	return n
}

// Root returns the root node's current content and cached AABB.
func (t *Tree) Root() Node {
	n, _ := t.get(0)
	return n
}
