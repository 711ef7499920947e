package shapetree

import (
	"errors"
	"fmt"
)

// Sentinel errors for the four recoverable failure kinds [Tree.UpdateNode]
// can return. Use errors.Is against these, or errors.As against
// [*NodeUpdateError] to recover the offending [NodeID]. There are no other
// "fatal" error categories in the core: malformed content is rejected,
// never asserted, matching the style of sentinel errors
// (ErrRouteNotFound, ErrRouteConflict, ...) in the pack's HTTP-router
// example — the core has no panics on the update path at all.
var (
	// ErrInvalidTarget: update.Target does not identify an existing node.
	ErrInvalidTarget = errors.New("shapetree: invalid target")
	// ErrInvalidKeepIndex: a KeepIndex referenced a non-existent node.
	ErrInvalidKeepIndex = errors.New("shapetree: invalid keep index")
	// ErrUnownedKeepIndex: a KeepIndex referenced a node that is not
	// currently a direct child of the update's target.
	ErrUnownedKeepIndex = errors.New("shapetree: unowned keep index")
	// ErrDuplicateKeepIndex: the same KeepIndex appeared twice in one update.
	ErrDuplicateKeepIndex = errors.New("shapetree: duplicate keep index")
)

// NodeUpdateError wraps one of the sentinel errors above with the [NodeID]
// it was raised for (the update's Target for [ErrInvalidTarget], the
// offending KeepIndex for the other three).
type NodeUpdateError struct {
	Err    error
	NodeID NodeID
}

func (e *NodeUpdateError) Error() string {
	return fmt.Sprintf("%v: node %d", e.Err, e.NodeID)
}

func (e *NodeUpdateError) Unwrap() error {
	return e.Err
}

func updateErr(err error, id NodeID) *NodeUpdateError {
	return &NodeUpdateError{Err: err, NodeID: id}
}

// directChildren returns n's direct children, in order: none for a Shape,
// one for an Operation, N for a Group.
func directChildren(n Node) []NodeID {
	switch n.Class {
	case ClassOperation:
		return []NodeID{n.Child}
	case ClassGroup:
		return n.Children
	default:
		return nil
	}
}

// UpdateNode atomically rewrites the node at update.Target. Either the
// whole update succeeds and the target is replaced, or the tree is left
// exactly as it was before the call: errors never leak half-materialized
// nodes or dangling owned/reused flags.
func (t *Tree) UpdateNode(update NodeUpdate) (NodeUpdateResponse, error) {
	target, ok := t.get(update.Target)
	if !ok {
		return NodeUpdateResponse{}, updateErr(ErrInvalidTarget, update.Target)
	}

	original := directChildren(target)
	for _, id := range original {
		t.setOwned(id, true)
	}

	var newNodes []NodeID
	replacement, err := t.materializeContent(update.Content, &newNodes)
	if err != nil {
		// Non-destructive branch: undo every allocation this attempt made
		// and clear the transient flags set on the original children, so
		// the tree reverts to exactly its pre-call state.
		for _, id := range newNodes {
			t.remove(id)
		}
		for _, id := range original {
			t.setOwned(id, false)
			t.setReused(id, false)
		}
		return NodeUpdateResponse{}, err
	}

	t.set(update.Target, replacement)

	for _, id := range original {
		child, _ := t.get(id)
		t.setOwned(id, false)
		if child.reused {
			t.setReused(id, false)
		} else {
			t.removeSubtree(id)
		}
	}

	if newNodes == nil {
		newNodes = []NodeID{}
	}
	return NodeUpdateResponse{NewNodes: newNodes}, nil
}

// ApplyTreeUpdate applies every NodeUpdate in order against this tree,
// stopping at the first error. Responses for already-applied updates in
// the same batch are returned alongside the error: each update_node call is
// independently atomic, only the batch as a whole is not.
func (t *Tree) ApplyTreeUpdate(update TreeUpdate) ([]NodeUpdateResponse, error) {
	responses := make([]NodeUpdateResponse, 0, len(update.Updates))
	for _, u := range update.Updates {
		resp, err := t.UpdateNode(u)
		if err != nil {
			return responses, err
		}
		responses = append(responses, resp)
	}
	return responses, nil
}

// materializeContent builds the Node value that content describes,
// resolving any ChildUpdate it contains and appending freshly-allocated
// ids to newNodes in materialization order. It does not write the result
// into the arena itself — UpdateNode does that once materialization
// succeeds, per the write-back step of the algorithm.
func (t *Tree) materializeContent(content NodeContent, newNodes *[]NodeID) (Node, error) {
	switch content.Kind {
	case ContentShape:
		return Node{Class: ClassShape, Shape: content.Shape, AABB: shapeAabb(content.Shape)}, nil
	case ContentOperation:
		childID, err := t.resolveChild(content.Child, newNodes)
		if err != nil {
			return Node{}, err
		}
		child, _ := t.get(childID)
		n := Node{Class: ClassOperation, Operation: content.Operation, Child: childID}
		n.AABB = operationAabb(content.Operation, child.AABB)
		return n, nil
	case ContentGroup:
		ids := make([]NodeID, 0, len(content.NewChildren))
		aabb := InvalidAabb
		for _, cu := range content.NewChildren {
			id, err := t.resolveChild(cu, newNodes)
			if err != nil {
				return Node{}, err
			}
			ids = append(ids, id)
			child, _ := t.get(id)
			aabb = unionAabb(aabb, child.AABB)
		}
		return Node{Class: ClassGroup, Children: ids, AABB: aabb}, nil
	default:
		return Node{}, fmt.Errorf("shapetree: invalid NodeContent kind %d", content.Kind)
	}
}

// resolveChild resolves one ChildUpdate into a live NodeID: either an
// existing, currently-owned, not-yet-reused direct child of the update's
// target (KeepIndex), or the root of a freshly materialized subtree
// (NewNode).
func (t *Tree) resolveChild(cu ChildUpdate, newNodes *[]NodeID) (NodeID, error) {
	switch cu.Kind {
	case ChildKeepIndex:
		id := cu.KeepIndex
		child, ok := t.get(id)
		if !ok {
			return 0, updateErr(ErrInvalidKeepIndex, id)
		}
		if !child.owned {
			return 0, updateErr(ErrUnownedKeepIndex, id)
		}
		if child.reused {
			return 0, updateErr(ErrDuplicateKeepIndex, id)
		}
		t.setReused(id, true)
		return id, nil
	case ChildNewNode:
		if cu.New == nil {
			return 0, fmt.Errorf("shapetree: ChildUpdate kind ChildNewNode has nil New")
		}
		return t.materializeNewNode(*cu.New, newNodes)
	default:
		return 0, fmt.Errorf("shapetree: invalid ChildUpdate kind %d", cu.Kind)
	}
}

// materializeNewNode recursively allocates a fresh subtree from n: leaves
// first, then each parent once its children's ids and AABBs are known.
// Every allocation is appended to newNodes in the order slots are
// inserted — children before their parent — matching the response
// contract. A NewNode has no KeepIndex anywhere in it to validate, so this
// fails only on a malformed NewNode (an unknown kind, or an operation with
// a nil Child).
func (t *Tree) materializeNewNode(n NewNode, newNodes *[]NodeID) (NodeID, error) {
	switch n.Kind {
	case ContentShape:
		id := t.insert(Node{Class: ClassShape, Shape: n.Shape, AABB: shapeAabb(n.Shape)})
		*newNodes = append(*newNodes, id)
		return id, nil
	case ContentOperation:
		if n.Child == nil {
			return 0, fmt.Errorf("shapetree: NewNode kind ContentOperation has nil Child")
		}
		childID, err := t.materializeNewNode(*n.Child, newNodes)
		if err != nil {
			return 0, err
		}
		child, _ := t.get(childID)
		id := t.insert(Node{
			Class:     ClassOperation,
			Operation: n.Operation,
			Child:     childID,
			AABB:      operationAabb(n.Operation, child.AABB),
		})
		*newNodes = append(*newNodes, id)
		return id, nil
	case ContentGroup:
		ids := make([]NodeID, 0, len(n.Children))
		aabb := InvalidAabb
		for _, c := range n.Children {
			childID, err := t.materializeNewNode(c, newNodes)
			if err != nil {
				return 0, err
			}
			ids = append(ids, childID)
			child, _ := t.get(childID)
			aabb = unionAabb(aabb, child.AABB)
		}
		id := t.insert(Node{Class: ClassGroup, Children: ids, AABB: aabb})
		*newNodes = append(*newNodes, id)
		return id, nil
	default:
		return 0, fmt.Errorf("shapetree: invalid NewNode kind %d", n.Kind)
	}
}
