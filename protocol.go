package shapetree

import (
	"encoding/json"
	"fmt"
)

// TreeUpdate is a message sent to update a shape tree: a named target tree
// and an ordered list of node updates to apply against it, one after
// another, in the same logical message.
type TreeUpdate struct {
	// Target identifies the tree this update applies to. Interpreting it
	// (e.g. as a registry lookup key) is a transport concern — see the
	// transport package.
	Target uint32 `json:"target"`
	// Updates is applied in order against the named tree.
	Updates []NodeUpdate `json:"updates"`
}

// NodeUpdate targets one node in a tree for replacement.
type NodeUpdate struct {
	// Target is the node's index to rewrite.
	Target NodeID `json:"target"`
	// Content is what the targeted node becomes.
	Content NodeContent `json:"content"`
}

// NodeUpdateResponse reports the ids allocated by one [Tree.UpdateNode]
// call, in the order they were allocated: within any newly-allocated
// subtree, every child comes before its parent.
type NodeUpdateResponse struct {
	NewNodes []NodeID `json:"newNodes"`
}

// ContentKind discriminates the variant held by a [NodeContent] or
// [NewNode] value. The two types share a discriminator because [NewNode]
// is exactly [NodeContent] minus the ability to keep an existing child
// (see [ChildUpdate]).
type ContentKind uint8

const (
	// ContentShape replaces the target with a [Shape] leaf.
	ContentShape ContentKind = iota
	// ContentOperation replaces the target with an [Operation] over one child.
	ContentOperation
	// ContentGroup replaces the target with an ordered list of children.
	ContentGroup
)

func (k ContentKind) String() string {
	switch k {
	case ContentShape:
		return "shape"
	case ContentOperation:
		return "operation"
	case ContentGroup:
		return "group"
	default:
		return "unknown"
	}
}

// NodeContent is what [NodeUpdate] writes to its targeted node.
type NodeContent struct {
	Kind ContentKind

	// ContentShape fields
	Shape Shape

	// ContentOperation fields
	Operation Operation
	Child     ChildUpdate

	// ContentGroup fields. A nil NewChildren is equivalent to an empty
	// list: the group ends up with no children.
	NewChildren []ChildUpdate
}

// ChildKind discriminates the variant held by a [ChildUpdate] value.
type ChildKind uint8

const (
	// ChildKeepIndex reuses an existing direct child of the update's target
	// by index, preserving its id and subtree.
	ChildKeepIndex ChildKind = iota
	// ChildNewNode materializes a fresh subtree. Every node allocated this
	// way is reported in [NodeUpdateResponse.NewNodes].
	ChildNewNode
)

// ChildUpdate is one entry of a group's new_children, or an operation's
// child, in a [NodeContent].
type ChildUpdate struct {
	Kind ChildKind

	// ChildKeepIndex fields
	KeepIndex NodeID

	// ChildNewNode fields
	New *NewNode
}

// KeepChild builds a [ChildUpdate] that reuses an existing child by id.
func KeepChild(id NodeID) ChildUpdate {
	return ChildUpdate{Kind: ChildKeepIndex, KeepIndex: id}
}

// NewChild builds a [ChildUpdate] that materializes a fresh subtree.
func NewChild(n NewNode) ChildUpdate {
	return ChildUpdate{Kind: ChildNewNode, New: &n}
}

// NewNode describes the initial content of a freshly-allocated node. It
// mirrors [NodeContent] exactly, except an operation's child and a group's
// children are themselves [NewNode] values rather than [ChildUpdate] —
// once a subtree starts being freshly materialized, nothing inside it can
// reference an existing node.
type NewNode struct {
	Kind ContentKind

	// ContentShape fields
	Shape Shape

	// ContentOperation fields
	Operation Operation
	Child     *NewNode

	// ContentGroup fields
	Children []NewNode
}

// NewShapeNode builds a [NewNode] leaf.
func NewShapeNode(s Shape) NewNode {
	return NewNode{Kind: ContentShape, Shape: s}
}

// NewOperationNode builds a [NewNode] operation over a freshly-described child.
func NewOperationNode(op Operation, child NewNode) NewNode {
	return NewNode{Kind: ContentOperation, Operation: op, Child: &child}
}

// NewGroupNode builds a [NewNode] group over freshly-described children.
func NewGroupNode(children ...NewNode) NewNode {
	return NewNode{Kind: ContentGroup, Children: children}
}

// --- JSON codec ---
//
// Go has no sum types, so NodeContent, ChildUpdate, and NewNode each
// marshal through an intermediate struct carrying a "kind" string
// discriminator plus every variant's fields, the standard idiom for
// encoding a tagged union over JSON. This is the only serialization format
// the core speaks.

type wireNodeContent struct {
	Kind        string        `json:"kind"`
	Shape       *Shape        `json:"shape,omitempty"`
	Operation   *Operation    `json:"operation,omitempty"`
	Child       *ChildUpdate  `json:"child,omitempty"`
	NewChildren []ChildUpdate `json:"newChildren,omitempty"`
}

func (c NodeContent) MarshalJSON() ([]byte, error) {
	w := wireNodeContent{Kind: c.Kind.String()}
	switch c.Kind {
	case ContentShape:
		w.Shape = &c.Shape
	case ContentOperation:
		w.Operation = &c.Operation
		w.Child = &c.Child
	case ContentGroup:
		w.NewChildren = c.NewChildren
	default:
		return nil, fmt.Errorf("shapetree: invalid NodeContent kind %d", c.Kind)
	}
	return json.Marshal(w)
}

func (c *NodeContent) UnmarshalJSON(data []byte) error {
	var w wireNodeContent
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	switch w.Kind {
	case "shape":
		if w.Shape == nil {
			return fmt.Errorf("shapetree: NodeContent kind %q missing shape", w.Kind)
		}
		*c = NodeContent{Kind: ContentShape, Shape: *w.Shape}
	case "operation":
		if w.Operation == nil || w.Child == nil {
			return fmt.Errorf("shapetree: NodeContent kind %q missing operation/child", w.Kind)
		}
		*c = NodeContent{Kind: ContentOperation, Operation: *w.Operation, Child: *w.Child}
	case "group":
		*c = NodeContent{Kind: ContentGroup, NewChildren: w.NewChildren}
	default:
		return fmt.Errorf("shapetree: unknown NodeContent kind %q", w.Kind)
	}
	return nil
}

type wireChildUpdate struct {
	Kind      string   `json:"kind"`
	KeepIndex *NodeID  `json:"keepIndex,omitempty"`
	New       *NewNode `json:"new,omitempty"`
}

func (c ChildUpdate) MarshalJSON() ([]byte, error) {
	switch c.Kind {
	case ChildKeepIndex:
		id := c.KeepIndex
		return json.Marshal(wireChildUpdate{Kind: "keepIndex", KeepIndex: &id})
	case ChildNewNode:
		return json.Marshal(wireChildUpdate{Kind: "new", New: c.New})
	default:
		return nil, fmt.Errorf("shapetree: invalid ChildUpdate kind %d", c.Kind)
	}
}

func (c *ChildUpdate) UnmarshalJSON(data []byte) error {
	var w wireChildUpdate
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	switch w.Kind {
	case "keepIndex":
		if w.KeepIndex == nil {
			return fmt.Errorf("shapetree: ChildUpdate kind %q missing keepIndex", w.Kind)
		}
		*c = ChildUpdate{Kind: ChildKeepIndex, KeepIndex: *w.KeepIndex}
	case "new":
		if w.New == nil {
			return fmt.Errorf("shapetree: ChildUpdate kind %q missing new", w.Kind)
		}
		*c = ChildUpdate{Kind: ChildNewNode, New: w.New}
	default:
		return fmt.Errorf("shapetree: unknown ChildUpdate kind %q", w.Kind)
	}
	return nil
}

type wireNewNode struct {
	Kind      string     `json:"kind"`
	Shape     *Shape     `json:"shape,omitempty"`
	Operation *Operation `json:"operation,omitempty"`
	Child     *NewNode   `json:"child,omitempty"`
	Children  []NewNode  `json:"children,omitempty"`
}

func (n NewNode) MarshalJSON() ([]byte, error) {
	w := wireNewNode{Kind: n.Kind.String()}
	switch n.Kind {
	case ContentShape:
		w.Shape = &n.Shape
	case ContentOperation:
		w.Operation = &n.Operation
		w.Child = n.Child
	case ContentGroup:
		w.Children = n.Children
	default:
		return nil, fmt.Errorf("shapetree: invalid NewNode kind %d", n.Kind)
	}
	return json.Marshal(w)
}

func (n *NewNode) UnmarshalJSON(data []byte) error {
	var w wireNewNode
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	switch w.Kind {
	case "shape":
		if w.Shape == nil {
			return fmt.Errorf("shapetree: NewNode kind %q missing shape", w.Kind)
		}
		*n = NewNode{Kind: ContentShape, Shape: *w.Shape}
	case "operation":
		if w.Operation == nil || w.Child == nil {
			return fmt.Errorf("shapetree: NewNode kind %q missing operation/child", w.Kind)
		}
		*n = NewNode{Kind: ContentOperation, Operation: *w.Operation, Child: w.Child}
	case "group":
		*n = NewNode{Kind: ContentGroup, Children: w.Children}
	default:
		return fmt.Errorf("shapetree: unknown NewNode kind %q", w.Kind)
	}
	return nil
}
