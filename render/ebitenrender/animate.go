package ebitenrender

import (
	"github.com/phanxgames/shapetree"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// OpacityAnimation drives a single OpOpacity node's Opacity field across
// frames. Call Update each tick with the elapsed time; it pushes a
// KeepIndex-only NodeUpdate so the node's children are never disturbed.
type OpacityAnimation struct {
	tree *shapetree.Tree
	node shapetree.NodeID
	keep shapetree.ChildUpdate
	tw   *gween.Tween
	done bool
}

// AnimateOpacity starts an animation that tweens node's opacity from from
// to to over duration seconds. node must already hold an
// OpOpacity operation wrapping childID; that child is preserved via
// KeepChild on every Update call.
func AnimateOpacity(tree *shapetree.Tree, node, childID shapetree.NodeID, from, to float64, duration float32, fn ease.TweenFunc) *OpacityAnimation {
	return &OpacityAnimation{
		tree: tree,
		node: node,
		keep: shapetree.KeepChild(childID),
		tw:   gween.New(float32(from), float32(to), duration, fn),
	}
}

// Update advances the tween by dt seconds and writes the new opacity back
// into the tree. It returns false once the tween has finished, after which
// further calls are no-ops.
func (a *OpacityAnimation) Update(dt float32) (bool, error) {
	if a.done {
		return false, nil
	}
	val, done := a.tw.Update(dt)
	a.done = done

	_, err := a.tree.UpdateNode(shapetree.NodeUpdate{
		Target: a.node,
		Content: shapetree.NodeContent{
			Kind: shapetree.ContentOperation,
			Operation: shapetree.Operation{
				Kind:    shapetree.OpOpacity,
				Opacity: float64(val),
			},
			Child: a.keep,
		},
	})
	if err != nil {
		return false, err
	}
	return !done, nil
}
