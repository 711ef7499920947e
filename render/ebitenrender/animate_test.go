package ebitenrender_test

import (
	"testing"

	"github.com/phanxgames/shapetree"
	"github.com/phanxgames/shapetree/render/ebitenrender"

	"github.com/tanema/gween/ease"
)

func TestAnimateOpacityReachesTargetAndStops(t *testing.T) {
	tree := shapetree.NewTree()
	childID := shapetree.NodeID(0)
	if resp, err := tree.UpdateNode(shapetree.NodeUpdate{
		Target: 0,
		Content: shapetree.NodeContent{
			Kind:      shapetree.ContentOperation,
			Operation: shapetree.Operation{Kind: shapetree.OpOpacity, Opacity: 0},
			Child:     shapetree.NewChild(shapetree.NewShapeNode(shapetree.Shape{Kind: shapetree.ShapeCircle, Radius: 1})),
		},
	}); err != nil {
		t.Fatalf("UpdateNode: %v", err)
	} else {
		childID = resp.NewNodes[0]
	}

	anim := ebitenrender.AnimateOpacity(tree, 0, childID, 0, 1, 1.0, ease.Linear)

	running, err := anim.Update(0.5)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !running {
		t.Fatal("expected the animation to still be running halfway through")
	}
	if got := tree.Root().Operation.Opacity; got <= 0 || got >= 1 {
		t.Fatalf("Opacity = %v, want a value strictly between 0 and 1 at the midpoint", got)
	}

	running, err = anim.Update(0.5)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if running {
		t.Fatal("expected the animation to finish after its full duration")
	}
	if got := tree.Root().Operation.Opacity; got != 1 {
		t.Fatalf("Opacity = %v, want 1 once finished", got)
	}

	running, err = anim.Update(0.1)
	if err != nil {
		t.Fatalf("Update after done: %v", err)
	}
	if running {
		t.Fatal("expected Update to keep reporting finished after completion")
	}
}
