package ebitenrender_test

import (
	"testing"

	"github.com/phanxgames/shapetree"
	"github.com/phanxgames/shapetree/render/ebitenrender"

	"github.com/hajimehoshi/ebiten/v2"
)

var unboundedViewport = shapetree.Aabb{
	Min: shapetree.Vec2{X: -1000, Y: -1000},
	Max: shapetree.Vec2{X: 1000, Y: 1000},
}

func TestRendererWalksCircleWithoutPanicking(t *testing.T) {
	dst := ebiten.NewImage(32, 32)
	defer dst.Deallocate()
	r := ebitenrender.NewRenderer(dst)

	tree := shapetree.NewTree()
	if _, err := tree.UpdateNode(shapetree.NodeUpdate{
		Target: 0,
		Content: shapetree.NodeContent{
			Kind:      shapetree.ContentOperation,
			Operation: shapetree.Operation{Kind: shapetree.OpTranslate, Offset: shapetree.Vec2{X: 16, Y: 16}},
			Child:     shapetree.NewChild(shapetree.NewShapeNode(shapetree.Shape{Kind: shapetree.ShapeCircle, Radius: 8})),
		},
	}); err != nil {
		t.Fatalf("UpdateNode: %v", err)
	}

	tree.Walk(r, unboundedViewport)

	if dst.Bounds().Dx() != 32 || dst.Bounds().Dy() != 32 {
		t.Fatalf("destination image resized unexpectedly: %v", dst.Bounds())
	}
}

func TestRendererWalksNestedOpacityAndBlurWithoutPanicking(t *testing.T) {
	dst := ebiten.NewImage(32, 32)
	defer dst.Deallocate()
	r := ebitenrender.NewRenderer(dst)

	tree := shapetree.NewTree()
	blurred := shapetree.NewOperationNode(
		shapetree.Operation{Kind: shapetree.OpBlur, BlurRadius: 4},
		shapetree.NewShapeNode(shapetree.Shape{
			Kind: shapetree.ShapeRectangle,
			Min:  shapetree.Vec2{X: -10, Y: -10},
			Max:  shapetree.Vec2{X: 10, Y: 10},
		}),
	)
	if _, err := tree.UpdateNode(shapetree.NodeUpdate{
		Target: 0,
		Content: shapetree.NodeContent{
			Kind:      shapetree.ContentOperation,
			Operation: shapetree.Operation{Kind: shapetree.OpOpacity, Opacity: 0.5},
			Child:     shapetree.NewChild(blurred),
		},
	}); err != nil {
		t.Fatalf("UpdateNode: %v", err)
	}

	tree.Walk(r, unboundedViewport)
}

func TestRendererStrokeAppliesOnlyToItsSubtree(t *testing.T) {
	dst := ebiten.NewImage(32, 32)
	defer dst.Deallocate()
	r := ebitenrender.NewRenderer(dst)

	tree := shapetree.NewTree()
	stroked := shapetree.NewOperationNode(
		shapetree.Operation{Kind: shapetree.OpStroke, StrokeColor: shapetree.Vec3{X: 1, Y: 0, Z: 0}},
		shapetree.NewShapeNode(shapetree.Shape{Kind: shapetree.ShapeCircle, Radius: 4}),
	)
	if _, err := tree.UpdateNode(shapetree.NodeUpdate{
		Target: 0,
		Content: shapetree.NodeContent{
			Kind: shapetree.ContentGroup,
			NewChildren: []shapetree.ChildUpdate{
				shapetree.NewChild(stroked),
				shapetree.NewChild(shapetree.NewShapeNode(shapetree.Shape{Kind: shapetree.ShapeCircle, Radius: 4})),
			},
		},
	}); err != nil {
		t.Fatalf("UpdateNode: %v", err)
	}

	tree.Walk(r, unboundedViewport)
}
