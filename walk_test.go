package shapetree

import "testing"

type recordingRenderer struct {
	events []string
	aabbs  []Aabb
}

func (r *recordingRenderer) OnShape(s *Shape) {
	r.events = append(r.events, "shape:"+shapeKindLabel(s.Kind))
}

func (r *recordingRenderer) PushOperation(op *Operation) {
	r.events = append(r.events, "push")
}

func (r *recordingRenderer) PopOperation(op *Operation) {
	r.events = append(r.events, "pop")
}

func (r *recordingRenderer) OnAABB(a Aabb) {
	r.aabbs = append(r.aabbs, a)
}

func shapeKindLabel(k ShapeKind) string {
	switch k {
	case ShapeCircle:
		return "circle"
	case ShapeRectangle:
		return "rectangle"
	default:
		return "other"
	}
}

var unboundedViewport = Aabb{Min: Vec2{X: -1e9, Y: -1e9}, Max: Vec2{X: 1e9, Y: 1e9}}

func TestWalkVisitsGroupChildrenInOrder(t *testing.T) {
	tr := NewTree()
	if _, err := tr.UpdateNode(NodeUpdate{
		Target: 0,
		Content: NodeContent{
			Kind: ContentGroup,
			NewChildren: []ChildUpdate{
				NewChild(NewShapeNode(Shape{Kind: ShapeCircle, Radius: 1})),
				NewChild(NewShapeNode(Shape{Kind: ShapeRectangle, Min: Vec2{X: 0, Y: 0}, Max: Vec2{X: 1, Y: 1}})),
			},
		},
	}); err != nil {
		t.Fatalf("setup: %v", err)
	}

	rec := &recordingRenderer{}
	tr.Walk(rec, unboundedViewport)

	want := []string{"shape:circle", "shape:rectangle"}
	if !equalStrings(rec.events, want) {
		t.Errorf("events = %v, want %v", rec.events, want)
	}
}

func TestWalkPushPopBalancedAndNested(t *testing.T) {
	tr := NewTree()
	if _, err := tr.UpdateNode(NodeUpdate{
		Target: 0,
		Content: NodeContent{
			Kind:      ContentOperation,
			Operation: Operation{Kind: OpTranslate, Offset: Vec2{X: 10, Y: 0}},
			Child:     NewChild(NewShapeNode(Shape{Kind: ShapeCircle, Radius: 1})),
		},
	}); err != nil {
		t.Fatalf("setup: %v", err)
	}

	rec := &recordingRenderer{}
	tr.Walk(rec, unboundedViewport)

	want := []string{"push", "shape:circle", "pop"}
	if !equalStrings(rec.events, want) {
		t.Errorf("events = %v, want %v", rec.events, want)
	}
}

func TestWalkCullsOutOfViewSubtree(t *testing.T) {
	tr := NewTree()
	if _, err := tr.UpdateNode(NodeUpdate{
		Target: 0,
		Content: NodeContent{
			Kind: ContentGroup,
			NewChildren: []ChildUpdate{
				NewChild(NewShapeNode(Shape{Kind: ShapeCircle, Radius: 1})),
				NewChild(NewOperationNode(
					Operation{Kind: OpTranslate, Offset: Vec2{X: 1000, Y: 1000}},
					NewShapeNode(Shape{Kind: ShapeCircle, Radius: 1}),
				)),
			},
		},
	}); err != nil {
		t.Fatalf("setup: %v", err)
	}

	viewport := Aabb{Min: Vec2{X: -5, Y: -5}, Max: Vec2{X: 5, Y: 5}}
	rec := &recordingRenderer{}
	tr.Walk(rec, viewport)

	want := []string{"shape:circle"}
	if !equalStrings(rec.events, want) {
		t.Errorf("events = %v, want %v (second subtree should be fully culled: no push/pop either)", rec.events, want)
	}
}

func TestWalkReportsWorldSpaceAABB(t *testing.T) {
	tr := NewTree()
	if _, err := tr.UpdateNode(NodeUpdate{
		Target: 0,
		Content: NodeContent{
			Kind:      ContentOperation,
			Operation: Operation{Kind: OpTranslate, Offset: Vec2{X: 10, Y: 0}},
			Child:     NewChild(NewShapeNode(Shape{Kind: ShapeCircle, Radius: 1})),
		},
	}); err != nil {
		t.Fatalf("setup: %v", err)
	}

	rec := &recordingRenderer{}
	tr.Walk(rec, unboundedViewport)

	if len(rec.aabbs) != 2 {
		t.Fatalf("aabbs = %v, want 2 reports (operation, then shape)", rec.aabbs)
	}
	want := Aabb{Min: Vec2{X: 9, Y: -1}, Max: Vec2{X: 11, Y: 1}}
	if !aabbEqual(rec.aabbs[1], want) {
		t.Errorf("shape world AABB = %+v, want %+v", rec.aabbs[1], want)
	}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
