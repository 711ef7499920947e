// Package shapetree is a retained-mode 2D scene-graph server.
//
// Clients describe visual content as a tree of nodes: leaf shapes (circles,
// rectangles, rounded rectangles, text), unary operation nodes that
// transform or style their single child (translate, rotate, scale, opacity
// layer, blur layer, stroke), and group nodes holding ordered children.
// Clients mutate the tree by issuing [NodeUpdate] messages that can
// structurally reuse existing subtrees by index, letting a UI toolkit
// express a new frame as a minimal delta against the previous frame.
//
// # Quick start
//
//	tree := shapetree.NewTree()
//	resp, err := tree.UpdateNode(shapetree.NodeUpdate{
//		Target: 0,
//		Content: shapetree.NodeContent{
//			Kind:  shapetree.ContentShape,
//			Shape: shapetree.Shape{Kind: shapetree.ShapeCircle, Radius: 1},
//		},
//	})
//
// # Scene graph
//
// Every node lives in a [Tree], identified by a stable [NodeID]. The tree
// always has a node at id 0 (the root), created as [Shape] kind
// [ShapeEmpty]. [Tree.UpdateNode] atomically rewrites one targeted node,
// allocating freshly-described children, re-parenting reused children (by
// [ChildUpdate] of kind [ChildKeepIndex]), and garbage-collecting any
// previously-owned child that wasn't reused.
//
// # Traversal
//
// [Tree.Walk] performs a depth-first traversal starting at the root,
// driving a [Renderer] through [Renderer.OnShape], [Renderer.PushOperation],
// and [Renderer.PopOperation] calls, culling any subtree whose world-space
// bounding box doesn't intersect the supplied viewport.
//
// The pixel backend, windowing integration, wire framing, and declarative
// front-end that would normally sit around this core are out of scope for
// this package. The render/ebitenrender, transport, and donburitree packages
// supply one concrete pixel backend, wire framing, and declarative
// front-end; no windowing integration is included.
package shapetree
