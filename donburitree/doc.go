// Package donburitree compiles a Donburi ECS world into shapetree updates.
//
// An embedder keeps its own state as ECS entities carrying [ShapeComponent]
// (and optionally [TransformComponent]), and calls a [Compiler]'s Compile
// method once per frame to turn that state into a single
// [shapetree.NodeUpdate] against a group node, reusing the ids of entities
// whose component data is unchanged since the previous call and only
// rematerializing the ones that are new or changed.
//
// Usage:
//
//	c := donburitree.NewCompiler(root)
//	resp, err := c.Compile(world, tree)
//
// [Donburi]: https://github.com/yohamta/donburi
package donburitree
