// Package donburitree provides the ECS-to-scene-tree compiler.
package donburitree

import (
	"sort"

	"github.com/phanxgames/shapetree"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"
)

// ShapeData is the payload of [ShapeComponent]: the leaf shape an entity
// contributes to the compiled tree.
type ShapeData struct {
	Shape shapetree.Shape
}

// TransformData is the payload of [TransformComponent]: an operation wrapped
// around the entity's shape before it is added to the group. Entities
// without this component contribute their shape directly.
type TransformData struct {
	Operation shapetree.Operation
}

// ShapeComponent marks an entity as contributing one leaf shape to a
// compiled tree.
var ShapeComponent = donburi.NewComponentType[ShapeData]()

// TransformComponent optionally wraps an entity's shape in an operation
// (translate, rotate, scale, ...) before it is added to the group.
var TransformComponent = donburi.NewComponentType[TransformData]()

var shapeQuery = donburi.NewQuery(filter.Contains(ShapeComponent))

// entityState is what the compiler remembers about one entity between
// Compile calls: the node id it was last materialized at, and the component
// values it was built from, so the next call can tell whether they changed.
type entityState struct {
	nodeID       shapetree.NodeID
	shape        shapetree.Shape
	transform    TransformData
	hasTransform bool
}

// Compiler diffs a Donburi world's [ShapeComponent] entities against what it
// compiled last frame, reusing node ids for entities whose component data
// hasn't changed. The zero value is not usable; use [NewCompiler].
type Compiler struct {
	root shapetree.NodeID
	prev map[donburi.Entity]entityState
}

// NewCompiler creates a Compiler that will target root on every Compile call.
func NewCompiler(root shapetree.NodeID) *Compiler {
	return &Compiler{root: root, prev: make(map[donburi.Entity]entityState)}
}

// Compile walks every entity carrying [ShapeComponent], builds one
// [shapetree.NodeUpdate] against c's root, and applies it to tree. Entities
// whose shape and transform compare equal (==) to the previous call's are
// kept by index; new or changed entities are rematerialized. Entities
// present last frame but absent now are dropped from the group and freed by
// the tree's own orphan collection.
//
// Entities are visited in ascending entity-id order so the compiled group's
// child order is stable across calls regardless of Donburi's internal
// iteration order.
func (c *Compiler) Compile(world donburi.World, tree *shapetree.Tree) (shapetree.NodeUpdateResponse, error) {
	var entities []donburi.Entity
	shapeQuery.Each(world, func(entry *donburi.Entry) {
		entities = append(entities, entry.Entity())
	})
	sort.Slice(entities, func(i, j int) bool { return entities[i] < entities[j] })

	next := make(map[donburi.Entity]entityState, len(entities))
	children := make([]shapetree.ChildUpdate, 0, len(entities))

	for _, e := range entities {
		entry := world.Entry(e)
		shape := ShapeComponent.Get(entry).Shape

		var transform TransformData
		hasTransform := entry.HasComponent(TransformComponent)
		if hasTransform {
			transform = *TransformComponent.Get(entry)
		}

		prior, ok := c.prev[e]
		unchanged := ok && prior.shape == shape && prior.hasTransform == hasTransform &&
			(!hasTransform || prior.transform.Operation == transform.Operation)

		if unchanged {
			children = append(children, shapetree.KeepChild(prior.nodeID))
			next[e] = prior
			continue
		}

		leaf := shapetree.NewShapeNode(shape)
		newNode := leaf
		if hasTransform {
			newNode = shapetree.NewOperationNode(transform.Operation, leaf)
		}
		children = append(children, shapetree.NewChild(newNode))
		// nodeID is filled in once UpdateNode reports the allocated ids below.
		next[e] = entityState{shape: shape, transform: transform, hasTransform: hasTransform}
	}

	resp, err := tree.UpdateNode(shapetree.NodeUpdate{
		Target:  c.root,
		Content: shapetree.NodeContent{Kind: shapetree.ContentGroup, NewChildren: children},
	})
	if err != nil {
		return shapetree.NodeUpdateResponse{}, err
	}

	assignFreshIDs(entities, children, next, resp.NewNodes)
	c.prev = next
	return resp, nil
}

// assignFreshIDs walks children in the same order Compile built them and
// records the id each freshly materialized (non-KeepIndex) entry received,
// consuming allocated in order: a NewChild(Shape) or NewChild(Operation
// wrapping a shape) allocates exactly one node per entity (the operation
// node itself, or the shape node when there's no transform), always last
// among that entity's allocations, so the Nth fresh entry consumes
// allocated's next unclaimed id.
func assignFreshIDs(entities []donburi.Entity, children []shapetree.ChildUpdate, next map[donburi.Entity]entityState, allocated []shapetree.NodeID) {
	cursor := 0
	for i, e := range entities {
		if children[i].Kind != shapetree.ChildNewNode {
			continue
		}
		st := next[e]
		// The entity's own node (shape, or the operation wrapping it) is
		// always the last id allocated for its subtree.
		count := subtreeAllocCount(st.hasTransform)
		st.nodeID = allocated[cursor+count-1]
		cursor += count
		next[e] = st
	}
}

func subtreeAllocCount(hasTransform bool) int {
	if hasTransform {
		return 2 // shape leaf, then the operation wrapping it
	}
	return 1
}
