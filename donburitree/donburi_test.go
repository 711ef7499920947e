package donburitree_test

import (
	"testing"

	"github.com/phanxgames/shapetree"
	"github.com/phanxgames/shapetree/donburitree"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yohamta/donburi"
)

func TestCompileMaterializesNewEntities(t *testing.T) {
	world := donburi.NewWorld()
	empty := world.Entry(world.Create(donburitree.ShapeComponent))
	donburitree.ShapeComponent.SetValue(empty, donburitree.ShapeData{
		Shape: shapetree.Shape{Kind: shapetree.ShapeEmpty},
	})
	circle := world.Entry(world.Create(donburitree.ShapeComponent))
	donburitree.ShapeComponent.SetValue(circle, donburitree.ShapeData{
		Shape: shapetree.Shape{Kind: shapetree.ShapeCircle, Radius: 1},
	})

	tree := shapetree.NewTree()
	c := donburitree.NewCompiler(0)

	resp, err := c.Compile(world, tree)
	require.NoError(t, err)
	assert.Len(t, resp.NewNodes, 2, "two entities, one leaf node each")
	assert.Equal(t, shapetree.ClassGroup, tree.Root().Class)
	assert.Len(t, tree.Root().Children, 2)
}

func TestCompileKeepsUnchangedEntities(t *testing.T) {
	world := donburi.NewWorld()
	entry := world.Entry(world.Create(donburitree.ShapeComponent))
	donburitree.ShapeComponent.SetValue(entry, donburitree.ShapeData{
		Shape: shapetree.Shape{Kind: shapetree.ShapeCircle, Radius: 2},
	})

	tree := shapetree.NewTree()
	c := donburitree.NewCompiler(0)

	first, err := c.Compile(world, tree)
	require.NoError(t, err)
	require.Len(t, first.NewNodes, 1)
	firstID := tree.Root().Children[0]

	second, err := c.Compile(world, tree)
	require.NoError(t, err)
	assert.Empty(t, second.NewNodes, "unchanged entity should be kept, not rematerialized")
	assert.Equal(t, firstID, tree.Root().Children[0])
}

func TestCompileRematerializesChangedEntity(t *testing.T) {
	world := donburi.NewWorld()
	entry := world.Entry(world.Create(donburitree.ShapeComponent))
	donburitree.ShapeComponent.SetValue(entry, donburitree.ShapeData{
		Shape: shapetree.Shape{Kind: shapetree.ShapeCircle, Radius: 2},
	})

	tree := shapetree.NewTree()
	c := donburitree.NewCompiler(0)

	first, err := c.Compile(world, tree)
	require.NoError(t, err)
	firstID := first.NewNodes[0]

	donburitree.ShapeComponent.SetValue(entry, donburitree.ShapeData{
		Shape: shapetree.Shape{Kind: shapetree.ShapeCircle, Radius: 5},
	})

	second, err := c.Compile(world, tree)
	require.NoError(t, err)
	require.Len(t, second.NewNodes, 1)
	assert.NotEqual(t, firstID, second.NewNodes[0])
}
