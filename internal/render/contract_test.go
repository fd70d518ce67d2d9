package render

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/voxelstack/blocks/internal/chunk"
	"github.com/voxelstack/blocks/internal/coord"
	"github.com/voxelstack/blocks/internal/mesher"
	"github.com/voxelstack/blocks/internal/voxel"
)

func TestVertexLayoutCoversVertexStride(t *testing.T) {
	var floats int
	for _, f := range VertexLayout {
		floats += f.Components
	}
	require.Equal(t, FloatsPerVertex, floats)
	require.Equal(t, mesher.VertexStride, FloatsPerVertex)
}

func TestDrawOrderIsOpaqueThenFoliageThenWater(t *testing.T) {
	require.Equal(t, [3]Submesh{SubmeshSolid, SubmeshFoliage, SubmeshWater}, DrawOrder)
}

func TestIndicesForSelectsMatchingSubmesh(t *testing.T) {
	palette, err := voxel.DefaultLoad()
	require.NoError(t, err)
	airID := palette.IDOfCommon(voxel.CommonAir)
	stoneID := palette.IDOfCommon(voxel.CommonStone)

	grid := chunk.NewGrid(2, airID)
	c := grid.ChunkAt(coord.ChunkPos{})
	c.SetVoxelQ(coord.LocalPos{X: 0, Y: 0, Z: 0}, stoneID)
	c.RecomputeHighestPoint(airID)
	grid.MarkPresent(coord.ChunkPos{})

	out := mesher.Greedy(grid, palette, coord.ChunkPos{})
	require.NotNil(t, out)

	require.Equal(t, out.SolidIndices, IndicesFor(out, SubmeshSolid))
	require.Equal(t, out.DetailIndices, IndicesFor(out, SubmeshFoliage))
	require.Equal(t, out.WaterIndices, IndicesFor(out, SubmeshWater))
	require.Nil(t, IndicesFor(out, Submesh(99)))
}
