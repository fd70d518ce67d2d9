package chunk

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/voxelstack/blocks/internal/coord"
)

func TestGridChunkAtOutOfRangeReturnsErrorChunk(t *testing.T) {
	g := NewGrid(4, 0)
	c := g.ChunkAt(coord.ChunkPos{X: -1, Y: 0, Z: 0})
	require.Same(t, g.errorChunk, c)

	c = g.ChunkAt(coord.ChunkPos{X: 100, Y: 0, Z: 0})
	require.Same(t, g.errorChunk, c)
}

func TestGridVoxelOutOfBounds(t *testing.T) {
	g := NewGrid(4, 0)
	v := g.Voxel(coord.GlobalPos{X: -1, Y: 0, Z: 0})
	require.Equal(t, uint8(255), v)
}

func TestGridSetAndGetVoxel(t *testing.T) {
	g := NewGrid(4, 0)
	pos := coord.GlobalPos{X: 33, Y: 1, Z: 2}
	g.SetVoxel(pos, 7)
	require.Equal(t, uint8(7), g.Voxel(pos))

	ck := coord.VoxelToChunk(pos)
	require.True(t, g.IsPresent(ck))
}

func TestGridIndexMatchesSpecFormula(t *testing.T) {
	g := NewGrid(4, 0)
	pos := coord.ChunkPos{X: 1, Y: 2, Z: 3}
	want := pos.X + 4*(pos.Y+4*pos.Z)
	require.Equal(t, want, g.index(pos))
}
