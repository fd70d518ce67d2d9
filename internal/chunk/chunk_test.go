package chunk

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/voxelstack/blocks/internal/coord"
)

func TestNewChunkIsEmpty(t *testing.T) {
	c := NewChunk(coord.ChunkPos{})
	require.True(t, c.IsEmpty())
	require.Equal(t, EmptyHighestPoint, c.HighestPoint)
}

func TestRecomputeHighestPoint(t *testing.T) {
	c := NewChunk(coord.ChunkPos{})
	const air = 0
	const stone = 1

	c.SetVoxelQ(coord.LocalPos{X: 5, Y: 10, Z: 5}, stone)
	c.RecomputeHighestPoint(air)
	require.Equal(t, int8(10), c.HighestPoint)
	require.False(t, c.IsEmpty())
}

func TestRecomputeHighestPointAllAir(t *testing.T) {
	c := NewChunk(coord.ChunkPos{})
	c.RecomputeHighestPoint(0)
	require.True(t, c.IsEmpty())
}
