package chunk

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/voxelstack/blocks/internal/coord"
	"github.com/voxelstack/blocks/internal/voxel"
)

func TestCompressTwoVoxelPattern(t *testing.T) {
	// S1: indices [0,16384) are stone(1), [16384,32768) are sand(2).
	var voxels [coord.ChunkVolume]voxel.ID
	for i := range voxels {
		if i < coord.ChunkVolume/2 {
			voxels[i] = 1
		} else {
			voxels[i] = 2
		}
	}

	pairs := Compress(voxels)
	require.Equal(t, []RLEPair{
		{ID: 1, Count: coord.ChunkVolume / 2},
		{ID: 2, Count: coord.ChunkVolume / 2},
	}, pairs)

	roundTripped, err := Decompress(pairs)
	require.NoError(t, err)
	require.Equal(t, voxels, roundTripped)
}

func TestCompressRunsSumToVolume(t *testing.T) {
	var voxels [coord.ChunkVolume]voxel.ID
	for i := range voxels {
		voxels[i] = voxel.ID(i % 7)
	}
	pairs := Compress(voxels)

	sum := 0
	for _, p := range pairs {
		sum += int(p.Count)
	}
	require.Equal(t, coord.ChunkVolume, sum)

	roundTripped, err := Decompress(pairs)
	require.NoError(t, err)
	require.Equal(t, voxels, roundTripped)
}

func TestCompressAllAir(t *testing.T) {
	var voxels [coord.ChunkVolume]voxel.ID
	pairs := Compress(voxels)
	require.Equal(t, []RLEPair{{ID: 0, Count: coord.ChunkVolume}}, pairs)
}

func TestDecompressRejectsShortfall(t *testing.T) {
	_, err := Decompress([]RLEPair{{ID: 1, Count: 100}})
	require.Error(t, err)
	var decErr *DecompressError
	require.ErrorAs(t, err, &decErr)
}

func TestDecompressRejectsOverrun(t *testing.T) {
	_, err := Decompress([]RLEPair{{ID: 1, Count: 65535}, {ID: 2, Count: coord.ChunkVolume}})
	require.Error(t, err)
}
