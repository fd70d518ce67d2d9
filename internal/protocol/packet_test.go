package protocol

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/voxelstack/blocks/internal/chunk"
	"github.com/voxelstack/blocks/internal/coord"
	"github.com/voxelstack/blocks/internal/voxel"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	pkt := ChunkPacket{
		X: -3, Y: 1, Z: 7,
		HighestPoint: 12,
		Pairs: []chunk.RLEPair{
			{ID: 1, Count: 16384},
			{ID: 2, Count: 16384},
		},
	}

	data := Encode(pkt)
	got, err := Decode(data)
	require.NoError(t, err)
	require.Equal(t, pkt, got)
}

func TestDecodeFromStream(t *testing.T) {
	pkt := ChunkPacket{X: 1, Y: 2, Z: 3, HighestPoint: -1, Pairs: []chunk.RLEPair{{ID: 0, Count: coord.ChunkVolume}}}
	data := Encode(pkt)

	got, err := DecodeFrom(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, pkt, got)
}

func TestDecodeRejectsMismatchedPayload(t *testing.T) {
	data := Encode(ChunkPacket{Pairs: []chunk.RLEPair{{ID: 1, Count: 5}}})
	// Truncate the single RLE pair's payload by one byte.
	_, err := Decode(data[:len(data)-1])
	require.Error(t, err)
	var malformed *MalformedPacketError
	require.ErrorAs(t, err, &malformed)
}

func TestEncodeChunkThenApplyRoundTrips(t *testing.T) {
	palette, err := voxel.DefaultLoad()
	require.NoError(t, err)
	stoneID := palette.IDOfCommon(voxel.CommonStone)

	src := chunk.NewChunk(coord.ChunkPos{X: 2, Y: 0, Z: 0})
	for i := 0; i < coord.ChunkArea; i++ {
		src.Voxels[i] = stoneID
	}
	src.RecomputeHighestPoint(palette.IDOfCommon(voxel.CommonAir))

	data := EncodeChunk(coord.ChunkPos{X: 2, Y: 0, Z: 0}, src)
	pkt, err := Decode(data)
	require.NoError(t, err)

	grid := chunk.NewGrid(4, palette.IDOfCommon(voxel.CommonAir))
	require.NoError(t, Apply(pkt, grid))

	require.True(t, grid.IsPresent(coord.ChunkPos{X: 2, Y: 0, Z: 0}))
	require.Equal(t, src.HighestPoint, grid.ChunkAt(coord.ChunkPos{X: 2, Y: 0, Z: 0}).HighestPoint)
	require.Equal(t, stoneID, grid.Voxel(coord.GlobalPos{X: 64, Y: 0, Z: 0}))
}

func TestApplyIgnoresAlreadyPresentChunk(t *testing.T) {
	palette, err := voxel.DefaultLoad()
	require.NoError(t, err)
	airID := palette.IDOfCommon(voxel.CommonAir)
	stoneID := palette.IDOfCommon(voxel.CommonStone)

	grid := chunk.NewGrid(4, airID)
	pos := coord.ChunkPos{X: 0, Y: 0, Z: 0}
	grid.SetVoxel(coord.GlobalPos{X: 0, Y: 0, Z: 0}, stoneID)
	require.True(t, grid.IsPresent(pos))

	pkt := ChunkPacket{X: 0, Y: 0, Z: 0, HighestPoint: -1, Pairs: []chunk.RLEPair{{ID: uint8(airID), Count: coord.ChunkVolume}}}
	require.NoError(t, Apply(pkt, grid))

	// The already-present chunk must not have been overwritten with air.
	require.Equal(t, stoneID, grid.Voxel(coord.GlobalPos{X: 0, Y: 0, Z: 0}))
}
