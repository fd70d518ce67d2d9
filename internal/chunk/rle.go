package chunk

import (
	"fmt"

	"github.com/voxelstack/blocks/internal/coord"
	"github.com/voxelstack/blocks/internal/voxel"
)

// RLEPair is one run of identical voxel ids. This is also the exact wire
// encoding used by the network packet in package protocol: a little-endian
// u8 id followed by a little-endian u16 count, three bytes tight with no
// padding. That choice resolves the spec's open question on RLEPair
// layout; see DESIGN.md.
type RLEPair struct {
	ID    voxel.ID
	Count uint16
}

// Compress run-length encodes a full voxel array in storage order. It
// always emits exactly one pair per maximal run, including the final run.
func Compress(voxels [coord.ChunkVolume]voxel.ID) []RLEPair {
	pairs := make([]RLEPair, 0, 64)

	current := voxels[0]
	count := uint16(1)
	for i := 1; i < len(voxels); i++ {
		if voxels[i] == current && count < 65535 {
			count++
			continue
		}
		pairs = append(pairs, RLEPair{ID: current, Count: count})
		current = voxels[i]
		count = 1
	}
	pairs = append(pairs, RLEPair{ID: current, Count: count})
	return pairs
}

// DecompressError reports a compressed chunk whose run lengths do not sum
// to ChunkVolume.
type DecompressError struct {
	Sum int
}

func (e *DecompressError) Error() string {
	return fmt.Sprintf("chunk: decompress: run lengths sum to %d, want %d", e.Sum, coord.ChunkVolume)
}

// Decompress expands a compressed run list back into a full voxel array.
// It fails loudly if the runs do not sum to exactly ChunkVolume.
func Decompress(pairs []RLEPair) (out [coord.ChunkVolume]voxel.ID, err error) {
	sum := 0
	for _, pair := range pairs {
		sum += int(pair.Count)
	}
	if sum != coord.ChunkVolume {
		return out, &DecompressError{Sum: sum}
	}

	idx := 0
	for _, pair := range pairs {
		for i := uint16(0); i < pair.Count; i++ {
			out[idx] = pair.ID
			idx++
		}
	}
	return out, nil
}
