// Package chunk implements the fixed-size voxel chunk, its run-length
// compressed wire form, and the finite chunk grid that owns every chunk
// for the session.
package chunk

import (
	"github.com/voxelstack/blocks/internal/coord"
	"github.com/voxelstack/blocks/internal/voxel"
)

// EmptyHighestPoint is the highest-point value of a chunk that contains no
// non-air voxels at all.
const EmptyHighestPoint int8 = -1

// Chunk is a ChunkVolume-sized cube of voxel ids. Chunks never hold a
// back-reference to the grid that owns them; cross-chunk lookups are the
// grid's responsibility (see Grid.Voxel), which avoids the ownership cycle
// the original engine had between a chunk and its manager.
type Chunk struct {
	Pos          coord.ChunkPos
	Voxels       [coord.ChunkVolume]voxel.ID
	HighestPoint int8
}

// NewChunk returns an all-air chunk at the given chunk position.
func NewChunk(pos coord.ChunkPos) *Chunk {
	return &Chunk{Pos: pos, HighestPoint: EmptyHighestPoint}
}

// VoxelQ is the unchecked accessor: callers must guarantee local is
// in-bounds. Used by hot paths (terrain fill, mesher slice scans) that
// have already bounds-tested.
func (c *Chunk) VoxelQ(local coord.LocalPos) voxel.ID {
	return c.Voxels[coord.LocalIndex(local)]
}

// SetVoxelQ is the unchecked mutator paired with VoxelQ.
func (c *Chunk) SetVoxelQ(local coord.LocalPos, id voxel.ID) {
	c.Voxels[coord.LocalIndex(local)] = id
}

// RecomputeHighestPoint scans the chunk and sets HighestPoint to the
// greatest local y holding a non-air voxel, or EmptyHighestPoint if the
// chunk is pure air. This is a reserved hook: nothing in the core calls it
// automatically after a voxel edit, matching the source behaviour where
// the server re-ships the whole chunk instead of patching highestPoint
// in place.
func (c *Chunk) RecomputeHighestPoint(airID voxel.ID) {
	highest := EmptyHighestPoint
	for y := coord.ChunkSize - 1; y >= 0; y-- {
		rowIsAir := true
		base := y * coord.ChunkArea
		for i := 0; i < coord.ChunkArea; i++ {
			if c.Voxels[base+i] != airID {
				rowIsAir = false
				break
			}
		}
		if !rowIsAir {
			highest = int8(y)
			break
		}
	}
	c.HighestPoint = highest
}

// IsEmpty reports whether the chunk can be skipped by the mesher and
// renderer.
func (c *Chunk) IsEmpty() bool {
	return c.HighestPoint == EmptyHighestPoint
}
