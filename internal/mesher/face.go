// Package mesher turns a chunk's voxel array into GPU-ready vertex and
// index buffers, using a greedy surface-merging algorithm (with a naive
// one-quad-per-cell fallback), and schedules that work across a fixed
// pool of worker goroutines. The pool's FIFOs have their own mutex; grid
// reads during meshing take the chunk grid's read lock, not the pool's.
package mesher

import (
	"github.com/voxelstack/blocks/internal/chunk"
	"github.com/voxelstack/blocks/internal/coord"
	"github.com/voxelstack/blocks/internal/voxel"
)

// Mode selects which meshing algorithm the pool runs.
type Mode int

const (
	Greedy Mode = iota
	Naive
)

// axisMap gives, for a main scanning axis d (0=x,1=y,2=z), the indices of
// the two axes spanning the slice plane, in a fixed u,v order.
var axisMap = [3][2]int{
	{1, 2}, // d=0 (x): u=y, v=z
	{0, 2}, // d=1 (y): u=x, v=z
	{0, 1}, // d=2 (z): u=x, v=y
}

// directionFor resolves the face direction for a given scanning axis and
// facing (front = normal points along +axis).
func directionFor(axis int, front bool) voxel.Face {
	switch axis {
	case 0:
		if front {
			return voxel.East
		}
		return voxel.West
	case 1:
		if front {
			return voxel.Top
		}
		return voxel.Bottom
	default:
		if front {
			return voxel.North
		}
		return voxel.South
	}
}

// normalFor returns the fixed axis-aligned unit normal for a direction.
// This is also the vector used as the sort key for transparent triangles.
func normalFor(d voxel.Face) [3]float32 {
	switch d {
	case voxel.Top:
		return [3]float32{0, 1, 0}
	case voxel.Bottom:
		return [3]float32{0, -1, 0}
	case voxel.North:
		return [3]float32{0, 0, 1}
	case voxel.South:
		return [3]float32{0, 0, -1}
	case voxel.East:
		return [3]float32{1, 0, 0}
	default: // West
		return [3]float32{-1, 0, 0}
	}
}

// isOccluding reports whether a descriptor fully blocks the voxel behind
// it, hiding any face between them. Only Solid voxels occlude; liquids,
// gas (air), and detail blocks do not.
func isOccluding(d voxel.Descriptor) bool {
	return d.Type == voxel.Solid
}

// isTransparentLike reports whether a descriptor is "see-through enough"
// for a neighbouring voxel's face to be emitted against it: air, water,
// or a detail block (and, since the out-of-bounds descriptor is Gas, an
// absent neighbour as well).
func isTransparentLike(d voxel.Descriptor) bool {
	return d.Type == voxel.Gas || d.Type == voxel.Liquid || d.Style == voxel.StyleCross
}

// aoOccludes reports whether a descriptor counts as an occluder for
// ambient-occlusion sampling: anything that is not air, not out of
// bounds, and not a detail block (this is deliberately broader than
// isOccluding — water counts here, so a solid corner next to water still
// darkens).
func aoOccludes(d voxel.Descriptor) bool {
	return d.Type != voxel.Gas && d.Type != voxel.Detail && d.ID != voxel.OutOfBounds
}

// faceVisible decides whether a face should be emitted from source's side
// against opposite. Structural identity cancels first (so two adjacent
// water cells produce no interior face); otherwise the face shows if the
// neighbour is transparent-like, or if exactly one of the pair is Solid.
func faceVisible(source, opposite voxel.Descriptor) bool {
	if source.ID == opposite.ID {
		return false
	}
	if isTransparentLike(opposite) {
		return true
	}
	return isOccluding(source) != isOccluding(opposite)
}

// cell is one entry of a greedy-mesh mask: the merged-surface unit before
// width/height extension. Equality is over every field except position,
// matching the source's structural-equality merge rule (ao included, so
// a lighting discontinuity stops a merge rather than being smoothed over).
type cell struct {
	direction      voxel.Face
	voxelID        voxel.ID
	tileIndex      uint16
	verticalOffset float32
	ao             [4]uint8
	isWater        bool
	isDetail       bool
}

func (c *cell) equal(o *cell) bool {
	return c.direction == o.direction &&
		c.voxelID == o.voxelID &&
		c.tileIndex == o.tileIndex &&
		c.verticalOffset == o.verticalOffset &&
		c.ao == o.ao &&
		c.isWater == o.isWater &&
		c.isDetail == o.isDetail
}

// sampler reads voxel descriptors for one chunk, transparently reaching
// into neighbouring chunks across a slice boundary. It must only be used
// while the caller holds the grid's lock.
type sampler struct {
	grid     *chunk.Grid
	palette  *voxel.Palette
	chunkPos coord.ChunkPos
}

func (s *sampler) descriptorAt(axis int, main int32, u, v int) voxel.Descriptor {
	base := coord.GlobalPos{
		X: s.chunkPos.X * coord.ChunkSize,
		Y: s.chunkPos.Y * coord.ChunkSize,
		Z: s.chunkPos.Z * coord.ChunkSize,
	}
	pos := base
	switch axis {
	case 0:
		pos.X += main
		pos.Y += int32(u)
		pos.Z += int32(v)
	case 1:
		pos.X += int32(u)
		pos.Y += main
		pos.Z += int32(v)
	default:
		pos.X += int32(u)
		pos.Y += int32(v)
		pos.Z += main
	}
	id := s.grid.VoxelLocked(pos)
	return s.palette.DescriptorOf(id)
}
