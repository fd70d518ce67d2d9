// Package coord implements the pure coordinate conversions shared by the
// chunk grid, terrain generator, and mesher: world/chunk/local translation
// and the chunk-key hash used when chunks are addressed by a map instead of
// the flat grid.
package coord

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// ChunkSize is the edge length, in voxels, of a cubic chunk.
const ChunkSize = 32

// ChunkArea is the number of voxels in a single horizontal (x,z) slice.
const ChunkArea = ChunkSize * ChunkSize

// ChunkVolume is the total number of voxels stored by one chunk.
const ChunkVolume = ChunkArea * ChunkSize

// ChunksPerSideRelease and ChunksPerSideDebug size the pre-allocated chunk
// grid; callers pick one when constructing a grid.
const (
	ChunksPerSideRelease = 14
	ChunksPerSideDebug   = 4
)

// WaterLevel is the local-y (and global-y, since chunks never stack
// vertically past a handful of layers) below which exposed air becomes
// water during terrain generation.
const WaterLevel = 24

// ChunkPos is an integer chunk-space coordinate.
type ChunkPos struct {
	X, Y, Z int32
}

// LocalPos is an integer voxel coordinate local to a single chunk, always
// in [0, ChunkSize) per axis.
type LocalPos struct {
	X, Y, Z int
}

// GlobalPos is an integer voxel coordinate in world space.
type GlobalPos struct {
	X, Y, Z int32
}

// LocalIndex maps a local position to its offset in a chunk's flat voxel
// array. Row-major with y the slowest-varying axis, matching the storage
// order the rest of the pipeline (RLE, terrain fill) assumes.
func LocalIndex(p LocalPos) int {
	return p.Y*ChunkArea + p.Z*ChunkSize + p.X
}

// IndexToLocal is the inverse of LocalIndex.
func IndexToLocal(index int) LocalPos {
	y := index / ChunkArea
	rem := index % ChunkArea
	z := rem / ChunkSize
	x := rem % ChunkSize
	return LocalPos{X: x, Y: y, Z: z}
}

// floorDiv performs floored (not truncated) integer division, so that
// negative inputs round toward negative infinity rather than toward zero.
func floorDiv(a, b int32) int32 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// floorMod is the non-negative remainder paired with floorDiv.
func floorMod(a, b int32) int32 {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}

// VoxelToChunk converts a global voxel position to the chunk that contains
// it, using floored division so coordinates below zero map down rather
// than toward the origin.
func VoxelToChunk(p GlobalPos) ChunkPos {
	return ChunkPos{
		X: floorDiv(p.X, ChunkSize),
		Y: floorDiv(p.Y, ChunkSize),
		Z: floorDiv(p.Z, ChunkSize),
	}
}

// WorldToChunk converts a floating-point world position (e.g. a camera or
// entity position) to the chunk containing it.
func WorldToChunk(world mgl32.Vec3) ChunkPos {
	return VoxelToChunk(GlobalPos{
		X: int32(math.Floor(float64(world.X()))),
		Y: int32(math.Floor(float64(world.Y()))),
		Z: int32(math.Floor(float64(world.Z()))),
	})
}

// ToLocal reduces a global voxel position to its local position within its
// owning chunk, using non-negative modulo.
func ToLocal(p GlobalPos) LocalPos {
	return LocalPos{
		X: int(floorMod(p.X, ChunkSize)),
		Y: int(floorMod(p.Y, ChunkSize)),
		Z: int(floorMod(p.Z, ChunkSize)),
	}
}

// GlobalFromLocal reconstructs a global voxel position from a chunk
// position and a local position within it.
func GlobalFromLocal(chunkPos ChunkPos, local LocalPos) GlobalPos {
	return GlobalPos{
		X: chunkPos.X*ChunkSize + int32(local.X),
		Y: chunkPos.Y*ChunkSize + int32(local.Y),
		Z: chunkPos.Z*ChunkSize + int32(local.Z),
	}
}

// ChunkToWorld returns the world-space position of a chunk's minimum
// corner.
func ChunkToWorld(p ChunkPos) mgl32.Vec3 {
	return mgl32.Vec3{
		float32(p.X * ChunkSize),
		float32(p.Y * ChunkSize),
		float32(p.Z * ChunkSize),
	}
}

// KeyHash produces the hash used to address a chunk when chunks are kept
// in a map rather than the flat pre-allocated grid.
func KeyHash(p ChunkPos) uint32 {
	return uint32(p.X*88339) ^ uint32(p.Z*91967) ^ uint32(p.Z*126323)
}
