package chunk

import (
	"sync"

	"github.com/voxelstack/blocks/internal/coord"
	"github.com/voxelstack/blocks/internal/voxel"
)

// Grid is a finite cube of ChunksPerSide^3 chunks, indexed
// x + S*(y + S*z). All chunks are created once at construction and
// persist for the session; the grid is the sole owner of every chunk it
// holds, matching spec's ownership rule that the mesher and renderer only
// ever borrow chunks under the grid's mutex.
type Grid struct {
	mu            sync.RWMutex
	chunksPerSide int32
	chunks        []*Chunk
	errorChunk    *Chunk
	present       map[coord.ChunkPos]bool
	airID         voxel.ID
}

// NewGrid allocates a chunksPerSide^3 grid, every chunk filled with air.
func NewGrid(chunksPerSide int32, airID voxel.ID) *Grid {
	g := &Grid{
		chunksPerSide: chunksPerSide,
		chunks:        make([]*Chunk, chunksPerSide*chunksPerSide*chunksPerSide),
		errorChunk:    NewChunk(coord.ChunkPos{}),
		present:       make(map[coord.ChunkPos]bool),
		airID:         airID,
	}
	for z := int32(0); z < chunksPerSide; z++ {
		for y := int32(0); y < chunksPerSide; y++ {
			for x := int32(0); x < chunksPerSide; x++ {
				pos := coord.ChunkPos{X: x, Y: y, Z: z}
				g.chunks[g.index(pos)] = NewChunk(pos)
			}
		}
	}
	return g
}

// index computes the flat slice offset for an in-range chunk position. It
// is only valid after inRange has been checked; unlike the original
// source, this package never silently wraps a negative coordinate.
func (g *Grid) index(pos coord.ChunkPos) int32 {
	s := g.chunksPerSide
	return pos.X + s*(pos.Y+s*pos.Z)
}

// Contains reports whether pos addresses a real chunk in this grid, as
// opposed to falling through to the reserved error chunk.
func (g *Grid) Contains(pos coord.ChunkPos) bool {
	return g.inRange(pos)
}

func (g *Grid) inRange(pos coord.ChunkPos) bool {
	s := g.chunksPerSide
	return pos.X >= 0 && pos.X < s &&
		pos.Y >= 0 && pos.Y < s &&
		pos.Z >= 0 && pos.Z < s
}

// ChunkAt returns the chunk at pos, or the reserved error chunk if pos is
// out of range. The returned pointer is a borrow: callers must not assume
// exclusive access without holding the grid's lock via Lock/RLock.
func (g *Grid) ChunkAt(pos coord.ChunkPos) *Chunk {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.chunkAtLocked(pos)
}

func (g *Grid) chunkAtLocked(pos coord.ChunkPos) *Chunk {
	if !g.inRange(pos) {
		return g.errorChunk
	}
	return g.chunks[g.index(pos)]
}

// Voxel performs the two-step global lookup: chunk, then local position.
// Returns voxel.OutOfBounds when the owning chunk is itself out of range.
func (g *Grid) Voxel(pos coord.GlobalPos) voxel.ID {
	g.mu.RLock()
	defer g.mu.RUnlock()

	ck := coord.VoxelToChunk(pos)
	if !g.inRange(ck) {
		return voxel.OutOfBounds
	}
	c := g.chunks[g.index(ck)]
	return c.VoxelQ(coord.ToLocal(pos))
}

// SetVoxel writes a voxel at a global position and marks the owning chunk
// present. EnsureNeighbours is a reserved hook for future dynamic loading
// and is a deliberate no-op today, since the grid is fully pre-allocated.
func (g *Grid) SetVoxel(pos coord.GlobalPos, id voxel.ID) {
	g.mu.Lock()
	defer g.mu.Unlock()

	ck := coord.VoxelToChunk(pos)
	if !g.inRange(ck) {
		return
	}
	c := g.chunks[g.index(ck)]
	c.SetVoxelQ(coord.ToLocal(pos), id)
	g.present[ck] = true
	g.ensureNeighboursLocked(ck)
}

// ensureNeighboursLocked is the reserved hook recorded under DESIGN.md's
// Open Question decisions: the current grid is fully pre-allocated, so
// there are no neighbours to stream in. A future streaming loader would
// implement this to fault in adjacent chunks.
func (g *Grid) ensureNeighboursLocked(pos coord.ChunkPos) {
	_ = pos
}

// MarkPresent records that a chunk has been populated (e.g. by a network
// deposit) without going through SetVoxel, such as after a bulk
// decompress.
func (g *Grid) MarkPresent(pos coord.ChunkPos) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.present[pos] = true
}

// ReplaceChunk overwrites a chunk's full voxel contents and highest point
// under the grid's write lock. This is the network deposit path of
// spec §6: a received packet is decompressed into voxels and written
// here in one critical section rather than voxel-by-voxel, so the
// mesher never observes a chunk half-updated by a decompress in
// progress. Out-of-range positions are silently ignored, matching the
// grid's general out-of-range write behaviour.
func (g *Grid) ReplaceChunk(pos coord.ChunkPos, voxels [coord.ChunkVolume]voxel.ID, highestPoint int8) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.inRange(pos) {
		return
	}
	c := g.chunks[g.index(pos)]
	c.Voxels = voxels
	c.HighestPoint = highestPoint
	g.present[pos] = true
}

// IsPresent reports whether a chunk has ever been populated.
func (g *Grid) IsPresent(pos coord.ChunkPos) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.present[pos]
}

// ChunksPerSide returns the grid's edge length in chunks.
func (g *Grid) ChunksPerSide() int32 {
	return g.chunksPerSide
}

// Lock and Unlock expose the grid's single mutex directly to the mesher,
// which acquires it only while reading the grid; the mesher pool's FIFOs
// are guarded by a separate mutex (see package mesher). Exporting the lock
// rather than wrapping every access keeps the critical sections as small
// as the scheduling model in SPEC_FULL requires.
func (g *Grid) Lock()    { g.mu.Lock() }
func (g *Grid) Unlock()  { g.mu.Unlock() }
func (g *Grid) RLock()   { g.mu.RLock() }
func (g *Grid) RUnlock() { g.mu.RUnlock() }

// ChunkAtLocked is ChunkAt for a caller that already holds the grid lock
// (read or write).
func (g *Grid) ChunkAtLocked(pos coord.ChunkPos) *Chunk {
	return g.chunkAtLocked(pos)
}

// VoxelLocked is Voxel for a caller that already holds the grid lock.
func (g *Grid) VoxelLocked(pos coord.GlobalPos) voxel.ID {
	ck := coord.VoxelToChunk(pos)
	if !g.inRange(ck) {
		return voxel.OutOfBounds
	}
	return g.chunks[g.index(ck)].VoxelQ(coord.ToLocal(pos))
}
