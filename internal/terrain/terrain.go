// Package terrain builds voxel columns from layered simplex noise: a
// per-column heightmap, then a fill pass that lays down water, sand,
// grass, dirt, and stone according to a fixed rule table.
package terrain

import (
	"math"

	"github.com/voxelstack/blocks/internal/chunk"
	"github.com/voxelstack/blocks/internal/coord"
	"github.com/voxelstack/blocks/internal/noise"
	"github.com/voxelstack/blocks/internal/voxel"
)

// Generator is purely a function of (chunkX, chunkZ, seed, chunksPerSide):
// calling it twice with the same inputs always produces the same voxels.
type Generator struct {
	simplex       *noise.Simplex
	palette       *voxel.Palette
	chunksPerSide int32

	airID, waterID, sandID, stoneID, dirtID, grassID voxel.ID
}

// NewGenerator builds a generator seeded for a world of the given
// chunksPerSide, resolving the palette's common voxel ids once up front.
func NewGenerator(seed int64, palette *voxel.Palette, chunksPerSide int32) *Generator {
	return &Generator{
		simplex:       noise.New(seed),
		palette:       palette,
		chunksPerSide: chunksPerSide,
		airID:         palette.IDOfCommon(voxel.CommonAir),
		waterID:       palette.IDOfCommon(voxel.CommonWater),
		sandID:        palette.IDOfCommon(voxel.CommonSand),
		stoneID:       palette.IDOfCommon(voxel.CommonStone),
		dirtID:        palette.IDOfCommon(voxel.CommonDirt),
		grassID:       palette.IDOfCommon(voxel.CommonGrass),
	}
}

// Heightmap holds ChunkArea signed heights, one per (x,z) column of a
// chunk.
type Heightmap [coord.ChunkArea]int32

// HeightAt returns the terrain height at a single world (x,z) column.
func (g *Generator) HeightAt(worldX, worldZ int32) int32 {
	worldSize := float64(g.chunksPerSide * coord.ChunkSize)
	half := worldSize / 2

	normX := (float64(worldX) - half) / half
	normZ := (float64(worldZ) - half) / half

	n0 := sampleLayered(g.simplex, float64(worldX), float64(worldZ), noiseA)
	n1 := sampleLayered(g.simplex, float64(worldX), float64(worldZ), noiseB)
	island := islandFalloff(normX, normZ) * 1.25

	result := n0 * n1
	height := (result*noiseA.Amplitude+noiseA.Offset)*island - 5
	return truncateHeight(height)
}

// truncateHeight casts a float height to int32 by truncating toward
// zero, matching static_cast<int32_t> in the original generator rather
// than rounding to nearest.
func truncateHeight(h float64) int32 {
	return int32(h)
}

// BuildHeightmap computes the heightmap for an entire chunk column at
// (chunkX, chunkZ).
func (g *Generator) BuildHeightmap(chunkX, chunkZ int32) Heightmap {
	var hm Heightmap
	baseX := chunkX * coord.ChunkSize
	baseZ := chunkZ * coord.ChunkSize
	for z := 0; z < coord.ChunkSize; z++ {
		for x := 0; x < coord.ChunkSize; x++ {
			hm[z*coord.ChunkSize+x] = g.HeightAt(baseX+int32(x), baseZ+int32(z))
		}
	}
	return hm
}

// voxelAt applies the fixed rule table for a single voxel given the
// column height it sits under.
func (g *Generator) voxelAt(voxY, height int32) voxel.ID {
	switch {
	case voxY > height && voxY < coord.WaterLevel:
		return g.waterID
	case voxY > height:
		return g.airID
	case voxY == height && voxY < coord.WaterLevel+3:
		return g.sandID
	case voxY == height:
		return g.grassID
	case voxY > height-4:
		return g.dirtID
	default:
		return g.stoneID
	}
}

// GenerateColumn fills every vertical chunk needed to cover a column's
// heightmap, writing through the grid's unchecked setter (SetVoxelQ via
// chunk.Chunk), then recomputes each written chunk's highestPoint. The
// caller is responsible for only invoking this once per column at world
// construction time; nothing here is safe to call concurrently with the
// mesher reading the same chunks.
func GenerateColumn(g *Generator, grd *chunk.Grid, chunkX, chunkZ int32) {
	hm := g.BuildHeightmap(chunkX, chunkZ)

	maxHeight := int32(math.MinInt32)
	for _, h := range hm {
		if h > maxHeight {
			maxHeight = h
		}
	}

	verticalChunks := int32(1)
	if maxHeight > 0 {
		verticalChunks = maxHeight/coord.ChunkSize + 1
	}

	for cy := int32(0); cy < verticalChunks; cy++ {
		pos := coord.ChunkPos{X: chunkX, Y: cy, Z: chunkZ}
		if !grd.Contains(pos) {
			continue // above the pre-allocated grid; nothing to fill
		}
		c := grd.ChunkAt(pos)

		for z := 0; z < coord.ChunkSize; z++ {
			for x := 0; x < coord.ChunkSize; x++ {
				height := hm[z*coord.ChunkSize+x]
				for y := 0; y < coord.ChunkSize; y++ {
					voxY := cy*coord.ChunkSize + int32(y)
					id := g.voxelAt(voxY, height)
					if id == g.airID {
						continue // air is the implicit default fill
					}
					c.SetVoxelQ(coord.LocalPos{X: x, Y: y, Z: z}, id)
				}
			}
		}
		c.RecomputeHighestPoint(g.airID)
		grd.MarkPresent(pos)
	}
}
