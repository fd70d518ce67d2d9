package mesher

import (
	"github.com/voxelstack/blocks/internal/chunk"
	"github.com/voxelstack/blocks/internal/coord"
	"github.com/voxelstack/blocks/internal/voxel"
)

// detailEntry is a recorded Cross-style voxel position waiting to be
// turned into a billboard by emitDetails.
type detailEntry struct {
	local     coord.LocalPos
	tileIndex uint16
}

// scanPass names one of the six (axis, facing) combinations the mesher
// sweeps per chunk.
type scanPass struct {
	axis  int
	front bool
}

var allPasses = [6]scanPass{
	{0, true}, {0, false},
	{1, true}, {1, false},
	{2, true}, {2, false},
}

// Greedy runs the full greedy mesher over one chunk: per axis and facing,
// it builds a ChunkSize x ChunkSize mask of visible faces and merges
// adjacent structurally-identical cells into the fewest possible quads.
func Greedy(grid *chunk.Grid, palette *voxel.Palette, pos coord.ChunkPos) *Output {
	return mesh(grid, palette, pos, true)
}

// Naive emits one quad per visible cell with no width/height merging; it
// exists as a fallback renderer path and as an oracle for tests.
func Naive(grid *chunk.Grid, palette *voxel.Palette, pos coord.ChunkPos) *Output {
	return mesh(grid, palette, pos, false)
}

// mesh implements the §5 locking discipline directly: it takes the grid's
// shared mutex once per slice (the unit of grid reading) rather than once
// for the whole chunk, so the dispatcher and the other pool workers are
// never starved for the duration of a full mesh pass.
func mesh(grid *chunk.Grid, palette *voxel.Palette, pos coord.ChunkPos, merge bool) *Output {
	grid.RLock()
	c := grid.ChunkAtLocked(pos)
	empty := c.IsEmpty()
	highest := c.HighestPoint
	grid.RUnlock()
	if empty {
		return nil
	}

	s := &sampler{grid: grid, palette: palette, chunkPos: pos}
	b := newBuilder(pos)
	var details []detailEntry

	for _, p := range allPasses {
		sMax := int32(coord.ChunkSize - 1)
		if p.axis == 1 {
			sMax = int32(highest)
		}

		for slice := int32(-1); slice <= sMax; slice++ {
			grid.RLock()
			mask := buildMask(s, p, slice, &details)
			grid.RUnlock()
			if merge {
				emitMergedQuads(b, p, slice, mask)
			} else {
				emitNaiveQuads(b, p, slice, mask)
			}
		}
	}

	emitDetails(b, details)

	return &b.out
}

// buildMask constructs the ChunkSize x ChunkSize mask for one slice
// boundary of one pass. Detail (Cross) voxels are never placed in the
// mask; they are appended to details instead, and only on the (axis=0,
// front) pass to avoid recording the same voxel six times.
func buildMask(s *sampler, p scanPass, slice int32, details *[]detailEntry) []*cell {
	mask := make([]*cell, coord.ChunkSize*coord.ChunkSize)

	for v := 0; v < coord.ChunkSize; v++ {
		for u := 0; u < coord.ChunkSize; u++ {
			var srcMain, oppMain int32
			if p.front {
				srcMain, oppMain = slice, slice+1
			} else {
				srcMain, oppMain = slice+1, slice
			}

			if srcMain < 0 || srcMain >= coord.ChunkSize {
				continue // this voxel belongs to a neighbour chunk, not this one
			}

			source := s.descriptorAt(p.axis, srcMain, u, v)

			if source.Style == voxel.StyleCross {
				if p.axis == 0 && p.front {
					*details = append(*details, detailEntry{
						local:     localFor(p.axis, srcMain, u, v),
						tileIndex: source.TileIDs[voxel.Top],
					})
				}
				continue
			}
			if source.Style != voxel.StyleVoxel {
				continue
			}

			opposite := s.descriptorAt(p.axis, oppMain, u, v)
			if !faceVisible(source, opposite) {
				continue
			}

			direction := directionFor(p.axis, p.front)
			mask[v*coord.ChunkSize+u] = &cell{
				direction:      direction,
				voxelID:        source.ID,
				tileIndex:      source.TileIDs[direction],
				verticalOffset: waterOffset(source),
				ao:             computeCellAO(s, p.axis, oppMain, u, v),
				isWater:        source.Type == voxel.Liquid,
			}
		}
	}

	return mask
}

func waterOffset(d voxel.Descriptor) float32 {
	if d.Type == voxel.Liquid {
		return 0.1
	}
	return 0
}

func localFor(axis int, main int32, u, v int) coord.LocalPos {
	var l coord.LocalPos
	switch axis {
	case 0:
		l = coord.LocalPos{X: int(main), Y: u, Z: v}
	case 1:
		l = coord.LocalPos{X: u, Y: int(main), Z: v}
	default:
		l = coord.LocalPos{X: u, Y: v, Z: int(main)}
	}
	return l
}

// emitMergedQuads walks the mask in row-major order, greedily extending
// each unclaimed cell first along u (width) then along v (height), and
// emits one quad per merged region.
func emitMergedQuads(b *builder, p scanPass, slice int32, mask []*cell) {
	const n = coord.ChunkSize

	for j := 0; j < n; j++ {
		for i := 0; i < n; {
			c := mask[j*n+i]
			if c == nil {
				i++
				continue
			}

			width := 1
			for i+width < n && mask[j*n+i+width] != nil && mask[j*n+i+width].equal(c) {
				width++
			}

			height := 1
		heightLoop:
			for j+height < n {
				for k := 0; k < width; k++ {
					neighbour := mask[(j+height)*n+i+k]
					if neighbour == nil || !neighbour.equal(c) {
						break heightLoop
					}
				}
				height++
			}

			emitQuad(b, p, slice, i, j, width, height, c)

			for l := 0; l < height; l++ {
				for k := 0; k < width; k++ {
					mask[(j+l)*n+i+k] = nil
				}
			}

			i += width
		}
	}
}

// emitNaiveQuads emits one quad per populated mask cell with no merging.
func emitNaiveQuads(b *builder, p scanPass, slice int32, mask []*cell) {
	const n = coord.ChunkSize
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			c := mask[j*n+i]
			if c == nil {
				continue
			}
			emitQuad(b, p, slice, i, j, 1, 1, c)
		}
	}
}

// emitQuad appends one quad's four vertices and two triangles to the
// builder, choosing the tri-split that keeps the AO gradient smooth and
// routing the triangles into the Water or Solid submesh (Foliage indices
// come only from emitDetails).
func emitQuad(b *builder, p scanPass, slice int32, i, j, width, height int, c *cell) {
	planeMain := float32(slice + 1)
	uAxis, vAxis := axisMap[p.axis][0], axisMap[p.axis][1]

	corner := func(du, dv int) [3]float32 {
		var pos [3]float32
		pos[p.axis] = planeMain
		pos[uAxis] = float32(i + du)
		pos[vAxis] = float32(j + dv)
		if c.direction == voxel.Top {
			pos[1] -= c.verticalOffset
		}
		return pos
	}

	normal := normalFor(c.direction)
	tileU := float32(c.tileIndex%TextureTileCount) / TextureTileCount
	tileV := float32(c.tileIndex/TextureTileCount) / TextureTileCount

	v0 := b.emitVertex(corner(0, 0), tileU, tileV, shadingLevels[c.ao[0]], normal, [2]float32{0, 0})
	v1 := b.emitVertex(corner(width, 0), tileU, tileV, shadingLevels[c.ao[1]], normal, [2]float32{float32(width), 0})
	v2 := b.emitVertex(corner(0, height), tileU, tileV, shadingLevels[c.ao[2]], normal, [2]float32{0, float32(height)})
	v3 := b.emitVertex(corner(width, height), tileU, tileV, shadingLevels[c.ao[3]], normal, [2]float32{float32(width), float32(height)})

	verts := [4]uint32{v0, v1, v2, v3}

	var tri1, tri2 [3]uint32
	if int(c.ao[2])+int(c.ao[1]) < int(c.ao[0])+int(c.ao[3]) {
		tri1 = [3]uint32{verts[3], verts[0], verts[1]}
		tri2 = [3]uint32{verts[2], verts[0], verts[3]}
	} else {
		tri1 = [3]uint32{verts[2], verts[0], verts[1]}
		tri2 = [3]uint32{verts[1], verts[3], verts[2]}
	}

	if !p.front {
		tri1[1], tri1[2] = tri1[2], tri1[1]
		tri2[1], tri2[2] = tri2[2], tri2[1]
	}

	switch {
	case c.isWater:
		b.out.WaterIndices = append(b.out.WaterIndices, tri1[:]...)
		b.out.WaterIndices = append(b.out.WaterIndices, tri2[:]...)
		b.out.Triangles = append(b.out.Triangles,
			Triangle{Indices: tri1, Normal: normal},
			Triangle{Indices: tri2, Normal: normal},
		)
	default:
		b.out.SolidIndices = append(b.out.SolidIndices, tri1[:]...)
		b.out.SolidIndices = append(b.out.SolidIndices, tri2[:]...)
	}
}
