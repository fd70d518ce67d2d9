package mesher

// detailInset and detailSpan describe the X-shaped billboard geometry
// used for Cross-style (grass tuft) voxels: each cross is inset slightly
// from the voxel's corner and spans less than a full cell in XZ so it
// doesn't clip into neighbouring geometry.
const (
	detailInsetX = 0.15
	detailInsetZ = -0.15
	detailSpanXZ = 0.7
	detailSpanY  = 1.0
)

// detailIndexPattern is the fixed two-quad (X-shaped) index layout: two
// triangles per quad, two quads per cross.
var detailIndexPattern = [12]int{2, 0, 1, 1, 3, 2, 6, 4, 5, 5, 7, 6}

// emitDetails turns every recorded Cross-style voxel position into a
// fixed-geometry billboard: two crossed quads, flat-shaded, always facing
// up for AO purposes since detail blocks don't occlude or get occluded
// directionally.
func emitDetails(b *builder, entries []detailEntry) {
	normal := [3]float32{0, 1, 0}
	const ao = 1.0

	for _, e := range entries {
		ox := float32(e.local.X) + detailInsetX
		oy := float32(e.local.Y)
		oz := float32(e.local.Z) + detailInsetZ

		tileU := float32(e.tileIndex%TextureTileCount) / TextureTileCount
		tileV := float32(e.tileIndex/TextureTileCount) / TextureTileCount

		// Two quads forming an X when viewed from above: one spanning
		// (0,0)-(1,1) in local XZ, the other (0,1)-(1,0).
		positions := [8][3]float32{
			{ox, oy, oz},
			{ox + detailSpanXZ, oy, oz + detailSpanXZ},
			{ox, oy + detailSpanY, oz},
			{ox + detailSpanXZ, oy + detailSpanY, oz + detailSpanXZ},

			{ox, oy, oz + detailSpanXZ},
			{ox + detailSpanXZ, oy, oz},
			{ox, oy + detailSpanY, oz + detailSpanXZ},
			{ox + detailSpanXZ, oy + detailSpanY, oz},
		}

		var verts [8]uint32
		for i, p := range positions {
			uv := [2]float32{0, 1}
			if i%4 == 1 || i%4 == 3 {
				uv[0] = 1
			}
			if i%4 >= 2 {
				uv[1] = 0
			}
			verts[i] = b.emitVertex(p, tileU, tileV, ao, normal, uv)
		}

		for k := 0; k < len(detailIndexPattern); k += 3 {
			b.out.DetailIndices = append(b.out.DetailIndices,
				verts[detailIndexPattern[k]],
				verts[detailIndexPattern[k+1]],
				verts[detailIndexPattern[k+2]],
			)
		}
	}
}
