// Package render documents the contract between the mesher and the GPU
// uploader described in spec §6: the packed vertex layout, the submesh
// draw order, and the texture atlas sizing. No GPU calls live here — the
// windowing, buffer objects, and shaders named as explicit Non-goals in
// spec §1 stay external collaborators. This package is the data contract
// those collaborators are built against, the way spec §6 specifies it.
package render

import "github.com/voxelstack/blocks/internal/mesher"

// FloatsPerVertex mirrors mesher.VertexStride; kept as its own named
// constant here because it is part of the renderer-facing contract, not
// an implementation detail of the mesher.
const FloatsPerVertex = mesher.VertexStride

// VertexField names one packed field of a vertex and where it starts in
// the float32 slice, in the fixed order spec §6 specifies:
// px,py,pz, tile_u_offset,tile_v_offset, 1.0, ao_factor, nx,ny,nz, uv_x,uv_y.
type VertexField struct {
	Name       string
	Offset     int
	Components int
}

// VertexLayout is the authoritative field order for a single vertex.
var VertexLayout = [6]VertexField{
	{Name: "position", Offset: 0, Components: 3},
	{Name: "tileOffset", Offset: 3, Components: 2},
	{Name: "packed", Offset: 5, Components: 1},
	{Name: "aoFactor", Offset: 6, Components: 1},
	{Name: "normal", Offset: 7, Components: 3},
	{Name: "uv", Offset: 10, Components: 2},
}

// Submesh names one of the three independently-indexed draw calls a
// chunk's mesh is split into.
type Submesh int

const (
	SubmeshSolid Submesh = iota
	SubmeshFoliage
	SubmeshWater
)

// DrawOrder is the fixed per-frame order spec §6 requires: opaque first,
// alpha-tested second, alpha-blended (depth-sorted) last.
var DrawOrder = [3]Submesh{SubmeshSolid, SubmeshFoliage, SubmeshWater}

// TextureTileCount is the atlas's tile grid edge length; a tile's UV
// extent is (1/TextureTileCount, 1/TextureTileCount) and the atlas wraps
// on both axes, matching mesher.TextureTileCount.
const TextureTileCount = mesher.TextureTileCount

// IndicesFor returns the index buffer mesher.Output carries for a given
// submesh, so an uploader can iterate DrawOrder without a type switch.
func IndicesFor(out *mesher.Output, s Submesh) []uint32 {
	switch s {
	case SubmeshSolid:
		return out.SolidIndices
	case SubmeshFoliage:
		return out.DetailIndices
	case SubmeshWater:
		return out.WaterIndices
	default:
		return nil
	}
}
