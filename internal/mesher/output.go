package mesher

import "github.com/voxelstack/blocks/internal/coord"

// TextureTileCount is the number of tiles along one edge of the texture
// atlas the renderer samples from; tile UVs are offsets of 1/TextureTileCount.
const TextureTileCount = 8

// Triangle is one semi-transparent water triangle, recorded alongside its
// copy in the water index buffer so the renderer can sort it per frame.
type Triangle struct {
	Indices   [3]uint32
	Normal    [3]float32
	SortValue float32
}

// Output is the complete result of meshing one chunk: a single packed
// vertex buffer (12 floats per vertex, see VertexStride) and three
// independently-indexed submeshes, plus the transparent triangle list for
// water draw-order sorting.
type Output struct {
	ChunkPos      coord.ChunkPos
	VertexData    []float32
	SolidIndices  []uint32
	WaterIndices  []uint32
	DetailIndices []uint32
	Triangles     []Triangle
}

// VertexStride is the number of float32 values per emitted vertex:
// position.xyz, tile uv offset, a constant 1.0, ao factor, normal.xyz,
// uv.xy.
const VertexStride = 12

// builder accumulates vertex/index data for one chunk's mesh.
type builder struct {
	out Output
}

func newBuilder(pos coord.ChunkPos) *builder {
	return &builder{out: Output{ChunkPos: pos}}
}

// emitVertex appends one vertex and returns its index in VertexData.
func (b *builder) emitVertex(pos [3]float32, tileU, tileV float32, ao float32, normal [3]float32, uv [2]float32) uint32 {
	idx := uint32(len(b.out.VertexData) / VertexStride)
	b.out.VertexData = append(b.out.VertexData,
		pos[0], pos[1], pos[2],
		tileU, tileV,
		1.0,
		ao,
		normal[0], normal[1], normal[2],
		uv[0], uv[1],
	)
	return idx
}
