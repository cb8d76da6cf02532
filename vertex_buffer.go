package shmup

import "fmt"

// Interleaved vertex record: center.xy, scale, localOffset.xy, uv.xy.
const (
	vertexStride = 7
	vertsPerQuad = 4
	indsPerQuad  = 6

	// uint16 index space caps the buffer
	maxVertices = 1 << 16
)

type AttribType int

const (
	AttribFloat32 AttribType = iota
)

// VertexAttrib describes one attribute of the interleaved layout for
// the render sink. Offset is in bytes from the start of a vertex.
type VertexAttrib struct {
	Name     string
	Location int
	Size     int
	Type     AttribType
	Offset   int
}

// VertexBuffer owns the canonical geometry every particle writes into:
// one interleaved vertex array plus its triangle index list, rendered
// as a single mesh. Quads are appended at population time only; the
// per-frame path overwrites existing slots and never allocates.
type VertexBuffer struct {
	verts []float32
	inds  []uint16
}

func NewVertexBuffer() *VertexBuffer {
	return &VertexBuffer{}
}

// AllocateQuads appends count quads built from uv and returns their
// base vertex ordinals in allocation order. Local offsets and texture
// coordinates are fixed here, write-once; centers and scale stay
// zeroed until the owning particle's first sync. Vertex order is
// top-left, top-right, bottom-right, bottom-left.
func (vb *VertexBuffer) AllocateQuads(uv UVMapping, count int) []int {
	bases := make([]int, 0, count)
	for n := 0; n < count; n++ {
		j := len(vb.verts) / vertexStride
		if j+vertsPerQuad > maxVertices {
			panic(fmt.Sprintf("vertex buffer full: %d vertices exceed uint16 index space", j+vertsPerQuad))
		}

		vb.inds = append(vb.inds,
			uint16(j), uint16(j+1), uint16(j+2),
			uint16(j+2), uint16(j+3), uint16(j),
		)
		vb.verts = append(vb.verts,
			0, 0, 0, -uv.SU, -uv.SV, uv.U0, uv.V1,
			0, 0, 0, uv.SU, -uv.SV, uv.U1, uv.V1,
			0, 0, 0, uv.SU, uv.SV, uv.U1, uv.V0,
			0, 0, 0, -uv.SU, uv.SV, uv.U0, uv.V0,
		)
		bases = append(bases, j)
	}
	return bases
}

// WriteQuad overwrites the center and scale of the four vertices of
// the quad at base. Constant time, no reallocation; the offset and uv
// fields are untouched.
func (vb *VertexBuffer) WriteQuad(base int, x, y, size float32) {
	i := base * vertexStride
	for k := 0; k < vertsPerQuad; k++ {
		vb.verts[i] = x
		vb.verts[i+1] = y
		vb.verts[i+2] = size
		i += vertexStride
	}
}

// ReadQuad returns the center and scale currently stored for the quad
// at base.
func (vb *VertexBuffer) ReadQuad(base int) (x, y, size float32) {
	i := base * vertexStride
	return vb.verts[i], vb.verts[i+1], vb.verts[i+2]
}

func (vb *VertexBuffer) Vertices() []float32 { return vb.verts }
func (vb *VertexBuffer) Indices() []uint16   { return vb.inds }

func (vb *VertexBuffer) VertexCount() int { return len(vb.verts) / vertexStride }
func (vb *VertexBuffer) QuadCount() int   { return len(vb.inds) / indsPerQuad }

// StrideBytes is the byte width of one interleaved vertex record.
func (vb *VertexBuffer) StrideBytes() int { return vertexStride * 4 }

// Layout reports the interleaved attribute layout in shader location
// order. Attribute names match the sprite shader inputs.
func (vb *VertexBuffer) Layout() []VertexAttrib {
	return []VertexAttrib{
		{Name: "vCenter", Location: 0, Size: 2, Type: AttribFloat32, Offset: 0},
		{Name: "vScale", Location: 1, Size: 1, Type: AttribFloat32, Offset: 2 * 4},
		{Name: "vPosition", Location: 2, Size: 2, Type: AttribFloat32, Offset: 3 * 4},
		{Name: "vTexCoords0", Location: 3, Size: 2, Type: AttribFloat32, Offset: 5 * 4},
	}
}
