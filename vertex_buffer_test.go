package shmup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testUV = UVMapping{U0: 0.25, V0: 0.5, U1: 0.5, V1: 0.75, SU: 8, SV: 4}

func TestAllocateQuads_CountsAndTopology(t *testing.T) {
	vb := NewVertexBuffer()

	bases := vb.AllocateQuads(testUV, 3)
	require.Len(t, bases, 3)

	if vb.VertexCount() != 12 {
		t.Errorf("expected 12 vertices, got %d", vb.VertexCount())
	}
	if len(vb.Indices()) != 18 {
		t.Errorf("expected 18 indices, got %d", len(vb.Indices()))
	}

	for n, base := range bases {
		if base != n*vertsPerQuad {
			t.Errorf("quad %d: expected base %d, got %d", n, n*vertsPerQuad, base)
		}

		tri := vb.Indices()[n*indsPerQuad : (n+1)*indsPerQuad]
		j := uint16(base)
		assert.Equal(t, []uint16{j, j + 1, j + 2, j + 2, j + 3, j}, []uint16(tri))

		// Two triangles share the (base, base+2) diagonal.
		assert.Contains(t, []uint16(tri[:3]), j)
		assert.Contains(t, []uint16(tri[:3]), j+2)
		assert.Contains(t, []uint16(tri[3:]), j)
		assert.Contains(t, []uint16(tri[3:]), j+2)
	}

	for _, idx := range vb.Indices() {
		if int(idx) >= vb.VertexCount() {
			t.Fatalf("index %d out of range (%d vertices)", idx, vb.VertexCount())
		}
	}
}

func TestAllocateQuads_OffsetsAndUV(t *testing.T) {
	vb := NewVertexBuffer()
	base := vb.AllocateQuads(testUV, 1)[0]

	verts := vb.Vertices()
	vertex := func(k int) []float32 {
		i := (base + k) * vertexStride
		return verts[i : i+vertexStride]
	}

	// TL, TR, BR, BL with offsets pivoting around the quad center.
	wantOffsets := [4][2]float32{
		{-testUV.SU, -testUV.SV},
		{testUV.SU, -testUV.SV},
		{testUV.SU, testUV.SV},
		{-testUV.SU, testUV.SV},
	}
	wantUVs := [4][2]float32{
		{testUV.U0, testUV.V1},
		{testUV.U1, testUV.V1},
		{testUV.U1, testUV.V0},
		{testUV.U0, testUV.V0},
	}

	for k := 0; k < vertsPerQuad; k++ {
		v := vertex(k)
		assert.Equal(t, []float32{0, 0, 0}, v[:3], "vertex %d center/scale", k)
		assert.Equal(t, wantOffsets[k][:], v[3:5], "vertex %d offset", k)
		assert.Equal(t, wantUVs[k][:], v[5:7], "vertex %d uv", k)
	}
}

func TestAllocateQuads_AppendOnly(t *testing.T) {
	vb := NewVertexBuffer()

	first := vb.AllocateQuads(testUV, 2)
	indicesBefore := append([]uint16(nil), vb.Indices()...)

	second := vb.AllocateQuads(testUV, 2)

	assert.Equal(t, []int{0, 4}, first)
	assert.Equal(t, []int{8, 12}, second)
	assert.Equal(t, indicesBefore, vb.Indices()[:len(indicesBefore)])
}

func TestWriteQuad(t *testing.T) {
	vb := NewVertexBuffer()
	bases := vb.AllocateQuads(testUV, 2)

	vb.WriteQuad(bases[1], 120, 80, 1.5)

	x, y, size := vb.ReadQuad(bases[1])
	assert.Equal(t, float32(120), x)
	assert.Equal(t, float32(80), y)
	assert.Equal(t, float32(1.5), size)

	// All four vertices carry the new center/scale; offsets and uv are
	// untouched.
	wantOffsets := [4][2]float32{
		{-testUV.SU, -testUV.SV},
		{testUV.SU, -testUV.SV},
		{testUV.SU, testUV.SV},
		{-testUV.SU, testUV.SV},
	}
	for k := 0; k < vertsPerQuad; k++ {
		i := (bases[1] + k) * vertexStride
		v := vb.Vertices()[i : i+vertexStride]
		assert.Equal(t, []float32{120, 80, 1.5}, v[:3])
		assert.Equal(t, wantOffsets[k][:], v[3:5])
	}

	// The other quad stays zeroed.
	x, y, size = vb.ReadQuad(bases[0])
	assert.Zero(t, x)
	assert.Zero(t, y)
	assert.Zero(t, size)
}
