package shmup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlipRowsRGBA(t *testing.T) {
	// 2x3 texture, each row filled with its own row index.
	const w, h = 2, 3
	texels := make([]uint8, w*h*4)
	for y := 0; y < h; y++ {
		for i := 0; i < w*4; i++ {
			texels[y*w*4+i] = uint8(y)
		}
	}

	flipped := flipRowsRGBA(texels, w, h)
	require.Len(t, flipped, len(texels))

	// Row order reverses: the bottom row uploads first.
	for y := 0; y < h; y++ {
		for i := 0; i < w*4; i++ {
			if flipped[y*w*4+i] != uint8(h-1-y) {
				t.Fatalf("flipped row %d holds row %d texels", y, flipped[y*w*4+i])
			}
		}
	}

	// The input is untouched and a double flip restores it.
	assert.Equal(t, uint8(0), texels[0])
	assert.Equal(t, texels, flipRowsRGBA(flipped, w, h))
}

func TestFlipRowsRGBA_SampleAddressing(t *testing.T) {
	// A sprite rect starting at pixel row 0 maps to V1 = 1; after the
	// flip, the row written last (highest V) is the PNG's top row, so
	// the sprite samples its own texels.
	const w, h = 1, 4
	texels := []uint8{
		10, 10, 10, 255, // row 0, sprite top
		20, 20, 20, 255,
		30, 30, 30, 255,
		40, 40, 40, 255, // row 3, texture bottom
	}

	flipped := flipRowsRGBA(texels, w, h)
	assert.Equal(t, uint8(40), flipped[0], "texture bottom row uploads first (V=0)")
	assert.Equal(t, uint8(10), flipped[(h-1)*4], "sprite top row uploads last (V=1)")
}
