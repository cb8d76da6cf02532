package shmup

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPopulate_UnknownSprite(t *testing.T) {
	uvmap := testUVMap()
	delete(uvmap, KindEnemy.SpriteName())
	ps := NewParticleSystem(uvmap, 800, 600, rand.New(rand.NewSource(1)))

	err := ps.Populate(KindEnemy, 5)
	if !errors.Is(err, ErrUnknownSprite) {
		t.Fatalf("expected ErrUnknownSprite, got %v", err)
	}
	assert.Equal(t, `unknown sprite: "ufo"`, err.Error())
	assert.Zero(t, ps.Len(), "no partial population on failure")
}

func TestPopulate_OrderAndSubPool(t *testing.T) {
	ps := newTestSystem(12)
	for _, pop := range []struct {
		kind  Kind
		count int
	}{
		{KindStar, 10},
		{KindTrail, 5},
		{KindPlayer, 1},
		{KindEnemy, 3},
		{KindBullet, 4},
	} {
		require.NoError(t, ps.Populate(pop.kind, pop.count))
	}

	assert.Equal(t, 23, ps.Len())
	assert.Equal(t, 23, ps.QuadCount())
	assert.Len(t, ps.Vertices(), 23*vertsPerQuad*vertexStride)
	assert.Len(t, ps.Indices(), 23*indsPerQuad)

	// Bullets are the trailing slice of the pool, in allocation order.
	require.Len(t, ps.Bullets(), 4)
	for i, b := range ps.Bullets() {
		assert.Same(t, ps.particles[19+i], b)
	}

	// Each particle owns a disjoint quad at its allocation ordinal.
	seen := make(map[int]bool)
	for _, p := range ps.particles {
		base, _, _, _ := particleState(p)
		if seen[base] {
			t.Fatalf("base %d owned by two particles", base)
		}
		seen[base] = true
	}
}

func TestUpdate_BufferNeverStale(t *testing.T) {
	ps := newTestSystem(13)
	for _, pop := range scenePopulation {
		require.NoError(t, ps.Populate(pop.Kind, pop.Count/10+1))
	}

	in := FrameInput{Pointer: mgl32.Vec2{321, 234}, Firing: true}
	for frame := 0; frame < 120; frame++ {
		ps.Update(1.0/60, in)

		for i, p := range ps.particles {
			base, x, y, size := particleState(p)
			bx, by, bsize := ps.buf.ReadQuad(base)
			if bx != x || by != y || bsize != size {
				t.Fatalf("frame %d particle %d: buffer (%v,%v,%v) != state (%v,%v,%v)",
					frame, i, bx, by, bsize, x, y, size)
			}
		}
	}
}

func TestUpdate_CooldownsTickOnlyWhileFiring(t *testing.T) {
	ps := newTestSystem(14)
	require.NoError(t, ps.Populate(KindBullet, 1))

	ps.Update(1.0/60, FrameInput{Firing: false})
	assert.Zero(t, ps.fireDelay, "fire cooldown only ticks while the trigger is held")
	assert.False(t, ps.Bullets()[0].active)

	ps.Update(1.0/60, FrameInput{Firing: true, Pointer: mgl32.Vec2{10, 10}})
	assert.True(t, ps.Bullets()[0].active)
}

func TestUpdate_VariableDt(t *testing.T) {
	ps := newTestSystem(15)
	require.NoError(t, ps.Populate(KindStar, 1))
	s := ps.particles[0].(*Star)
	s.x = 500

	// Two small steps and one big step cover the same distance.
	ps2 := newTestSystem(15)
	require.NoError(t, ps2.Populate(KindStar, 1))
	s2 := ps2.particles[0].(*Star)
	s2.plane = s.plane
	s2.x = 500

	ps.Update(0.01, FrameInput{})
	ps.Update(0.02, FrameInput{})
	ps2.Update(0.03, FrameInput{})

	assert.InDelta(t, float64(s2.x), float64(s.x), 1e-3)
}

func TestResize(t *testing.T) {
	ps := newTestSystem(16)
	ps.Resize(1024, 768)
	assert.Equal(t, float32(1024), ps.width)
	assert.Equal(t, float32(768), ps.height)

	// Zero dimensions (minimized window) are ignored.
	ps.Resize(0, 0)
	assert.Equal(t, float32(1024), ps.width)
}

func TestLayout_MatchesInterleavedStride(t *testing.T) {
	ps := newTestSystem(17)
	layout := ps.Layout()
	require.Len(t, layout, 4)

	total := 0
	offset := 0
	for _, a := range layout {
		assert.Equal(t, offset, a.Offset)
		assert.Equal(t, AttribFloat32, a.Type)
		offset += a.Size * 4
		total += a.Size
	}
	assert.Equal(t, vertexStride, total)

	names := []string{layout[0].Name, layout[1].Name, layout[2].Name, layout[3].Name}
	assert.Equal(t, []string{"vCenter", "vScale", "vPosition", "vTexCoords0"}, names)
}
