package shmup

import (
	"fmt"
	"math/rand"
	"time"
)

// FrameEvents counts notable state changes during one update pass.
// Interested systems (audio, scoring) read them after Update; the next
// Update clears them.
type FrameEvents struct {
	Fired int
	Hits  int
}

// ParticleSystem packs every particle of the scene into one shared
// vertex buffer and drives the per-frame simulation pass. Each
// particle owns a disjoint quad of the buffer, addressed by a base
// vertex ordinal fixed at population time.
//
// Populate in a fixed kind order: sub-pools (bullets) are identified
// by position, so the order must not change between runs.
type ParticleSystem struct {
	buf   *VertexBuffer
	uvmap map[string]UVMapping

	width  float32
	height float32
	rng    *rand.Rand

	particles []Particle
	bullets   []*Bullet

	input      FrameInput
	fireDelay  float32
	spawnDelay float32
	events     FrameEvents
}

// NewParticleSystem creates an empty system over the given UV table
// and field size. A nil rng falls back to a time-seeded one; tests
// pass a fixed seed for determinism.
func NewParticleSystem(uvmap map[string]UVMapping, width, height float32, rng *rand.Rand) *ParticleSystem {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &ParticleSystem{
		buf:        NewVertexBuffer(),
		uvmap:      uvmap,
		width:      width,
		height:     height,
		rng:        rng,
		spawnDelay: spawnCooldown,
	}
}

// Populate batch-allocates count quads for kind and appends the new
// particles to the pool in allocation order. The buffer grows only
// here, never during Update.
func (ps *ParticleSystem) Populate(kind Kind, count int) error {
	uv, ok := ps.uvmap[kind.SpriteName()]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSprite, kind.SpriteName())
	}

	for _, base := range ps.buf.AllocateQuads(uv, count) {
		p := ps.newParticle(kind, base)
		p.Reset(true)
		ps.particles = append(ps.particles, p)
		if b, ok := p.(*Bullet); ok {
			ps.bullets = append(ps.bullets, b)
		}
	}
	return nil
}

func (ps *ParticleSystem) newParticle(kind Kind, base int) Particle {
	pb := particleBase{ps: ps, base: base, size: 1}
	switch kind {
	case KindStar:
		return &Star{particleBase: pb}
	case KindTrail:
		return &Trail{particleBase: pb}
	case KindPlayer:
		return &Player{particleBase: pb}
	case KindBullet:
		return &Bullet{particleBase: pb}
	case KindEnemy:
		return &Enemy{particleBase: pb}
	}
	panic(fmt.Sprintf("unknown particle kind %d", kind))
}

// Update snapshots the frame input, ticks the shared cooldowns, then
// advances and syncs every particle in pool order. When it returns the
// vertex and index arrays are the complete frame state for the render
// sink; no further transformation is needed.
func (ps *ParticleSystem) Update(dt float32, in FrameInput) {
	// The first shot of every press is immediate: a rising firing edge
	// clears any cooldown left over from the previous press.
	if in.Firing && !ps.input.Firing {
		ps.fireDelay = 0
	}
	ps.input = in
	ps.events = FrameEvents{}

	if in.Firing {
		ps.fireDelay -= dt
	}
	ps.spawnDelay -= dt

	for _, p := range ps.particles {
		p.Advance(dt)
		p.Sync()
	}
}

// Resize updates the field bounds particles respawn and bounce
// against. Existing particle positions are left alone.
func (ps *ParticleSystem) Resize(width, height float32) {
	if width > 0 {
		ps.width = width
	}
	if height > 0 {
		ps.height = height
	}
}

// Render sink accessors: the flat interleaved vertex data, the
// triangle index data and the attribute layout, sufficient for one
// draw call per frame.
func (ps *ParticleSystem) Vertices() []float32    { return ps.buf.Vertices() }
func (ps *ParticleSystem) Indices() []uint16      { return ps.buf.Indices() }
func (ps *ParticleSystem) Layout() []VertexAttrib { return ps.buf.Layout() }
func (ps *ParticleSystem) StrideBytes() int       { return ps.buf.StrideBytes() }

// Bullets is the bullet sub-pool, in population order.
func (ps *ParticleSystem) Bullets() []*Bullet { return ps.bullets }

// Events reports the state changes of the most recent Update pass.
func (ps *ParticleSystem) Events() FrameEvents { return ps.events }

func (ps *ParticleSystem) Len() int       { return len(ps.particles) }
func (ps *ParticleSystem) QuadCount() int { return ps.buf.QuadCount() }
