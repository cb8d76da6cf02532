package shmup

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
)

// Simulation constants, in world units and seconds.
const (
	starBaseSpeed   = 20
	trailSpeed      = 120
	bulletSpeed     = 250
	enemySpeed      = 200
	fireCooldown    = 0.3333
	spawnCooldown   = 1.0
	playerHitRadius = 60
	bulletHitRadius = 30
	offscreen       = -100
)

type Kind uint8

const (
	KindStar Kind = iota
	KindTrail
	KindPlayer
	KindBullet
	KindEnemy
)

// SpriteName is the atlas sprite a kind renders with.
func (k Kind) SpriteName() string {
	switch k {
	case KindStar:
		return "star"
	case KindTrail:
		return "trail"
	case KindPlayer:
		return "player"
	case KindBullet:
		return "bullet"
	case KindEnemy:
		return "ufo"
	}
	panic(fmt.Sprintf("unknown particle kind %d", k))
}

func (k Kind) String() string { return k.SpriteName() }

// FrameInput is the per-frame snapshot of the externally-owned input
// signals: the emitter (pointer) position and the firing flag. Taken
// once before the update pass so every particle sees the same values.
type FrameInput struct {
	Pointer mgl32.Vec2
	Firing  bool
}

// Particle is one pooled simulation entity bound to a fixed quad of
// the shared vertex buffer.
//
// Reset reinitializes logical state; created selects the first-spawn
// distribution over the mid-simulation respawn one. Advance moves the
// simulation by dt seconds and may Reset itself when a boundary
// condition fires. Sync writes the live center and scale into the
// particle's buffer slot; it must run after Advance in the same frame
// so the buffer never holds stale state. Particles are recycled via
// Reset, never destroyed.
type Particle interface {
	Reset(created bool)
	Advance(dt float32)
	Sync()
}

type particleBase struct {
	ps   *ParticleSystem
	base int // base vertex ordinal, fixed at population
	x, y float32
	size float32
}

func (p *particleBase) Sync() {
	p.ps.buf.WriteQuad(p.base, p.x, p.y, p.size)
}

func (p *particleBase) pos() mgl32.Vec2 { return mgl32.Vec2{p.x, p.y} }

// randBetween draws an integer from [lo, hi], both ends inclusive,
// as a float32.
func randBetween(r *rand.Rand, lo, hi int) float32 {
	return float32(lo + r.Intn(hi-lo+1))
}

// Star is one speck of the background parallax field. Stars live on
// one of three planes; the higher the plane, the nearer the star and
// the faster (and bigger) it scrolls. A star leaving the left edge
// respawns at the right one.
type Star struct {
	particleBase
	plane int
}

func (s *Star) Reset(created bool) {
	s.plane = 1 + s.ps.rng.Intn(3)

	if created {
		s.x = s.ps.rng.Float32() * s.ps.width
	} else {
		s.x = s.ps.width
	}

	s.y = s.ps.rng.Float32() * s.ps.height
	s.size = 0.1 * float32(s.plane)
}

func (s *Star) Advance(dt float32) {
	s.x -= starBaseSpeed * float32(s.plane) * dt
	if s.x < 0 {
		s.Reset(false)
	}
}

// Trail is the ship's engine exhaust. It spawns just behind the
// emitter with a randomized size, then drifts left while shrinking;
// at a tenth of full size it respawns.
type Trail struct {
	particleBase
}

func (t *Trail) Reset(created bool) {
	t.x = t.ps.input.Pointer.X() + randBetween(t.ps.rng, -30, -20)
	t.y = t.ps.input.Pointer.Y() + randBetween(t.ps.rng, -10, 10)

	if created {
		t.size = 0
	} else {
		t.size = t.ps.rng.Float32() + 0.6
	}
}

func (t *Trail) Advance(dt float32) {
	t.size -= dt
	if t.size <= 0.1 {
		t.Reset(false)
	} else {
		t.x -= trailSpeed * dt
	}
}

// Player follows the emitter position directly; Advance is the same
// pure follow as Reset.
type Player struct {
	particleBase
}

func (p *Player) Reset(created bool) {
	p.x = p.ps.input.Pointer.X()
	p.y = p.ps.input.Pointer.Y()
}

func (p *Player) Advance(dt float32) { p.Reset(false) }

// Bullet is a pooled projectile. Inactive bullets park off-screen at
// the sentinel position until the firing signal is held and the shared
// fire cooldown has elapsed; an active bullet flies right until it
// leaves the field.
type Bullet struct {
	particleBase
	active bool
}

func (b *Bullet) Reset(created bool) {
	b.active = false
	b.x = offscreen
	b.y = offscreen
}

func (b *Bullet) Advance(dt float32) {
	if b.active {
		b.x += bulletSpeed * dt
		if b.x > b.ps.width {
			b.Reset(false)
		}
		return
	}

	if b.ps.input.Firing && b.ps.fireDelay <= 0 {
		b.active = true
		b.x = b.ps.input.Pointer.X() + 40
		b.y = b.ps.input.Pointer.Y()
		b.ps.fireDelay += fireCooldown
		b.ps.events.Fired++
	}
}

// Enemy drifts in from the right edge with a random vertical speed,
// bouncing off the top and bottom of the field. A body hit on the
// player or a bullet within kill range sends it back to the inactive
// pool.
type Enemy struct {
	particleBase
	active bool
	v      float32
}

func (e *Enemy) Reset(created bool) {
	e.active = false
	e.x = offscreen
	e.y = offscreen
	e.v = 0
}

func (e *Enemy) Advance(dt float32) {
	if !e.active {
		if e.ps.spawnDelay <= 0 {
			e.active = true
			e.x = e.ps.width + 50
			e.y = e.ps.rng.Float32() * e.ps.height
			e.v = randBetween(e.ps.rng, -100, 100)
			e.ps.spawnDelay += spawnCooldown
		}
		return
	}

	if e.checkHit() {
		e.Reset(false)
		return
	}

	e.x -= enemySpeed * dt
	if e.x < -50 {
		e.Reset(false)
		return
	}

	e.y += e.v * dt
	if e.y <= 0 {
		e.v = float32(math.Abs(float64(e.v)))
	} else if e.y > e.ps.height {
		e.v = -float32(math.Abs(float64(e.v)))
	}
}

// checkHit reports a collision with the player body or with any active
// bullet. Both checks run even when the body already hit, so a bullet
// sharing the impact point is consumed with the enemy. The first
// bullet in pool order within kill range is consumed; at most one per
// enemy per frame. O(enemies x bullets), fine at this pool size.
func (e *Enemy) checkHit() bool {
	hit := e.ps.input.Pointer.Sub(e.pos()).Len() < playerHitRadius

	for _, b := range e.ps.bullets {
		if !b.active {
			continue
		}
		if b.pos().Sub(e.pos()).Len() < bulletHitRadius {
			b.Reset(false)
			hit = true
			break
		}
	}

	if hit {
		e.ps.events.Hits++
	}
	return hit
}
