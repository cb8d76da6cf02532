package shmup

import (
	"math/rand"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

// Scene population, in the fixed kind order the pool relies on.
// Bullets come last so the bullet sub-pool is the trailing slice.
var scenePopulation = []struct {
	Kind  Kind
	Count int
}{
	{KindStar, 300},
	{KindTrail, 200},
	{KindPlayer, 1},
	{KindEnemy, 25},
	{KindBullet, 25},
}

// SpriteAtlas names the texture asset every quad samples from.
type SpriteAtlas struct {
	Texture AssetId
}

// GameModule loads the atlas, populates the particle scene and wires
// the per-frame update pass. Requires the AssetServer and WindowState
// resources.
type GameModule struct {
	AtlasPath string
	Seed      int64 // 0 means time-seeded
}

func (m GameModule) Install(app *App) {
	assets := Resource[*AssetServer](app)
	win := Resource[*WindowState](app)
	logger := app.Logger()

	texId, uvmap, err := assets.LoadAtlas(m.AtlasPath)
	if err != nil {
		logger.Errorf("atlas %s: %v", m.AtlasPath, err)
		panic(err)
	}

	seed := m.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	ps := NewParticleSystem(uvmap, float32(win.WindowWidth), float32(win.WindowHeight), rng)
	for _, pop := range scenePopulation {
		if err := ps.Populate(pop.Kind, pop.Count); err != nil {
			panic(err)
		}
	}
	logger.Infof("scene populated: %d particles, %d quads", ps.Len(), ps.QuadCount())

	app.AddResources(ps, &SpriteAtlas{Texture: texId})
	app.UseSystem(
		System(gameSystem).
			InStage(Update),
	)
}

func gameSystem(ps *ParticleSystem, t *Time, input *Input) {
	ps.Resize(float32(input.WindowWidth), float32(input.WindowHeight))
	ps.Update(t.DtSeconds(), FrameInput{
		Pointer: mgl32.Vec2{float32(input.PointerX), float32(input.PointerY)},
		Firing:  input.Firing,
	})
}
