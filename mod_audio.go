package shmup

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const audioSampleRate = beep.SampleRate(48000)

// SoundPlayer mixes short procedural effects for fire and hit events.
// When speaker init fails (no audio device), Play calls become no-ops.
type SoundPlayer struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

func NewSoundPlayer() *SoundPlayer {
	return &SoundPlayer{mixer: &beep.Mixer{}}
}

func (sp *SoundPlayer) Init() error {
	sp.mu.Lock()
	defer sp.mu.Unlock()

	if sp.initialized {
		return nil
	}

	err := speaker.Init(audioSampleRate, audioSampleRate.N(time.Millisecond*100))
	if err != nil {
		return err
	}

	speaker.Play(sp.mixer)
	sp.initialized = true
	return nil
}

// PlayFire queues a short falling pew.
func (sp *SoundPlayer) PlayFire() {
	sp.play(newTone(880, -2400, 120*time.Millisecond))
}

// PlayHit queues a low thump.
func (sp *SoundPlayer) PlayHit() {
	sp.play(newTone(160, -300, 250*time.Millisecond))
}

func (sp *SoundPlayer) play(s beep.Streamer) {
	sp.mu.Lock()
	defer sp.mu.Unlock()

	if !sp.initialized {
		return
	}
	sp.mixer.Add(s)
}

// tone is a finite streamer: one sine oscillator with a linear pitch
// sweep (Hz per second) and a linear decay envelope.
type tone struct {
	freq     float64
	sweep    float64
	phase    float64
	length   int
	position int
}

func newTone(freq, sweep float64, d time.Duration) beep.Streamer {
	return &tone{
		freq:   freq,
		sweep:  sweep,
		length: audioSampleRate.N(d),
	}
}

func (o *tone) Stream(samples [][2]float64) (n int, ok bool) {
	rate := float64(audioSampleRate)
	for i := range samples {
		if o.position >= o.length {
			return i, false
		}

		env := 1 - float64(o.position)/float64(o.length)
		val := math.Sin(2*math.Pi*o.phase) * env * 0.4

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / rate
		o.phase = o.phase - math.Floor(o.phase)
		o.freq += o.sweep / rate
		if o.freq < 40 {
			o.freq = 40
		}
		o.position++
	}
	return len(samples), true
}

func (o *tone) Err() error { return nil }

// AudioModule installs the sound player and a system that turns the
// particle system's frame events into effects.
type AudioModule struct{}

func (AudioModule) Install(app *App) {
	sp := NewSoundPlayer()
	if err := sp.Init(); err != nil {
		app.Logger().Warnf("audio disabled: %v", err)
	}
	app.AddResources(sp)
	app.UseSystem(
		System(audioSystem).
			InStage(PostUpdate),
	)
}

func audioSystem(sp *SoundPlayer, ps *ParticleSystem) {
	ev := ps.Events()
	if ev.Fired > 0 {
		sp.PlayFire()
	}
	if ev.Hits > 0 {
		sp.PlayHit()
	}
}
