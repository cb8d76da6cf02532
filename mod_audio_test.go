package shmup

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drainTone(t *testing.T, s interface {
	Stream([][2]float64) (int, bool)
}) []float64 {
	t.Helper()
	var out []float64
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			out = append(out, buf[i][0])
		}
		if !ok {
			return out
		}
	}
}

func TestTone_LengthAndEnvelope(t *testing.T) {
	d := 120 * time.Millisecond
	o := newTone(880, -2400, d).(*tone)

	samples := drainTone(t, o)
	require.Len(t, samples, audioSampleRate.N(d))

	peak := 0.0
	for _, s := range samples {
		if a := math.Abs(s); a > peak {
			peak = a
		}
	}
	assert.LessOrEqual(t, peak, 0.4, "gain caps the amplitude")
	assert.Greater(t, peak, 0.1, "the oscillator actually produces signal")

	// Linear decay: the tail is quieter than the head.
	head, tail := 0.0, 0.0
	n := len(samples) / 4
	for i := 0; i < n; i++ {
		head += math.Abs(samples[i])
		tail += math.Abs(samples[len(samples)-n+i])
	}
	assert.Greater(t, head, tail*2)
}

func TestTone_StreamAfterEnd(t *testing.T) {
	o := newTone(440, 0, time.Millisecond).(*tone)
	drainTone(t, o)

	buf := make([][2]float64, 16)
	n, ok := o.Stream(buf)
	assert.Zero(t, n)
	assert.False(t, ok)
}

func TestSoundPlayer_NoopBeforeInit(t *testing.T) {
	sp := NewSoundPlayer()

	// Without a speaker these must not queue (and must not panic).
	sp.PlayFire()
	sp.PlayHit()
	assert.Zero(t, sp.mixer.Len())
}
