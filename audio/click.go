package audio

import (
	"math"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
	"github.com/gruntwork-io/go-commons/errors"
	"github.com/robmorgan/orbit/trigger"
)

// floor is the level the click decays to by the end of its duration.
const floor = 0.01

// ClickConfig describes the synthesized click.
type ClickConfig struct {
	SampleRate int
	RegularHz  float64
	AccentHz   float64
	Gain       float64
	Duration   time.Duration
	Attack     time.Duration
}

// DefaultClickConfig is a short sine click: 800Hz for regular notes and 1200Hz for accents, rising linearly to 0.3
// over 10ms and decaying exponentially until 100ms.
func DefaultClickConfig() ClickConfig {
	return ClickConfig{
		SampleRate: 44100,
		RegularHz:  800,
		AccentHz:   1200,
		Gain:       0.3,
		Duration:   100 * time.Millisecond,
		Attack:     10 * time.Millisecond,
	}
}

// Click plays a synthesized click on the system speaker for every beat.
type Click struct {
	cfg        ClickConfig
	sampleRate beep.SampleRate
}

// NewClick initializes the speaker. It fails when no audio device is available.
func NewClick(cfg ClickConfig) (*Click, error) {
	sr := beep.SampleRate(cfg.SampleRate)
	if err := speaker.Init(sr, sr.N(time.Second/100)); err != nil {
		return nil, errors.WithStackTrace(err)
	}
	return newClick(cfg), nil
}

func newClick(cfg ClickConfig) *Click {
	return &Click{
		cfg:        cfg,
		sampleRate: beep.SampleRate(cfg.SampleRate),
	}
}

func (c *Click) Emit(kind trigger.NoteKind) error {
	speaker.Play(c.Streamer(kind))
	return nil
}

// Streamer returns a fresh streamer rendering one click of the given kind.
func (c *Click) Streamer(kind trigger.NoteKind) beep.Streamer {
	freq := c.cfg.RegularHz
	if kind == trigger.Accent {
		freq = c.cfg.AccentHz
	}

	total := c.sampleRate.N(c.cfg.Duration)
	pos := 0
	return beep.StreamerFunc(func(samples [][2]float64) (n int, ok bool) {
		if pos >= total {
			return 0, false
		}
		for i := range samples {
			if pos >= total {
				return i, true
			}
			t := c.sampleRate.D(pos).Seconds()
			v := c.envelope(t) * math.Sin(2*math.Pi*freq*t)
			samples[i][0] = v
			samples[i][1] = v
			pos++
		}
		return len(samples), true
	})
}

// envelope is the click's gain t seconds after it starts.
func (c *Click) envelope(t float64) float64 {
	attack := c.cfg.Attack.Seconds()
	duration := c.cfg.Duration.Seconds()
	peak := c.cfg.Gain

	switch {
	case t < 0 || t >= duration:
		return 0
	case t < attack:
		return peak * t / attack
	case peak <= floor:
		return peak
	default:
		decay := (t - attack) / (duration - attack)
		return peak * math.Pow(floor/peak, decay)
	}
}
