package rhythm

import (
	"math"
	"sync"
	"time"

	"github.com/robmorgan/orbit/utils"
)

const (
	DefaultMinTempo = 40.0
	DefaultMaxTempo = 200.0
	DefaultTempo    = 120.0
)

// PhaseClock maps elapsed time and tempo onto an angle of the loop. One revolution of the loop lasts one beat,
// so a tempo of 120 BPM sweeps the full circle every 500ms.
//
// The clock owns the reference epoch: the instant at which the loop was (or would have been) at angle 0. Every
// Start rewrites the epoch so that playback resumes from the angle the clock was stopped at.
type PhaseClock struct {
	mu             sync.Mutex
	referenceEpoch time.Time
	tempo          float64
	minTempo       float64
	maxTempo       float64
	lastAngle      float64
	running        bool
}

// NewPhaseClock creates a stopped PhaseClock at angle 0. The tempo is clamped to [minTempo, maxTempo].
func NewPhaseClock(tempo, minTempo, maxTempo float64) *PhaseClock {
	if minTempo > maxTempo {
		minTempo, maxTempo = maxTempo, minTempo
	}
	return &PhaseClock{
		tempo:    utils.Clamp(tempo, minTempo, maxTempo),
		minTempo: minTempo,
		maxTempo: maxTempo,
	}
}

// NewDefaultPhaseClock creates a PhaseClock at 120 BPM constrained to [40,200].
func NewDefaultPhaseClock() *PhaseClock {
	return NewPhaseClock(DefaultTempo, DefaultMinTempo, DefaultMaxTempo)
}

// AngleAt returns the angle of the loop at the given instant. A stopped clock stays at the angle it was stopped at.
func (c *PhaseClock) AngleAt(now time.Time) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.angleAt(now)
}

func (c *PhaseClock) angleAt(now time.Time) float64 {
	if !c.running {
		return c.lastAngle
	}
	return angleFor(now.Sub(c.referenceEpoch), c.tempo)
}

// Start begins sweeping from the last known angle. Starting a running clock has no effect.
func (c *PhaseClock) Start(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.running {
		return
	}
	c.referenceEpoch = epochFor(now, c.lastAngle, c.tempo)
	c.running = true
}

// Stop freezes the clock at the angle it has at the given instant, so the next Start resumes from there. Stopping a
// stopped clock has no effect.
func (c *PhaseClock) Stop(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.running {
		return
	}
	c.lastAngle = c.angleAt(now)
	c.running = false
}

// SetTempo clamps bpm to the clock's tempo range and applies it, returning the effective tempo. The reference
// epoch is left untouched, so a running clock jumps to the angle the new tempo implies.
func (c *PhaseClock) SetTempo(bpm float64) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.tempo = c.clampTempo(bpm)
	return c.tempo
}

// SetTempoAt behaves like SetTempo but rewrites the reference epoch so the angle at now is unaffected by the
// tempo change.
func (c *PhaseClock) SetTempoAt(now time.Time, bpm float64) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	angle := c.angleAt(now)
	c.tempo = c.clampTempo(bpm)
	if c.running {
		c.referenceEpoch = epochFor(now, angle, c.tempo)
	}
	return c.tempo
}

func (c *PhaseClock) clampTempo(bpm float64) float64 {
	if math.IsNaN(bpm) {
		return c.tempo
	}
	return utils.Clamp(bpm, c.minTempo, c.maxTempo)
}

// GetTempo returns the effective tempo in BPM.
func (c *PhaseClock) GetTempo() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.tempo
}

// GetTempoRange returns the inclusive tempo bounds.
func (c *PhaseClock) GetTempoRange() (float64, float64) {
	return c.minTempo, c.maxTempo
}

// IsRunning reports whether the clock is sweeping.
func (c *PhaseClock) IsRunning() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.running
}

// GetLastAngle returns the angle recorded when the clock was last stopped.
func (c *PhaseClock) GetLastAngle() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.lastAngle
}

// GetRevolutionInterval returns how long one revolution of the loop lasts at the current tempo.
func (c *PhaseClock) GetRevolutionInterval() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()

	return revolutionInterval(c.tempo)
}

// GetSnapshot captures the clock's timeline at the given instant.
func (c *PhaseClock) GetSnapshot(now time.Time) Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Snapshot{
		Instant:   now,
		StartTime: c.referenceEpoch,
		Tempo:     c.tempo,
		Angle:     c.angleAt(now),
		Playing:   c.running,
	}
}

// revolutionInterval calculates the duration of one revolution (one beat) at the given tempo.
func revolutionInterval(tempo float64) time.Duration {
	return time.Duration(float64(time.Minute) / tempo)
}

// angleFor converts elapsed time into an angle at the given tempo.
func angleFor(elapsed time.Duration, tempo float64) float64 {
	revolutionsPerSecond := tempo / 60
	return Normalize(elapsed.Seconds() * revolutionsPerSecond * FullCircle)
}

// epochFor finds the instant the loop was at angle 0, given that it is at angle at now.
func epochFor(now time.Time, angle, tempo float64) time.Time {
	offset := time.Duration(math.Round(angle / FullCircle * float64(revolutionInterval(tempo))))
	return now.Add(-offset)
}
