package engine

import (
	"time"

	"github.com/robmorgan/orbit/collision"
	"github.com/robmorgan/orbit/config"
	"github.com/robmorgan/orbit/rhythm"
)

// DefaultFrameInterval is the cadence of the built-in tick source, close to a 60Hz display refresh.
const DefaultFrameInterval = time.Second / 60

// Options tune a Driver.
type Options struct {
	MinTempo     float64
	MaxTempo     float64
	InitialTempo float64

	// ZoneTolerance is the proximity, in degrees, at which the moving point counts as touching a trigger.
	ZoneTolerance float64

	// MinTickInterval throttles detection no matter how often Tick is called.
	MinTickInterval time.Duration

	// MinAngleDelta is the smallest movement, in degrees, worth running detection for.
	MinAngleDelta float64

	// RetainPhaseOnTempoChange keeps the moving point in place when the tempo changes during playback.
	RetainPhaseOnTempoChange bool

	// FrameInterval is the period of the tick source used by Run.
	FrameInterval time.Duration
}

// DefaultOptions returns the stock tuning: 120 BPM within [40,200], an 8 degree zone, at most one detection pass
// every 16ms and nothing below half a degree of movement.
func DefaultOptions() Options {
	return Options{
		MinTempo:        rhythm.DefaultMinTempo,
		MaxTempo:        rhythm.DefaultMaxTempo,
		InitialTempo:    rhythm.DefaultTempo,
		ZoneTolerance:   collision.DefaultZoneTolerance,
		MinTickInterval: 16 * time.Millisecond,
		MinAngleDelta:   0.5,
		FrameInterval:   DefaultFrameInterval,
	}
}

// OptionsFromConfig builds Options from the program configuration.
func OptionsFromConfig(cfg config.Config) Options {
	opts := DefaultOptions()
	opts.MinTempo = cfg.Tempo.Min
	opts.MaxTempo = cfg.Tempo.Max
	opts.InitialTempo = cfg.Tempo.Initial
	opts.ZoneTolerance = cfg.Detection.ZoneToleranceDegrees
	opts.MinTickInterval = cfg.Detection.MinTickInterval
	opts.MinAngleDelta = cfg.Detection.MinMeaningfulAngleDeltaDegrees
	opts.RetainPhaseOnTempoChange = cfg.Detection.RetainPhaseOnTempoChange
	return opts
}
