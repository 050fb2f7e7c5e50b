package config

import (
	"fmt"
	"os"
	"time"

	"github.com/gruntwork-io/go-commons/errors"
	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

// Config represents options that configure the global behavior of the program
type Config struct {
	Tempo     TempoConfig     `yaml:"tempo"`
	Detection DetectionConfig `yaml:"detection"`
	Audio     AudioConfig     `yaml:"audio"`
	OSC       OSCConfig       `yaml:"osc"`
	DMX       DMXConfig       `yaml:"dmx"`

	// LogLevel is any logrus level name.
	LogLevel string `yaml:"log_level"`
}

// TempoConfig bounds the tempo. Values outside [Min, Max] are clamped when set.
type TempoConfig struct {
	Min     float64 `yaml:"min"`
	Max     float64 `yaml:"max"`
	Initial float64 `yaml:"initial"`
}

// DetectionConfig tunes how beats are detected.
type DetectionConfig struct {
	// ZoneToleranceDegrees is how close the moving point must come to a trigger to count as touching it.
	ZoneToleranceDegrees float64 `yaml:"zone_tolerance_degrees"`

	// MinTickInterval is the minimum spacing between two processed ticks.
	MinTickInterval time.Duration `yaml:"min_tick_interval"`

	// MinMeaningfulAngleDeltaDegrees is the smallest movement worth running detection for.
	MinMeaningfulAngleDeltaDegrees float64 `yaml:"min_meaningful_angle_delta_degrees"`

	// RetainPhaseOnTempoChange keeps the moving point in place when the tempo changes during playback.
	RetainPhaseOnTempoChange bool `yaml:"retain_phase_on_tempo_change"`
}

// AudioConfig describes the speaker click.
type AudioConfig struct {
	Enabled    bool          `yaml:"enabled"`
	SampleRate int           `yaml:"sample_rate"`
	RegularHz  float64       `yaml:"regular_hz"`
	AccentHz   float64       `yaml:"accent_hz"`
	Gain       float64       `yaml:"gain"`
	Duration   time.Duration `yaml:"duration"`
	Attack     time.Duration `yaml:"attack"`
	QueueSize  int           `yaml:"queue_size"`
}

// OSCConfig describes where beats are sent as OSC messages.
type OSCConfig struct {
	Enabled bool   `yaml:"enabled"`
	Host    string `yaml:"host"`
	Port    int    `yaml:"port"`
	Address string `yaml:"address"`
}

// DMXConfig describes the fixture flashed on every beat.
type DMXConfig struct {
	Enabled       bool          `yaml:"enabled"`
	OLAAddress    string        `yaml:"ola_address"`
	Universe      int           `yaml:"universe"`
	StartChannel  int           `yaml:"start_channel"`
	RegularColor  string        `yaml:"regular_color"`
	AccentColor   string        `yaml:"accent_color"`
	Decay         time.Duration `yaml:"decay"`
	FrameInterval time.Duration `yaml:"frame_interval"`
}

// NewConfig creates a new Config object with reasonable defaults for real usage
func NewConfig() Config {
	return Config{
		Tempo: TempoConfig{
			Min:     40,
			Max:     200,
			Initial: 120,
		},
		Detection: DetectionConfig{
			ZoneToleranceDegrees:           8,
			MinTickInterval:                16 * time.Millisecond,
			MinMeaningfulAngleDeltaDegrees: 0.5,
		},
		Audio: AudioConfig{
			Enabled:    true,
			SampleRate: 44100,
			RegularHz:  800,
			AccentHz:   1200,
			Gain:       0.3,
			Duration:   100 * time.Millisecond,
			Attack:     10 * time.Millisecond,
			QueueSize:  16,
		},
		OSC: OSCConfig{
			Host:    "127.0.0.1",
			Port:    9000,
			Address: "/orbit/beat",
		},
		DMX: DMXConfig{
			OLAAddress:    "localhost:9010",
			Universe:      1,
			StartChannel:  1,
			RegularColor:  "#FFFFFF",
			AccentColor:   "#FF2000",
			Decay:         150 * time.Millisecond,
			FrameInterval: 25 * time.Millisecond,
		},
		LogLevel: "info",
	}
}

// Load reads a YAML file over the defaults. Keys missing from the file keep their default values.
func Load(path string) (Config, error) {
	cfg := NewConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.WithStackTrace(err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.WithStackTrace(fmt.Errorf("parsing %s: %w", path, err))
	}
	if err := cfg.Validate(); err != nil {
		return cfg, errors.WithStackTrace(err)
	}
	return cfg, nil
}

// Validate reports the first setting that cannot work.
func (c Config) Validate() error {
	switch {
	case c.Tempo.Min <= 0:
		return fmt.Errorf("tempo.min must be positive, got %v", c.Tempo.Min)
	case c.Tempo.Min > c.Tempo.Max:
		return fmt.Errorf("tempo.min (%v) is above tempo.max (%v)", c.Tempo.Min, c.Tempo.Max)
	case c.Detection.ZoneToleranceDegrees < 0 || c.Detection.ZoneToleranceDegrees > 180:
		return fmt.Errorf("detection.zone_tolerance_degrees must be within [0,180], got %v", c.Detection.ZoneToleranceDegrees)
	case c.Detection.MinTickInterval <= 0:
		return fmt.Errorf("detection.min_tick_interval must be positive, got %v", c.Detection.MinTickInterval)
	case c.Detection.MinMeaningfulAngleDeltaDegrees < 0 || c.Detection.MinMeaningfulAngleDeltaDegrees >= 180:
		return fmt.Errorf("detection.min_meaningful_angle_delta_degrees must be within [0,180), got %v", c.Detection.MinMeaningfulAngleDeltaDegrees)
	}

	if c.Audio.Enabled {
		switch {
		case c.Audio.SampleRate <= 0:
			return fmt.Errorf("audio.sample_rate must be positive, got %d", c.Audio.SampleRate)
		case c.Audio.Duration <= c.Audio.Attack:
			return fmt.Errorf("audio.duration (%v) must exceed audio.attack (%v)", c.Audio.Duration, c.Audio.Attack)
		}
	}

	if c.OSC.Enabled && (c.OSC.Port <= 0 || c.OSC.Port > 65535) {
		return fmt.Errorf("osc.port out of range: %d", c.OSC.Port)
	}

	if c.DMX.Enabled {
		if c.DMX.FrameInterval <= 0 {
			return fmt.Errorf("dmx.frame_interval must be positive, got %v", c.DMX.FrameInterval)
		}
		if c.DMX.StartChannel < 1 || c.DMX.StartChannel+3 > 512 {
			return fmt.Errorf("dmx.start_channel out of range: %d", c.DMX.StartChannel)
		}
		for _, hex := range []string{c.DMX.RegularColor, c.DMX.AccentColor} {
			if _, err := colorful.Hex(hex); err != nil {
				return fmt.Errorf("invalid dmx color %q: %w", hex, err)
			}
		}
	}

	return nil
}
