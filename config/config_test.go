package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefaultsAreValid(t *testing.T) {
	t.Parallel()

	c := NewConfig()
	require.NoError(t, c.Validate())
	require.Equal(t, 40.0, c.Tempo.Min)
	require.Equal(t, 200.0, c.Tempo.Max)
	require.Equal(t, 8.0, c.Detection.ZoneToleranceDegrees)
	require.Equal(t, 16*time.Millisecond, c.Detection.MinTickInterval)
	require.Equal(t, 0.5, c.Detection.MinMeaningfulAngleDeltaDegrees)
}

func TestLoadOverlaysDefaults(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "orbit.yaml")
	contents := `
tempo:
  initial: 90
detection:
  zone_tolerance_degrees: 4
  min_tick_interval: 10ms
osc:
  enabled: true
  port: 57120
log_level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))

	c, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 90.0, c.Tempo.Initial)
	require.Equal(t, 200.0, c.Tempo.Max)
	require.Equal(t, 4.0, c.Detection.ZoneToleranceDegrees)
	require.Equal(t, 10*time.Millisecond, c.Detection.MinTickInterval)
	require.True(t, c.OSC.Enabled)
	require.Equal(t, 57120, c.OSC.Port)
	require.Equal(t, "/orbit/beat", c.OSC.Address)
	require.Equal(t, "debug", c.LogLevel)
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "orbit.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tempo:\n  min: 250\n"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"negative tolerance", func(c *Config) { c.Detection.ZoneToleranceDegrees = -1 }},
		{"negative angle delta", func(c *Config) { c.Detection.MinMeaningfulAngleDeltaDegrees = -0.1 }},
		{"half turn angle delta", func(c *Config) { c.Detection.MinMeaningfulAngleDeltaDegrees = 180 }},
		{"zero tick interval", func(c *Config) { c.Detection.MinTickInterval = 0 }},
		{"attack longer than click", func(c *Config) { c.Audio.Attack = time.Second }},
		{"osc port", func(c *Config) { c.OSC.Enabled = true; c.OSC.Port = 70000 }},
		{"dmx color", func(c *Config) { c.DMX.Enabled = true; c.DMX.AccentColor = "orange" }},
		{"dmx channel", func(c *Config) { c.DMX.Enabled = true; c.DMX.StartChannel = 510 }},
	}

	for _, testCase := range testCases {
		c := NewConfig()
		testCase.mutate(&c)
		require.Error(t, c.Validate(), testCase.name)
	}

	// disabled outputs are not validated
	c := NewConfig()
	c.OSC.Port = 0
	c.DMX.AccentColor = "orange"
	require.NoError(t, c.Validate())
}
