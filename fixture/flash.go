package fixture

import (
	"sync"
	"time"

	"github.com/fogleman/ease"
	"github.com/gruntwork-io/go-commons/errors"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/robmorgan/orbit/config"
	"github.com/robmorgan/orbit/trigger"
	"k8s.io/utils/clock"
)

// FlashFixture lights a fixture in the beat's color on every beat and fades it out, giving a visual click.
type FlashFixture struct {
	mu           sync.Mutex
	clock        clock.PassiveClock
	profile      Profile
	universe     int
	startChannel int
	decay        time.Duration
	colors       map[trigger.NoteKind]colorful.Color

	lastKind trigger.NoteKind
	lastBeat time.Time
	flashed  bool
}

// NewFlashFixture creates a FlashFixture patched at startChannel of universe.
func NewFlashFixture(clk clock.PassiveClock, profile Profile, universe, startChannel int, regular, accent colorful.Color, decay time.Duration) *FlashFixture {
	return &FlashFixture{
		clock:        clk,
		profile:      profile,
		universe:     universe,
		startChannel: startChannel,
		decay:        decay,
		colors: map[trigger.NoteKind]colorful.Color{
			trigger.Regular: regular,
			trigger.Accent:  accent,
		},
	}
}

// NewFlashFixtureFromConfig creates a FlashFixture using the default profile.
func NewFlashFixtureFromConfig(clk clock.PassiveClock, cfg config.DMXConfig) (*FlashFixture, error) {
	regular, err := colorful.Hex(cfg.RegularColor)
	if err != nil {
		return nil, errors.WithStackTrace(err)
	}
	accent, err := colorful.Hex(cfg.AccentColor)
	if err != nil {
		return nil, errors.WithStackTrace(err)
	}
	return NewFlashFixture(clk, DefaultProfile(), cfg.Universe, cfg.StartChannel, regular, accent, cfg.Decay), nil
}

// Emit starts a new flash.
func (f *FlashFixture) Emit(kind trigger.NoteKind) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.lastKind = kind
	f.lastBeat = f.clock.Now()
	f.flashed = true
	return nil
}

// Level returns the flash intensity at now: 1 at the beat, easing out to 0 once the decay has passed.
func (f *FlashFixture) Level(now time.Time) float64 {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.level(now)
}

func (f *FlashFixture) level(now time.Time) float64 {
	if !f.flashed || f.decay <= 0 {
		return 0
	}
	elapsed := now.Sub(f.lastBeat)
	if elapsed < 0 || elapsed >= f.decay {
		return 0
	}
	return 1 - ease.OutQuad(float64(elapsed)/float64(f.decay))
}

// Render writes the fixture's channels for the instant now.
func (f *FlashFixture) Render(state *DMXState, now time.Time) error {
	f.mu.Lock()
	level := f.level(now)
	color := f.colors[f.lastKind]
	f.mu.Unlock()

	ops := make([]dmxOperation, 0, len(f.profile.Channels))
	for offset, channelType := range f.profile.Channels {
		var v Value
		switch channelType {
		case TypeIntensity:
			v = Value(level)
		case TypeColorRed:
			v = Value(color.R)
		case TypeColorGreen:
			v = Value(color.G)
		case TypeColorBlue:
			v = Value(color.B)
		}
		ops = append(ops, dmxOperation{universe: f.universe, channel: f.startChannel + offset, value: v.toDMX()})
	}
	return state.set(ops...)
}
