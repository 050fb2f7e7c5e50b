package fixture

import (
	"testing"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/robmorgan/orbit/config"
	"github.com/robmorgan/orbit/trigger"
	"github.com/stretchr/testify/require"
	testingclock "k8s.io/utils/clock/testing"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func newTestFlash(t *testing.T) (*FlashFixture, *testingclock.FakeClock) {
	clk := testingclock.NewFakeClock(epoch)
	cfg := config.NewConfig().DMX
	cfg.StartChannel = 10
	f, err := NewFlashFixtureFromConfig(clk, cfg)
	require.NoError(t, err)
	return f, clk
}

func TestFlashLevelDecays(t *testing.T) {
	t.Parallel()

	f, clk := newTestFlash(t)
	require.Equal(t, 0.0, f.Level(clk.Now()))

	require.NoError(t, f.Emit(trigger.Regular))
	require.Equal(t, 1.0, f.Level(clk.Now()))

	mid := f.Level(clk.Now().Add(75 * time.Millisecond))
	require.InDelta(t, 0.25, mid, 1e-9)
	require.Equal(t, 0.0, f.Level(clk.Now().Add(150*time.Millisecond)))
	require.Equal(t, 0.0, f.Level(clk.Now().Add(-time.Millisecond)))
}

func TestFlashRender(t *testing.T) {
	t.Parallel()

	f, clk := newTestFlash(t)
	state := NewDMXState()

	require.NoError(t, f.Emit(trigger.Accent))
	require.NoError(t, f.Render(state, clk.Now()))

	// #FF2000 at full intensity
	require.Equal(t, 255, state.getValue(1, 10))
	require.Equal(t, 255, state.getValue(1, 11))
	require.Equal(t, 32, state.getValue(1, 12))
	require.Equal(t, 0, state.getValue(1, 13))

	clk.Step(200 * time.Millisecond)
	require.NoError(t, f.Render(state, clk.Now()))
	require.Equal(t, 0, state.getValue(1, 10))

	require.NoError(t, f.Emit(trigger.Regular))
	require.NoError(t, f.Render(state, clk.Now()))
	require.Equal(t, []int{255, 255, 255, 255}, []int{
		state.getValue(1, 10), state.getValue(1, 11), state.getValue(1, 12), state.getValue(1, 13),
	})
}

func TestFlashRenderOutOfRange(t *testing.T) {
	t.Parallel()

	clk := testingclock.NewFakeClock(epoch)
	f := NewFlashFixture(clk, DefaultProfile(), 1, 511, colorful.Color{R: 1}, colorful.Color{G: 1}, time.Second)
	require.Error(t, f.Render(NewDMXState(), clk.Now()))
}

func TestFlashFromConfigRejectsBadColor(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig().DMX
	cfg.AccentColor = "not-a-color"
	_, err := NewFlashFixtureFromConfig(testingclock.NewFakeClock(epoch), cfg)
	require.Error(t, err)
}

func TestProfileChannelCount(t *testing.T) {
	t.Parallel()

	require.Equal(t, 4, DefaultProfile().ChannelCount())
	require.Equal(t, 0, Profile{}.ChannelCount())
}

func TestValueToDMX(t *testing.T) {
	t.Parallel()

	require.Equal(t, 0, Value(-1).toDMX())
	require.Equal(t, 128, Value(0.5).toDMX())
	require.Equal(t, 255, Value(2).toDMX())
}

func configForTest() config.DMXConfig {
	cfg := config.NewConfig().DMX
	cfg.Enabled = true
	return cfg
}
