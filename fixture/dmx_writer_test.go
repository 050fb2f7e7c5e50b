package fixture

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/robmorgan/orbit/trigger"
	"github.com/stretchr/testify/require"
	testingclock "k8s.io/utils/clock/testing"
)

type fakeOLAClient struct {
	mu     sync.Mutex
	frames map[int][][]byte
	closed bool
}

func (c *fakeOLAClient) SendDmx(universe int, values []byte) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.frames == nil {
		c.frames = make(map[int][][]byte)
	}
	c.frames[universe] = append(c.frames[universe], values)
	return true, nil
}

func (c *fakeOLAClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
}

func (c *fakeOLAClient) sent(universe int) [][]byte {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.frames[universe]
}

func TestDMXStateSet(t *testing.T) {
	t.Parallel()

	s := NewDMXState()
	require.NoError(t, s.set(dmxOperation{universe: 2, channel: 512, value: 7}))
	require.Equal(t, 7, s.getValue(2, 512))
	require.Equal(t, 0, s.getValue(3, 1))

	require.Error(t, s.set(dmxOperation{universe: 1, channel: 0, value: 1}))
	require.Error(t, s.set(dmxOperation{universe: 1, channel: 1, value: 256}))

	universes := s.Universes()
	universes[2][511] = 99
	require.Equal(t, 7, s.getValue(2, 512))
}

func TestSendDMXWorker(t *testing.T) {
	t.Parallel()

	clk := testingclock.NewFakeClock(epoch)
	f, err := NewFlashFixtureFromConfig(clk, configForTest())
	require.NoError(t, err)
	require.NoError(t, f.Emit(trigger.Regular))

	client := &fakeOLAClient{}
	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	wg.Add(1)
	errs := make(chan error, 1)
	go func() { errs <- SendDMXWorker(ctx, client, clk, 25*time.Millisecond, f, &wg) }()

	require.Eventually(t, clk.HasWaiters, time.Second, time.Millisecond)
	require.Eventually(t, func() bool {
		clk.Step(25 * time.Millisecond)
		return len(client.sent(1)) > 0
	}, time.Second, time.Millisecond)

	frame := client.sent(1)[0]
	require.Len(t, frame, 512)
	require.Equal(t, byte(255), frame[1]) // red channel of the white regular flash

	cancel()
	require.ErrorIs(t, <-errs, context.Canceled)
	wg.Wait()
	require.True(t, client.closed)
}
