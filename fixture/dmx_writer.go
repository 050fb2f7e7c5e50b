package fixture

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robmorgan/orbit/logger"
	"k8s.io/utils/clock"
)

const channelsPerUniverse = 512

// DMXState holds the DMX512 values for each channel
type DMXState struct {
	universes map[int][]byte
	lock      sync.Mutex
}

// NewDMXState creates an empty DMXState.
func NewDMXState() *DMXState {
	return &DMXState{
		universes: make(map[int][]byte),
	}
}

type dmxOperation struct {
	universe, channel, value int
}

func (s *DMXState) getValue(universe, channel int) int {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.universes[universe] == nil {
		return 0
	}
	return int(s.universes[universe][channel-1])
}

func (s *DMXState) set(ops ...dmxOperation) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	for _, op := range ops {
		if op.channel < 1 || op.channel > channelsPerUniverse {
			return fmt.Errorf("dmx channel (%d) not in range, op=%v", op.channel, op)
		}
		if op.value < 0 || op.value > 255 {
			return fmt.Errorf("dmx value (%d) not in range, op=%v", op.value, op)
		}

		s.initializeUniverse(op.universe)
		s.universes[op.universe][op.channel-1] = byte(op.value)
	}

	return nil
}

func (s *DMXState) initializeUniverse(universe int) {
	if s.universes[universe] == nil {
		s.universes[universe] = make([]byte, channelsPerUniverse)
	}
}

// Universes returns a copy of every universe written so far.
func (s *DMXState) Universes() map[int][]byte {
	s.lock.Lock()
	defer s.lock.Unlock()

	out := make(map[int][]byte, len(s.universes))
	for k, v := range s.universes {
		out[k] = append([]byte(nil), v...)
	}
	return out
}

// OLAClient is the interface for communicating with OLA
type OLAClient interface {
	SendDmx(universe int, values []byte) (status bool, err error)
	Close()
}

// Renderer writes a frame of fixture values for the given instant.
type Renderer interface {
	Render(state *DMXState, now time.Time) error
}

// SendDMXWorker renders a frame every tick and sends OLA the resulting state across all universes.
func SendDMXWorker(ctx context.Context, client OLAClient, clk clock.WithTicker, tick time.Duration, renderer Renderer, wg *sync.WaitGroup) error {
	defer wg.Done()
	defer client.Close()

	logger := logger.GetProjectLogger()
	state := NewDMXState()

	t := clk.NewTicker(tick)
	defer t.Stop()
	logger.Debugf("DMX worker started at %v", clk.Now())

	for {
		select {
		case <-ctx.Done():
			logger.Debug("SendDMXWorker shutdown")
			return ctx.Err()
		case now := <-t.C():
			if err := renderer.Render(state, now); err != nil {
				logger.Errorf("could not render dmx frame: %v", err)
				continue
			}
			for k, v := range state.Universes() {
				if _, err := client.SendDmx(k, v); err != nil {
					logger.Debugf("could not send universe %d: %v", k, err)
				}
			}
		}
	}
}
