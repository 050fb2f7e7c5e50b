package engine

import (
	"context"

	"github.com/robmorgan/orbit/logger"
)

// Run ticks the driver at its frame interval until the context is cancelled. It is the tick source for hosts without
// a refresh callback of their own; hosts that have one call Tick directly instead.
func (d *Driver) Run(ctx context.Context) error {
	logger := logger.GetProjectLogger()

	ticker := d.clock.NewTicker(d.opts.FrameInterval)
	defer ticker.Stop()

	logger.Debugf("Tick loop started, interval=%v", d.opts.FrameInterval)
	for {
		select {
		case <-ctx.Done():
			logger.Debug("Tick loop shutdown")
			return ctx.Err()
		case <-ticker.C():
			d.Tick()
		}
	}
}
