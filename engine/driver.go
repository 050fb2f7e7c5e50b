package engine

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/robmorgan/orbit/activation"
	"github.com/robmorgan/orbit/audio"
	"github.com/robmorgan/orbit/collision"
	"github.com/robmorgan/orbit/logger"
	"github.com/robmorgan/orbit/rhythm"
	"github.com/robmorgan/orbit/trigger"
	"github.com/sirupsen/logrus"
	"k8s.io/utils/clock"
)

// startAngleEpsilon is how close, in degrees, a trigger must sit to the start angle to count as on it.
const startAngleEpsilon = 1e-6

// Stats counts what the driver has done since it was created.
type Stats struct {
	// Ticks is the number of ticks that ran detection.
	Ticks int
	// Throttled is the number of ticks ignored because they came too soon after the previous one.
	Throttled int
	// Skipped is the number of ticks ignored because the moving point had barely moved.
	Skipped int
	// Anomalies is the number of ticks on which the moving point went backwards.
	Anomalies int
	// Beats is the number of beats emitted.
	Beats int
	// EmitErrors is the number of beats the emitter failed to handle.
	EmitErrors int
}

// Driver samples the phase clock, runs collision detection over the registered trigger points and emits a beat
// every time the moving point passes one. All exported methods are safe for concurrent use; trigger mutations never
// interleave with a tick.
type Driver struct {
	mu       sync.Mutex
	clock    clock.WithTicker
	opts     Options
	phase    *rhythm.PhaseClock
	registry *trigger.Registry
	tracker  *activation.Tracker
	emitter  audio.Emitter
	noteKind trigger.NoteKind
	stats    Stats

	// lastAngle is the angle detection last ran against
	lastAngle float64
	lastTick  time.Time
	ticked    bool
	// resumed is set until the first tick after Start has run detection
	resumed bool
}

// NewDriver creates a stopped Driver. A nil emitter discards beats.
func NewDriver(clk clock.WithTicker, emitter audio.Emitter, opts Options) *Driver {
	if emitter == nil {
		emitter = audio.Nop{}
	}
	if opts.FrameInterval <= 0 {
		opts.FrameInterval = DefaultFrameInterval
	}
	return &Driver{
		clock:    clk,
		opts:     opts,
		phase:    rhythm.NewPhaseClock(opts.InitialTempo, opts.MinTempo, opts.MaxTempo),
		registry: trigger.NewRegistry(),
		tracker:  activation.NewTracker(),
		emitter:  emitter,
		noteKind: trigger.DefaultNoteKind,
	}
}

// Start begins playback from the angle playback was last stopped at. Starting a playing driver has no effect.
func (d *Driver) Start() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.start()
}

// Stop halts playback, remembering the current angle for the next Start. Stopping a stopped driver has no effect.
func (d *Driver) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stop()
}

// Toggle starts a stopped driver or stops a playing one and reports whether it is now playing.
func (d *Driver) Toggle() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.phase.IsRunning() {
		d.stop()
		return false
	}
	d.start()
	return true
}

func (d *Driver) start() {
	if d.phase.IsRunning() {
		return
	}
	now := d.clock.Now()
	d.phase.Start(now)
	d.tracker.Reset()
	d.lastAngle = d.phase.AngleAt(now)
	d.ticked = false
	d.resumed = true

	logger.GetProjectLogger().WithFields(logrus.Fields{"angle": d.lastAngle, "tempo": d.phase.GetTempo()}).Info("Playback started")
}

func (d *Driver) stop() {
	if !d.phase.IsRunning() {
		return
	}
	d.phase.Stop(d.clock.Now())
	d.tracker.Reset()
	d.lastAngle = d.phase.GetLastAngle()

	logger.GetProjectLogger().WithFields(logrus.Fields{"angle": d.lastAngle}).Info("Playback stopped")
}

// IsPlaying reports whether playback is active.
func (d *Driver) IsPlaying() bool {
	return d.phase.IsRunning()
}

// SetTempo clamps bpm to the configured range and applies it, returning the effective tempo.
func (d *Driver) SetTempo(bpm float64) float64 {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.opts.RetainPhaseOnTempoChange {
		return d.phase.SetTempoAt(d.clock.Now(), bpm)
	}

	tempo := d.phase.SetTempo(bpm)
	if d.phase.IsRunning() {
		// the moving point jumped; nothing was swept in between
		d.lastAngle = d.phase.AngleAt(d.clock.Now())
	}
	return tempo
}

// NudgeTempo changes the tempo by delta BPM, clamped, and returns the effective tempo.
func (d *Driver) NudgeTempo(delta float64) float64 {
	return d.SetTempo(d.Tempo() + delta)
}

// Tempo returns the effective tempo in BPM.
func (d *Driver) Tempo() float64 {
	return d.phase.GetTempo()
}

// CurrentAngle returns where the moving point is right now. It has no side effects.
func (d *Driver) CurrentAngle() float64 {
	return d.phase.AngleAt(d.clock.Now())
}

// Snapshot captures the timeline right now.
func (d *Driver) Snapshot() rhythm.Snapshot {
	return d.phase.GetSnapshot(d.clock.Now())
}

// AddTrigger places a trigger point and returns its id.
func (d *Driver) AddTrigger(angle float64, kind trigger.NoteKind) string {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.registry.Add(angle, kind)
}

// AddTriggerDefault places a trigger point with the currently selected note kind.
func (d *Driver) AddTriggerDefault(angle float64) string {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.registry.Add(angle, d.noteKind)
}

// RemoveTrigger removes a trigger point. Unknown ids are ignored.
func (d *Driver) RemoveTrigger(id string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.registry.Remove(id)
}

// MoveTrigger moves a trigger point. Unknown ids are ignored.
func (d *Driver) MoveTrigger(id string, angle float64) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.registry.UpdateAngle(id, angle)
}

// ClearTriggers removes every trigger point.
func (d *Driver) ClearTriggers() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.registry.Clear()
}

// Triggers lists the trigger points in placement order.
func (d *Driver) Triggers() []trigger.Point {
	return d.registry.List()
}

// SetNoteKind selects the kind used by AddTriggerDefault.
func (d *Driver) SetNoteKind(kind trigger.NoteKind) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.noteKind = kind
}

// NoteKind returns the kind used by AddTriggerDefault.
func (d *Driver) NoteKind() trigger.NoteKind {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.noteKind
}

// Stats returns the driver's counters.
func (d *Driver) Stats() Stats {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.stats
}

// Tick samples the clock once and emits a beat for every trigger point the moving point reached since the previous
// tick. It returns the number of beats emitted. Ticks arriving faster than the configured minimum interval, and
// ticks on which the point barely moved, do nothing.
func (d *Driver) Tick() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.phase.IsRunning() {
		return 0
	}

	now := d.clock.Now()
	if since := now.Sub(d.lastTick); d.ticked && since >= 0 && since < d.opts.MinTickInterval {
		d.stats.Throttled++
		return 0
	}
	d.ticked = true
	d.lastTick = now

	curr := d.phase.AngleAt(now)
	prev := d.lastAngle

	moved := math.Abs(curr - prev)
	if moved < d.opts.MinAngleDelta && moved < rhythm.FullCircle-d.opts.MinAngleDelta {
		d.stats.Skipped++
		return 0
	}

	if rhythm.ForwardDelta(prev, curr) > rhythm.FullCircle/2 {
		// the clock went backwards: nothing was swept, only proximity counts
		d.stats.Anomalies++
		logger.GetProjectLogger().WithFields(logrus.Fields{"prev": prev, "curr": curr}).Warn("Moving point went backwards, ignoring sweep")
		prev = curr
	}

	fired := 0
	points := d.registry.List()
	present := make(map[string]struct{}, len(points))
	for _, p := range points {
		present[p.ID] = struct{}{}
		hit := collision.CrossedOrNear(prev, curr, p.Angle, d.opts.ZoneTolerance)
		if hit && d.resumed && rhythm.AngularDistance(prev, p.Angle) < startAngleEpsilon &&
			!collision.InZone(curr, p.Angle, d.opts.ZoneTolerance) {
			// the sweep out of the start angle excludes the start angle itself
			hit = false
		}
		if d.tracker.Observe(p.ID, hit) {
			d.emit(p, curr)
			fired++
		}
	}
	d.tracker.Retain(present)

	d.resumed = false
	d.lastAngle = curr
	d.stats.Ticks++
	return fired
}

// emit hands a beat to the emitter. Emitter failures never reach the caller.
func (d *Driver) emit(p trigger.Point, angle float64) {
	d.stats.Beats++

	log := logger.GetProjectLogger().WithFields(logrus.Fields{"trigger_id": p.ID, "kind": p.Kind, "angle": angle})
	log.Debug("Beat")

	if err := safeEmit(d.emitter, p.Kind); err != nil {
		d.stats.EmitErrors++
		log.Debugf("emitter failed: %v", err)
	}
}

func safeEmit(e audio.Emitter, kind trigger.NoteKind) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("emitter panicked: %v", r)
		}
	}()
	return e.Emit(kind)
}
