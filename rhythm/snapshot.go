package rhythm

import (
	"fmt"
	"math"
	"time"
)

// Snapshot is an immutable view of a PhaseClock's timeline at a single instant, intended for renderers.
type Snapshot struct {
	// Instant is the point in time with respect to which the snapshot is computed.
	Instant time.Time

	// StartTime is the clock's reference epoch. It is only meaningful while Playing.
	StartTime time.Time

	// Tempo is the effective tempo in BPM.
	Tempo float64

	// Angle is the position of the moving point in [0,360).
	Angle float64

	// Playing reports whether the clock was sweeping at Instant.
	Playing bool
}

// GetRevolutionInterval gets the length of one revolution in time.
func (s Snapshot) GetRevolutionInterval() time.Duration {
	return revolutionInterval(s.Tempo)
}

// GetRevolution gets the 1-based number of the revolution in progress since the reference epoch.
func (s Snapshot) GetRevolution() int64 {
	if !s.Playing {
		return 0
	}
	return markerNumber(s.Instant, s.StartTime, s.GetRevolutionInterval())
}

// GetPhase gets the fraction of the current revolution that has elapsed, in [0,1).
func (s Snapshot) GetPhase() float64 {
	return s.Angle / FullCircle
}

// GetTimeOfRevolution determines the instant at which a particular revolution begins.
func (s Snapshot) GetTimeOfRevolution(revolution int64) time.Time {
	return s.StartTime.Add(time.Duration(revolution-1) * s.GetRevolutionInterval())
}

// DistanceFromAngle determines how far around the loop the moving point is from the given angle.
func (s Snapshot) DistanceFromAngle(angle float64) float64 {
	return AngularDistance(s.Angle, angle)
}

// GetMarker returns the snapshot position as "revolution.degrees".
func (s Snapshot) GetMarker() string {
	return fmt.Sprintf("%d.%03d", s.GetRevolution(), int(math.Floor(s.Angle)))
}

// markerNumber calculates the 1-based marker number.
func markerNumber(instant, start time.Time, interval time.Duration) int64 {
	return int64(math.Floor(float64(instant.Sub(start))/float64(interval))) + 1
}
