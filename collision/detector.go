// Package collision decides whether the moving point is geometrically implicated with a trigger point on a given
// tick. It answers "is this trigger involved right now", never "should a beat fire"; debouncing belongs to the
// activation package.
package collision

import (
	"math"

	"github.com/robmorgan/orbit/rhythm"
)

// DefaultZoneTolerance is the angular distance, in degrees, within which the moving point counts as being at a
// trigger even without an exact crossing.
const DefaultZoneTolerance = 8.0

// CrossedOrNear reports whether the trigger lies on the arc swept from prev to curr, or whether curr sits within
// tolerance degrees of it.
func CrossedOrNear(prev, curr, trigger, tolerance float64) bool {
	return SweepCrossed(prev, curr, trigger) || InZone(curr, trigger, tolerance)
}

// SweepCrossed reports whether the trigger lies on the arc between prev and curr, inclusive of both ends.
//
// Steps of at most 180 degrees are taken as the plain span between the two angles. Larger steps are taken to have
// wrapped through 0, so the arc is the short one across the boundary. Forward play wraps from a high prev to a low
// curr; a wrap in the other direction is a backwards move and is resolved over the same short arc.
func SweepCrossed(prev, curr, trigger float64) bool {
	prev = rhythm.Normalize(prev)
	curr = rhythm.Normalize(curr)
	trigger = rhythm.Normalize(trigger)

	lo, hi := math.Min(prev, curr), math.Max(prev, curr)
	if hi-lo <= rhythm.FullCircle/2 {
		return lo <= trigger && trigger <= hi
	}
	return trigger >= hi || trigger <= lo
}

// InZone reports whether angle is within tolerance degrees of the trigger.
func InZone(angle, trigger, tolerance float64) bool {
	return rhythm.AngularDistance(angle, trigger) <= tolerance
}
