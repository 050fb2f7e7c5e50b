package rhythm

import "math"

// FullCircle is the number of degrees in one revolution of the loop.
const FullCircle = 360.0

// Normalize maps any angle in degrees onto [0,360). Non-finite input maps to 0.
func Normalize(angle float64) float64 {
	if math.IsNaN(angle) || math.IsInf(angle, 0) {
		return 0
	}
	n := math.Mod(math.Mod(angle, FullCircle)+FullCircle, FullCircle)
	// math.Mod can round up to exactly FullCircle for tiny negative inputs
	if n >= FullCircle {
		return 0
	}
	return n
}

// AngularDistance returns the shortest distance around the loop between two angles, in [0,180].
func AngularDistance(a, b float64) float64 {
	d := math.Abs(Normalize(a) - Normalize(b))
	return math.Min(d, FullCircle-d)
}

// ForwardDelta returns how far the moving point advanced going from prev to curr in the direction of
// play, in [0,360). A value above 180 usually means the point actually moved backwards.
func ForwardDelta(prev, curr float64) float64 {
	return Normalize(curr - prev)
}
