package fixture

import (
	"math"

	"github.com/robmorgan/orbit/utils"
)

// Value is a channel level between 0 and 1.
type Value float64

// toDMX scales the value onto a DMX byte.
func (v Value) toDMX() int {
	return int(math.Round(utils.Clamp(float64(v), 0, 1) * 255))
}
