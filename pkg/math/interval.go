package math

import "github.com/chewxy/math32"

// Interval is a closed range of ray parameters [Min, Max]
type Interval struct {
	Min, Max float32
}

// Forward accepts every non-negative parameter with no far clip
var Forward = Interval{Min: 0, Max: math32.Inf(1)}

// NewInterval creates a new interval
func NewInterval(min, max float32) Interval {
	return Interval{Min: min, Max: max}
}

// Contains reports whether t lies within the interval, bounds included
func (i Interval) Contains(t float32) bool {
	return i.Min <= t && t <= i.Max
}
