package core

import "errors"

// ErrNoSamples is returned when converting a Sample that has no samples
var ErrNoSamples = errors.New("sample has no samples")

// Sample accumulates color samples for a single pixel in high precision
type Sample struct {
	r, g, b float64
	count   int
}

// Add accumulates a color sample
func (s *Sample) Add(c Color) {
	s.r += float64(c.R)
	s.g += float64(c.G)
	s.b += float64(c.B)
	s.count++
}

// Count returns the number of samples accumulated
func (s *Sample) Count() int {
	return s.count
}

// Color returns the per-channel mean truncated to 8 bits
func (s *Sample) Color() (Color, error) {
	if s.count == 0 {
		return Color{}, ErrNoSamples
	}
	n := float64(s.count)
	return Color{
		R: channel(s.r / n),
		G: channel(s.g / n),
		B: channel(s.b / n),
	}, nil
}

func channel(v float64) uint8 {
	return uint8(max(0, min(255, v)))
}
