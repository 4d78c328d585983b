package renderer

import (
	"errors"
	"fmt"
)

// ErrInvalidSampling is returned for unsupported sampling levels
var ErrInvalidSampling = errors.New("sampling level must be 1, 4 or 16")

// SamplingLevel is the number of sub-pixel samples traced per pixel
type SamplingLevel int

const (
	SampleSingle  SamplingLevel = 1
	SampleQuad    SamplingLevel = 4
	SampleSixteen SamplingLevel = 16
)

// offset is a sub-pixel displacement from the pixel center, in pixels
type offset struct {
	dx, dy float32
}

var (
	singleOffsets = []offset{{0, 0}}
	quadOffsets   = gridOffsets([]float32{-1.0 / 4, 1.0 / 4})
	// 4x4 grid, the 2x2 pattern refined to ±1/8 and ±3/8
	sixteenOffsets = gridOffsets([]float32{-3.0 / 8, -1.0 / 8, 1.0 / 8, 3.0 / 8})
)

func gridOffsets(steps []float32) []offset {
	offsets := make([]offset, 0, len(steps)*len(steps))
	for _, dy := range steps {
		for _, dx := range steps {
			offsets = append(offsets, offset{dx: dx, dy: dy})
		}
	}
	return offsets
}

// ParseSamplingLevel converts a sample count into a SamplingLevel
func ParseSamplingLevel(samples int) (SamplingLevel, error) {
	level := SamplingLevel(samples)
	if !level.Valid() {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidSampling, samples)
	}
	return level, nil
}

// Valid reports whether the level is supported
func (l SamplingLevel) Valid() bool {
	return l == SampleSingle || l == SampleQuad || l == SampleSixteen
}

func (l SamplingLevel) offsets() []offset {
	switch l {
	case SampleQuad:
		return quadOffsets
	case SampleSixteen:
		return sixteenOffsets
	default:
		return singleOffsets
	}
}

func (l SamplingLevel) String() string {
	return fmt.Sprintf("%dx", int(l))
}
