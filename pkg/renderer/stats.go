package renderer

import "time"

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels  int           // Total number of pixels rendered
	TotalRows    int           // Scanlines completed
	TotalSamples int           // Primary rays traced
	TotalHits    int           // Primary rays that hit geometry
	MaxSamples   int           // Samples per pixel for this render
	HitRatio     float64       // TotalHits / TotalSamples
	Workers      int           // Number of workers used
	Elapsed      time.Duration // Wall time of the render
}

// merge adds the counters of a scanline into the totals
func (s *RenderStats) merge(other RenderStats) {
	s.TotalPixels += other.TotalPixels
	s.TotalRows += other.TotalRows
	s.TotalSamples += other.TotalSamples
	s.TotalHits += other.TotalHits
}

// finalize calculates derived statistics after all rows are merged
func (s *RenderStats) finalize() {
	if s.TotalSamples > 0 {
		s.HitRatio = float64(s.TotalHits) / float64(s.TotalSamples)
	}
}
