// Package debug derives frame-pacing statistics from the render loop's
// frame-timestamp feed.
package debug

import (
	"time"

	"sdf-engine/internal/bridge"
)

// windowSize is how many recent frame gaps the stats average over.
const windowSize = 120

// FrameStats folds frame timestamps into an FPS estimate and the worst
// frame-to-frame gap over a sliding window. Owned by whichever side reads
// the timestamp cell; not safe for concurrent use.
type FrameStats struct {
	last     bridge.FrameTimestamp
	haveLast bool
	gaps     [windowSize]time.Duration
	count    int
	next     int
}

// Record folds one frame timestamp in. Timestamps arrive through a
// latest-value cell, so missed intermediates simply widen the observed gap.
func (s *FrameStats) Record(ts bridge.FrameTimestamp) {
	if s.haveLast && ts.FrameNum > s.last.FrameNum {
		gap := ts.Timestamp.Sub(s.last.Timestamp) / time.Duration(ts.FrameNum-s.last.FrameNum)
		s.gaps[s.next] = gap
		s.next = (s.next + 1) % windowSize
		if s.count < windowSize {
			s.count++
		}
	}
	s.last = ts
	s.haveLast = true
}

// FPS returns the average frames per second over the window, or 0 before any
// complete gap was seen.
func (s *FrameStats) FPS() float64 {
	if s.count == 0 {
		return 0
	}
	var total time.Duration
	for i := 0; i < s.count; i++ {
		total += s.gaps[i]
	}
	mean := total / time.Duration(s.count)
	if mean <= 0 {
		return 0
	}
	return float64(time.Second) / float64(mean)
}

// WorstGap returns the longest per-frame gap in the window.
func (s *FrameStats) WorstGap() time.Duration {
	var worst time.Duration
	for i := 0; i < s.count; i++ {
		if s.gaps[i] > worst {
			worst = s.gaps[i]
		}
	}
	return worst
}

// Frames returns the number of the last recorded frame.
func (s *FrameStats) Frames() uint64 {
	return s.last.FrameNum
}
