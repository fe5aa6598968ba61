// Package timeline computes the global scrubbing window across storms and a
// storm's interpolated state at an arbitrary instant. Like the geometry
// package it is pure: the host re-invokes these functions as the user scrubs.
package timeline

import (
	"time"

	"github.com/couchcryptid/storm-track-viz/internal/domain"
)

const (
	threeHoursMs = 3 * 60 * 60 * 1000
	sixHoursMs   = 6 * 60 * 60 * 1000

	// maxMarkers is the densest marker count the timeline control can show
	// before labels collide; past it the granularity drops to six hours.
	maxMarkers = 20
)

// Range is the global timeline window, rounded outward to marker boundaries.
type Range struct {
	Start   int64   `json:"start"` // epoch ms, on a StepMs boundary
	End     int64   `json:"end"`   // epoch ms, on a StepMs boundary
	StepMs  int64   `json:"stepMs"`
	Markers []int64 `json:"markers"` // Start..End inclusive, StepMs apart
}

// Labels renders the markers as compact UTC labels for the timeline control.
func (r Range) Labels() []string {
	labels := make([]string, len(r.Markers))
	for i, ms := range r.Markers {
		labels[i] = time.UnixMilli(ms).UTC().Format("Jan 2 15Z")
	}
	return labels
}

// ComputeTimeRange finds the min/max timestamp across every storm's full
// track and rounds the window outward to 3-hour boundaries, switching to
// 6-hour granularity when 3-hour markers would exceed the display limit.
// Storms contributing no valid timestamp are silently excluded; ok is false
// when nothing remains.
func ComputeTimeRange(storms []domain.Storm) (r Range, ok bool) {
	var minTS, maxTS int64
	for _, s := range storms {
		for _, p := range s.FullTrack() {
			if !domain.IsValidTimestamp(p.Timestamp) {
				continue
			}
			if !ok || p.Timestamp < minTS {
				minTS = p.Timestamp
			}
			if !ok || p.Timestamp > maxTS {
				maxTS = p.Timestamp
			}
			ok = true
		}
	}
	if !ok {
		return Range{}, false
	}

	r = roundRange(minTS, maxTS, threeHoursMs)
	if len(r.Markers) > maxMarkers {
		r = roundRange(minTS, maxTS, sixHoursMs)
	}
	return r, true
}

// roundRange expands [minTS, maxTS] outward to step boundaries and emits the
// inclusive marker sequence.
func roundRange(minTS, maxTS, step int64) Range {
	start := floorDiv(minTS, step) * step
	end := maxTS
	if rem := end % step; rem != 0 {
		end = floorDiv(end, step)*step + step
	}

	markers := make([]int64, 0, (end-start)/step+1)
	for t := start; t <= end; t += step {
		markers = append(markers, t)
	}
	return Range{Start: start, End: end, StepMs: step, Markers: markers}
}

// floorDiv divides rounding toward negative infinity, so pre-1970 windows
// still land on boundaries below them.
func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
