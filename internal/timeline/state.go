package timeline

import (
	"sort"

	"github.com/couchcryptid/storm-track-viz/internal/domain"
)

const (
	oneHourMs = 60 * 60 * 1000

	// singlePointWindowMs is how close the scrub time must be to a lone
	// point for its storm to stay in view.
	singlePointWindowMs = 6 * oneHourMs

	// rangeBufferMs pads a track's time range for the visibility check so
	// storms don't flicker in and out exactly at the track boundary.
	rangeBufferMs = oneHourMs
)

// State is a storm's derived condition at one instant on the timeline.
type State struct {
	Sample     domain.TrackSample  `json:"sample"`
	Historical []domain.StormPoint `json:"historical"` // strictly before t
	Forecast   []domain.StormPoint `json:"forecast"`   // strictly after t
	Visible    bool                `json:"visible"`
}

// StateAtTime computes the storm's position and intensity at t (epoch ms).
// Times at an existing point return that exact point tagged Observed; times
// between points interpolate and tag the sample Interpolated; times outside
// the track clamp to the first or last point. The full track is also
// partitioned into the points strictly before and strictly after t.
// ok is false when the storm has no points at all.
func StateAtTime(storm domain.Storm, t int64) (State, bool) {
	track := storm.FullTrack()
	if len(track) == 0 {
		return State{}, false
	}

	state := State{
		Historical: prefixBefore(track, t),
		Forecast:   suffixAfter(track, t),
		Visible:    visibleAt(track, t),
	}

	// greatest i with track[i].Timestamp <= t
	n := len(track)
	i := sort.Search(n, func(k int) bool { return track[k].Timestamp > t }) - 1

	switch {
	case i < 0:
		state.Sample = domain.TrackSample{Point: track[0], Provenance: domain.Observed}
	case i == n-1 || track[i].Timestamp == t:
		state.Sample = domain.TrackSample{Point: track[i], Provenance: domain.Observed}
	default:
		a, b := track[i], track[i+1]
		factor := float64(t-a.Timestamp) / float64(b.Timestamp-a.Timestamp)
		state.Sample = domain.TrackSample{
			Point:      domain.InterpolateStormPoint(a, b, factor),
			Provenance: domain.Interpolated,
		}
	}

	return state, true
}

// visibleAt applies the visibility rules: a lone point keeps its storm in
// view only within ±6 hours; otherwise the track's full range, padded by one
// hour on each side, must contain t.
func visibleAt(track []domain.StormPoint, t int64) bool {
	if len(track) == 1 {
		delta := t - track[0].Timestamp
		if delta < 0 {
			delta = -delta
		}
		return delta <= singlePointWindowMs
	}
	first, last := track[0].Timestamp, track[len(track)-1].Timestamp
	return t >= first-rangeBufferMs && t <= last+rangeBufferMs
}

func prefixBefore(track []domain.StormPoint, t int64) []domain.StormPoint {
	i := sort.Search(len(track), func(k int) bool { return track[k].Timestamp >= t })
	return track[:i]
}

func suffixAfter(track []domain.StormPoint, t int64) []domain.StormPoint {
	i := sort.Search(len(track), func(k int) bool { return track[k].Timestamp > t })
	return track[i:]
}
