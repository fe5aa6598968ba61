// Package geometry holds the track-shape math: Douglas–Peucker polyline
// simplification with a zoom-adaptive policy, and the forecast-uncertainty
// cone built from geodesic offsets. Everything here is a pure function over
// validated storm points; callers are expected to have run the points
// through domain validation first.
package geometry
