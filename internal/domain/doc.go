// Package domain models tropical-cyclone tracks for the visualization engine.
//
// # Track Model
//
// A storm's track is three ordered, non-overlapping pieces:
//
//	historical points  <  current position  <  forecast points
//
// all sorted by timestamp with no duplicates. The current position marks the
// boundary between what was observed and what is forecast. Alternative
// forecast scenarios, when present, run parallel to the primary forecast and
// are index-aligned with it.
//
// # Units and Ranges
//
// Timestamps are epoch milliseconds UTC. Latitude is [-90, 90] and longitude
// [-180, 180] in degrees. Wind speed is knots in [0, 400]; a dataset uses one
// wind unit throughout. Pressure is hPa in [850, 1050] — 850 hPa is below the
// lowest ever recorded (Typhoon Tip, 870 hPa), 1050 above any cyclone
// environment. These bounds are the engine's contract: every downstream
// component assumes points have passed validation first.
//
// # Severity Categories
//
// Category is a seven-step ordinal label, TD < TS < C1 < C2 < C3 < C4 < C5,
// following the Saffir–Simpson scale with tropical depression and tropical
// storm below it. Categories are discrete: interpolation between two points
// never blends them, it steps from one to the other at the halfway mark.
//
// # Validation Taxonomy
//
// Hard errors (out-of-range coordinate or timestamp, missing current
// position) make a storm unrenderable; [ValidateAndSanitizeStorm] returns nil
// plus a diagnostic error and never panics. Soft problems (odd wind,
// pressure, or category) become warnings and the point is repaired with
// defaults. Gaps left by unusable mid-track points are filled by linear
// interpolation between the surrounding valid points, preserving the point
// count consumers expect.
package domain
