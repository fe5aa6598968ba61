// Package intensity maps storm strength onto visual properties: the category
// color palette, color interpolation along a track, intensity trend
// detection, marker sizing, a single-scalar intensity score, and the
// wind-strength ring table. All functions are pure; the palette and rings are
// passed in (or defaulted) rather than held as globals, so a host can inject
// a YAML style override at construction.
package intensity
