package intensity

import (
	"fmt"
	"strings"

	"github.com/couchcryptid/storm-track-viz/internal/domain"
)

// Palette maps severity categories to #RRGGBB colors.
type Palette map[domain.Category]string

// DefaultPalette returns the standard seven-color severity ramp, blue-green
// for weak systems through deep red for Category 5.
func DefaultPalette() Palette {
	return Palette{
		domain.CategoryTD: "#5EBAFF",
		domain.CategoryTS: "#00FAF4",
		domain.CategoryC1: "#FFFFCC",
		domain.CategoryC2: "#FFE775",
		domain.CategoryC3: "#FFC140",
		domain.CategoryC4: "#FF8F20",
		domain.CategoryC5: "#FF6060",
	}
}

// Color is a total function over category labels: each canonical label maps
// to its palette color, and anything unrecognized falls back to the
// tropical-storm color rather than failing.
func (p Palette) Color(c domain.Category) string {
	if hex, ok := p[domain.Category(strings.ToUpper(strings.TrimSpace(string(c))))]; ok {
		return hex
	}
	return p[domain.CategoryTS]
}

// InterpolateColor blends two #RRGGBB colors component-wise in RGB space.
// t is clamped to [0, 1]. If either color fails to parse, c1 is returned
// unchanged (degrade, don't error, in a display path).
func InterpolateColor(c1, c2 string, t float64) string {
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}

	r1, g1, b1, ok1 := parseHexColor(c1)
	r2, g2, b2, ok2 := parseHexColor(c2)
	if !ok1 || !ok2 {
		return c1
	}

	blend := func(a, b uint8) uint8 {
		return uint8(float64(a) + t*(float64(b)-float64(a)) + 0.5)
	}
	return fmt.Sprintf("#%02X%02X%02X", blend(r1, r2), blend(g1, g2), blend(b1, b2))
}

func parseHexColor(s string) (r, g, b uint8, ok bool) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return 0, 0, 0, false
	}
	var rv, gv, bv int
	if _, err := fmt.Sscanf(s, "%02x%02x%02x", &rv, &gv, &bv); err != nil {
		return 0, 0, 0, false
	}
	return uint8(rv), uint8(gv), uint8(bv), true
}

// ColorStop is a normalized position along a track with the color to show
// there, for gradient-stroked polylines.
type ColorStop struct {
	Position float64 `json:"position"` // in [0, 1]
	Color    string  `json:"color"`
}

// TrackColorStops builds one stop per point, positioned evenly along the
// track, colored by each point's category. A single point yields one stop at
// position 0; an empty track yields nil.
func TrackColorStops(points []domain.StormPoint, p Palette) []ColorStop {
	if len(points) == 0 {
		return nil
	}
	stops := make([]ColorStop, len(points))
	for i, pt := range points {
		pos := 0.0
		if len(points) > 1 {
			pos = float64(i) / float64(len(points)-1)
		}
		stops[i] = ColorStop{Position: pos, Color: p.Color(pt.Category)}
	}
	return stops
}
