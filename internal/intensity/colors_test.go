package intensity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/storm-track-viz/internal/domain"
)

func TestPaletteColor(t *testing.T) {
	p := DefaultPalette()

	t.Run("every canonical label has its fixed color", func(t *testing.T) {
		want := map[domain.Category]string{
			domain.CategoryTD: "#5EBAFF",
			domain.CategoryTS: "#00FAF4",
			domain.CategoryC1: "#FFFFCC",
			domain.CategoryC2: "#FFE775",
			domain.CategoryC3: "#FFC140",
			domain.CategoryC4: "#FF8F20",
			domain.CategoryC5: "#FF6060",
		}
		for cat, hex := range want {
			assert.Equal(t, hex, p.Color(cat))
		}
	})

	t.Run("unknown label falls back to TS", func(t *testing.T) {
		assert.Equal(t, p[domain.CategoryTS], p.Color("EX1"))
		assert.Equal(t, p[domain.CategoryTS], p.Color(""))
	})

	t.Run("labels are case-insensitive", func(t *testing.T) {
		assert.Equal(t, p[domain.CategoryC4], p.Color("c4"))
	})
}

func TestInterpolateColor(t *testing.T) {
	t.Run("endpoints", func(t *testing.T) {
		assert.Equal(t, "#000000", InterpolateColor("#000000", "#FFFFFF", 0))
		assert.Equal(t, "#FFFFFF", InterpolateColor("#000000", "#FFFFFF", 1))
	})

	t.Run("midpoint blends each channel", func(t *testing.T) {
		assert.Equal(t, "#808080", InterpolateColor("#000000", "#FFFFFF", 0.5))
		assert.Equal(t, "#80003F", InterpolateColor("#000000", "#FF007E", 0.5))
	})

	t.Run("t is clamped", func(t *testing.T) {
		assert.Equal(t, "#000000", InterpolateColor("#000000", "#FFFFFF", -3))
		assert.Equal(t, "#FFFFFF", InterpolateColor("#000000", "#FFFFFF", 9))
	})

	t.Run("unparseable input returns c1", func(t *testing.T) {
		assert.Equal(t, "oops", InterpolateColor("oops", "#FFFFFF", 0.5))
		assert.Equal(t, "#000000", InterpolateColor("#000000", "nope", 0.5))
	})
}

func TestTrackColorStops(t *testing.T) {
	p := DefaultPalette()

	t.Run("even positions, per-point colors", func(t *testing.T) {
		points := []domain.StormPoint{
			{Category: domain.CategoryTS},
			{Category: domain.CategoryC1},
			{Category: domain.CategoryC3},
		}
		stops := TrackColorStops(points, p)
		require.Len(t, stops, 3)
		assert.Equal(t, ColorStop{Position: 0, Color: p[domain.CategoryTS]}, stops[0])
		assert.Equal(t, ColorStop{Position: 0.5, Color: p[domain.CategoryC1]}, stops[1])
		assert.Equal(t, ColorStop{Position: 1, Color: p[domain.CategoryC3]}, stops[2])
	})

	t.Run("single point sits at zero", func(t *testing.T) {
		stops := TrackColorStops([]domain.StormPoint{{Category: domain.CategoryC5}}, p)
		require.Len(t, stops, 1)
		assert.Zero(t, stops[0].Position)
	})

	t.Run("empty track yields nil", func(t *testing.T) {
		assert.Nil(t, TrackColorStops(nil, p))
	})
}
