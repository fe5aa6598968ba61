package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/storm-track-viz/internal/domain"
)

func pt(lat, lng float64) domain.StormPoint {
	return domain.StormPoint{Lat: lat, Lng: lng}
}

// zigzagTrack builds n points alternating off a straight west-to-east path
// so that no three consecutive points are collinear.
func zigzagTrack(n int) []domain.StormPoint {
	points := make([]domain.StormPoint, n)
	for i := range points {
		lat := 20.0
		if i%2 == 1 {
			lat += 0.02
		}
		points[i] = pt(lat, -80+float64(i)*0.1)
	}
	return points
}

func TestSimplify(t *testing.T) {
	t.Run("two or fewer points unchanged", func(t *testing.T) {
		one := []domain.StormPoint{pt(10, -50)}
		two := []domain.StormPoint{pt(10, -50), pt(11, -51)}
		assert.Equal(t, one, Simplify(one, 1))
		assert.Equal(t, two, Simplify(two, 1))
		assert.Empty(t, Simplify(nil, 1))
	})

	t.Run("endpoints always survive", func(t *testing.T) {
		points := zigzagTrack(50)
		for _, tolerance := range []float64{0, 0.01, 0.25, 10} {
			got := Simplify(points, tolerance)
			require.NotEmpty(t, got, "tolerance %g", tolerance)
			assert.Equal(t, points[0], got[0], "tolerance %g", tolerance)
			assert.Equal(t, points[len(points)-1], got[len(got)-1], "tolerance %g", tolerance)
		}
	})

	t.Run("zero tolerance keeps a non-collinear path intact", func(t *testing.T) {
		points := zigzagTrack(21)
		assert.Equal(t, points, Simplify(points, 0))
	})

	t.Run("collinear interior points collapse", func(t *testing.T) {
		points := []domain.StormPoint{pt(10, -50), pt(10, -49), pt(10, -48), pt(10, -47)}
		got := Simplify(points, 0.001)
		assert.Equal(t, []domain.StormPoint{points[0], points[3]}, got)
	})

	t.Run("large tolerance collapses everything to the chord", func(t *testing.T) {
		points := zigzagTrack(30)
		got := Simplify(points, 100)
		assert.Equal(t, []domain.StormPoint{points[0], points[len(points)-1]}, got)
	})

	t.Run("significant corners survive a small tolerance", func(t *testing.T) {
		points := []domain.StormPoint{pt(10, -50), pt(15, -49), pt(10, -48)}
		got := Simplify(points, 0.5)
		require.Len(t, got, 3)
		assert.Equal(t, points[1], got[1])
	})
}

func TestShouldSimplify(t *testing.T) {
	assert.False(t, ShouldSimplify(zigzagTrack(100)))
	assert.True(t, ShouldSimplify(zigzagTrack(101)))
}

func TestForZoom(t *testing.T) {
	long := zigzagTrack(150)
	short := zigzagTrack(40)

	t.Run("full detail at or above zoom 7", func(t *testing.T) {
		assert.Len(t, ForZoom(long, 7), len(long))
		assert.Len(t, ForZoom(long, 12), len(long))
	})

	t.Run("short tracks never simplified", func(t *testing.T) {
		assert.Len(t, ForZoom(short, 2), len(short))
	})

	t.Run("zoomed out long tracks shrink", func(t *testing.T) {
		got := ForZoom(long, 4)
		assert.Less(t, len(got), len(long))
		assert.Equal(t, long[0], got[0])
		assert.Equal(t, long[len(long)-1], got[len(got)-1])
	})

	t.Run("lower zoom means fewer points", func(t *testing.T) {
		near := ForZoom(long, 6)
		far := ForZoom(long, 2)
		assert.LessOrEqual(t, len(far), len(near))
	})

	t.Run("pure function of its inputs", func(t *testing.T) {
		assert.Equal(t, ForZoom(long, 4), ForZoom(long, 4))
	})
}

func TestToleranceForZoom(t *testing.T) {
	// doubles per zoom level below full detail
	assert.InDelta(t, 2.0, toleranceForZoom(2)/toleranceForZoom(3), 1e-9)
	assert.InDelta(t, baseZoomTolerance, toleranceForZoom(fullDetailZoom-1), 1e-9)
}

func TestLineString(t *testing.T) {
	ls := LineString([]domain.StormPoint{pt(10, -50), pt(11, -49)})
	require.Len(t, ls, 2)
	// orb points are lng/lat ordered
	assert.InDelta(t, -50, ls[0][0], 1e-9)
	assert.InDelta(t, 10, ls[0][1], 1e-9)
	assert.True(t, !math.IsNaN(ls[1][0]))
}
