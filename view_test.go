package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewportRoundTrip(t *testing.T) {
	vp := newViewport(Rect{MinX: 0, MinY: 0, MaxX: 100, MaxY: 50}, 80, 24)

	for _, tc := range []struct{ cx, cy int }{
		{0, 0}, {79, 23}, {40, 12}, {1, 22},
	} {
		p := vp.cellToWorld(tc.cx, tc.cy)
		cx, cy, ok := vp.worldToCell(p)
		require.True(t, ok)
		assert.Equal(t, tc.cx, cx)
		assert.Equal(t, tc.cy, cy)
	}
}

func TestViewportOrientation(t *testing.T) {
	vp := newViewport(Rect{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10}, 10, 10)

	// Row 0 is the top of the screen, i.e. high world y.
	top := vp.cellToWorld(0, 0)
	bottom := vp.cellToWorld(0, 9)
	assert.Greater(t, top.Y, bottom.Y)

	_, _, ok := vp.worldToCell(Point{X: -1, Y: 5})
	assert.False(t, ok)
	_, _, ok = vp.worldToCell(Point{X: 5, Y: 11})
	assert.False(t, ok)
}

func TestRenderSceneShape(t *testing.T) {
	s := testSession(t)
	vp := newViewport(s.Field.Extent(), 40, 15)

	lines := renderScene(s, vp, -1, -1, false, maxMaskedSpeed(s))
	require.Len(t, lines, 15)
}

func TestMaxMaskedSpeed(t *testing.T) {
	basin := squareBasin("alpha", 0, 0, 4, 4)
	grid := testGrid(10, 10, func(x, y float64) (float64, float64) {
		if x <= 4 && y <= 4 {
			return 2, 0 // inside the basin
		}
		return 10, 0 // faster, but outside
	})
	s := NewSession(&basin, grid.Full(), Point{X: 2, Y: 2},
		TraceConfig{StepLength: 1, SpeedThreshold: 0.1, MaxSteps: 10})

	assert.InDelta(t, 2.0, maxMaskedSpeed(s), 1e-9)
}

func TestMaxMaskedSpeedEmptyMaskFallsBack(t *testing.T) {
	// Basin entirely off-grid: no cell passes the containment mask.
	basin := squareBasin("remote", 100, 100, 104, 104)
	grid := uniformGrid(5, 5, 3, 4)
	s := NewSession(&basin, grid.Full(), Point{X: 2, Y: 2},
		TraceConfig{StepLength: 1, SpeedThreshold: 0.1, MaxSteps: 10})

	assert.InDelta(t, 5.0, maxMaskedSpeed(s), 1e-9)
}

func TestViridis(t *testing.T) {
	r, g, b := viridisAt(0)
	assert.InDelta(t, 0.267, r, 1e-9)
	assert.InDelta(t, 0.005, g, 1e-9)
	assert.InDelta(t, 0.329, b, 1e-9)

	r, _, _ = viridisAt(1)
	assert.InDelta(t, 0.993, r, 1e-9)

	// Clamped outside [0, 1].
	r0, g0, b0 := viridisAt(-5)
	r1, g1, b1 := viridisAt(0)
	assert.Equal(t, [3]float64{r1, g1, b1}, [3]float64{r0, g0, b0})

	assert.Equal(t, "#fde724", viridisHex(1))
}
