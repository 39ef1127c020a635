package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func squareBasin(name string, minX, minY, maxX, maxY float64) Basin {
	ring := []Point{
		{X: minX, Y: minY},
		{X: maxX, Y: minY},
		{X: maxX, Y: maxY},
		{X: minX, Y: maxY},
	}
	return Basin{
		Name:  name,
		Rings: [][]Point{ring},
		BBox:  Rect{MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY},
	}
}

func testSession(t *testing.T) *Session {
	t.Helper()
	basin := squareBasin("alpha", 0, 0, 8, 8)
	field := uniformGrid(21, 9, 1, 0).Full()
	cfg := TraceConfig{StepLength: 1, SpeedThreshold: 0.1, MaxSteps: 100}
	return NewSession(&basin, field, Point{X: 1, Y: 1}, cfg)
}

func TestNewSessionTracesDefaultSeed(t *testing.T) {
	s := testSession(t)

	assert.Equal(t, StateAwaitingInput, s.State)
	require.NotEmpty(t, s.Line.Points)
	assert.Equal(t, s.Seed, s.Line.Points[0])
}

func TestClickReplacesSeedAndStreamline(t *testing.T) {
	s := testSession(t)

	_, emitted := s.Handle(ClickEvent{At: Point{X: 3, Y: 2}})
	assert.False(t, emitted)
	assert.Equal(t, StateAwaitingInput, s.State)
	assert.Equal(t, Point{X: 3, Y: 2}, s.Seed)
	assert.Equal(t, Point{X: 3, Y: 2}, s.Line.Points[0])

	// Only the latest click matters.
	s.Handle(ClickEvent{At: Point{X: 5, Y: 5}})
	assert.Equal(t, Point{X: 5, Y: 5}, s.Seed)
	assert.Equal(t, Point{X: 5, Y: 5}, s.Line.Points[0])
}

func TestCommitEmitsExactlyOneRecord(t *testing.T) {
	s := testSession(t)
	s.Handle(ClickEvent{At: Point{X: 4, Y: 4}})

	rec, emitted := s.Handle(CommitEvent{})
	require.True(t, emitted)
	assert.Equal(t, StateCommitted, s.State)
	assert.Equal(t, "alpha", rec.Basin)
	assert.Equal(t, Point{X: 4, Y: 4}, rec.Seed)

	// A second commit must not emit again.
	_, emitted = s.Handle(CommitEvent{})
	assert.False(t, emitted)

	// Clicks after commit are ignored.
	s.Handle(ClickEvent{At: Point{X: 1, Y: 1}})
	assert.Equal(t, Point{X: 4, Y: 4}, s.Seed)
}

func TestAbortIsTerminal(t *testing.T) {
	s := testSession(t)

	_, emitted := s.Handle(AbortEvent{})
	assert.False(t, emitted)
	assert.Equal(t, StateAborted, s.State)

	_, emitted = s.Handle(CommitEvent{})
	assert.False(t, emitted)
	s.Handle(ClickEvent{At: Point{X: 7, Y: 7}})
	assert.Equal(t, Point{X: 1, Y: 1}, s.Seed)
}

func TestRenderIsIdempotent(t *testing.T) {
	s := testSession(t)
	s.Handle(ClickEvent{At: Point{X: 2, Y: 3}})
	vp := newViewport(s.Field.Extent(), 60, 20)

	first := renderScene(s, vp, 5, 5, true, maxMaskedSpeed(s))
	second := renderScene(s, vp, 5, 5, true, maxMaskedSpeed(s))

	assert.Equal(t, first, second)
}
