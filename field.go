package main

import (
	"fmt"
	"math"
	"sort"
)

type Point struct {
	X, Y float64
}

type Rect struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

func (r Rect) Width() float64  { return r.MaxX - r.MinX }
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

func (r Rect) Contains(p Point) bool {
	return p.X >= r.MinX && p.X <= r.MaxX && p.Y >= r.MinY && p.Y <= r.MaxY
}

// VelocityGrid is an immutable 2-D surface velocity field on a rectilinear
// grid. U and V are row-major over Y: U[i][j] is the easting component at
// (X[j], Y[i]). NaN marks a missing sample.
type VelocityGrid struct {
	X, Y []float64
	U, V [][]float64
}

// Normalize flips any descending axis (and the matching array dimension) so
// both axes end up ascending. Velocity mosaics are often stored north-up.
func (g *VelocityGrid) Normalize() {
	if len(g.Y) > 1 && g.Y[0] > g.Y[1] {
		reverseFloats(g.Y)
		reverseRows(g.U)
		reverseRows(g.V)
	}
	if len(g.X) > 1 && g.X[0] > g.X[1] {
		reverseFloats(g.X)
		for _, row := range g.U {
			reverseFloats(row)
		}
		for _, row := range g.V {
			reverseFloats(row)
		}
	}
}

func (g *VelocityGrid) Validate() error {
	if len(g.X) == 0 || len(g.Y) == 0 {
		return fmt.Errorf("velocity grid has empty coordinate axes")
	}
	if !ascending(g.X) {
		return fmt.Errorf("velocity grid x axis is not monotonic")
	}
	if !ascending(g.Y) {
		return fmt.Errorf("velocity grid y axis is not monotonic")
	}
	if len(g.U) != len(g.Y) || len(g.V) != len(g.Y) {
		return fmt.Errorf("velocity components have %d/%d rows, want %d", len(g.U), len(g.V), len(g.Y))
	}
	for i := range g.U {
		if len(g.U[i]) != len(g.X) || len(g.V[i]) != len(g.X) {
			return fmt.Errorf("velocity row %d has %d/%d columns, want %d", i, len(g.U[i]), len(g.V[i]), len(g.X))
		}
	}
	return nil
}

func ascending(a []float64) bool {
	for i := 1; i < len(a); i++ {
		if a[i] <= a[i-1] {
			return false
		}
	}
	return true
}

func reverseFloats(a []float64) {
	for i, j := 0, len(a)-1; i < j; i, j = i+1, j-1 {
		a[i], a[j] = a[j], a[i]
	}
}

func reverseRows(rows [][]float64) {
	for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
		rows[i], rows[j] = rows[j], rows[i]
	}
}

// FieldView is a rectangular index window into a VelocityGrid. Clipping to a
// basin's bounding box is an optimization only; sampling semantics are the
// same as on the full grid, restricted to the window's extent.
type FieldView struct {
	grid   *VelocityGrid
	i0, i1 int // y index window, half open
	j0, j1 int // x index window, half open
}

func (g *VelocityGrid) Full() *FieldView {
	return &FieldView{grid: g, i0: 0, i1: len(g.Y), j0: 0, j1: len(g.X)}
}

// ClipRect returns the view covering all grid columns/rows whose coordinate
// falls inside r. The window may be empty if r misses the grid entirely.
func (g *VelocityGrid) ClipRect(r Rect) *FieldView {
	j0 := sort.SearchFloat64s(g.X, r.MinX)
	j1 := sort.SearchFloat64s(g.X, r.MaxX)
	if j1 < len(g.X) && g.X[j1] == r.MaxX {
		j1++
	}
	i0 := sort.SearchFloat64s(g.Y, r.MinY)
	i1 := sort.SearchFloat64s(g.Y, r.MaxY)
	if i1 < len(g.Y) && g.Y[i1] == r.MaxY {
		i1++
	}
	return &FieldView{grid: g, i0: i0, i1: i1, j0: j0, j1: j1}
}

func (f *FieldView) Empty() bool { return f.i1 <= f.i0 || f.j1 <= f.j0 }
func (f *FieldView) NX() int     { return f.j1 - f.j0 }
func (f *FieldView) NY() int     { return f.i1 - f.i0 }

// XAt and YAt address the window, not the backing grid.
func (f *FieldView) XAt(j int) float64 { return f.grid.X[f.j0+j] }
func (f *FieldView) YAt(i int) float64 { return f.grid.Y[f.i0+i] }

// At reads the velocity at window cell (i, j). ok is false over missing data.
func (f *FieldView) At(i, j int) (u, v float64, ok bool) {
	u = f.grid.U[f.i0+i][f.j0+j]
	v = f.grid.V[f.i0+i][f.j0+j]
	if math.IsNaN(u) || math.IsNaN(v) {
		return 0, 0, false
	}
	return u, v, true
}

func (f *FieldView) Extent() Rect {
	if f.Empty() {
		return Rect{}
	}
	return Rect{
		MinX: f.grid.X[f.j0], MaxX: f.grid.X[f.j1-1],
		MinY: f.grid.Y[f.i0], MaxY: f.grid.Y[f.i1-1],
	}
}

// Sample evaluates the field at p by nearest-neighbour lookup. The scheme is
// fixed: the source mosaics are coarse (0.5 km) and nearest keeps missing
// data from bleeding into valid cells. Points strictly outside the view's
// extent, and points whose nearest cell is missing, report ok=false.
func (f *FieldView) Sample(p Point) (u, v float64, ok bool) {
	if f.Empty() {
		return 0, 0, false
	}
	j, ok := nearestIndex(f.grid.X, f.j0, f.j1, p.X)
	if !ok {
		return 0, 0, false
	}
	i, ok := nearestIndex(f.grid.Y, f.i0, f.i1, p.Y)
	if !ok {
		return 0, 0, false
	}
	return f.At(i-f.i0, j-f.j0)
}

// Speed is the Euclidean norm of the sampled vector; MISSING propagates.
func (f *FieldView) Speed(p Point) (float64, bool) {
	u, v, ok := f.Sample(p)
	if !ok {
		return 0, false
	}
	return math.Hypot(u, v), true
}

// nearestIndex finds the index in axis[lo:hi] closest to v, or ok=false if v
// lies outside the closed interval [axis[lo], axis[hi-1]].
func nearestIndex(axis []float64, lo, hi int, v float64) (int, bool) {
	if math.IsNaN(v) || v < axis[lo] || v > axis[hi-1] {
		return 0, false
	}
	k := sort.SearchFloat64s(axis[lo:hi], v) + lo
	if k == lo {
		return lo, true
	}
	if k == hi || v-axis[k-1] <= axis[k]-v {
		return k - 1, true
	}
	return k, true
}
