package main

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	outlineChar    = '.'
	streamlineChar = '*'
	seedChar       = '@'
	cursorChar     = '+'
)

var (
	outlineColor    = lipgloss.Color("245")
	streamlineColor = lipgloss.Color("#ff5f5f")
	seedColor       = lipgloss.Color("#ffd700")
	cursorColor     = lipgloss.Color("#ffffff")
)

// viewport maps a world rectangle onto a cell grid. Row 0 is the top of the
// screen, i.e. the world's MaxY edge.
type viewport struct {
	rect   Rect
	width  int
	height int
}

func newViewport(rect Rect, width, height int) viewport {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return viewport{rect: rect, width: width, height: height}
}

func (vp viewport) cellToWorld(cx, cy int) Point {
	return Point{
		X: vp.rect.MinX + (float64(cx)+0.5)/float64(vp.width)*vp.rect.Width(),
		Y: vp.rect.MaxY - (float64(cy)+0.5)/float64(vp.height)*vp.rect.Height(),
	}
}

func (vp viewport) worldToCell(p Point) (cx, cy int, ok bool) {
	w, h := vp.rect.Width(), vp.rect.Height()
	if w <= 0 || h <= 0 {
		return 0, 0, false
	}
	cx = int((p.X - vp.rect.MinX) / w * float64(vp.width))
	cy = int((vp.rect.MaxY - p.Y) / h * float64(vp.height))
	if cx < 0 || cx >= vp.width || cy < 0 || cy >= vp.height {
		return 0, 0, false
	}
	return cx, cy, true
}

type cell struct {
	ch rune
	fg lipgloss.TerminalColor
	bg lipgloss.TerminalColor
}

// renderScene projects the session onto a cell grid: masked speed raster,
// basin outline, current streamline, seed marker, crosshair. It reads state
// only, so re-rendering the same seed always produces the same lines.
func renderScene(s *Session, vp viewport, cursorX, cursorY int, showCursor bool, maxSpeed float64) []string {
	cells := make([][]cell, vp.height)
	for i := range cells {
		cells[i] = make([]cell, vp.width)
		for j := range cells[i] {
			cells[i][j] = cell{ch: ' '}
		}
	}

	// Speed raster, masked to the polygon and the threshold. The mask is
	// display-only; integration still sees the whole clipped field.
	for cy := 0; cy < vp.height; cy++ {
		for cx := 0; cx < vp.width; cx++ {
			p := vp.cellToWorld(cx, cy)
			speed, ok := s.Field.Speed(p)
			if !ok || speed <= s.cfg.SpeedThreshold || !s.Basin.Contains(p) {
				continue
			}
			t := 0.0
			if maxSpeed > 0 {
				t = speed / maxSpeed
			}
			cells[cy][cx].bg = lipgloss.Color(viridisHex(t))
		}
	}

	// Basin outline on top of the raster.
	for _, ring := range s.Basin.Rings {
		for i := 1; i < len(ring); i++ {
			drawCellLine(cells, vp, ring[i-1], ring[i], outlineChar, outlineColor)
		}
		if len(ring) > 2 {
			drawCellLine(cells, vp, ring[len(ring)-1], ring[0], outlineChar, outlineColor)
		}
	}

	// Streamline, then the seed marker so it stays visible.
	for i := 1; i < len(s.Line.Points); i++ {
		drawCellLine(cells, vp, s.Line.Points[i-1], s.Line.Points[i], streamlineChar, streamlineColor)
	}
	if cx, cy, ok := vp.worldToCell(s.Seed); ok {
		cells[cy][cx].ch = seedChar
		cells[cy][cx].fg = seedColor
	}

	if showCursor && cursorY >= 0 && cursorY < vp.height && cursorX >= 0 && cursorX < vp.width {
		cells[cursorY][cursorX].ch = cursorChar
		cells[cursorY][cursorX].fg = cursorColor
	}

	styles := make(map[cell]lipgloss.Style)
	lines := make([]string, vp.height)
	for cy, row := range cells {
		var b strings.Builder
		for _, c := range row {
			if c.ch == ' ' && c.bg == nil {
				b.WriteByte(' ')
				continue
			}
			key := cell{fg: c.fg, bg: c.bg}
			style, cached := styles[key]
			if !cached {
				style = lipgloss.NewStyle()
				if c.fg != nil {
					style = style.Foreground(c.fg)
				}
				if c.bg != nil {
					style = style.Background(c.bg)
				}
				styles[key] = style
			}
			b.WriteString(style.Render(string(c.ch)))
		}
		lines[cy] = b.String()
	}
	return lines
}

// drawCellLine rasterizes the world segment a-b into the cell grid. Existing
// background colors are kept so overlays ride on the speed raster.
func drawCellLine(cells [][]cell, vp viewport, a, b Point, ch rune, fg lipgloss.TerminalColor) {
	x0, y0, ok0 := vp.worldToCell(a)
	x1, y1, ok1 := vp.worldToCell(b)
	if !ok0 && !ok1 {
		return
	}
	if !ok0 {
		x0, y0 = clampCell(vp, a)
	}
	if !ok1 {
		x1, y1 = clampCell(vp, b)
	}

	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		if y0 >= 0 && y0 < len(cells) && x0 >= 0 && x0 < len(cells[y0]) {
			cells[y0][x0].ch = ch
			cells[y0][x0].fg = fg
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func clampCell(vp viewport, p Point) (int, int) {
	w, h := vp.rect.Width(), vp.rect.Height()
	if w <= 0 || h <= 0 {
		return 0, 0
	}
	cx := int((p.X - vp.rect.MinX) / w * float64(vp.width))
	cy := int((vp.rect.MaxY - p.Y) / h * float64(vp.height))
	if cx < 0 {
		cx = 0
	}
	if cx >= vp.width {
		cx = vp.width - 1
	}
	if cy < 0 {
		cy = 0
	}
	if cy >= vp.height {
		cy = vp.height - 1
	}
	return cx, cy
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// maxMaskedSpeed scales the color ramp the way the plot tool did: the
// maximum speed inside the polygon. Falls back to the window maximum when
// the mask is empty.
func maxMaskedSpeed(s *Session) float64 {
	var masked, unmasked float64
	for i := 0; i < s.Field.NY(); i++ {
		for j := 0; j < s.Field.NX(); j++ {
			u, v, ok := s.Field.At(i, j)
			if !ok {
				continue
			}
			speed := u*u + v*v
			if speed > unmasked {
				unmasked = speed
			}
			if speed > masked && s.Basin.Contains(Point{X: s.Field.XAt(j), Y: s.Field.YAt(i)}) {
				masked = speed
			}
		}
	}
	if masked > 0 {
		return math.Sqrt(masked)
	}
	return math.Sqrt(unmasked)
}
