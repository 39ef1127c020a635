package main

import (
	"fmt"
	"image/color"
	"math"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
)

const snapshotTitleBand = 28.0

// snapshotPNG renders the current basin view to a PNG at grid-cell
// resolution: masked speed raster, basin outline, streamline, seed marker
// and a title band with the basin name.
func snapshotPNG(s *Session, maxSpeed float64, path string) error {
	nx, ny := s.Field.NX(), s.Field.NY()
	if nx == 0 || ny == 0 {
		return fmt.Errorf("nothing to export")
	}

	px := 1000 / nx
	if px < 2 {
		px = 2
	}
	if px > 12 {
		px = 12
	}
	imageWidth := nx * px
	imageHeight := ny*px + int(snapshotTitleBand)

	dc := gg.NewContext(imageWidth, imageHeight)
	dc.SetColor(color.White)
	dc.Clear()

	ttfFont, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return fmt.Errorf("failed to parse font: %v", err)
	}
	face := truetype.NewFace(ttfFont, &truetype.Options{
		Size:    14,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	dc.SetFontFace(face)

	// Raster first so everything else draws on top. Row i is world-ascending
	// y, image y grows downward.
	for i := 0; i < ny; i++ {
		for j := 0; j < nx; j++ {
			u, v, ok := s.Field.At(i, j)
			if !ok {
				continue
			}
			speed := math.Hypot(u, v)
			if speed <= s.cfg.SpeedThreshold {
				continue
			}
			if !s.Basin.Contains(Point{X: s.Field.XAt(j), Y: s.Field.YAt(i)}) {
				continue
			}
			t := 0.0
			if maxSpeed > 0 {
				t = speed / maxSpeed
			}
			r, g, b := viridisAt(t)
			dc.SetRGB(r, g, b)
			dc.DrawRectangle(float64(j*px), snapshotTitleBand+float64((ny-1-i)*px), float64(px), float64(px))
			dc.Fill()
		}
	}

	ext := s.Field.Extent()
	toPx := func(p Point) (float64, float64) {
		x, y := 0.0, 0.0
		if w := ext.Width(); w > 0 {
			x = (p.X - ext.MinX) / w * float64(nx*px)
		}
		if h := ext.Height(); h > 0 {
			y = (ext.MaxY - p.Y) / h * float64(ny*px)
		}
		return x, snapshotTitleBand + y
	}

	// Basin outline.
	dc.SetLineWidth(1.5)
	dc.SetRGB(0.35, 0.35, 0.35)
	for _, ring := range s.Basin.Rings {
		for i, p := range ring {
			x, y := toPx(p)
			if i == 0 {
				dc.MoveTo(x, y)
			} else {
				dc.LineTo(x, y)
			}
		}
		dc.ClosePath()
		dc.Stroke()
	}

	// Streamline.
	if len(s.Line.Points) > 1 {
		dc.SetLineWidth(2)
		dc.SetRGB(0.9, 0.2, 0.2)
		for i, p := range s.Line.Points {
			x, y := toPx(p)
			if i == 0 {
				dc.MoveTo(x, y)
			} else {
				dc.LineTo(x, y)
			}
		}
		dc.Stroke()
	}

	// Seed marker.
	sx, sy := toPx(s.Seed)
	dc.SetRGB(1, 0.85, 0)
	dc.DrawCircle(sx, sy, 4)
	dc.Fill()
	dc.SetRGB(0, 0, 0)
	dc.DrawCircle(sx, sy, 4)
	dc.Stroke()

	// Title band.
	dc.SetRGB(0, 0, 0)
	dc.DrawString(s.Basin.DisplayName(), 8, snapshotTitleBand-8)

	return dc.SavePNG(path)
}
