package main

import (
	"fmt"
	"math"
	"os"
	"strings"

	geojson "github.com/paulmach/go.geojson"
)

// Basin is a named drainage polygon. Rings holds the outer ring of each
// polygon member (holes are irrelevant for display and seeding).
type Basin struct {
	Name  string
	Rings [][]Point
	BBox  Rect
}

// LoadBasins reads a GeoJSON FeatureCollection. Iteration order is the
// feature order in the file, which is stable across runs.
func LoadBasins(path string) ([]Basin, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open basin dataset: %w", err)
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("decode basin dataset %s: %w", path, err)
	}

	basins := make([]Basin, 0, len(fc.Features))
	for idx, feature := range fc.Features {
		if feature.Geometry == nil {
			continue
		}
		var rings [][]Point
		switch {
		case feature.Geometry.IsPolygon():
			rings = appendOuterRing(rings, feature.Geometry.Polygon)
		case feature.Geometry.IsMultiPolygon():
			for _, poly := range feature.Geometry.MultiPolygon {
				rings = appendOuterRing(rings, poly)
			}
		default:
			continue
		}
		if len(rings) == 0 {
			continue
		}
		b := Basin{
			Name:  basinName(feature, idx),
			Rings: rings,
		}
		b.BBox = ringsBounds(rings)
		basins = append(basins, b)
	}
	return basins, nil
}

func appendOuterRing(rings [][]Point, poly [][][]float64) [][]Point {
	if len(poly) == 0 {
		return rings
	}
	outer := make([]Point, 0, len(poly[0]))
	for _, coord := range poly[0] {
		if len(coord) < 2 {
			continue
		}
		outer = append(outer, Point{X: coord[0], Y: coord[1]})
	}
	if len(outer) < 3 {
		return rings
	}
	return append(rings, outer)
}

func basinName(feature *geojson.Feature, idx int) string {
	if name, err := feature.PropertyString("NAME"); err == nil && name != "" {
		return name
	}
	if name, err := feature.PropertyString("name"); err == nil && name != "" {
		return name
	}
	if feature.ID != nil {
		return fmt.Sprintf("%v", feature.ID)
	}
	return fmt.Sprintf("basin_%d", idx)
}

func ringsBounds(rings [][]Point) Rect {
	r := Rect{
		MinX: math.Inf(1), MinY: math.Inf(1),
		MaxX: math.Inf(-1), MaxY: math.Inf(-1),
	}
	for _, ring := range rings {
		for _, p := range ring {
			r.MinX = math.Min(r.MinX, p.X)
			r.MinY = math.Min(r.MinY, p.Y)
			r.MaxX = math.Max(r.MaxX, p.X)
			r.MaxY = math.Max(r.MaxY, p.Y)
		}
	}
	return r
}

// Contains tests p against the basin's rings with an even-odd ray cast.
// Used only for the rendered overlay mask, never as an integration bound.
func (b *Basin) Contains(p Point) bool {
	inside := false
	for _, ring := range b.Rings {
		n := len(ring)
		for i, j := 0, n-1; i < n; j, i = i, i+1 {
			a, c := ring[i], ring[j]
			if (a.Y > p.Y) != (c.Y > p.Y) &&
				p.X < (c.X-a.X)*(p.Y-a.Y)/(c.Y-a.Y)+a.X {
				inside = !inside
			}
		}
	}
	return inside
}

// Centroid returns the area-weighted centroid of the basin's outer rings,
// falling back to the bounding box center for degenerate geometry.
func (b *Basin) Centroid() Point {
	var areaSum, cxSum, cySum float64
	for _, ring := range b.Rings {
		n := len(ring)
		var area, cx, cy float64
		for i, j := 0, n-1; i < n; j, i = i, i+1 {
			cross := ring[j].X*ring[i].Y - ring[i].X*ring[j].Y
			area += cross
			cx += (ring[j].X + ring[i].X) * cross
			cy += (ring[j].Y + ring[i].Y) * cross
		}
		// cx/(3*area) is the ring centroid; summing cross terms keeps the
		// result area-weighted across rings.
		if area != 0 {
			cxSum += cx / 3
			cySum += cy / 3
			areaSum += area
		}
	}
	if areaSum == 0 {
		return Point{
			X: (b.BBox.MinX + b.BBox.MaxX) / 2,
			Y: (b.BBox.MinY + b.BBox.MaxY) / 2,
		}
	}
	return Point{X: cxSum / areaSum, Y: cySum / areaSum}
}

// DisplayName turns SHAPEFILE_STYLE names into readable titles.
func (b *Basin) DisplayName() string {
	words := strings.Fields(strings.ReplaceAll(b.Name, "_", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}
