package main

import "fmt"

// Anchor points of the viridis colormap, evenly spaced over [0, 1].
var viridisStops = [][3]float64{
	{0.267, 0.005, 0.329},
	{0.283, 0.141, 0.458},
	{0.254, 0.265, 0.530},
	{0.207, 0.372, 0.553},
	{0.164, 0.471, 0.558},
	{0.128, 0.567, 0.551},
	{0.135, 0.659, 0.518},
	{0.267, 0.749, 0.441},
	{0.478, 0.821, 0.318},
	{0.741, 0.873, 0.150},
	{0.993, 0.906, 0.144},
}

func viridisAt(t float64) (r, g, b float64) {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	pos := t * float64(len(viridisStops)-1)
	i := int(pos)
	if i >= len(viridisStops)-1 {
		last := viridisStops[len(viridisStops)-1]
		return last[0], last[1], last[2]
	}
	frac := pos - float64(i)
	lo, hi := viridisStops[i], viridisStops[i+1]
	return lo[0] + (hi[0]-lo[0])*frac,
		lo[1] + (hi[1]-lo[1])*frac,
		lo[2] + (hi[2]-lo[2])*frac
}

func viridisHex(t float64) string {
	r, g, b := viridisAt(t)
	return fmt.Sprintf("#%02x%02x%02x", int(r*255), int(g*255), int(b*255))
}
