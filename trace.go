package main

import "math"

type TraceConfig struct {
	StepLength     float64
	SpeedThreshold float64
	MaxSteps       int
}

type StopReason int

const (
	StopOutOfField StopReason = iota
	StopBelowThreshold
	StopMaxSteps
)

func (r StopReason) String() string {
	switch r {
	case StopOutOfField:
		return "out of field"
	case StopBelowThreshold:
		return "below threshold"
	case StopMaxSteps:
		return "max steps"
	}
	return "unknown"
}

// Streamline is a traced path through the field. Points always starts with
// the seed; Reason records why tracing stopped.
type Streamline struct {
	Points []Point
	Reason StopReason
}

// Trace integrates a streamline from seed by forward Euler over the
// unit-normalized field: each step advances a fixed StepLength along the
// local flow direction, so the parameter is arc length rather than time.
// A seed over missing data or below the speed threshold yields a
// single-point streamline; that is a valid "no flow here" result.
func Trace(f *FieldView, seed Point, cfg TraceConfig) Streamline {
	points := []Point{seed}
	current := seed
	for {
		u, v, ok := f.Sample(current)
		if !ok {
			return Streamline{Points: points, Reason: StopOutOfField}
		}
		speed := math.Hypot(u, v)
		if speed < cfg.SpeedThreshold || speed == 0 {
			return Streamline{Points: points, Reason: StopBelowThreshold}
		}
		if len(points) >= cfg.MaxSteps {
			return Streamline{Points: points, Reason: StopMaxSteps}
		}
		current = Point{
			X: current.X + cfg.StepLength*u/speed,
			Y: current.Y + cfg.StepLength*v/speed,
		}
		points = append(points, current)
	}
}
