package units

import (
	"fmt"
	"math"
)

// Angle is an angular quantity stored in radians.
type Angle float64

// Deg returns an Angle of v degrees.
func Deg(v float64) Angle { return Angle(v * math.Pi / 180) }

// Rad returns an Angle of v radians.
func Rad(v float64) Angle { return Angle(v) }

// Deg returns the angle in degrees.
func (a Angle) Deg() float64 { return float64(a) * 180 / math.Pi }

// Rad returns the angle in radians.
func (a Angle) Rad() float64 { return float64(a) }

func (a Angle) String() string {
	return fmt.Sprintf("%g deg", a.Deg())
}

// LinearAngleGrid returns n angles spaced uniformly between min and max, both
// inclusive.
func LinearAngleGrid(min, max Angle, n int) ([]Angle, error) {
	if n < 2 {
		return nil, fmt.Errorf("linear angle grid needs at least 2 nodes, got %d", n)
	}
	if max <= min {
		return nil, fmt.Errorf("invalid angle range [%v, %v]", min, max)
	}
	grid := make([]Angle, n)
	step := (max - min) / Angle(n-1)
	for i := range grid {
		grid[i] = min + Angle(i)*step
	}
	grid[n-1] = max
	return grid, nil
}
