// Package egg holds the BOILED-Egg geometry: descriptor-space points,
// polygon containment, and the two fixed boundary models.
package egg

import (
	"fmt"
	"math"
)

// Point is a position in (TPSA, WLogP) descriptor space.
type Point struct {
	X float64 // TPSA
	Y float64 // WLogP
}

// NewPoint validates and creates a Point, rounding both coordinates to two
// decimal places. Classification always operates on rounded descriptors so
// that equal inputs map to the exact same point.
func NewPoint(tpsa, wlogp float64) (Point, error) {
	if math.IsNaN(tpsa) || math.IsInf(tpsa, 0) {
		return Point{}, fmt.Errorf("TPSA must be finite, got %v", tpsa)
	}
	if math.IsNaN(wlogp) || math.IsInf(wlogp, 0) {
		return Point{}, fmt.Errorf("WLogP must be finite, got %v", wlogp)
	}
	return Point{X: Round2(tpsa), Y: Round2(wlogp)}, nil
}

// Round2 rounds v to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
