// Package steer converts beam directions into per-element phase
// compensation for planar arrays.
//
// Convention: theta is measured from broadside (the array normal, +Z)
// and phi is the azimuth in the array plane. The observation unit vector
// is (sin(theta)cos(phi), sin(theta)sin(phi), cos(theta)), so at
// theta = 0 the planar-array phase term vanishes and broadside steering
// is the identity.
package steer

import (
	"math"

	"github.com/cwbudde/algo-beam/array/geometry"
	"github.com/cwbudde/algo-beam/dsp/core"
)

// Direction is a beam direction in degrees.
type Direction struct {
	Theta float64 // polar angle from broadside
	Phi   float64 // azimuth
}

// UnitVector returns the direction cosines (u, v, w) of d.
func UnitVector(d Direction) (u, v, w float64) {
	theta := core.Radians(d.Theta)
	phi := core.Radians(d.Phi)

	sinTheta := math.Sin(theta)
	u = sinTheta * math.Cos(phi)
	v = sinTheta * math.Sin(phi)
	w = math.Cos(theta)
	return u, v, w
}

// Phase returns the flattened row-major steering phase matrix
// k*(u*x + v*y + w*z) in radians, k = 2*pi/lambda.
//
// Subtracting this phase from the observation-direction spatial phase
// steers the main lobe toward d.
func Phase(d Direction, g *geometry.Geometry) []float64 {
	u, v, w := UnitVector(d)
	k := 2 * math.Pi / g.Wavelength()

	x := g.X()
	y := g.Y()
	z := g.Z()

	out := make([]float64, g.Len())
	for i := range out {
		out[i] = k * (u*x[i] + v*y[i] + w*z[i])
	}
	return out
}

// ScanAngle returns the angle between d and broadside in degrees.
func ScanAngle(d Direction) float64 {
	_, _, w := UnitVector(d)
	return core.Degrees(math.Acos(core.Clamp(w, -1, 1)))
}
