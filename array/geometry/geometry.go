// Package geometry builds element coordinate grids for planar phased arrays.
package geometry

import (
	"errors"
	"fmt"
)

// ErrInvalidGeometry is returned for non-positive element counts,
// spacing, or wavelength.
var ErrInvalidGeometry = errors.New("geometry: invalid array geometry")

// Geometry holds the element coordinates of an N x M planar array.
//
// Coordinates are stored flattened in row-major order: element (i, j)
// lives at index i*M + j. The grid is centered on the origin and lies in
// the Z = 0 plane. A Geometry is immutable after Build; the coordinate
// slices returned by X, Y and Z must not be modified by callers.
type Geometry struct {
	n, m       int
	spacing    float64 // element spacing in wavelengths
	wavelength float64 // meters

	x, y, z []float64 // meters, flattened row-major
}

// Build constructs a centered planar grid of n x m elements with the
// given spacing (in wavelengths) and wavelength (in meters).
//
// Element index i in [0, n) maps to x = (i - (n-1)/2) * spacing * wavelength,
// and likewise for j and y. Z is zero for the planar array.
func Build(n, m int, spacing, wavelength float64) (*Geometry, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: element count N must be >= 1: %d", ErrInvalidGeometry, n)
	}
	if m < 1 {
		return nil, fmt.Errorf("%w: element count M must be >= 1: %d", ErrInvalidGeometry, m)
	}
	if spacing <= 0 {
		return nil, fmt.Errorf("%w: spacing must be > 0: %f", ErrInvalidGeometry, spacing)
	}
	if wavelength <= 0 {
		return nil, fmt.Errorf("%w: wavelength must be > 0: %f", ErrInvalidGeometry, wavelength)
	}

	g := &Geometry{
		n:          n,
		m:          m,
		spacing:    spacing,
		wavelength: wavelength,
		x:          make([]float64, n*m),
		y:          make([]float64, n*m),
		z:          make([]float64, n*m),
	}

	d := spacing * wavelength
	x0 := -float64(n-1) / 2 * d
	y0 := -float64(m-1) / 2 * d

	for i := 0; i < n; i++ {
		xi := x0 + float64(i)*d
		for j := 0; j < m; j++ {
			idx := i*m + j
			g.x[idx] = xi
			g.y[idx] = y0 + float64(j)*d
		}
	}

	return g, nil
}

// N returns the element count along the x axis.
func (g *Geometry) N() int { return g.n }

// M returns the element count along the y axis.
func (g *Geometry) M() int { return g.m }

// Len returns the total element count N*M.
func (g *Geometry) Len() int { return g.n * g.m }

// Spacing returns the element spacing in wavelengths.
func (g *Geometry) Spacing() float64 { return g.spacing }

// Wavelength returns the operating wavelength in meters.
func (g *Geometry) Wavelength() float64 { return g.wavelength }

// X returns the flattened element x coordinates in meters. Read-only.
func (g *Geometry) X() []float64 { return g.x }

// Y returns the flattened element y coordinates in meters. Read-only.
func (g *Geometry) Y() []float64 { return g.y }

// Z returns the flattened element z coordinates in meters. Read-only.
func (g *Geometry) Z() []float64 { return g.z }

// At returns the coordinate of element (i, j) in meters.
func (g *Geometry) At(i, j int) (x, y, z float64) {
	idx := i*g.m + j
	return g.x[idx], g.y[idx], g.z[idx]
}
