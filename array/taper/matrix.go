package taper

import (
	"math"
	"math/cmplx"
)

// Matrix is a real-valued element weight matrix, stored row-major.
type Matrix struct {
	rows, cols int
	data       []float64
}

// NewMatrix allocates a zero rows x cols matrix.
func NewMatrix(rows, cols int) *Matrix {
	return &Matrix{rows: rows, cols: cols, data: make([]float64, rows*cols)}
}

// Rows returns the row count.
func (w *Matrix) Rows() int { return w.rows }

// Cols returns the column count.
func (w *Matrix) Cols() int { return w.cols }

// At returns the weight of element (i, j).
func (w *Matrix) At(i, j int) float64 { return w.data[i*w.cols+j] }

// Set sets the weight of element (i, j).
func (w *Matrix) Set(i, j int, v float64) { w.data[i*w.cols+j] = v }

// Data returns the flattened row-major weights. Callers that need an
// independent copy must make one.
func (w *Matrix) Data() []float64 { return w.data }

// Clone returns a deep copy of the matrix.
func (w *Matrix) Clone() *Matrix {
	c := NewMatrix(w.rows, w.cols)
	copy(c.data, w.data)
	return c
}

// Normalize scales the matrix in place so max |w| = 1.
// An all-zero matrix is left unchanged.
func (w *Matrix) Normalize() {
	max := 0.0
	for _, v := range w.data {
		if a := math.Abs(v); a > max {
			max = a
		}
	}
	if max == 0 {
		return
	}
	scale := 1 / max
	for i := range w.data {
		w.data[i] *= scale
	}
}

// Gain returns the taper (aperture) efficiency in [0, 1]:
//
//	(sum w)^2 / (N * sum w^2)
//
// Uniform weighting gives 1; heavier tapers trade efficiency for
// sidelobe control.
func (w *Matrix) Gain() float64 {
	sum := 0.0
	sumSq := 0.0
	for _, v := range w.data {
		sum += v
		sumSq += v * v
	}
	if sumSq == 0 {
		return 0
	}
	return sum * sum / (float64(len(w.data)) * sumSq)
}

// CMatrix is a complex-valued element weight matrix, stored row-major.
// Adaptive beamforming and impairment injection produce these.
type CMatrix struct {
	rows, cols int
	data       []complex128
}

// NewCMatrix allocates a zero rows x cols complex matrix.
func NewCMatrix(rows, cols int) *CMatrix {
	return &CMatrix{rows: rows, cols: cols, data: make([]complex128, rows*cols)}
}

// FromReal promotes a real weight matrix to a complex one.
func FromReal(w *Matrix) *CMatrix {
	c := NewCMatrix(w.rows, w.cols)
	for i, v := range w.data {
		c.data[i] = complex(v, 0)
	}
	return c
}

// Rows returns the row count.
func (w *CMatrix) Rows() int { return w.rows }

// Cols returns the column count.
func (w *CMatrix) Cols() int { return w.cols }

// At returns the weight of element (i, j).
func (w *CMatrix) At(i, j int) complex128 { return w.data[i*w.cols+j] }

// Set sets the weight of element (i, j).
func (w *CMatrix) Set(i, j int, v complex128) { w.data[i*w.cols+j] = v }

// Data returns the flattened row-major weights. Callers that need an
// independent copy must make one.
func (w *CMatrix) Data() []complex128 { return w.data }

// Clone returns a deep copy of the matrix.
func (w *CMatrix) Clone() *CMatrix {
	c := NewCMatrix(w.rows, w.cols)
	copy(c.data, w.data)
	return c
}

// Normalize scales the matrix in place so max |w| = 1.
// An all-zero matrix is left unchanged.
func (w *CMatrix) Normalize() {
	max := 0.0
	for _, v := range w.data {
		if a := cmplx.Abs(v); a > max {
			max = a
		}
	}
	if max == 0 {
		return
	}
	scale := complex(1/max, 0)
	for i := range w.data {
		w.data[i] *= scale
	}
}
