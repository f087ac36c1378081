package mvdr

import (
	"fmt"
	"math/cmplx"
)

// pivotTolerance scales the largest matrix magnitude to decide when a
// pivot is too small to divide by.
const pivotTolerance = 1e-13

// solve returns x with r*x = b for a dense n x n complex matrix r stored
// row-major, using Gauss-Jordan elimination with partial pivoting. The
// inputs are copied, not modified.
//
// The covariance matrices handled here are Hermitian and diagonally
// loaded, so a failed pivot means the numbers have genuinely degenerated.
func solve(r []complex128, b []complex128, n int) ([]complex128, error) {
	m := make([]complex128, len(r))
	copy(m, r)
	x := make([]complex128, n)
	copy(x, b)

	maxMag := 0.0
	for _, v := range m {
		if a := cmplx.Abs(v); a > maxMag {
			maxMag = a
		}
	}
	tol := maxMag * pivotTolerance

	for col := 0; col < n; col++ {
		// Partial pivoting: largest magnitude in the column at or below
		// the diagonal.
		pivot := col
		pivotMag := cmplx.Abs(m[col*n+col])
		for row := col + 1; row < n; row++ {
			if a := cmplx.Abs(m[row*n+col]); a > pivotMag {
				pivot, pivotMag = row, a
			}
		}

		if pivotMag <= tol {
			return nil, fmt.Errorf("%w: pivot %e at column %d", ErrSingularCovariance, pivotMag, col)
		}

		if pivot != col {
			swapRows(m, x, n, pivot, col)
		}

		inv := 1 / m[col*n+col]
		for k := col; k < n; k++ {
			m[col*n+k] *= inv
		}
		x[col] *= inv

		for row := 0; row < n; row++ {
			if row == col {
				continue
			}
			factor := m[row*n+col]
			if factor == 0 {
				continue
			}
			for k := col; k < n; k++ {
				m[row*n+k] -= factor * m[col*n+k]
			}
			x[row] -= factor * x[col]
		}
	}

	return x, nil
}

func swapRows(m, x []complex128, n, a, b int) {
	ra := m[a*n : (a+1)*n]
	rb := m[b*n : (b+1)*n]
	for k := range ra {
		ra[k], rb[k] = rb[k], ra[k]
	}
	x[a], x[b] = x[b], x[a]
}
