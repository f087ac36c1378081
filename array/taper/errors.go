package taper

import (
	"errors"
	"fmt"
)

// ErrInvalidSize is returned when a weight matrix dimension is < 1.
var ErrInvalidSize = errors.New("taper: matrix dimensions must be >= 1")

func errInvalidSize(n, m int) error {
	return fmt.Errorf("%w: got %dx%d", ErrInvalidSize, n, m)
}
