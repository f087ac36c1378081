package testutil

import "testing"

func TestMaxAbsDiff(t *testing.T) {
	d, err := MaxAbsDiff([]float64{1, 2, 3}, []float64{1, 2.5, 2})
	if err != nil {
		t.Fatalf("MaxAbsDiff: %v", err)
	}
	if d != 1 {
		t.Fatalf("d = %v, want 1", d)
	}

	if _, err := MaxAbsDiff([]float64{1}, []float64{1, 2}); err == nil {
		t.Fatalf("expected length mismatch error")
	}
}

func TestPeakIndex(t *testing.T) {
	data := []complex128{0, 1i, 3 + 4i, 5, 5}
	if got := PeakIndex(data); got != 2 {
		t.Fatalf("PeakIndex = %d, want 2", got)
	}

	// Ties resolve to the first occurrence.
	flat := []complex128{2, 2, 2}
	if got := PeakIndex(flat); got != 0 {
		t.Fatalf("PeakIndex = %d, want 0", got)
	}
}
