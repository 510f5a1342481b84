package matrix_test

import (
	"testing"

	"github.com/katalvlaran/ziptie/matrix"
)

// sparseVec returns an n-vector with every stride-th entry set to 1.
func sparseVec(n, stride int) []float64 {
	v := make([]float64, n)
	for i := 0; i < n; i += stride {
		v[i] = 1
	}

	return v
}

// benchmarkAddOuter accumulates a sparse outer product into an n×n matrix.
func benchmarkAddOuter(b *testing.B, n, stride int) {
	m, err := matrix.NewSquare(n)
	if err != nil {
		b.Fatalf("NewSquare failed: %v", err)
	}
	x := sparseVec(n, stride)

	b.ResetTimer() // ignore setup time
	for i := 0; i < b.N; i++ {
		if err = m.AddOuter(x, x); err != nil {
			b.Fatalf("AddOuter failed: %v", err)
		}
	}
}

// BenchmarkAddOuter_256Dense benchmarks a fully active 256-vector.
func BenchmarkAddOuter_256Dense(b *testing.B) { benchmarkAddOuter(b, 256, 1) }

// BenchmarkAddOuter_256Sparse benchmarks a 256-vector with 1/16 active entries.
func BenchmarkAddOuter_256Sparse(b *testing.B) { benchmarkAddOuter(b, 256, 16) }

// BenchmarkArgMax_512 benchmarks the row-major max scan on a 512×512 matrix.
func BenchmarkArgMax_512(b *testing.B) {
	m, _ := matrix.NewSquare(512)
	_ = m.AddOuter(sparseVec(512, 3), sparseVec(512, 5))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = m.ArgMax()
	}
}
