package integrate_test

import (
	"testing"

	"github.com/popgenio/diffuse/integrate"
	"github.com/popgenio/diffuse/tensor"
)

// BenchmarkNeutral2D measures a short neutral two-population run on the
// tridiagonal fast path.
func BenchmarkNeutral2D(b *testing.B) {
	const d = 21
	data := make([]float64, d*d)
	for i := range data {
		data[i] = 0.01
	}
	in, err := tensor.NewFromSlice(data, d, d)
	if err != nil {
		b.Fatalf("NewFromSlice failed: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err = integrate.Neutral(in, integrate.Const(1), 0.1, nil); err != nil {
			b.Fatalf("Neutral failed: %v", err)
		}
	}
}

// BenchmarkNoMigration2D measures the same run with selection on both axes,
// exercising the general factorized path.
func BenchmarkNoMigration2D(b *testing.B) {
	const d = 21
	data := make([]float64, d*d)
	for i := range data {
		data[i] = 0.01
	}
	in, err := tensor.NewFromSlice(data, d, d)
	if err != nil {
		b.Fatalf("NewFromSlice failed: %v", err)
	}

	opts := integrate.DefaultOptions()
	opts.Gamma = integrate.Const(1)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err = integrate.NoMigration(in, integrate.Const(1), 0.1, &opts); err != nil {
			b.Fatalf("NoMigration failed: %v", err)
		}
	}
}
