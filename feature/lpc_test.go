package feature

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

func TestAutocorrelate_ZeroLagIsEnergy(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	frame := make([]float64, 320)
	for i := range frame {
		frame[i] = rng.NormFloat64() * 1000
	}
	r, err := Autocorrelate(frame, 12)
	if err != nil {
		t.Fatalf("Autocorrelate: %v", err)
	}
	if len(r) != 13 {
		t.Fatalf("len(r) = %d, want 13", len(r))
	}
	sumSq := 0.0
	for _, s := range frame {
		sumSq += s * s
	}
	if math.Abs(r[0]-sumSq) > 1e-12*sumSq {
		t.Errorf("R[0] = %v, want sum of squares %v", r[0], sumSq)
	}
	if r[0] < 0 {
		t.Errorf("R[0] = %v < 0", r[0])
	}
}

func TestAutocorrelate_KnownValues(t *testing.T) {
	r, err := Autocorrelate([]float64{1, 2, 3}, 2)
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{14, 8, 3}
	for k := range want {
		if r[k] != want[k] {
			t.Errorf("R[%d] = %f, want %f", k, r[k], want[k])
		}
	}
}

func TestAutocorrelate_FrameTooShort(t *testing.T) {
	for _, n := range []int{0, 5, 12} {
		_, err := Autocorrelate(make([]float64, n), 12)
		if !errors.Is(err, ErrFrameTooShort) {
			t.Errorf("len %d: err = %v, want ErrFrameTooShort", n, err)
		}
	}
}

func TestLevinsonDurbin_WhiteNoise(t *testing.T) {
	pred, err := LevinsonDurbin([]float64{1, 0, 0}, 2)
	if err != nil {
		t.Fatalf("LevinsonDurbin: %v", err)
	}
	for i := 1; i <= 2; i++ {
		if pred.Coeffs[i] != 0 {
			t.Errorf("a[%d] = %f, want 0", i, pred.Coeffs[i])
		}
		if pred.Reflection[i] != 0 {
			t.Errorf("k[%d] = %f, want 0", i, pred.Reflection[i])
		}
	}
	if pred.Error != 1 {
		t.Errorf("E = %f, want 1", pred.Error)
	}
}

func TestLevinsonDurbin_AR1Autocorrelation(t *testing.T) {
	// Exact AR(1) autocorrelation rho^k: order-2 fit has a1 = rho, a2 = 0.
	rho := 0.8
	pred, err := LevinsonDurbin([]float64{1, rho, rho * rho}, 2)
	if err != nil {
		t.Fatalf("LevinsonDurbin: %v", err)
	}
	if math.Abs(pred.Coeffs[1]-rho) > 1e-12 {
		t.Errorf("a1 = %f, want %f", pred.Coeffs[1], rho)
	}
	if math.Abs(pred.Coeffs[2]) > 1e-12 {
		t.Errorf("a2 = %f, want 0", pred.Coeffs[2])
	}
	if math.Abs(pred.Reflection[2]) > 1e-12 {
		t.Errorf("k2 = %f, want 0", pred.Reflection[2])
	}
	if want := 1 - rho*rho; math.Abs(pred.Error-want) > 1e-12 {
		t.Errorf("E = %f, want %f", pred.Error, want)
	}
}

func TestLevinsonDurbin_RecoversAR1Process(t *testing.T) {
	for _, phi := range []float64{0.95, -0.9} {
		rng := rand.New(rand.NewSource(42))
		x := make([]float64, 4_000_000)
		x[0] = rng.NormFloat64()
		for n := 1; n < len(x); n++ {
			x[n] = phi*x[n-1] + rng.NormFloat64()
		}
		r, err := Autocorrelate(x, 1)
		if err != nil {
			t.Fatal(err)
		}
		pred, err := LevinsonDurbin(r, 1)
		if err != nil {
			t.Fatalf("LevinsonDurbin: %v", err)
		}
		if math.Abs(pred.Reflection[1]-phi) > 1e-3 {
			t.Errorf("phi = %v: k1 = %v, want within 1e-3", phi, pred.Reflection[1])
		}
		if pred.Coeffs[1] != pred.Reflection[1] {
			t.Errorf("order-1 predictor a1 = %v differs from k1 = %v", pred.Coeffs[1], pred.Reflection[1])
		}
	}
}

func TestLevinsonDurbin_Singular(t *testing.T) {
	tests := []struct {
		name string
		r    []float64
	}{
		{"silent frame", []float64{0, 0, 0}},
		{"perfectly predictable", []float64{1, 1, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LevinsonDurbin(tt.r, 2)
			if !errors.Is(err, ErrSingularPrediction) {
				t.Errorf("err = %v, want ErrSingularPrediction", err)
			}
		})
	}
}

func TestLevinsonDurbin_BadArgs(t *testing.T) {
	if _, err := LevinsonDurbin([]float64{1, 0}, 2); err == nil {
		t.Error("expected error for short autocorrelation vector")
	}
	if _, err := LevinsonDurbin([]float64{1, 0}, 0); err == nil {
		t.Error("expected error for order 0")
	}
}

func TestLevinsonDurbin_ReflectionBounded(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	frame := make([]float64, 320)
	for i := range frame {
		frame[i] = math.Sin(0.3*float64(i)) + 0.1*rng.NormFloat64()
	}
	HammingWindow(frame)
	r, _ := Autocorrelate(frame, 12)
	pred, err := LevinsonDurbin(r, 12)
	if err != nil {
		t.Fatalf("LevinsonDurbin: %v", err)
	}
	for i := 1; i <= 12; i++ {
		if math.Abs(pred.Reflection[i]) >= 1 {
			t.Errorf("|k[%d]| = %f, want < 1", i, math.Abs(pred.Reflection[i]))
		}
	}
	if pred.Error <= 0 || pred.Error > r[0] {
		t.Errorf("E = %g, want in (0, R0=%g]", pred.Error, r[0])
	}
}
