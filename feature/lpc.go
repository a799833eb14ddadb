package feature

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/ieee0824/lpcvowel/internal/mathutil"
)

// Autocorrelate returns R[0..order] with R[k] = sum_n frame[n]*frame[n+k].
func Autocorrelate(frame []float64, order int) ([]float64, error) {
	if len(frame) <= order {
		return nil, fmt.Errorf("frame length %d, order %d: %w", len(frame), order, ErrFrameTooShort)
	}
	r := make([]float64, order+1)
	n := len(frame)
	for k := range r {
		r[k] = floats.Dot(frame[:n-k], frame[k:])
	}
	return r, nil
}

// Prediction is the all-pole model fitted by LevinsonDurbin.
// Coeffs and Reflection are indexed 1..order; index 0 is zero.
type Prediction struct {
	Coeffs     []float64
	Reflection []float64
	Error      float64 // final prediction error energy E[order]
}

// LevinsonDurbin solves the autocorrelation normal equations order by order.
// Each order's predictor is derived from the previous order's full set.
func LevinsonDurbin(r []float64, order int) (*Prediction, error) {
	if order < 1 {
		return nil, fmt.Errorf("feature: LPC order %d must be positive", order)
	}
	if len(r) < order+1 {
		return nil, fmt.Errorf("feature: autocorrelation has %d lags, order %d needs %d", len(r), order, order+1)
	}

	// alpha[i][j] is coefficient j of the order-i predictor.
	alpha := mathutil.NewMat(order+1, order+1)
	k := make([]float64, order+1)
	e := r[0]

	for i := 1; i <= order; i++ {
		if e == 0 {
			return nil, fmt.Errorf("order %d: %w", i, ErrSingularPrediction)
		}
		sum := 0.0
		for j := 1; j < i; j++ {
			sum += alpha[i-1][j] * r[i-j]
		}
		k[i] = (r[i] - sum) / e
		alpha[i][i] = k[i]
		for j := 1; j < i; j++ {
			alpha[i][j] = alpha[i-1][j] - k[i]*alpha[i-1][i-j]
		}
		e *= 1 - k[i]*k[i]
	}

	a := make([]float64, order+1)
	copy(a[1:], alpha[order][1:])
	return &Prediction{Coeffs: a, Reflection: k, Error: e}, nil
}
