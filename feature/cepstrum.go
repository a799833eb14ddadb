package feature

import "math"

// LPCToCepstrum converts LPC coefficients a[1..order] to cepstral
// coefficients c[1..order]. c[0] is left at zero (energy term dropped).
// a must hold at least order+1 values.
func LPCToCepstrum(a []float64, order int) []float64 {
	if len(a) < order+1 {
		panic("feature: LPCToCepstrum needs order+1 coefficients")
	}
	c := make([]float64, order+1)
	for n := 1; n <= order; n++ {
		sum := 0.0
		for k := 1; k < n; k++ {
			sum += float64(k) * a[n-k] * c[k]
		}
		c[n] = a[n] + sum/float64(n)
	}
	return c
}

// lifterTable holds precomputed raised-sine weights w[n] = 1 + (Q/2)sin(pi*n/Q).
type lifterTable struct {
	coeff []float64
}

func newLifterTable(order int) *lifterTable {
	t := &lifterTable{coeff: make([]float64, order+1)}
	q := float64(order)
	for n := 1; n <= order; n++ {
		t.coeff[n] = 1.0 + q/2.0*math.Sin(math.Pi*float64(n)/q)
	}
	return t
}

// applyInto writes the weighted cepstrum into dst; dst[0] is set to zero.
func (t *lifterTable) applyInto(c, dst []float64) {
	dst[0] = 0
	for n := 1; n < len(t.coeff); n++ {
		dst[n] = c[n] * t.coeff[n]
	}
}

// Lifter returns c[0..order] weighted by the raised-sine window of length order.
// c must hold at least order+1 values.
func Lifter(c []float64, order int) []float64 {
	if len(c) < order+1 {
		panic("feature: Lifter needs order+1 coefficients")
	}
	out := make([]float64, order+1)
	newLifterTable(order).applyInto(c, out)
	return out
}
