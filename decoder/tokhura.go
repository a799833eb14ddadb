package decoder

import (
	"errors"
	"fmt"
	"math"

	"github.com/ieee0824/lpcvowel/acoustic"
)

// ErrNoTemplates is returned when there is nothing to classify against.
var ErrNoTemplates = errors.New("decoder: no templates")

// DefaultWeights is the Tokhura weight table for 12th-order cepstra.
var DefaultWeights = []float64{1, 3, 7, 13, 19, 22, 25, 33, 42, 50, 56, 61}

// Config holds classifier parameters.
type Config struct {
	Weights []float64 `yaml:"weights"` // one weight per cepstral coefficient
}

// DefaultConfig returns the standard 12th-order Tokhura weights.
func DefaultConfig() Config {
	w := make([]float64, len(DefaultWeights))
	copy(w, DefaultWeights)
	return Config{Weights: w}
}

// Validate checks the weights against the feature dimension.
func (c Config) Validate(dim int) error {
	if len(c.Weights) != dim {
		return fmt.Errorf("decoder config: %d weights for %d coefficients", len(c.Weights), dim)
	}
	for i, w := range c.Weights {
		if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return fmt.Errorf("decoder config: weight %d is %v", i, w)
		}
	}
	return nil
}

// Tokhura returns sum_i w[i]*(x[i]-t[i])^2. All slices must share a length.
func Tokhura(x, t, w []float64) float64 {
	if len(x) != len(t) || len(x) != len(w) {
		panic("decoder: Tokhura length mismatch")
	}
	d := 0.0
	for i := range x {
		diff := x[i] - t[i]
		d += w[i] * diff * diff
	}
	return d
}

// Distance returns the mean per-frame Tokhura distance between features and t.
func Distance(features [][]float64, t *acoustic.Template, w []float64) (float64, error) {
	if len(features) != t.NumFrames() {
		return 0, fmt.Errorf("template %q: %d frames, features have %d", t.Label(), t.NumFrames(), len(features))
	}
	total := 0.0
	for i, f := range features {
		if len(f) != t.Dim() || len(f) != len(w) {
			return 0, fmt.Errorf("template %q frame %d: dim %d, features %d, weights %d",
				t.Label(), i, t.Dim(), len(f), len(w))
		}
		total += Tokhura(f, t.Row(i), w)
	}
	return total / float64(len(features)), nil
}

// Classify returns the template label nearest to features. Ties go to the
// label that comes first in the set's enumeration order.
func Classify(features [][]float64, set *acoustic.TemplateSet, cfg Config) (*Result, error) {
	if set == nil || set.Len() == 0 {
		return nil, ErrNoTemplates
	}
	res := &Result{Distances: make([]LabelDistance, 0, set.Len())}
	best := -1
	for _, t := range set.All() {
		d, err := Distance(features, t, cfg.Weights)
		if err != nil {
			return nil, err
		}
		res.Distances = append(res.Distances, LabelDistance{Label: t.Label(), Distance: d})
		if best < 0 || d < res.Distances[best].Distance {
			best = len(res.Distances) - 1
		}
	}
	res.Label = res.Distances[best].Label
	res.Distance = res.Distances[best].Distance
	return res, nil
}
