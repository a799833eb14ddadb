package acoustic

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/ieee0824/lpcvowel/internal/mathutil"
)

var (
	// ErrEmptyTrainingSet is returned when a class has no usable utterances.
	ErrEmptyTrainingSet = errors.New("acoustic: empty training set")

	// ErrShapeMismatch is returned when feature matrices disagree in frame
	// count or coefficient count.
	ErrShapeMismatch = errors.New("acoustic: feature shape mismatch")
)

// Template is the per-class reference: the mean weighted cepstral vector
// at every frame position. A Template is immutable; accessors return copies.
type Template struct {
	label string
	means mathutil.Mat
	count int // utterances averaged; 0 when loaded from a table
}

// NewTemplate builds a template from a NumFrames x Dim table of means.
// The table is copied.
func NewTemplate(label string, means [][]float64) (*Template, error) {
	return newTemplate(label, means, 0)
}

func newTemplate(label string, means [][]float64, count int) (*Template, error) {
	if label == "" {
		return nil, errors.New("acoustic: template label is empty")
	}
	if len(means) == 0 || len(means[0]) == 0 {
		return nil, fmt.Errorf("template %q: no coefficients: %w", label, ErrShapeMismatch)
	}
	if !mathutil.IsRect(means, len(means[0])) {
		return nil, fmt.Errorf("template %q: ragged rows: %w", label, ErrShapeMismatch)
	}
	return &Template{label: label, means: mathutil.CloneMat(means), count: count}, nil
}

// Label returns the class label.
func (t *Template) Label() string { return t.label }

// NumFrames returns the number of frame positions.
func (t *Template) NumFrames() int { return len(t.means) }

// Dim returns the number of coefficients per frame.
func (t *Template) Dim() int { return len(t.means[0]) }

// Count returns how many utterances were averaged, or 0 if unknown.
func (t *Template) Count() int { return t.count }

// Row returns a copy of the mean vector at frame position i.
func (t *Template) Row(i int) []float64 {
	row := make([]float64, len(t.means[i]))
	copy(row, t.means[i])
	return row
}

// Means returns a copy of the full NumFrames x Dim table.
func (t *Template) Means() [][]float64 {
	return mathutil.CloneMat(t.means)
}

// Accumulator sums feature matrices of one class. The shape is fixed by the
// first Add. An Accumulator belongs to a single class and a single goroutine.
type Accumulator struct {
	label string
	sum   mathutil.Mat
	n     int
}

// NewAccumulator returns an empty accumulator for label.
func NewAccumulator(label string) *Accumulator {
	return &Accumulator{label: label}
}

// Add folds one utterance's [NumFrames][Dim] features into the running sum.
func (a *Accumulator) Add(features [][]float64) error {
	if len(features) == 0 || len(features[0]) == 0 {
		return fmt.Errorf("class %q: empty feature matrix: %w", a.label, ErrShapeMismatch)
	}
	rows, cols := len(features), len(features[0])
	if a.sum != nil {
		rows, cols = len(a.sum), len(a.sum[0])
	}
	if len(features) != rows || !mathutil.IsRect(features, cols) {
		return fmt.Errorf("class %q: got %dx%d features, want %dx%d: %w",
			a.label, len(features), len(features[0]), rows, cols, ErrShapeMismatch)
	}
	if a.sum == nil {
		a.sum = mathutil.NewMat(rows, cols)
	}
	for i, row := range features {
		floats.Add(a.sum[i], row)
	}
	a.n++
	return nil
}

// Len returns the number of utterances added so far.
func (a *Accumulator) Len() int { return a.n }

// Template returns the per-coefficient mean of everything added.
func (a *Accumulator) Template() (*Template, error) {
	if a.n == 0 {
		return nil, fmt.Errorf("class %q: %w", a.label, ErrEmptyTrainingSet)
	}
	means := mathutil.NewMat(len(a.sum), len(a.sum[0]))
	n := float64(a.n)
	for i, row := range a.sum {
		for j, v := range row {
			means[i][j] = v / n
		}
	}
	return newTemplate(a.label, means, a.n)
}

// Train averages the feature matrices of one class into a new Template.
// utterances is not modified.
func Train(label string, utterances [][][]float64) (*Template, error) {
	acc := NewAccumulator(label)
	for i, feats := range utterances {
		if err := acc.Add(feats); err != nil {
			return nil, fmt.Errorf("utterance %d: %w", i, err)
		}
	}
	return acc.Template()
}
