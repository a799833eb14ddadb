package lpcvowel

import (
	"context"
	"errors"
	"fmt"

	"github.com/ieee0824/lpcvowel/acoustic"
	"github.com/ieee0824/lpcvowel/decoder"
)

// Recognizer classifies recordings against a loaded template set.
type Recognizer struct {
	runner
	set *acoustic.TemplateSet
}

// NewRecognizer loads the templates of cfg.Labels from store. Labels with no
// stored template are logged and left out; it fails only when none load.
func NewRecognizer(ctx context.Context, cfg Config, store acoustic.Store, opts ...Option) (*Recognizer, error) {
	if store == nil {
		return nil, errors.New("lpcvowel: nil template store")
	}
	r, err := newRunner(cfg, opts)
	if err != nil {
		return nil, err
	}
	set, err := acoustic.LoadSet(ctx, store, cfg.Labels)
	if set == nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}
	if err != nil {
		r.logger.Warn("some templates not loaded", "loaded", set.Labels(), "err", err)
	}
	return newRecognizer(r, set)
}

// NewRecognizerFromSet wraps an already built template set.
func NewRecognizerFromSet(cfg Config, set *acoustic.TemplateSet, opts ...Option) (*Recognizer, error) {
	r, err := newRunner(cfg, opts)
	if err != nil {
		return nil, err
	}
	return newRecognizer(r, set)
}

func newRecognizer(r runner, set *acoustic.TemplateSet) (*Recognizer, error) {
	if set == nil || set.Len() == 0 {
		return nil, decoder.ErrNoTemplates
	}
	want := r.cfg.Feature
	for _, t := range set.All() {
		if t.NumFrames() != want.NumFrames || t.Dim() != want.Order {
			return nil, fmt.Errorf("template %q is %dx%d, config expects %dx%d: %w",
				t.Label(), t.NumFrames(), t.Dim(), want.NumFrames, want.Order, acoustic.ErrShapeMismatch)
		}
	}
	return &Recognizer{runner: r, set: set}, nil
}

// Labels returns the loaded class labels in tie-break order.
func (r *Recognizer) Labels() []string { return r.set.Labels() }

// RecognizeSamples classifies one recording.
func (r *Recognizer) RecognizeSamples(samples []float64) (*decoder.Result, error) {
	return r.recognize(Utterance{Samples: samples})
}

// RecognizeFile reads a text sample file or WAV file and classifies it.
func (r *Recognizer) RecognizeFile(path string) (*decoder.Result, error) {
	return r.recognize(Utterance{Path: path})
}

func (r *Recognizer) recognize(u Utterance) (*decoder.Result, error) {
	feats, err := r.extract(u)
	if err != nil {
		return nil, err
	}
	return decoder.Classify(feats, r.set, r.cfg.Decoder)
}

// Prediction is the outcome for one utterance of an evaluation.
type Prediction struct {
	Path   string
	Label  string // expected label, may be empty
	Result *decoder.Result
}

// Correct reports whether the predicted label matches the expected one.
func (p Prediction) Correct() bool {
	return p.Label != "" && p.Result.Label == p.Label
}

// EvalReport is the outcome of a batch evaluation.
type EvalReport struct {
	Predictions []Prediction
	Failures    []Failure

	// Labels indexes the rows and columns of Confusion.
	Labels []string
	// Confusion[i][j] counts utterances labeled Labels[i] classified as Labels[j].
	Confusion [][]int
}

// Scored returns how many predictions had an expected label in Labels.
func (e *EvalReport) Scored() int {
	n := 0
	for _, row := range e.Confusion {
		for _, c := range row {
			n += c
		}
	}
	return n
}

// Hits returns how many scored predictions were correct.
func (e *EvalReport) Hits() int {
	hit := 0
	for i := range e.Confusion {
		hit += e.Confusion[i][i]
	}
	return hit
}

// Accuracy returns the fraction of scored predictions that were correct,
// or 0 when nothing was scored.
func (e *EvalReport) Accuracy() float64 {
	total := e.Scored()
	if total == 0 {
		return 0
	}
	return float64(e.Hits()) / float64(total)
}

// Evaluate classifies every utterance. Utterances whose expected label is one
// of the loaded classes are tallied in the confusion matrix. Failures are
// recorded and skipped; the returned error is non-nil only if ctx is done.
func (r *Recognizer) Evaluate(ctx context.Context, utts []Utterance) (*EvalReport, error) {
	labels := r.set.Labels()
	index := make(map[string]int, len(labels))
	for i, l := range labels {
		index[l] = i
	}
	report := &EvalReport{Labels: labels, Confusion: make([][]int, len(labels))}
	for i := range report.Confusion {
		report.Confusion[i] = make([]int, len(labels))
	}

	results, err := r.extractAll(ctx, utts)
	if err != nil {
		return report, err
	}
	for i, u := range utts {
		err := results[i].err
		var res *decoder.Result
		if err == nil {
			res, err = decoder.Classify(results[i].features, r.set, r.cfg.Decoder)
		}
		if err != nil {
			report.Failures = append(report.Failures, r.fail(u.Path, u.Label, err))
			continue
		}
		report.Predictions = append(report.Predictions, Prediction{Path: u.Path, Label: u.Label, Result: res})
		if want, ok := index[u.Label]; ok {
			report.Confusion[want][index[res.Label]]++
		}
		r.logger.Debug("classified", "path", u.Path, "label", u.Label, "predicted", res.Label, "distance", res.Distance)
	}
	return report, nil
}
