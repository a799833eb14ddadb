// Package lpcvowel trains per-vowel LPC cepstral templates and classifies
// isolated vowel recordings against them with the Tokhura distance.
package lpcvowel

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/ieee0824/lpcvowel/audio"
	"github.com/ieee0824/lpcvowel/feature"
)

// Utterance is one recording of a vowel. Samples is used instead of reading
// Path when it is non-nil or when Path is empty.
type Utterance struct {
	Path    string
	Label   string
	Samples []float64
}

// Failure records an utterance or class that a batch operation skipped.
type Failure struct {
	Path  string
	Label string
	Err   error
}

func (f Failure) Error() string {
	if f.Path == "" {
		return fmt.Sprintf("class %q: %v", f.Label, f.Err)
	}
	return fmt.Sprintf("%s (%s): %v", f.Path, f.Label, f.Err)
}

func (f Failure) Unwrap() error { return f.Err }

// Option configures a Trainer or Recognizer.
type Option func(*runner)

// WithLogger sets the logger used for batch progress and failures.
func WithLogger(l *slog.Logger) Option {
	return func(r *runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithWorkers overrides Config.Workers.
func WithWorkers(n int) Option {
	return func(r *runner) {
		r.workers = n
	}
}

// runner holds what Trainer and Recognizer share.
type runner struct {
	cfg     Config
	logger  *slog.Logger
	workers int
}

func newRunner(cfg Config, opts []Option) (runner, error) {
	if err := cfg.Validate(); err != nil {
		return runner{}, err
	}
	r := runner{cfg: cfg, logger: slog.Default(), workers: cfg.Workers}
	for _, o := range opts {
		o(&r)
	}
	if r.workers <= 0 {
		r.workers = runtime.GOMAXPROCS(0)
	}
	return r, nil
}

// load returns the utterance's samples, reading Path if needed.
// Without a Path the samples are used as given, even when empty.
func (r *runner) load(u Utterance) ([]float64, error) {
	if u.Samples != nil || u.Path == "" {
		return u.Samples, nil
	}
	return audio.ReadFile(u.Path, r.cfg.HeaderLines)
}

// extract computes the feature matrix of a single recording.
func (r *runner) extract(u Utterance) ([][]float64, error) {
	samples, err := r.load(u)
	if err != nil {
		return nil, err
	}
	return feature.Extract(samples, r.cfg.Feature)
}

type extraction struct {
	features [][]float64
	err      error
}

// extractAll runs extract over utts with at most r.workers in flight.
// Slot i of the result belongs to utts[i]. Per-utterance errors are kept in
// their slot; only cancellation of ctx aborts the batch.
func (r *runner) extractAll(ctx context.Context, utts []Utterance) ([]extraction, error) {
	out := make([]extraction, len(utts))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for i, u := range utts {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			feats, err := r.extract(u)
			out[i] = extraction{features: feats, err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
