package lpcvowel

import (
	"context"
	"errors"
	"fmt"

	"github.com/ieee0824/lpcvowel/acoustic"
)

// ErrUnknownLabel is reported for utterances whose label is not in Config.Labels.
var ErrUnknownLabel = errors.New("lpcvowel: unknown label")

// Trainer builds one template per configured class and saves it to a store.
type Trainer struct {
	runner
	store acoustic.Store
}

// TrainReport summarizes a training run.
type TrainReport struct {
	// Templates holds the saved templates in Config.Labels order.
	Templates []*acoustic.Template
	// Failures lists skipped utterances and classes with no template.
	Failures []Failure
}

// NewTrainer validates cfg and returns a Trainer writing to store.
func NewTrainer(cfg Config, store acoustic.Store, opts ...Option) (*Trainer, error) {
	if store == nil {
		return nil, errors.New("lpcvowel: nil template store")
	}
	r, err := newRunner(cfg, opts)
	if err != nil {
		return nil, err
	}
	return &Trainer{runner: r, store: store}, nil
}

// Train extracts features from every utterance, averages them per class and
// saves the resulting templates. Utterances of a class are folded in input
// order. A failing utterance or class is recorded in the report and the run
// continues; the returned error is non-nil only if ctx is done.
func (t *Trainer) Train(ctx context.Context, utts []Utterance) (*TrainReport, error) {
	report := &TrainReport{}
	known := make(map[string]bool, len(t.cfg.Labels))
	for _, l := range t.cfg.Labels {
		known[l] = true
	}

	results, err := t.extractAll(ctx, utts)
	if err != nil {
		return report, err
	}

	accs := make(map[string]*acoustic.Accumulator, len(t.cfg.Labels))
	for _, l := range t.cfg.Labels {
		accs[l] = acoustic.NewAccumulator(l)
	}
	for i, u := range utts {
		err := results[i].err
		if err == nil && !known[u.Label] {
			err = fmt.Errorf("%w %q", ErrUnknownLabel, u.Label)
		}
		if err == nil {
			err = accs[u.Label].Add(results[i].features)
		}
		if err != nil {
			report.Failures = append(report.Failures, t.fail(u.Path, u.Label, err))
			continue
		}
		t.logger.Debug("utterance added", "path", u.Path, "label", u.Label)
	}

	for _, l := range t.cfg.Labels {
		tpl, err := accs[l].Template()
		if err == nil {
			err = t.store.Save(ctx, tpl)
		}
		if err != nil {
			report.Failures = append(report.Failures, t.fail("", l, err))
			continue
		}
		t.logger.Info("template trained", "label", l, "utterances", tpl.Count())
		report.Templates = append(report.Templates, tpl)
	}
	return report, ctx.Err()
}

func (r *runner) fail(path, label string, err error) Failure {
	r.logger.Warn("skipped", "path", path, "label", label, "err", err)
	return Failure{Path: path, Label: label, Err: err}
}
