package feature

import (
	"errors"
	"fmt"

	"github.com/ieee0824/lpcvowel/audio"
)

// Config holds all LPC cepstral extraction parameters.
type Config struct {
	Order             int                 `yaml:"order"`               // LPC order p
	FrameLength       int                 `yaml:"frame_length"`        // samples per analysis frame
	NumFrames         int                 `yaml:"num_frames"`          // frames per utterance
	Selection         Selection           `yaml:"selection"`           // peak | energy
	EnergyThreshold   float64             `yaml:"energy_threshold"`    // fraction of Ceiling^2
	EnergyBlockLength int                 `yaml:"energy_block_length"` // block size for energy scan; 0 = FrameLength
	Ceiling           float64             `yaml:"ceiling"`             // normalization ceiling
	Normalize         audio.NormalizeMode `yaml:"normalize"`           // minmax | peak
	DCWindow          int                 `yaml:"dc_window"`           // leading samples for DC estimate; 0 = all
}

// DefaultConfig returns the 12th-order, 5 x 320 sample, peak-centred setup.
func DefaultConfig() Config {
	return Config{
		Order:             12,
		FrameLength:       320,
		NumFrames:         5,
		Selection:         PeakCentered,
		EnergyThreshold:   0.25,
		EnergyBlockLength: 64,
		Ceiling:           5000,
		Normalize:         audio.MinMax,
		DCWindow:          0,
	}
}

// Validate checks parameter ranges.
func (c Config) Validate() error {
	var errs []error
	if c.Order < 2 {
		errs = append(errs, fmt.Errorf("order %d must be >= 2", c.Order))
	}
	if c.FrameLength <= c.Order {
		errs = append(errs, fmt.Errorf("frame_length %d must exceed order %d", c.FrameLength, c.Order))
	}
	if c.NumFrames < 1 {
		errs = append(errs, fmt.Errorf("num_frames %d must be >= 1", c.NumFrames))
	}
	if c.Selection == EnergyThreshold && (c.EnergyThreshold <= 0 || c.EnergyThreshold > 1) {
		errs = append(errs, fmt.Errorf("energy_threshold %g must be in (0, 1]", c.EnergyThreshold))
	}
	if c.EnergyBlockLength < 0 {
		errs = append(errs, fmt.Errorf("energy_block_length %d must not be negative", c.EnergyBlockLength))
	}
	if c.Ceiling <= 0 {
		errs = append(errs, fmt.Errorf("ceiling %g must be positive", c.Ceiling))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("feature config: %w", err)
	}
	return nil
}

// Conditioning returns the preprocessing parameters.
func (c Config) Conditioning() audio.Conditioning {
	return audio.Conditioning{
		DCWindow: c.DCWindow,
		Mode:     c.Normalize,
		Ceiling:  c.Ceiling,
	}
}

// FrameAnalysis carries every intermediate of one analysis frame.
type FrameAnalysis struct {
	Samples    []float64 // windowed frame
	Autocorr   []float64 // R[0..p]
	Prediction *Prediction
	Cepstrum   []float64 // c[0..p]
	Weighted   []float64 // liftered c[0..p]
}

// Analyze runs the full pipeline on raw samples and keeps all intermediates.
func Analyze(samples []float64, cfg Config) ([]FrameAnalysis, error) {
	signal, err := audio.Preprocess(samples, cfg.Conditioning())
	if err != nil {
		return nil, err
	}
	frames, err := SelectFrames(signal, cfg)
	if err != nil {
		return nil, err
	}

	lift := newLifterTable(cfg.Order)
	out := make([]FrameAnalysis, len(frames))
	for i, frame := range frames {
		HammingWindow(frame)
		r, err := Autocorrelate(frame, cfg.Order)
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}
		pred, err := LevinsonDurbin(r, cfg.Order)
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}
		c := LPCToCepstrum(pred.Coeffs, cfg.Order)
		w := make([]float64, cfg.Order+1)
		lift.applyInto(c, w)
		out[i] = FrameAnalysis{
			Samples:    frame,
			Autocorr:   r,
			Prediction: pred,
			Cepstrum:   c,
			Weighted:   w,
		}
	}
	return out, nil
}

// Extract computes the weighted cepstral features of an utterance.
// Returns a matrix of shape [NumFrames][Order] holding coefficients 1..p.
func Extract(samples []float64, cfg Config) ([][]float64, error) {
	frames, err := Analyze(samples, cfg)
	if err != nil {
		return nil, err
	}
	features := make([][]float64, len(frames))
	for i, f := range frames {
		features[i] = f.Weighted[1:]
	}
	return features, nil
}
