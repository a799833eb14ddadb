package feature

import (
	"fmt"
	"math"

	"github.com/ieee0824/lpcvowel/audio"
)

// Selection chooses how analysis frames are picked from a normalized utterance.
type Selection int

const (
	// PeakCentered takes frames laid out around the global maximum sample.
	PeakCentered Selection = iota
	// EnergyThreshold gathers high-energy blocks in signal order.
	EnergyThreshold
)

func (s Selection) String() string {
	switch s {
	case PeakCentered:
		return "peak"
	case EnergyThreshold:
		return "energy"
	default:
		return fmt.Sprintf("Selection(%d)", int(s))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Selection) MarshalText() ([]byte, error) {
	switch s {
	case PeakCentered, EnergyThreshold:
		return []byte(s.String()), nil
	}
	return nil, fmt.Errorf("feature: unknown frame selection %d", int(s))
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Selection) UnmarshalText(b []byte) error {
	switch string(b) {
	case "peak", "peak-centered":
		*s = PeakCentered
	case "energy", "energy-threshold":
		*s = EnergyThreshold
	default:
		return fmt.Errorf("feature: unknown frame selection %q", b)
	}
	return nil
}

// Frame splits samples into consecutive non-overlapping blocks of frameLen.
// A trailing partial block is dropped.
func Frame(samples []float64, frameLen int) [][]float64 {
	if frameLen <= 0 {
		return nil
	}
	numFrames := len(samples) / frameLen
	frames := make([][]float64, numFrames)
	for i := range frames {
		frame := make([]float64, frameLen)
		copy(frame, samples[i*frameLen:(i+1)*frameLen])
		frames[i] = frame
	}
	return frames
}

// Energy returns the mean of squared samples.
func Energy(frame []float64) float64 {
	if len(frame) == 0 {
		return 0
	}
	sum := 0.0
	for _, s := range frame {
		sum += s * s
	}
	return sum / float64(len(frame))
}

// HammingWindow applies a Hamming window in-place.
func HammingWindow(frame []float64) {
	n := len(frame)
	if n < 2 {
		return
	}
	for i := range frame {
		frame[i] *= 0.54 - 0.46*math.Cos(2*math.Pi*float64(i)/float64(n-1))
	}
}

// SelectFrames picks exactly cfg.NumFrames frames of cfg.FrameLength samples
// from a normalized signal. Frames are fresh buffers, safe to modify.
func SelectFrames(signal []float64, cfg Config) ([][]float64, error) {
	switch cfg.Selection {
	case PeakCentered:
		return selectAroundPeak(signal, cfg.FrameLength, cfg.NumFrames)
	case EnergyThreshold:
		block := cfg.EnergyBlockLength
		if block <= 0 {
			block = cfg.FrameLength
		}
		threshold := cfg.EnergyThreshold * cfg.Ceiling * cfg.Ceiling
		return selectByEnergy(signal, cfg.FrameLength, cfg.NumFrames, block, threshold)
	default:
		return nil, fmt.Errorf("feature: unknown frame selection %d", int(cfg.Selection))
	}
}

// selectAroundPeak lays frames end to end so that frame k/2 starts at the
// peak sample. Indices outside the signal read as silence.
func selectAroundPeak(signal []float64, frameLen, k int) ([][]float64, error) {
	if len(signal) < frameLen {
		return nil, fmt.Errorf("%d samples, need at least %d: %w", len(signal), frameLen, audio.ErrInsufficientData)
	}
	peak := 0
	for i, s := range signal {
		if s > signal[peak] {
			peak = i
		}
	}

	frames := make([][]float64, k)
	for i := range frames {
		start := peak + frameLen*(i-k/2)
		frame := make([]float64, frameLen)
		for j := range frame {
			if idx := start + j; idx >= 0 && idx < len(signal) {
				frame[j] = signal[idx]
			}
		}
		frames[i] = frame
	}
	return frames, nil
}

// selectByEnergy concatenates blocks whose energy exceeds threshold until
// k*frameLen samples are collected, then cuts them into k frames.
func selectByEnergy(signal []float64, frameLen, k, block int, threshold float64) ([][]float64, error) {
	target := k * frameLen
	steady := make([]float64, 0, target+block)
	for _, b := range Frame(signal, block) {
		if Energy(b) > threshold {
			steady = append(steady, b...)
			if len(steady) >= target {
				break
			}
		}
	}
	if len(steady) < target {
		return nil, fmt.Errorf("collected %d of %d samples: %w", len(steady), target, ErrInsufficientSteadyRegion)
	}
	return Frame(steady[:target], frameLen), nil
}
