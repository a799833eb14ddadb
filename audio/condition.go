package audio

import (
	"fmt"
	"math"
)

// NormalizeMode selects how amplitudes are rescaled onto [-ceiling, ceiling].
type NormalizeMode int

const (
	// MinMax maps the minimum sample to -ceiling and the maximum to +ceiling.
	// The result is centred on the midpoint of the extremes, so it keeps a
	// residual DC when they are not symmetric around zero.
	MinMax NormalizeMode = iota
	// Peak scales by ceiling / max|x|, keeping zero at zero.
	Peak
)

func (m NormalizeMode) String() string {
	switch m {
	case MinMax:
		return "minmax"
	case Peak:
		return "peak"
	default:
		return fmt.Sprintf("NormalizeMode(%d)", int(m))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m NormalizeMode) MarshalText() ([]byte, error) {
	switch m {
	case MinMax, Peak:
		return []byte(m.String()), nil
	}
	return nil, fmt.Errorf("audio: unknown normalize mode %d", int(m))
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *NormalizeMode) UnmarshalText(b []byte) error {
	switch string(b) {
	case "minmax", "min-max":
		*m = MinMax
	case "peak":
		*m = Peak
	default:
		return fmt.Errorf("audio: unknown normalize mode %q", b)
	}
	return nil
}

// Conditioning holds the DC-removal and amplitude-normalization parameters.
type Conditioning struct {
	DCWindow int // leading samples used as the DC estimate; <= 0 means the whole signal
	Mode     NormalizeMode
	Ceiling  float64
}

// RemoveDC subtracts the mean of the first window samples from every sample in place.
// When window <= 0 or exceeds the signal, the whole signal is averaged.
func RemoveDC(samples []float64, window int) error {
	if len(samples) == 0 {
		return ErrInsufficientData
	}
	if window <= 0 || window > len(samples) {
		window = len(samples)
	}
	sum := 0.0
	for _, s := range samples[:window] {
		sum += s
	}
	mean := sum / float64(window)
	for i := range samples {
		samples[i] -= mean
	}
	return nil
}

// Normalize rescales samples in place so the extremes land on ±ceiling.
func Normalize(samples []float64, mode NormalizeMode, ceiling float64) error {
	if len(samples) == 0 {
		return ErrInsufficientData
	}
	lo, hi := samples[0], samples[0]
	for _, s := range samples[1:] {
		lo = math.Min(lo, s)
		hi = math.Max(hi, s)
	}
	if hi == lo {
		return ErrDegenerateSignal
	}

	switch mode {
	case MinMax:
		span := hi - lo
		for i, s := range samples {
			samples[i] = -ceiling + (s-lo)/span*2*ceiling
		}
	case Peak:
		peak := math.Max(math.Abs(lo), math.Abs(hi))
		for i, s := range samples {
			samples[i] = s * ceiling / peak
		}
	default:
		return fmt.Errorf("audio: unknown normalize mode %d", int(mode))
	}
	return nil
}

// Preprocess returns a DC-free, amplitude-normalized copy of samples.
// The input slice is left untouched.
func Preprocess(samples []float64, c Conditioning) ([]float64, error) {
	if len(samples) == 0 {
		return nil, ErrInsufficientData
	}
	out := make([]float64, len(samples))
	copy(out, samples)
	if err := RemoveDC(out, c.DCWindow); err != nil {
		return nil, err
	}
	if err := Normalize(out, c.Mode, c.Ceiling); err != nil {
		return nil, err
	}
	return out, nil
}
