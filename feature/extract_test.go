package feature

import (
	"errors"
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/ieee0824/lpcvowel/audio"
)

// synthVowel returns a decaying two-formant tone with a DC offset and a
// little noise, loosely shaped like a sustained vowel recording.
func synthVowel(n int, f1, f2 float64, seed int64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	s := make([]float64, n)
	for i := range s {
		env := math.Sin(math.Pi * float64(i) / float64(n))
		t := float64(i) / 16000
		s[i] = 300 + env*(3000*math.Sin(2*math.Pi*f1*t)+1500*math.Sin(2*math.Pi*f2*t)) + 20*rng.NormFloat64()
	}
	return s
}

func TestExtract_Shape(t *testing.T) {
	cfg := DefaultConfig()
	samples := synthVowel(8000, 700, 1200, 1)
	feats, err := Extract(samples, cfg)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(feats) != cfg.NumFrames {
		t.Fatalf("frames = %d, want %d", len(feats), cfg.NumFrames)
	}
	for i, f := range feats {
		if len(f) != cfg.Order {
			t.Fatalf("frame %d dim = %d, want %d", i, len(f), cfg.Order)
		}
		for j, v := range f {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				t.Fatalf("feats[%d][%d] = %v", i, j, v)
			}
		}
	}
}

func TestExtract_Deterministic(t *testing.T) {
	cfg := DefaultConfig()
	samples := synthVowel(8000, 300, 2300, 2)
	orig := append([]float64(nil), samples...)

	a, err := Extract(samples, cfg)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Extract(samples, cfg)
	if err != nil {
		t.Fatal(err)
	}
	for i := range a {
		for j := range a[i] {
			if a[i][j] != b[i][j] {
				t.Fatalf("feats differ at [%d][%d]: %v vs %v", i, j, a[i][j], b[i][j])
			}
		}
	}
	for i := range samples {
		if samples[i] != orig[i] {
			t.Fatalf("Extract mutated input at %d", i)
		}
	}
}

func TestExtract_EnergyPolicy(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Selection = EnergyThreshold
	cfg.Normalize = audio.Peak
	cfg.DCWindow = 400
	cfg.NumFrames = 1
	cfg.EnergyThreshold = 0.1
	feats, err := Extract(synthVowel(8000, 700, 1200, 3), cfg)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(feats) != 1 || len(feats[0]) != cfg.Order {
		t.Fatalf("shape = %dx%d", len(feats), len(feats[0]))
	}
}

func TestExtract_DistinguishesSpectra(t *testing.T) {
	cfg := DefaultConfig()
	a, err := Extract(synthVowel(8000, 700, 1200, 4), cfg)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Extract(synthVowel(8000, 300, 2300, 4), cfg)
	if err != nil {
		t.Fatal(err)
	}
	diff := 0.0
	for j := range a[2] {
		diff += math.Abs(a[2][j] - b[2][j])
	}
	if diff < 1e-3 {
		t.Errorf("features of different spectra nearly identical (diff %g)", diff)
	}
}

func TestExtract_Errors(t *testing.T) {
	cfg := DefaultConfig()
	if _, err := Extract(nil, cfg); !errors.Is(err, audio.ErrInsufficientData) {
		t.Errorf("empty: err = %v, want ErrInsufficientData", err)
	}
	flat := make([]float64, 4000)
	for i := range flat {
		flat[i] = 17
	}
	if _, err := Extract(flat, cfg); !errors.Is(err, audio.ErrDegenerateSignal) {
		t.Errorf("flat: err = %v, want ErrDegenerateSignal", err)
	}

	// Peak at the very start: the two leading frames are all zero.
	spike := make([]float64, 4000)
	for i := range spike {
		spike[i] = math.Sin(float64(i))
	}
	spike[0] = 100
	if _, err := Extract(spike, cfg); !errors.Is(err, ErrSingularPrediction) {
		t.Errorf("edge peak: err = %v, want ErrSingularPrediction", err)
	}
}

func TestAnalyze_Intermediates(t *testing.T) {
	cfg := DefaultConfig()
	frames, err := Analyze(synthVowel(8000, 700, 1200, 5), cfg)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	for i, f := range frames {
		if len(f.Samples) != cfg.FrameLength {
			t.Errorf("frame %d: %d samples", i, len(f.Samples))
		}
		sumSq := 0.0
		for _, s := range f.Samples {
			sumSq += s * s
		}
		if math.Abs(f.Autocorr[0]-sumSq) > 1e-12*sumSq {
			t.Errorf("frame %d: R0 = %v, want %v", i, f.Autocorr[0], sumSq)
		}
		c := LPCToCepstrum(f.Prediction.Coeffs, cfg.Order)
		w := Lifter(c, cfg.Order)
		for n := range w {
			if w[n] != f.Weighted[n] {
				t.Fatalf("frame %d: weighted[%d] = %v, want %v", i, n, f.Weighted[n], w[n])
			}
		}
	}
}

func TestConfig_Validate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"order", func(c *Config) { c.Order = 1 }, "order"},
		{"frame length", func(c *Config) { c.FrameLength = 12 }, "frame_length"},
		{"frames", func(c *Config) { c.NumFrames = 0 }, "num_frames"},
		{"threshold", func(c *Config) { c.Selection = EnergyThreshold; c.EnergyThreshold = 1.5 }, "energy_threshold"},
		{"ceiling", func(c *Config) { c.Ceiling = 0 }, "ceiling"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want mention of %q", err, tt.want)
			}
		})
	}
}
