package lpcvowel

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ieee0824/lpcvowel/acoustic"
	"github.com/ieee0824/lpcvowel/audio"
	"github.com/ieee0824/lpcvowel/feature"
)

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.HeaderLines != 5 {
		t.Errorf("HeaderLines = %d, want 5", cfg.HeaderLines)
	}
	if strings.Join(cfg.Labels, "") != "aeiou" {
		t.Errorf("Labels = %v", cfg.Labels)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"no labels", func(c *Config) { c.Labels = nil }},
		{"duplicate label", func(c *Config) { c.Labels = []string{"a", "i", "a"} }},
		{"blank label", func(c *Config) { c.Labels = []string{"a", " "} }},
		{"negative header", func(c *Config) { c.HeaderLines = -1 }},
		{"negative workers", func(c *Config) { c.Workers = -2 }},
		{"unknown backend", func(c *Config) { c.Templates.Backend = "s3" }},
		{"bad feature", func(c *Config) { c.Feature.FrameLength = 4 }},
		{"weights too short", func(c *Config) { c.Decoder.Weights = c.Decoder.Weights[:3] }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lpcvowel.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig_OverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
feature:
  order: 10
  selection: energy
  normalize: peak
decoder:
  weights: [1, 2, 3, 4, 5, 6, 7, 8, 9, 10]
labels: [a, i]
workers: 2
templates:
  backend: badger
  dir: db
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Feature.Order != 10 || cfg.Feature.Selection != feature.EnergyThreshold || cfg.Feature.Normalize != audio.Peak {
		t.Errorf("feature = %+v", cfg.Feature)
	}
	if cfg.Feature.FrameLength != 320 || cfg.Feature.NumFrames != 5 || cfg.Feature.Ceiling != 5000 {
		t.Errorf("unset feature keys lost their defaults: %+v", cfg.Feature)
	}
	if len(cfg.Decoder.Weights) != 10 || cfg.Decoder.Weights[9] != 10 {
		t.Errorf("weights = %v", cfg.Decoder.Weights)
	}
	if len(cfg.Labels) != 2 || cfg.Labels[1] != "i" {
		t.Errorf("labels = %v", cfg.Labels)
	}
	if cfg.HeaderLines != 5 || cfg.Workers != 2 {
		t.Errorf("header_lines = %d, workers = %d", cfg.HeaderLines, cfg.Workers)
	}
	if cfg.Templates.Backend != BackendBadger || cfg.Templates.Dir != "db" {
		t.Errorf("templates = %+v", cfg.Templates)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing file accepted")
	}
	if _, err := LoadConfig(writeConfig(t, "feature:\n  normalize: loudest\n")); err == nil {
		t.Error("unknown normalize mode accepted")
	}
	if _, err := LoadConfig(writeConfig(t, "feature:\n  order: 8\n")); err == nil {
		t.Error("order without matching weights accepted")
	}
}

func TestConfig_SaveLoad(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Feature.Selection = feature.EnergyThreshold
	cfg.Feature.DCWindow = 1000
	cfg.Templates.Prefix = "spk1_"

	var buf bytes.Buffer
	if err := cfg.Save(&buf); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "selection: energy") {
		t.Errorf("saved YAML does not name the selection policy:\n%s", buf.String())
	}
	got, err := LoadConfig(writeConfig(t, buf.String()))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if got.Feature != cfg.Feature {
		t.Errorf("feature = %+v, want %+v", got.Feature, cfg.Feature)
	}
	if got.Templates != cfg.Templates {
		t.Errorf("templates = %+v, want %+v", got.Templates, cfg.Templates)
	}
}

func TestConfig_OpenStore(t *testing.T) {
	ctx := context.Background()
	tpl, err := acoustic.NewTemplate("a", [][]float64{{1, 2}, {3, 4}})
	if err != nil {
		t.Fatal(err)
	}

	for _, backend := range []string{BackendDir, BackendBadger} {
		t.Run(backend, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Templates = TemplateConfig{Backend: backend, Dir: filepath.Join(t.TempDir(), "tpl")}

			store, closeStore, err := cfg.OpenStore(nil)
			if err != nil {
				t.Fatalf("OpenStore: %v", err)
			}
			if err := store.Save(ctx, tpl); err != nil {
				t.Fatal(err)
			}
			if err := closeStore(); err != nil {
				t.Fatal(err)
			}

			store, closeStore, err = cfg.OpenStore(nil)
			if err != nil {
				t.Fatalf("reopen: %v", err)
			}
			defer closeStore()
			got, err := store.Load(ctx, "a")
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if got.Row(1)[1] != 4 {
				t.Errorf("row 1 = %v", got.Row(1))
			}
		})
	}
}
