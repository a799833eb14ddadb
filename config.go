package lpcvowel

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/ieee0824/lpcvowel/acoustic"
	"github.com/ieee0824/lpcvowel/audio"
	"github.com/ieee0824/lpcvowel/decoder"
	"github.com/ieee0824/lpcvowel/feature"
)

// Template store backends.
const (
	BackendDir    = "dir"
	BackendBadger = "badger"
)

// Config is the complete configuration of a training or testing run.
type Config struct {
	Feature feature.Config `yaml:"feature"`
	Decoder decoder.Config `yaml:"decoder"`

	// Labels is the class enumeration order; it breaks classification ties.
	Labels []string `yaml:"labels"`

	// HeaderLines is skipped at the top of every text sample file.
	HeaderLines int `yaml:"header_lines"`

	// Workers bounds concurrent feature extraction. 0 means GOMAXPROCS.
	Workers int `yaml:"workers"`

	Templates TemplateConfig `yaml:"templates"`
}

// TemplateConfig says where trained templates live.
type TemplateConfig struct {
	Backend string `yaml:"backend"` // dir | badger
	Dir     string `yaml:"dir"`
	Prefix  string `yaml:"prefix,omitempty"` // file name prefix for the dir backend
}

// DefaultConfig returns the five-vowel, 12th-order setup.
func DefaultConfig() Config {
	return Config{
		Feature:     feature.DefaultConfig(),
		Decoder:     decoder.DefaultConfig(),
		Labels:      []string{"a", "e", "i", "o", "u"},
		HeaderLines: audio.DefaultHeaderLines,
		Templates: TemplateConfig{
			Backend: BackendDir,
			Dir:     "templates",
		},
	}
}

// Validate checks every section.
func (c Config) Validate() error {
	var errs []error
	if err := c.Feature.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := c.Decoder.Validate(c.Feature.Order); err != nil {
		errs = append(errs, err)
	}
	if len(c.Labels) == 0 {
		errs = append(errs, errors.New("labels: at least one class is required"))
	}
	seen := make(map[string]bool, len(c.Labels))
	for _, l := range c.Labels {
		if strings.TrimSpace(l) == "" {
			errs = append(errs, errors.New("labels: empty label"))
		}
		if seen[l] {
			errs = append(errs, fmt.Errorf("labels: duplicate %q", l))
		}
		seen[l] = true
	}
	if c.HeaderLines < 0 {
		errs = append(errs, fmt.Errorf("header_lines %d must not be negative", c.HeaderLines))
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers %d must not be negative", c.Workers))
	}
	switch c.Templates.Backend {
	case BackendDir, BackendBadger:
	default:
		errs = append(errs, fmt.Errorf("templates.backend %q must be %q or %q", c.Templates.Backend, BackendDir, BackendBadger))
	}
	return errors.Join(errs...)
}

// LoadConfig reads a YAML config file. Keys not present keep their
// DefaultConfig values. The result is validated.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config as YAML.
func (c Config) Save(w io.Writer) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// OpenStore opens the configured template store. The returned close
// function releases it and is never nil.
func (c Config) OpenStore(logger *slog.Logger) (acoustic.Store, func() error, error) {
	noop := func() error { return nil }
	switch c.Templates.Backend {
	case BackendDir:
		return acoustic.DirStore{Dir: c.Templates.Dir, Prefix: c.Templates.Prefix}, noop, nil
	case BackendBadger:
		s, err := acoustic.NewBadgerStore(acoustic.BadgerOptions{Dir: c.Templates.Dir, Logger: logger})
		if err != nil {
			return nil, noop, err
		}
		return s, s.Close, nil
	default:
		return nil, noop, fmt.Errorf("unknown template backend %q", c.Templates.Backend)
	}
}
