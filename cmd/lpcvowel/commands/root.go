package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ieee0824/lpcvowel"
)

var (
	// Global flags
	verbose      bool
	configPath   string
	templatesDir string
	prefix       string
	backend      string
	workers      int

	// Resolved before any subcommand runs.
	cfg    lpcvowel.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "lpcvowel",
	Short: "LPC cepstral vowel recognizer",
	Long: `lpcvowel - train and test an isolated vowel recognizer.

Each recording is reduced to a few frames of weighted LPC cepstral
coefficients. Training averages them per vowel into a template; testing
picks the template with the smallest Tokhura distance.

Recordings are text sample dumps (a 5 line header followed by one
amplitude per line) or 16-bit PCM WAV files. Manifests are TSV files of
path<TAB>label lines.

Examples:
  # Train templates into ./templates
  lpcvowel train --manifest train.tsv

  # Evaluate on held-out recordings
  lpcvowel test --manifest test.tsv

  # Use a YAML config and a badger template database
  lpcvowel --config lpcvowel.yaml --store badger --templates db train --manifest train.tsv`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	pf.StringVarP(&configPath, "config", "c", "", "YAML config file (defaults built in)")
	pf.StringVar(&templatesDir, "templates", "", "template directory or badger database (overrides config)")
	pf.StringVar(&prefix, "prefix", "", "template file name prefix for the dir store (overrides config)")
	pf.StringVar(&backend, "store", "", `template store: "dir" or "badger" (overrides config)`)
	pf.IntVarP(&workers, "workers", "j", 0, "parallel feature extraction workers (overrides config)")
}

func setup(cmd *cobra.Command, _ []string) error {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	cfg = lpcvowel.DefaultConfig()
	if configPath != "" {
		c, err := lpcvowel.LoadConfig(configPath)
		if err != nil {
			return err
		}
		cfg = c
	}

	pf := cmd.Flags()
	if pf.Changed("templates") {
		cfg.Templates.Dir = templatesDir
	}
	if pf.Changed("prefix") {
		cfg.Templates.Prefix = prefix
	}
	if pf.Changed("store") {
		cfg.Templates.Backend = backend
	}
	if pf.Changed("workers") {
		cfg.Workers = workers
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	logger.Debug("config resolved", "labels", cfg.Labels, "backend", cfg.Templates.Backend, "templates", cfg.Templates.Dir)
	return nil
}
