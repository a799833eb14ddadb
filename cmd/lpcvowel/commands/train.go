package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ieee0824/lpcvowel"
)

var trainManifest string

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Build per-vowel templates from a manifest",
	Long: `Extract weighted cepstral features from every recording in the manifest,
average them per label and save one template per configured label.

Recordings that cannot be read or analyzed are reported and skipped.
A label with no usable recordings gets no template.

Examples:
  lpcvowel train --manifest train.tsv
  lpcvowel train --manifest train.tsv --templates out --prefix spk1_`,
	Args: cobra.NoArgs,
	RunE: runTrain,
}

func init() {
	trainCmd.Flags().StringVarP(&trainManifest, "manifest", "m", "", "training manifest (path<TAB>label)")
	trainCmd.MarkFlagRequired("manifest")
	rootCmd.AddCommand(trainCmd)
}

func runTrain(cmd *cobra.Command, _ []string) error {
	utts, err := loadManifest(trainManifest)
	if err != nil {
		return err
	}
	store, closeStore, err := cfg.OpenStore(logger)
	if err != nil {
		return err
	}
	defer closeStore()

	tr, err := lpcvowel.NewTrainer(cfg, store, lpcvowel.WithLogger(logger))
	if err != nil {
		return err
	}
	report, err := tr.Train(cmd.Context(), utts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, t := range report.Templates {
		fmt.Fprintf(out, "%s\t%d\n", t.Label(), t.Count())
	}
	if len(report.Failures) > 0 {
		logger.Warn("training finished with failures", "failures", len(report.Failures))
	}
	if len(report.Templates) == 0 {
		return fmt.Errorf("no templates trained from %d utterances", len(utts))
	}
	return nil
}
