package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ieee0824/lpcvowel"
)

var showDistances bool

var classifyCmd = &cobra.Command{
	Use:   "classify <file>...",
	Short: "Classify individual recordings",
	Long: `Print the nearest vowel template for each recording.

Examples:
  lpcvowel classify a1.txt i3.wav
  lpcvowel classify --all u2.txt`,
	Args: cobra.MinimumNArgs(1),
	RunE: runClassify,
}

func init() {
	classifyCmd.Flags().BoolVarP(&showDistances, "all", "a", false, "print the distance to every template")
	rootCmd.AddCommand(classifyCmd)
}

func runClassify(cmd *cobra.Command, args []string) error {
	rec, closeStore, err := openRecognizer(cmd)
	if err != nil {
		return err
	}
	defer closeStore()

	out := cmd.OutOrStdout()
	failed := 0
	for _, path := range args {
		if err := cmd.Context().Err(); err != nil {
			return err
		}
		res, err := rec.RecognizeFile(path)
		if err != nil {
			logger.Warn("skipped", "path", path, "err", err)
			failed++
			continue
		}
		fmt.Fprintf(out, "%s\t%s\t%.4f\n", path, res.Label, res.Distance)
		if showDistances {
			for _, d := range res.Distances {
				fmt.Fprintf(out, "\t%s\t%.4f\n", d.Label, d.Distance)
			}
		}
	}
	if failed == len(args) {
		return fmt.Errorf("no recording could be classified")
	}
	return nil
}

// openRecognizer loads the configured templates. The returned close function
// is never nil.
func openRecognizer(cmd *cobra.Command) (*lpcvowel.Recognizer, func() error, error) {
	store, closeStore, err := cfg.OpenStore(logger)
	if err != nil {
		return nil, closeStore, err
	}
	rec, err := lpcvowel.NewRecognizer(cmd.Context(), cfg, store, lpcvowel.WithLogger(logger))
	if err != nil {
		closeStore()
		return nil, func() error { return nil }, err
	}
	return rec, closeStore, nil
}
