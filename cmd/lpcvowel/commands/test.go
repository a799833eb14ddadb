package commands

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ieee0824/lpcvowel"
)

var testManifest string

var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Classify a labeled manifest and report accuracy",
	Long: `Classify every recording in the manifest against the stored templates.

Prints one line per recording (path, expected, predicted, distance),
then the confusion matrix and the overall accuracy.

Examples:
  lpcvowel test --manifest test.tsv`,
	Args: cobra.NoArgs,
	RunE: runTest,
}

func init() {
	testCmd.Flags().StringVarP(&testManifest, "manifest", "m", "", "test manifest (path<TAB>label)")
	testCmd.MarkFlagRequired("manifest")
	rootCmd.AddCommand(testCmd)
}

func runTest(cmd *cobra.Command, _ []string) error {
	utts, err := loadManifest(testManifest)
	if err != nil {
		return err
	}
	rec, closeStore, err := openRecognizer(cmd)
	if err != nil {
		return err
	}
	defer closeStore()

	report, err := rec.Evaluate(cmd.Context(), utts)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, p := range report.Predictions {
		fmt.Fprintf(out, "%s\t%s\t%s\t%.4f\n", p.Path, p.Label, p.Result.Label, p.Result.Distance)
	}
	fmt.Fprintln(out)
	writeConfusion(out, report)

	fmt.Fprintf(out, "accuracy: %d/%d (%.1f%%)\n", report.Hits(), report.Scored(), 100*report.Accuracy())
	if len(report.Failures) > 0 {
		fmt.Fprintf(out, "skipped: %d\n", len(report.Failures))
	}
	return nil
}

func writeConfusion(out io.Writer, report *lpcvowel.EvalReport) {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "\t%s\t\n", strings.Join(report.Labels, "\t"))
	for i, l := range report.Labels {
		cells := make([]string, len(report.Labels))
		for j, c := range report.Confusion[i] {
			cells[j] = fmt.Sprint(c)
		}
		fmt.Fprintf(tw, "%s\t%s\t\n", l, strings.Join(cells, "\t"))
	}
	tw.Flush()
}
