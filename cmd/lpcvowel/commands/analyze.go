package commands

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ieee0824/lpcvowel/audio"
	"github.com/ieee0824/lpcvowel/feature"
)

var analyzeFrame int

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Dump autocorrelation, LPC and cepstral coefficients",
	Long: `Run the feature pipeline on one recording and print, for every analysis
frame, the autocorrelation R[0..p], the LPC coefficients a[1..p] and the
weighted cepstral coefficients c[1..p].

Examples:
  lpcvowel analyze a1.txt
  lpcvowel analyze --frame 3 a1.txt`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().IntVarP(&analyzeFrame, "frame", "f", 0, "only print this frame (1-based, 0 = all)")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	samples, err := audio.ReadFile(args[0], cfg.HeaderLines)
	if err != nil {
		return err
	}
	frames, err := feature.Analyze(samples, cfg.Feature)
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}
	if analyzeFrame < 0 || analyzeFrame > len(frames) {
		return fmt.Errorf("--frame %d out of range 1..%d", analyzeFrame, len(frames))
	}

	out := cmd.OutOrStdout()
	for i, f := range frames {
		if analyzeFrame != 0 && i+1 != analyzeFrame {
			continue
		}
		fmt.Fprintf(out, "frame %d\n", i+1)
		writeValues(out, "Ri values:", f.Autocorr)
		writeValues(out, "Ai values:", f.Prediction.Coeffs[1:])
		writeValues(out, "Ci values:", f.Weighted[1:])
	}
	return nil
}

func writeValues(w io.Writer, title string, v []float64) {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = strconv.FormatFloat(x, 'f', 6, 64)
	}
	fmt.Fprintf(w, "%s %s\n", title, strings.Join(parts, " "))
}
