package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ieee0824/lpcvowel/acoustic"
	"github.com/ieee0824/lpcvowel/decoder"
)

var distanceCmd = &cobra.Command{
	Use:   "distance <table> <table>",
	Short: "Tokhura distance between two template tables",
	Long: `Read two coefficient tables (one frame per line, one coefficient per
column) and print their Tokhura distance averaged over frames.

Examples:
  lpcvowel distance templates/a.txt templates/o.txt`,
	Args: cobra.ExactArgs(2),
	RunE: runDistance,
}

func init() {
	rootCmd.AddCommand(distanceCmd)
}

func runDistance(cmd *cobra.Command, args []string) error {
	x, err := readTableFile(args[0])
	if err != nil {
		return err
	}
	y, err := readTableFile(args[1])
	if err != nil {
		return err
	}
	ref, err := acoustic.NewTemplate(args[1], y)
	if err != nil {
		return err
	}
	if ref.Dim() != len(cfg.Decoder.Weights) {
		return fmt.Errorf("%d coefficients per frame, %d weights configured", ref.Dim(), len(cfg.Decoder.Weights))
	}
	d, err := decoder.Distance(x, ref, cfg.Decoder.Weights)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%.6f\n", d)
	return nil
}

func readTableFile(path string) ([][]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	rows, err := acoustic.ReadTable(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rows, nil
}
