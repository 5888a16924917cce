package commands

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/tabprep/dataset"
	"github.com/YuminosukeSato/tabprep/pkg/errors"
)

var inspectTop int

var inspectCmd = &cobra.Command{
	Use:   "inspect <dataset.csv>",
	Short: "Print a summary of a dataset without modifying it",
	Long: `Inspect loads a dataset CSV and prints its shape, missing-value
counts, label distribution and the most frequent indicator features. It
never writes anything, so it is safe to run against production data.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().IntVar(&inspectTop, "top", 10, "Number of top features to show")
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	t, err := dataset.ReadCSV(args[0])
	if err != nil {
		return err
	}
	if t.NumCols() == 0 {
		return errors.NewSourceNotFoundError(args[0])
	}
	p, err := dataset.Summarize(t)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "dataset: %s\n", args[0])
	fmt.Fprintf(out, "shape:   %d rows x %d columns (label: %s)\n", p.Rows, p.Columns, p.LabelColumn)
	fmt.Fprintf(out, "missing: %d cells\n", p.MissingTotal())

	fmt.Fprintln(out, "labels:")
	labels := make([]string, 0, len(p.LabelCounts))
	for label := range p.LabelCounts {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	for _, label := range labels {
		fmt.Fprintf(out, "  %-20s %d\n", label, p.LabelCounts[label])
	}

	fmt.Fprintf(out, "top %d features by frequency:\n", inspectTop)
	for _, fs := range p.Top(inspectTop) {
		fmt.Fprintf(out, "  %-20s %.0f\n", fs.Name, fs.Sum)
	}
	return nil
}
