package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run [dataset.csv]",
	Short: "Run the full prepare pipeline against a dataset",
	Long: `Run executes every stage in order: read the dataset CSV, impute
missing values, encode the label, split into stratified train/test
partitions and write the artifacts to the output directory.

The dataset path can be given as the positional argument or in the config
file; the argument wins when both are set.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	p, cfg, err := newPipeline()
	if err != nil {
		return err
	}
	datasetPath := ""
	if len(args) == 1 {
		datasetPath = args[0]
	}

	result, err := p.Run(datasetPath)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(),
		"prepared %d rows into %d train / %d test (%d classes) under %s\n",
		result.Rows, result.TrainRows, result.TestRows, len(result.Classes), cfg.OutputDir)
	return nil
}
