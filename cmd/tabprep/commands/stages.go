package commands

import (
	"github.com/spf13/cobra"
)

var extractCmd = &cobra.Command{
	Use:   "extract [dataset.csv]",
	Short: "Run only the ingest stage",
	Long: `Extract reads and validates the dataset CSV, then stores the raw
table as a blob in the work directory. A later "tabprep transform" picks it
up from there, so the stages can run as separate scheduler tasks.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExtract,
}

var transformCmd = &cobra.Command{
	Use:   "transform",
	Short: "Run the clean, encode and split stages",
	Long: `Transform reads the extracted blob from the work directory, imputes
missing values, encodes the label, splits the rows into stratified train and
test partitions and stores the partition blobs back to the work directory.`,
	Args: cobra.NoArgs,
	RunE: runTransform,
}

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Run only the persistence stage",
	Long: `Load reads the partition blobs a previous "tabprep transform"
produced and writes the final CSV and JSON artifacts to the output
directory.`,
	Args: cobra.NoArgs,
	RunE: runLoad,
}

func init() {
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(transformCmd)
	rootCmd.AddCommand(loadCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	p, _, err := newPipeline()
	if err != nil {
		return err
	}
	datasetPath := ""
	if len(args) == 1 {
		datasetPath = args[0]
	}
	return p.Extract(datasetPath)
}

func runTransform(cmd *cobra.Command, args []string) error {
	p, _, err := newPipeline()
	if err != nil {
		return err
	}
	return p.Transform()
}

func runLoad(cmd *cobra.Command, args []string) error {
	p, _, err := newPipeline()
	if err != nil {
		return err
	}
	return p.Load()
}
