package cmd

import (
	"fmt"

	"github.com/dave-doty/aggie-unterprise/internal/pipeline"

	"github.com/spf13/cobra"
)

var diffCmd = &cobra.Command{
	Use:   "diff [earlier.xlsx later.xlsx]",
	Short: "Compare two reports (latest two by default)",
	Long: "Compare spending between two reports, matched by project name.\n" +
		"With no arguments, compares the two most recent reports in the\n" +
		"reports directory.",
	Args: cobra.RangeArgs(0, 2),
	RunE: runDiff,
}

func init() {
	rootCmd.AddCommand(diffCmd)
}

func runDiff(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		return fmt.Errorf("diff needs zero or two report files, got one")
	}

	s, err := resolveSettings(cmd)
	if err != nil {
		return err
	}

	if len(args) == 2 {
		flagFiles = args
	}

	result, err := loadData(s)
	if err != nil {
		return err
	}
	if len(result.Summaries) < 2 {
		return fmt.Errorf("need at least two reports to compare, found %d", len(result.Summaries))
	}

	// Take the two most recent regardless of sort direction.
	a, b := result.Summaries[0], result.Summaries[1]
	if s.Ascending {
		a, b = result.Summaries[len(result.Summaries)-2], result.Summaries[len(result.Summaries)-1]
	}
	pair := pipeline.DiffPair{Earlier: a, Later: b}
	if pair.Earlier.Date.After(pair.Later.Date) {
		pair.Earlier, pair.Later = pair.Later, pair.Earlier
	}

	out, closeOut, err := openOutput()
	if err != nil {
		return err
	}
	defer closeOut()

	writeDiff(out, pair, s)
	printWarnings(result)
	return nil
}
