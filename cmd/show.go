package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show [report.xlsx]",
	Short: "Render a single report (latest by default)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	s, err := resolveSettings(cmd)
	if err != nil {
		return err
	}

	if len(args) == 1 {
		flagFiles = args[:1]
	}

	result, err := loadData(s)
	if err != nil {
		return err
	}
	if len(result.Summaries) == 0 {
		fmt.Println("\n  No reports found.")
		return nil
	}

	// Summaries are sorted newest first unless --ascending, so the
	// latest report is the first or last element.
	latest := result.Summaries[0]
	if s.Ascending {
		latest = result.Summaries[len(result.Summaries)-1]
	}

	out, closeOut, err := openOutput()
	if err != nil {
		return err
	}
	defer closeOut()

	writeSummary(out, latest, s)
	printWarnings(result)
	return nil
}
