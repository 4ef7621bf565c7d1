package cmd

import (
	"fmt"
	"io"

	"github.com/dave-doty/aggie-unterprise/internal/cli"
	"github.com/dave-doty/aggie-unterprise/internal/model"
	"github.com/dave-doty/aggie-unterprise/internal/pipeline"

	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Render all reports and month-over-month comparisons",
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().BoolVar(&flagNoDiffs, "no-diffs", false, "Only individual report tables, no comparisons")
	reportCmd.Flags().BoolVar(&flagNoIndividual, "no-individual", false, "Only comparison tables, no individual reports")
	reportCmd.MarkFlagsMutuallyExclusive("no-diffs", "no-individual")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, _ []string) error {
	s, err := resolveSettings(cmd)
	if err != nil {
		return err
	}

	result, err := loadData(s)
	if err != nil {
		return err
	}
	if len(result.Summaries) == 0 {
		fmt.Println("\n  No reports found.")
		return nil
	}

	out, closeOut, err := openOutput()
	if err != nil {
		return err
	}
	defer closeOut()

	// Interleave: each summary followed by its comparison with the next
	// report in display order, ending with the final summary alone.
	pairs := pipeline.Pairs(result.Summaries)
	for i, summary := range result.Summaries {
		if !flagNoIndividual {
			writeSummary(out, summary, s)
		}
		if !flagNoDiffs && i < len(pairs) {
			writeDiff(out, pairs[i], s)
		}
	}

	printWarnings(result)
	return nil
}

func writeSummary(out io.Writer, summary model.Summary, s settings) {
	table := cli.SummaryTable(summary, s.ShowCents, s.Markdown)
	title := cli.SummaryTitle(summary)

	if s.Markdown {
		fmt.Fprintf(out, "## %s\n\n", title)
		fmt.Fprint(out, cli.RenderMarkdownTable(table))
		fmt.Fprintln(out)
		return
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, cli.RenderTitle(title))
	fmt.Fprintln(out)
	fmt.Fprint(out, cli.RenderTable(table))
}

func writeDiff(out io.Writer, pair pipeline.DiffPair, s settings) {
	table := cli.DiffTable(pair.Records(), s.ShowCents, s.Markdown)
	title := cli.DiffTitle(pair.Earlier, pair.Later)

	if s.Markdown {
		fmt.Fprintf(out, "## %s\n\n", title)
		fmt.Fprint(out, cli.RenderMarkdownTable(table))
		fmt.Fprintln(out)
		return
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, cli.RenderTitle(title))
	fmt.Fprintln(out)
	fmt.Fprint(out, cli.RenderTable(table))
}
