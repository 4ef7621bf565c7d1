package tui

import (
	"fmt"
	"strings"

	"github.com/dave-doty/aggie-unterprise/internal/cli"
	"github.com/dave-doty/aggie-unterprise/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderReportsTab(cw int) string {
	t := theme.Active

	if len(a.summaries) == 0 {
		return lipgloss.NewStyle().Foreground(t.TextMuted).
			Render("  No reports found in " + a.dir)
	}

	list := a.renderReportList()
	selected := a.summaries[a.reportCursor]
	table := cli.RenderTable(cli.SummaryTable(selected, a.showCents, false))

	return lipgloss.JoinHorizontal(lipgloss.Top, list, "  ", table)
}

func (a App) renderReportList() string {
	t := theme.Active
	selStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.SurfaceHover).
		Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	var b strings.Builder
	for i, s := range a.summaries {
		label := fmt.Sprintf(" %s (%d) ", s.DateString(), len(s.Records))
		if i == a.reportCursor {
			b.WriteString(selStyle.Render("▶" + label))
		} else {
			b.WriteString(rowStyle.Render(" " + label))
		}
		b.WriteString("\n")
	}
	return b.String()
}
