package tui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dave-doty/aggie-unterprise/internal/cli"
	"github.com/dave-doty/aggie-unterprise/internal/model"
	"github.com/dave-doty/aggie-unterprise/internal/tui/components"
	"github.com/dave-doty/aggie-unterprise/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderOverviewTab(cw int) string {
	t := theme.Active
	var b strings.Builder

	if len(a.summaries) == 0 {
		return lipgloss.NewStyle().Foreground(t.TextMuted).
			Render("  No reports found in " + a.dir)
	}

	latest := a.summaries[0]
	total := model.Totals(latest.Records)

	// Row 1: Metric cards for the most recent report
	spent := ""
	if total.Budget > 0 {
		spent = fmt.Sprintf("%.0f%% of budget spent", total.Expenses/total.Budget*100)
	}

	cards := []struct{ Label, Value, Detail string }{
		{"Latest Report", latest.DateString(), fmt.Sprintf("%d projects", len(latest.Records))},
		{"Expenses", cli.FormatCurrency(total.Expenses, a.showCents), spent},
		{"Balance", cli.FormatCurrency(total.Balance, a.showCents), ""},
		{"Budget", cli.FormatCurrency(total.Budget, a.showCents), ""},
	}
	b.WriteString(components.MetricCardRow(cards, cw))
	b.WriteString("\n")

	// Row 2: Per-project expense bars
	b.WriteString(components.ContentCard("Expenses by project", a.renderExpenseBars(latest, components.CardInnerWidth(cw)), cw))

	if len(a.warnings) > 0 {
		warnStyle := lipgloss.NewStyle().Foreground(t.Orange)
		b.WriteString("\n")
		b.WriteString(warnStyle.Render(fmt.Sprintf("  %d parse warnings, see Reports tab", len(a.warnings))))
	}

	return b.String()
}

func (a App) renderExpenseBars(s model.Summary, innerWidth int) string {
	t := theme.Active
	nameStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	barStyle := lipgloss.NewStyle().Foreground(t.Accent)
	amountStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	maxExpense := 0.0
	nameWidth := 0
	for _, r := range s.Records {
		if r.Expenses > maxExpense {
			maxExpense = r.Expenses
		}
		if n := utf8.RuneCountInString(r.Name); n > nameWidth {
			nameWidth = n
		}
	}
	if nameWidth > 30 {
		nameWidth = 30
	}

	barWidth := innerWidth - nameWidth - 16
	if barWidth < 10 {
		barWidth = 10
	}

	var b strings.Builder
	for _, r := range s.Records {
		name := truncateName(r.Name, nameWidth)
		pad := nameWidth - utf8.RuneCountInString(name)
		if pad < 0 {
			pad = 0
		}
		bar := cli.RenderBar(r.Expenses, maxExpense, barWidth)
		b.WriteString(fmt.Sprintf("%s %s %s\n",
			nameStyle.Render(name+strings.Repeat(" ", pad)),
			barStyle.Render(fmt.Sprintf("%-*s", barWidth, bar)),
			amountStyle.Render(cli.FormatCurrency(r.Expenses, a.showCents))))
	}
	return strings.TrimRight(b.String(), "\n")
}

// truncateName shortens a project name to width runes, marking the cut
// with an ellipsis. Names are truncated on rune boundaries so multibyte
// characters from the exports never get split mid-sequence.
func truncateName(name string, width int) string {
	runes := []rune(name)
	if len(runes) <= width {
		return name
	}
	if width < 1 {
		return ""
	}
	return string(runes[:width-1]) + "…"
}
