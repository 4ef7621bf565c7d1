package tui

import (
	"fmt"
	"strings"

	"github.com/dave-doty/aggie-unterprise/internal/cli"
	"github.com/dave-doty/aggie-unterprise/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderChangesTab(cw int) string {
	t := theme.Active

	if len(a.pairs) == 0 {
		return lipgloss.NewStyle().Foreground(t.TextMuted).
			Render("  Need at least two reports to show changes.")
	}

	list := a.renderChangeList()
	pair := a.pairs[a.changeCursor]
	table := cli.RenderTable(cli.DiffTable(pair.Records(), a.showCents, false))

	return lipgloss.JoinHorizontal(lipgloss.Top, list, "  ", table)
}

func (a App) renderChangeList() string {
	t := theme.Active
	selStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.SurfaceHover).
		Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	var b strings.Builder
	for i, p := range a.pairs {
		label := fmt.Sprintf(" %s → %s ", p.Earlier.DateString(), p.Later.DateString())
		if i == a.changeCursor {
			b.WriteString(selStyle.Render("▶" + label))
		} else {
			b.WriteString(rowStyle.Render(" " + label))
		}
		b.WriteString("\n")
	}
	return b.String()
}
