package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/dave-doty/aggie-unterprise/internal/config"
	"github.com/dave-doty/aggie-unterprise/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderSettingsTab(cw int) string {
	t := theme.Active
	titleStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	selStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.SurfaceHover).
		Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	activeStyle := lipgloss.NewStyle().Foreground(t.Green)

	var b strings.Builder
	b.WriteString(titleStyle.Render("  Color theme"))
	b.WriteString("\n\n")

	for i, th := range theme.All {
		marker := "  "
		if th.Name == theme.Active.Name {
			marker = activeStyle.Render("* ")
		}
		label := fmt.Sprintf(" %s ", th.Name)
		if i == a.themeCursor {
			b.WriteString("  " + marker + selStyle.Render(label))
		} else {
			b.WriteString("  " + marker + rowStyle.Render(label))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(labelStyle.Render("  j/k to select, enter to apply and save"))
	b.WriteString("\n\n")
	cents := "off"
	if a.showCents {
		cents = "on"
	}
	b.WriteString(titleStyle.Render("  Display"))
	b.WriteString("\n\n")
	b.WriteString(labelStyle.Render(fmt.Sprintf("  Show cents: %s (space toggles)", cents)))
	b.WriteString("\n\n")
	b.WriteString(labelStyle.Render(fmt.Sprintf("  Config:  %s", config.Path())))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render(fmt.Sprintf("  Reports: %s", a.dir)))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render(fmt.Sprintf("  Loaded:  %d reports in %s", len(a.summaries), a.loadTime.Round(time.Millisecond))))
	b.WriteString("\n")
	return b.String()
}
