package tui

import (
	"fmt"
	"strings"

	"github.com/dave-doty/aggie-unterprise/internal/tui/components"
	"github.com/dave-doty/aggie-unterprise/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}

	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}

	if !a.loaded {
		return a.viewLoading()
	}

	if a.showHelp {
		return a.viewHelp()
	}

	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	t := theme.Active
	style := lipgloss.NewStyle().Foreground(t.TextMuted)
	return style.Render(fmt.Sprintf("\n  Terminal too narrow (%d cols, need %d).\n", a.width, minTerminalWidth))
}

func (a App) viewLoading() string {
	t := theme.Active
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	var b strings.Builder
	b.WriteString("\n\n")
	b.WriteString("  " + a.spinner.View() + " ")
	if a.progressMax > 0 {
		b.WriteString(labelStyle.Render(fmt.Sprintf("Parsing reports [%d/%d]", a.progress, a.progressMax)))
	} else {
		b.WriteString(labelStyle.Render("Scanning for reports..."))
	}
	b.WriteString("\n")
	return b.String()
}

func (a App) viewHelp() string {
	t := theme.Active
	keyStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	rows := []struct{ key, desc string }{
		{"o / r / c / x", "switch tabs"},
		{"tab / shift+tab", "next / previous tab"},
		{"j / k", "move selection"},
		{"enter", "apply theme (Settings tab)"},
		{"space", "toggle cents (Settings tab)"},
		{"R", "reload reports"},
		{"?", "toggle this help"},
		{"q", "quit"},
	}

	var b strings.Builder
	b.WriteString("\n  " + keyStyle.Render("Keys") + "\n\n")
	for _, r := range rows {
		b.WriteString(fmt.Sprintf("  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-16s", r.key)),
			descStyle.Render(r.desc)))
	}
	b.WriteString("\n" + descStyle.Render("  Press any key to close."))
	return b.String()
}

func (a App) viewMain() string {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}

	var content string
	switch a.activeTab {
	case 0:
		content = a.renderOverviewTab(cw)
	case 1:
		content = a.renderReportsTab(cw)
	case 2:
		content = a.renderChangesTab(cw)
	case 3:
		content = a.renderSettingsTab(cw)
	}

	age := ""
	if !a.lastRefresh.IsZero() {
		age = fmt.Sprintf("%d loaded", len(a.summaries))
		if a.refreshing {
			age = "reloading..."
		}
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(components.RenderTabBar(a.activeTab, cw))
	b.WriteString("\n\n")
	b.WriteString(content)
	b.WriteString("\n")
	b.WriteString(components.RenderStatusBar(cw, age))
	return b.String()
}
