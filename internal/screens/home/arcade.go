package home

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/tablestar/internal/ui/theme"
)

const titleFull = `╔╦╗┌─┐┌┐ ┬  ┌─┐  ╔═╗┌┬┐┌─┐┬─┐
 ║ ├─┤├┴┐│  ├┤   ╚═╗ │ ├─┤├┬┘
 ╩ ┴ ┴└─┘┴─┘└─┘  ╚═╝ ┴ ┴ ┴┴└─`

const titleCompact = "★ T A B L E S T A R ★"

// buttonWidth is the fixed width of menu buttons.
const buttonWidth = 22

func renderTitle(cw int, compact bool) string {
	art := titleFull
	if compact {
		art = titleCompact
	}
	return theme.Centered(lipgloss.NewStyle().Foreground(theme.StarGold).Bold(true), cw, art)
}

// stats summarises the stored history for the home dashboard.
type stats struct {
	rounds int
	best   int
	last   string // rank of the latest round, "" when there is none
}

func renderStatsBar(st stats, cw int, compact bool) string {
	rounds := lipgloss.NewStyle().Foreground(theme.StarGold).Bold(true)
	best := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	last := lipgloss.NewStyle().Foreground(theme.SkyCyan).Bold(true)
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	lastText := dim.Render("no rounds yet")
	if st.last != "" {
		lastText = last.Render(st.last)
	}

	var line string
	if compact {
		line = fmt.Sprintf("%s %s %s",
			rounds.Render(fmt.Sprintf("▶%d", st.rounds)),
			best.Render(fmt.Sprintf("★%d", st.best)),
			lastText)
	} else {
		line = fmt.Sprintf("%s  %s  %s",
			rounds.Render(fmt.Sprintf("▶ %d ROUNDS", st.rounds)),
			best.Render(fmt.Sprintf("★ BEST %d", st.best)),
			lastText)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.SkyCyan).
		Width(cw-2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(line)
}

func renderAIBanner(cw int) string {
	return theme.Centered(lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true), cw,
		"Set an LLM API key to unlock the AI quiz and tutor (see tablestar config)")
}
