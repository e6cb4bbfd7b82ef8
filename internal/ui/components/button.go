package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/tablestar/internal/ui/theme"
)

// Button is a flat labelled button.
type Button struct {
	Label  string
	Active bool
}

// View renders the button.
func (b Button) View() string {
	if b.Active {
		return theme.ButtonActive.Render("▸ " + b.Label)
	}
	return theme.ButtonInactive.Render("  " + b.Label)
}

// ButtonRow renders labels side by side with the one at active highlighted.
func ButtonRow(labels []string, active int) string {
	cells := make([]string, 0, 2*len(labels))
	for i, l := range labels {
		if i > 0 {
			cells = append(cells, "   ")
		}
		cells = append(cells, Button{Label: l, Active: i == active}.View())
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, cells...)
}
