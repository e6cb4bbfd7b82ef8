package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/tablestar/internal/ui/theme"
)

// ContentWidth returns the inner width shared by the boxes of a framed
// screen so they line up.
func ContentWidth(frameWidth int) int {
	// frame border (2) + inner padding (4)
	return min(max(frameWidth-6, 20), 60)
}

// CabinetFrame wraps content in a double border and centres it.
func CabinetFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width-2).
		Height(height-2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// Card wraps content in a rounded box cw wide.
func Card(content string, cw int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(cw-2).
		Align(lipgloss.Center).
		Padding(1, 2).
		Render(content)
}

// ArcadeButton renders a bordered menu button. Disabled buttons are dimmed
// and never drawn as selected.
func ArcadeButton(label string, selected, disabled bool, width int) string {
	base := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)

	switch {
	case disabled:
		return base.Foreground(theme.TextDim).BorderForeground(theme.Border).Render(label)
	case selected:
		return base.
			Bold(true).
			Foreground(theme.BgDark).
			Background(theme.StarGold).
			BorderForeground(theme.StarGold).
			Render("▸ " + label)
	default:
		return base.Foreground(theme.Text).BorderForeground(theme.Border).Render(label)
	}
}

// Sparkle returns a row of stars that shifts with frame, used to
// celebrate correct answers.
func Sparkle(frame, width int) string {
	glyphs := []string{"✦", "★", "✧", "⋆"}
	var b strings.Builder
	for i := range width {
		if (i+frame)%3 == 0 {
			b.WriteString(glyphs[(i/3+frame)%len(glyphs)])
		} else {
			b.WriteString(" ")
		}
	}
	return lipgloss.NewStyle().Foreground(theme.StarGold).Render(b.String())
}
