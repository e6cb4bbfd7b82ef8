package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/tablestar/internal/ui/theme"
)

const bannerArt = `
 ▀█▀ ▄▀█ █▄▄ █   █▀▀   █▀ ▀█▀ ▄▀█ █▀█
  █  █▀█ █▄█ █▄▄ ██▄   ▄█  █  █▀█ █▀▄`

const bannerCompact = "T A B L E S T A R"

// bannerMinWidth is the narrowest terminal that fits the block letters.
const bannerMinWidth = 44

// RenderBanner returns the TableStar banner in gold, or a spaced-out
// word on narrow terminals.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.StarGold).
		Bold(true)

	if width < bannerMinWidth {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
