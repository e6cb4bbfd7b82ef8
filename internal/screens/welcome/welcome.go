// Package welcome is the splash screen shown at startup.
package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/tablestar/internal/router"
	"github.com/abhisek/tablestar/internal/screen"
	"github.com/abhisek/tablestar/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	starsEnd     = 400 * time.Millisecond
	bannerEnd    = 1200 * time.Millisecond
	totalDur     = 3000 * time.Millisecond
)

// The times table grid the star rises over.
const gridArt = `  2   4   6   8
  3   6   9  12
  4   8  12  16`

var twinkle = []string{"★", "✦", "✧", "✦"}

type tickMsg time.Time

// WelcomeScreen shows a short splash, then replaces itself with the
// screen produced by next on the first key press.
type WelcomeScreen struct {
	next         func() screen.Screen
	elapsed      time.Duration
	tickCount    int
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that hands over to next.
func New(next func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{next: next}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.transitioned {
			return w, nil
		}
		w.elapsed = min(w.elapsed+tickInterval, totalDur)
		w.tickCount++
		return w, tick()

	case tea.KeyPressMsg:
		// Any key skips the animation.
		return w, w.transition()
	}
	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	return router.Replace(w.next())
}

func (w *WelcomeScreen) View(width, height int) string {
	var sections []string

	star := twinkle[0]
	if w.elapsed >= starsEnd {
		star = twinkle[w.tickCount%len(twinkle)]
	}
	sections = append(sections,
		lipgloss.NewStyle().Foreground(theme.StarGold).Bold(true).Render(star),
		"",
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(gridArt))

	if w.elapsed >= starsEnd {
		row := strings.Repeat(twinkle[(w.tickCount+1)%len(twinkle)]+"   ", 5)
		sections = append(sections, "", lipgloss.NewStyle().Foreground(theme.SkyCyan).Render(strings.TrimSpace(row)))
	}

	if w.elapsed >= bannerEnd {
		sections = append(sections,
			RenderBanner(width),
			"",
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("Become a times tables star!"),
			"",
			lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render("press any key to start"))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, sections...))
}
