package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/tablestar/internal/router"
	"github.com/abhisek/tablestar/internal/screen"
	"github.com/abhisek/tablestar/internal/session"
	"github.com/abhisek/tablestar/internal/ui/components"
	"github.com/abhisek/tablestar/internal/ui/layout"
	"github.com/abhisek/tablestar/internal/ui/theme"
)

var buttons = []string{"Play again", "Home"}

// SummaryScreen shows the result of a finished round.
type SummaryScreen struct {
	item    *session.HistoryItem
	saveErr error
	again   func() screen.Screen
	active  int
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)
var _ screen.InputCapturer = (*SummaryScreen)(nil)

// New creates a summary for item. saveErr is the error from recording the
// round, if any. again builds a fresh practice screen with the same
// settings; when nil only the Home button works.
func New(item *session.HistoryItem, saveErr error, again func() screen.Screen) *SummaryScreen {
	s := &SummaryScreen{item: item, saveErr: saveErr, again: again}
	if again == nil {
		s.active = 1
	}
	return s
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Round Complete"
}

// CapturesInput makes esc go home instead of back to the finished round.
func (s *SummaryScreen) CapturesInput() bool {
	return true
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "←→", Description: "Choose"},
		{Key: "Enter", Description: "Select"},
		{Key: "Esc", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "left", "h":
		if s.again != nil {
			s.active = 0
		}
	case "right", "l":
		s.active = 1
	case "r":
		if s.again != nil {
			return s, router.Replace(s.again())
		}
	case "esc", "q":
		return s, router.PopToRoot()
	case "enter":
		if s.active == 0 && s.again != nil {
			return s, router.Replace(s.again())
		}
		return s, router.PopToRoot()
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	item := s.item
	if item == nil {
		return ""
	}
	rank := item.Rank()

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(theme.Centered(lipgloss.NewStyle().Foreground(theme.StarGold).Bold(true), width,
		fmt.Sprintf("Well played, %s!", item.UserName)))
	b.WriteString("\n\n")

	card := components.Card(strings.Join([]string{
		lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(fmt.Sprintf("★ %d points", item.Score)),
		"",
		theme.Body.Render(fmt.Sprintf("%d of %d correct  (%.0f%%)", item.Correct(), item.Questions, item.Percent())),
		"",
		lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(rank.String()),
	}, "\n"), min(components.ContentWidth(width), 40))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, card))
	b.WriteString("\n")

	if s.saveErr != nil {
		b.WriteString("\n")
		b.WriteString(theme.Centered(lipgloss.NewStyle().Foreground(theme.Error), width,
			"⚠ This round could not be saved to your history."))
		b.WriteString("\n")
	}

	if missed := missedResults(item); len(missed) > 0 {
		b.WriteString("\n")
		b.WriteString(theme.Centered(lipgloss.NewStyle().Foreground(theme.TextDim), width, "Let's look at these again:"))
		b.WriteString("\n")
		for _, r := range missed {
			b.WriteString(theme.Centered(theme.Body, width,
				fmt.Sprintf("%s  →  %s", r.Question.Prompt(), r.Question.CorrectAnswer())))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	labels := buttons
	active := s.active
	if s.again == nil {
		labels, active = buttons[1:], 0
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, components.ButtonRow(labels, active)))
	return b.String()
}

// missedResults returns up to five wrong answers from the round.
func missedResults(item *session.HistoryItem) []session.QuestionResult {
	var out []session.QuestionResult
	for _, r := range item.Results {
		if r.Correct || r.Question == nil {
			continue
		}
		out = append(out, r)
		if len(out) == 5 {
			break
		}
	}
	return out
}
