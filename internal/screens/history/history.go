// Package history lists finished practice rounds.
package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/tablestar/internal/router"
	"github.com/abhisek/tablestar/internal/screen"
	"github.com/abhisek/tablestar/internal/session"
	"github.com/abhisek/tablestar/internal/ui/layout"
	"github.com/abhisek/tablestar/internal/ui/theme"
)

const dateLayout = "Jan 02, 2006 15:04"

type historyLoadedMsg struct {
	Items []session.HistoryItem
	Err   error
}

type historyClearedMsg struct {
	Err error
}

// HistoryScreen displays past rounds, newest first.
type HistoryScreen struct {
	recorder session.Recorder
	items    []session.HistoryItem
	selected int
	offset   int
	loaded   bool
	confirm  bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)
var _ screen.InputCapturer = (*HistoryScreen)(nil)
var _ router.Refresher = (*HistoryScreen)(nil)

// New creates a HistoryScreen reading from recorder.
func New(recorder session.Recorder) *HistoryScreen {
	return &HistoryScreen{recorder: recorder}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return s.load()
}

// Refresh reloads the list when the screen is uncovered.
func (s *HistoryScreen) Refresh() tea.Cmd {
	return s.load()
}

func (s *HistoryScreen) load() tea.Cmd {
	rec := s.recorder
	return func() tea.Msg {
		if rec == nil {
			return historyLoadedMsg{}
		}
		items, err := rec.LoadAll(context.Background())
		return historyLoadedMsg{Items: items, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

// CapturesInput keeps esc for dismissing the clear prompt.
func (s *HistoryScreen) CapturesInput() bool {
	return s.confirm
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	if s.confirm {
		return []layout.KeyHint{
			{Key: "Y", Description: "Clear"},
			{Key: "N", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Details"},
		{Key: "C", Description: "Clear all"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		s.loaded = true
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.errMsg = ""
		s.items = msg.Items
		s.selected = min(s.selected, max(len(s.items)-1, 0))
		return s, nil

	case historyClearedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.items, s.selected, s.offset = nil, 0, 0
		return s, nil

	case tea.KeyPressMsg:
		if s.confirm {
			switch msg.String() {
			case "y", "Y":
				s.confirm = false
				return s, s.clear()
			case "n", "N", "esc":
				s.confirm = false
			}
			return s, nil
		}

		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.items)-1 {
				s.selected++
			}
		case "enter":
			if s.selected < len(s.items) {
				return s, router.Push(newDetail(s.items[s.selected]))
			}
		case "c":
			if len(s.items) > 0 {
				s.confirm = true
			}
		}
	}
	return s, nil
}

func (s *HistoryScreen) clear() tea.Cmd {
	rec := s.recorder
	return func() tea.Msg {
		if rec == nil {
			return historyClearedMsg{}
		}
		return historyClearedMsg{Err: rec.ClearAll(context.Background())}
	}
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return theme.Centered(lipgloss.NewStyle().Foreground(theme.Error), width,
			fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return theme.Centered(lipgloss.NewStyle().Foreground(theme.TextDim), width, "\n\n  Loading history...")
	}
	if len(s.items) == 0 {
		return theme.Centered(lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true), width,
			"\n\n  No rounds yet. Start practicing!")
	}
	if s.confirm {
		return theme.Centered(lipgloss.NewStyle().Foreground(theme.Text).Bold(true), width,
			fmt.Sprintf("\n\n\nDelete all %d rounds from your history?\n\n[Y] Yes   [N] No", len(s.items)))
	}

	rows := max(height-4, 3)
	if s.selected < s.offset {
		s.offset = s.selected
	}
	if s.selected >= s.offset+rows {
		s.offset = s.selected - rows + 1
	}

	var b strings.Builder
	b.WriteString("\n")
	end := min(s.offset+rows, len(s.items))
	for i := s.offset; i < end; i++ {
		line := summaryLine(s.items[i])
		prefix := "  "
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			prefix = "▸ "
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(prefix+line)))
		b.WriteString("\n")
	}
	if len(s.items) > rows {
		b.WriteString(theme.Centered(theme.Hint, width,
			fmt.Sprintf("%d-%d of %d", s.offset+1, end, len(s.items))))
	}
	return b.String()
}

// summaryLine renders one history row.
func summaryLine(item session.HistoryItem) string {
	return fmt.Sprintf("%s  %-10s  %2d/%-2d  ★ %3d  %s",
		item.Date.Local().Format(dateLayout),
		item.UserName,
		item.Correct(), item.Questions,
		item.Score,
		item.Rank())
}
