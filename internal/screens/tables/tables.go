// Package tables shows the times tables for reading and self-testing.
package tables

import (
	"fmt"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/tablestar/internal/drill"
	"github.com/abhisek/tablestar/internal/screen"
	"github.com/abhisek/tablestar/internal/ui/components"
	"github.com/abhisek/tablestar/internal/ui/layout"
	"github.com/abhisek/tablestar/internal/ui/theme"
)

// TablesScreen displays one table at a time. Answers can be hidden to
// let the learner recite the table.
type TablesScreen struct {
	table  int
	op     drill.Operation
	hidden bool
	row    int // highlighted multiplier index
}

var _ screen.Screen = (*TablesScreen)(nil)
var _ screen.KeyHintProvider = (*TablesScreen)(nil)

// New returns the screen opened on the first table.
func New() *TablesScreen {
	return &TablesScreen{table: drill.MinTable, op: drill.Multiply}
}

func (s *TablesScreen) Init() tea.Cmd { return nil }

func (s *TablesScreen) Title() string {
	return fmt.Sprintf("Table of %d", s.table)
}

func (s *TablesScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "←→", Description: "Table"},
		{Key: "↑↓", Description: "Row"},
		{Key: "Tab", Description: "× / ÷"},
		{Key: "Space", Description: "Hide answers"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *TablesScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}
	rows := drill.MaxMultiplier - drill.MinMultiplier + 1
	switch kmsg.String() {
	case "left", "h":
		if s.table > drill.MinTable {
			s.table--
		}
	case "right", "l":
		if s.table < drill.MaxTable {
			s.table++
		}
	case "up", "k":
		s.row = (s.row + rows - 1) % rows
	case "down", "j":
		s.row = (s.row + 1) % rows
	case "tab":
		if s.op == drill.Multiply {
			s.op = drill.Divide
		} else {
			s.op = drill.Multiply
		}
	case "space", " ":
		s.hidden = !s.hidden
	default:
		if n, err := strconv.Atoi(kmsg.String()); err == nil && n >= drill.MinTable && n <= drill.MaxTable {
			s.table = n
		}
	}
	return s, nil
}

// Lines returns the rows of the current table, with answers masked when
// hidden.
func (s *TablesScreen) Lines() []string {
	var out []string
	for m := drill.MinMultiplier; m <= drill.MaxMultiplier; m++ {
		f := drill.NewFact(s.op, s.table, m)
		answer := strconv.Itoa(f.Result)
		if s.hidden && m-drill.MinMultiplier != s.row {
			answer = strings.Repeat("?", len(answer))
		}
		out = append(out, fmt.Sprintf("%3d %s %-2d = %s", f.Left, f.Op.Symbol(), f.Right, answer))
	}
	return out
}

func (s *TablesScreen) View(width, height int) string {
	var tabs []string
	for t := drill.MinTable; t <= drill.MaxTable; t++ {
		style := theme.Unselected
		if t == s.table {
			style = theme.Selected
		}
		tabs = append(tabs, style.Render(strconv.Itoa(t)))
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(theme.Centered(lipgloss.NewStyle(), width, strings.Join(tabs, "  ")))
	b.WriteString("\n")
	b.WriteString(theme.Centered(theme.Hint, width, s.op.Label()))
	b.WriteString("\n\n")

	lines := s.Lines()
	for i, l := range lines {
		style := theme.Body
		if i == s.row {
			style = lipgloss.NewStyle().Foreground(theme.StarGold).Bold(true)
		}
		lines[i] = style.Render(l)
	}
	card := components.Card(strings.Join(lines, "\n"), min(components.ContentWidth(width), 30))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, card))
	return b.String()
}
