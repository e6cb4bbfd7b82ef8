package components

import (
	"fmt"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/tablestar/internal/ui/theme"
)

var choiceLetters = []string{"A", "B", "C", "D", "E", "F"}

// MultiChoice is a closed-answer selector. Options are picked with the
// arrow keys and enter, or directly with their number or letter.
type MultiChoice struct {
	Options      []string // values handed back to the caller
	Labels       []string // what is shown; defaults to Options
	CorrectIndex int      // -1 when unknown
	Horizontal   bool
	Selected     int
	Submitted    bool
	ChosenIndex  int
}

// NewMultiChoice creates a vertical A/B/C/D selector.
func NewMultiChoice(options []string, correctIndex int) MultiChoice {
	return MultiChoice{
		Options:      options,
		CorrectIndex: correctIndex,
		ChosenIndex:  -1,
	}
}

// NewChoiceRow creates a horizontal selector whose labels may differ from
// the option values.
func NewChoiceRow(options, labels []string, correctIndex int) MultiChoice {
	m := NewMultiChoice(options, correctIndex)
	m.Labels = labels
	m.Horizontal = true
	return m
}

// Update handles navigation and selection. It does nothing once an option
// has been submitted.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Submitted {
		return m, nil
	}
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k", "left", "h":
		if m.Selected > 0 {
			m.Selected--
		}
		return m, nil
	case "down", "j", "right", "l":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
		return m, nil
	case "enter":
		m.Choose(m.Selected)
		return m, nil
	}

	if n, err := strconv.Atoi(key); err == nil {
		m.Choose(n - 1)
		return m, nil
	}
	if !m.Horizontal && len(key) == 1 {
		m.Choose(strings.Index("abcdef", strings.ToLower(key)))
	}
	return m, nil
}

// Choose submits option i. Out-of-range indexes are ignored.
func (m *MultiChoice) Choose(i int) {
	if m.Submitted || i < 0 || i >= len(m.Options) {
		return
	}
	m.Selected = i
	m.ChosenIndex = i
	m.Submitted = true
}

// Chosen returns the submitted option value, or "".
func (m MultiChoice) Chosen() string {
	if !m.Submitted {
		return ""
	}
	return m.Options[m.ChosenIndex]
}

// IsCorrect reports whether the submitted option is the correct one.
func (m MultiChoice) IsCorrect() bool {
	return m.Submitted && m.ChosenIndex == m.CorrectIndex
}

func (m MultiChoice) label(i int) string {
	if i < len(m.Labels) {
		return m.Labels[i]
	}
	return m.Options[i]
}

func (m MultiChoice) style(i int) lipgloss.Style {
	if m.Submitted {
		switch i {
		case m.CorrectIndex:
			return theme.Correct
		case m.ChosenIndex:
			return theme.Incorrect
		default:
			return lipgloss.NewStyle().Foreground(theme.TextDim)
		}
	}
	if i == m.Selected {
		return theme.Selected
	}
	return theme.Unselected
}

// View renders the options.
func (m MultiChoice) View() string {
	if m.Horizontal {
		cells := make([]string, len(m.Options))
		for i := range m.Options {
			box := lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(theme.Border).
				Padding(0, 2)
			if i == m.Selected && !m.Submitted {
				box = box.BorderForeground(theme.StarGold)
			}
			cells[i] = box.Render(m.style(i).Render(fmt.Sprintf("%d  %s", i+1, m.label(i))))
		}
		return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
	}

	var b strings.Builder
	for i := range m.Options {
		prefix := "  "
		if i == m.Selected && !m.Submitted {
			prefix = "▸ "
		}
		letter := strconv.Itoa(i + 1)
		if i < len(choiceLetters) {
			letter = choiceLetters[i]
		}
		b.WriteString(m.style(i).Render(fmt.Sprintf("%s%s)  %s", prefix, letter, m.label(i))))
		b.WriteString("\n")
	}
	return b.String()
}
