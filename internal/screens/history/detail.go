package history

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/tablestar/internal/drill"
	"github.com/abhisek/tablestar/internal/screen"
	"github.com/abhisek/tablestar/internal/session"
	"github.com/abhisek/tablestar/internal/ui/layout"
	"github.com/abhisek/tablestar/internal/ui/theme"
)

// DetailScreen shows every question of one round.
type DetailScreen struct {
	item   session.HistoryItem
	offset int
}

var _ screen.Screen = (*DetailScreen)(nil)
var _ screen.KeyHintProvider = (*DetailScreen)(nil)

func newDetail(item session.HistoryItem) *DetailScreen {
	return &DetailScreen{item: item}
}

func (d *DetailScreen) Init() tea.Cmd { return nil }
func (d *DetailScreen) Title() string { return "Round Details" }

func (d *DetailScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (d *DetailScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "up", "k":
			if d.offset > 0 {
				d.offset--
			}
		case "down", "j":
			if d.offset < len(d.item.Results)-1 {
				d.offset++
			}
		}
	}
	return d, nil
}

func (d *DetailScreen) View(width, height int) string {
	it := d.item
	contentWidth := min(width-8, 70)

	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	val := lipgloss.NewStyle().Foreground(theme.Text)

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).
		Render(fmt.Sprintf("  %s  %s", it.Rank(), it.UserName)))
	b.WriteString("\n")
	b.WriteString(dim.Render("  " + it.Date.Local().Format(dateLayout)))
	b.WriteString("\n\n")

	b.WriteString(dim.Render("  Score:     ") + val.Render(fmt.Sprintf("%d (%d of %d correct, %.0f%%)",
		it.Score, it.Correct(), it.Questions, it.Percent())) + "\n")
	b.WriteString(dim.Render("  Tables:    ") + val.Render(fmt.Sprintf("%d to %d", it.Config.StartTable, it.Config.EndTable)) + "\n")
	b.WriteString(dim.Render("  Level:     ") + val.Render(string(it.Config.Difficulty)) + "\n")
	b.WriteString(dim.Render("  Questions: ") + val.Render(kindLabels(it.Config.Kinds)) + "\n\n")

	rows := max(height-10, 3)
	end := min(d.offset+rows, len(it.Results))
	for i := d.offset; i < end; i++ {
		b.WriteString(resultLine(i+1, it.Results[i], contentWidth))
		b.WriteString("\n")
	}
	if len(it.Results) == 0 {
		b.WriteString(dim.Italic(true).Render("  No questions were answered in this round."))
	}
	return b.String()
}

func resultLine(n int, r session.QuestionResult, width int) string {
	if r.Question == nil {
		return ""
	}
	mark := theme.Correct.Render("✓")
	detail := ""
	if !r.Correct {
		mark = theme.Incorrect.Render("✗")
		detail = lipgloss.NewStyle().Foreground(theme.TextDim).
			Render(fmt.Sprintf("  you said %s, answer %s", r.Submitted, r.Question.CorrectAnswer()))
	}
	prompt := lipgloss.NewStyle().Foreground(theme.Text).MaxWidth(width).Render(r.Question.Prompt())
	return fmt.Sprintf("  %2d. %s %s%s", n, mark, prompt, detail)
}

func kindLabels(kinds []drill.Kind) string {
	labels := make([]string, len(kinds))
	for i, k := range kinds {
		labels[i] = k.Label()
	}
	return strings.Join(labels, ", ")
}
