package practice

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/tablestar/internal/session"
	"github.com/abhisek/tablestar/internal/ui/components"
	"github.com/abhisek/tablestar/internal/ui/theme"
)

func fmtRound(n, total int) string {
	return fmt.Sprintf("%d/%d", n, total)
}

func (p *PracticeScreen) View(width, height int) string {
	switch {
	case p.errMsg != "":
		return renderError(width, p.errMsg)
	case p.finishing:
		return theme.Centered(theme.Hint, width, "\n\n\nSaving your round...")
	case p.confirmQuit:
		return renderQuitConfirm(width)
	case p.sess.Current() == nil:
		return theme.Centered(theme.Hint, width, "\n\n\nGetting ready...")
	}

	var b strings.Builder
	b.WriteString(p.renderInfoLine(width))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		components.NewProgressBar(p.sess.Count(), p.sess.Target(), min(width-8, 60)).View()))
	b.WriteString("\n\n\n")

	q := p.sess.Current()
	b.WriteString(theme.Centered(lipgloss.NewStyle().Foreground(theme.TextDim), width, q.Kind().Label()))
	b.WriteString("\n\n")
	prompt := lipgloss.NewStyle().
		Foreground(theme.Text).
		Bold(true).
		Width(min(width-8, 64)).
		Align(lipgloss.Center).
		Render(q.Prompt())
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, prompt))
	b.WriteString("\n\n")

	if p.choiceMode {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, p.choices.View()))
	} else {
		b.WriteString(theme.Centered(lipgloss.NewStyle(), width, "Answer: "+p.input.View()))
	}
	b.WriteString("\n\n")

	if p.feedback != nil {
		b.WriteString(p.renderFeedback(width))
	}
	return b.String()
}

func (p *PracticeScreen) renderInfoLine(width int) string {
	cfg := p.sess.Config()
	tables := fmt.Sprintf("Tables %d-%d", cfg.StartTable, cfg.EndTable)
	if cfg.StartTable == cfg.EndTable {
		tables = fmt.Sprintf("Table of %d", cfg.StartTable)
	}
	left := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render("  " + tables)

	elapsed := p.sess.Elapsed()
	right := lipgloss.NewStyle().Foreground(theme.TextDim).Render(
		fmt.Sprintf("%s %d   ⏱ %d:%02d  ",
			lipgloss.NewStyle().Foreground(theme.Accent).Render("★"),
			p.sess.Score(),
			int(elapsed.Minutes()), int(elapsed.Seconds())%60))

	pad := width - lipgloss.Width(left) - lipgloss.Width(right)
	if pad < 1 {
		return left
	}
	return left + strings.Repeat(" ", pad) + right
}

func (p *PracticeScreen) renderFeedback(width int) string {
	res := p.feedback
	var lines []string

	if res.Correct {
		if p.sparkle > 0 {
			lines = append(lines, lipgloss.PlaceHorizontal(width, lipgloss.Center, components.Sparkle(p.frame, min(width-8, 40))))
		}
		lines = append(lines, theme.Centered(theme.Correct, width,
			fmt.Sprintf("✓ Correct! +%d", session.PointsPerCorrect)))
	} else {
		lines = append(lines,
			theme.Centered(theme.Incorrect, width, "✗ Not quite"),
			theme.Centered(lipgloss.NewStyle().Foreground(theme.TextDim), width,
				"The answer is "+DisplayAnswer(res.Question, res.Question.CorrectAnswer())))
	}

	next := "Press any key for the next question"
	if p.sess.Phase() == session.PhaseCompleted {
		next = "Press any key to see your score"
	}
	lines = append(lines, "", theme.Centered(theme.Hint, width, next))
	return strings.Join(lines, "\n")
}

func renderQuitConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(theme.Centered(lipgloss.NewStyle().Foreground(theme.Text).Bold(true), width, "End this round early?"))
	b.WriteString("\n")
	b.WriteString(theme.Centered(lipgloss.NewStyle().Foreground(theme.TextDim), width, "Your answers so far will be saved."))
	b.WriteString("\n\n")
	b.WriteString(theme.Centered(lipgloss.NewStyle().Foreground(theme.Success), width, "[Y] Yes, end the round"))
	b.WriteString("\n")
	b.WriteString(theme.Centered(lipgloss.NewStyle().Foreground(theme.Primary), width, "[N] No, keep going"))
	return b.String()
}

func renderError(width int, errMsg string) string {
	return theme.Centered(lipgloss.NewStyle().Foreground(theme.Error), width,
		fmt.Sprintf("\n\n\nCould not start the round: %s\n\nPress any key to go back.", errMsg))
}
