// Package quiz runs model-generated multiple-choice quizzes.
package quiz

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/tablestar/internal/drill"
	"github.com/abhisek/tablestar/internal/router"
	"github.com/abhisek/tablestar/internal/screen"
	"github.com/abhisek/tablestar/internal/tutor"
	"github.com/abhisek/tablestar/internal/ui/components"
	"github.com/abhisek/tablestar/internal/ui/layout"
	"github.com/abhisek/tablestar/internal/ui/theme"
)

// generateTimeout bounds one quiz request.
const generateTimeout = 60 * time.Second

type stage int

const (
	stageTopic stage = iota
	stageLoading
	stageQuestion
	stageDone
)

var difficulties = []drill.Difficulty{drill.DifficultyEasy, drill.DifficultyMedium, drill.DifficultyHard}

// quizReadyMsg carries the result of one generation request. gen ties it
// to the request so a cancelled one is ignored.
type quizReadyMsg struct {
	gen       int
	questions []tutor.QuizQuestion
	err       error
}

// Generator produces quiz questions.
type Generator interface {
	Generate(ctx context.Context, topic string, difficulty drill.Difficulty) ([]tutor.QuizQuestion, error)
}

// QuizScreen asks for a topic, fetches a quiz and walks through it.
type QuizScreen struct {
	master     Generator
	stage      stage
	topic      components.TextInput
	difficulty int
	gen        int
	cancel     context.CancelFunc

	quiz    *tutor.Quiz
	choices components.MultiChoice
	errMsg  string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.InputCapturer = (*QuizScreen)(nil)

// New creates a quiz screen backed by master.
func New(master Generator) *QuizScreen {
	return &QuizScreen{
		master:     master,
		topic:      newTopicInput(),
		difficulty: 1,
	}
}

func newTopicInput() components.TextInput {
	return components.NewTextInput("e.g. the 7 times table", false, 80)
}

func (s *QuizScreen) Init() tea.Cmd {
	return s.topic.Init()
}

func (s *QuizScreen) Title() string {
	return "AI Quiz"
}

// CapturesInput keeps esc on this screen once a quiz is underway, so it
// returns to the topic prompt instead of leaving.
func (s *QuizScreen) CapturesInput() bool {
	return s.stage != stageTopic
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	switch s.stage {
	case stageTopic:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Make quiz"},
			{Key: "Tab", Description: "Difficulty"},
			{Key: "Esc", Description: "Back"},
		}
	case stageLoading:
		return []layout.KeyHint{{Key: "Esc", Description: "Cancel"}}
	case stageQuestion:
		if s.quiz.Answered() {
			return []layout.KeyHint{{Key: "any key", Description: "Continue"}}
		}
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Choose"},
			{Key: "A-D", Description: "Pick"},
			{Key: "Enter", Description: "Submit"},
			{Key: "Esc", Description: "New topic"},
		}
	default:
		return []layout.KeyHint{
			{Key: "Enter", Description: "New quiz"},
			{Key: "Esc", Description: "Back"},
		}
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case quizReadyMsg:
		if msg.gen != s.gen || s.stage != stageLoading {
			return s, nil
		}
		s.cancel = nil
		if msg.err != nil {
			s.errMsg = "I couldn't make a quiz just now. Try another topic or try again."
			s.stage = stageTopic
			return s, nil
		}
		s.quiz = tutor.NewQuiz(msg.questions)
		s.ask()
		s.stage = stageQuestion
		return s, nil

	case tea.KeyPressMsg:
		return s, s.handleKey(msg)
	}

	if s.stage == stageTopic {
		var cmd tea.Cmd
		s.topic, cmd = s.topic.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *QuizScreen) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	key := msg.String()
	switch s.stage {
	case stageTopic:
		switch key {
		case "enter":
			return s.generate()
		case "tab":
			s.difficulty = (s.difficulty + 1) % len(difficulties)
			return nil
		}
		var cmd tea.Cmd
		s.topic, cmd = s.topic.Update(msg)
		return cmd

	case stageLoading:
		if key == "esc" {
			s.stopLoading()
			s.stage = stageTopic
		}
		return nil

	case stageQuestion:
		if key == "esc" {
			s.restart()
			return nil
		}
		if s.quiz.Answered() {
			s.quiz.Next()
			if s.quiz.Done() {
				s.stage = stageDone
				return nil
			}
			s.ask()
			return nil
		}
		s.choices, _ = s.choices.Update(msg)
		if s.choices.Submitted {
			s.quiz.Answer(s.choices.Chosen())
		}
		return nil

	default:
		switch key {
		case "enter", "n":
			s.restart()
		case "esc", "q":
			return router.Pop()
		}
		return nil
	}
}

// generate starts a request for the typed topic.
func (s *QuizScreen) generate() tea.Cmd {
	topic := strings.TrimSpace(s.topic.Value())
	if topic == "" {
		s.errMsg = "Type a topic first, like \"the 6 times table\"."
		return nil
	}
	s.errMsg = ""
	s.stage = stageLoading
	s.gen++

	ctx, cancel := context.WithTimeout(context.Background(), generateTimeout)
	s.cancel = cancel
	gen, master, diff := s.gen, s.master, difficulties[s.difficulty]
	return func() tea.Msg {
		defer cancel()
		qs, err := master.Generate(ctx, topic, diff)
		return quizReadyMsg{gen: gen, questions: qs, err: err}
	}
}

func (s *QuizScreen) stopLoading() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// restart goes back to the topic prompt, keeping the last topic.
func (s *QuizScreen) restart() {
	s.stopLoading()
	s.quiz = nil
	s.stage = stageTopic
}

func (s *QuizScreen) ask() {
	q := s.quiz.Current()
	s.choices = components.NewMultiChoice(q.Options, slices.IndexFunc(q.Options, func(o string) bool {
		return q.IsCorrect(o)
	}))
}

func (s *QuizScreen) View(width, height int) string {
	switch s.stage {
	case stageLoading:
		return theme.Centered(theme.Hint, width, "\n\n\nThinking up some questions...\n\n(Esc to cancel)")
	case stageQuestion:
		return s.viewQuestion(width)
	case stageDone:
		return s.viewDone(width)
	}
	return s.viewTopic(width)
}

func (s *QuizScreen) viewTopic(width int) string {
	var b strings.Builder
	b.WriteString("\n\n")
	b.WriteString(theme.Centered(lipgloss.NewStyle().Foreground(theme.StarGold).Bold(true), width,
		"What should your quiz be about?"))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.topic.View()))
	b.WriteString("\n\n")

	var diffs []string
	for i, d := range difficulties {
		style := theme.Unselected
		if i == s.difficulty {
			style = theme.Selected
		}
		diffs = append(diffs, style.Render(string(d)))
	}
	b.WriteString(theme.Centered(lipgloss.NewStyle(), width, "Difficulty:  "+strings.Join(diffs, "  ")))
	b.WriteString("\n")

	if s.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(theme.Centered(lipgloss.NewStyle().Foreground(theme.Error), width, s.errMsg))
	}
	return b.String()
}

func (s *QuizScreen) viewQuestion(width int) string {
	q := s.quiz.Current()
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(theme.Centered(theme.Hint, width,
		fmt.Sprintf("Question %d of %d   ★ %d", s.quiz.Index()+1, len(s.quiz.Questions), s.quiz.Score())))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Width(cw).Align(lipgloss.Center).Render(q.Question)))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.choices.View()))
	b.WriteString("\n\n")

	if s.quiz.Answered() {
		if s.quiz.LastCorrect() {
			b.WriteString(theme.Centered(theme.Correct, width, "✓ Correct!"))
		} else {
			b.WriteString(theme.Centered(theme.Incorrect, width, "✗ The answer is "+q.CorrectAnswer))
		}
		b.WriteString("\n")
		if q.Explanation != "" {
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(theme.TextDim).Width(cw).Align(lipgloss.Center).Render(q.Explanation)))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (s *QuizScreen) viewDone(width int) string {
	total := len(s.quiz.Questions)
	msg := "Keep practicing, you're getting there!"
	switch {
	case s.quiz.Score() == total:
		msg = "Perfect score! You're a star!"
	case s.quiz.Score()*2 >= total:
		msg = "Great job!"
	}
	card := components.Card(strings.Join([]string{
		lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(fmt.Sprintf("★ %d of %d", s.quiz.Score(), total)),
		"",
		theme.Body.Render(msg),
	}, "\n"), min(components.ContentWidth(width), 40))

	var b strings.Builder
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, card))
	b.WriteString("\n\n")
	b.WriteString(theme.Centered(theme.Hint, width, "Enter for a new quiz, Esc to go back"))
	return b.String()
}
