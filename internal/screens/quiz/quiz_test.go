package quiz

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/tablestar/internal/drill"
	"github.com/abhisek/tablestar/internal/router"
	"github.com/abhisek/tablestar/internal/tutor"
)

type fakeMaster struct {
	questions  []tutor.QuizQuestion
	err        error
	topic      string
	difficulty drill.Difficulty
}

func (f *fakeMaster) Generate(_ context.Context, topic string, d drill.Difficulty) ([]tutor.QuizQuestion, error) {
	f.topic, f.difficulty = topic, d
	return f.questions, f.err
}

var sample = []tutor.QuizQuestion{
	{Question: "What is 6 × 7?", Options: []string{"36", "42", "48", "49"}, CorrectAnswer: "42", Explanation: "Six sevens make 42."},
	{Question: "What is 8 ÷ 2?", Options: []string{"2", "4", "6", "16"}, CorrectAnswer: "4", Explanation: "Two fours make 8."},
}

func typeText(s *QuizScreen, text string) {
	for _, r := range text {
		s.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

func key(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func enter() tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: tea.KeyEnter}
}

// start types a topic and runs the generation command.
func start(t *testing.T, s *QuizScreen, topic string) {
	t.Helper()
	typeText(s, topic)
	_, cmd := s.Update(enter())
	if cmd == nil {
		t.Fatal("expected a generation command")
	}
	if s.stage != stageLoading {
		t.Fatalf("stage = %v, want loading", s.stage)
	}
	s.Update(cmd())
}

func TestQuizScreen_BlankTopic(t *testing.T) {
	s := New(&fakeMaster{questions: sample})
	_, cmd := s.Update(enter())
	if cmd != nil {
		t.Error("blank topic should not start a request")
	}
	if !strings.Contains(s.View(100, 30), "Type a topic first") {
		t.Error("expected a hint about the topic")
	}
}

func TestQuizScreen_FullQuiz(t *testing.T) {
	m := &fakeMaster{questions: sample}
	s := New(m)
	s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	start(t, s, "sevens")

	if m.topic != "sevens" || m.difficulty != drill.DifficultyHard {
		t.Errorf("requested %q at %q", m.topic, m.difficulty)
	}
	if s.stage != stageQuestion {
		t.Fatalf("stage = %v, want question", s.stage)
	}
	if !s.CapturesInput() {
		t.Error("esc should stay on the screen during a quiz")
	}

	s.Update(key('b'))
	if !s.quiz.Answered() || !s.quiz.LastCorrect() {
		t.Fatal("B should be the right answer")
	}
	if !strings.Contains(s.View(100, 30), "Six sevens make 42.") {
		t.Error("explanation should be shown after answering")
	}

	s.Update(key(' '))
	s.Update(key('a'))
	if s.quiz.LastCorrect() {
		t.Fatal("A should be wrong")
	}
	if !strings.Contains(s.View(100, 30), "The answer is 4") {
		t.Error("view should show the right answer")
	}

	s.Update(key(' '))
	if s.stage != stageDone {
		t.Fatalf("stage = %v, want done", s.stage)
	}
	if !strings.Contains(s.View(100, 30), "1 of 2") {
		t.Error("expected the final score")
	}

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("esc on the score should leave")
	}
}

func TestQuizScreen_GenerationError(t *testing.T) {
	s := New(&fakeMaster{err: errors.New("offline")})
	start(t, s, "nines")

	if s.stage != stageTopic {
		t.Fatalf("stage = %v, want topic", s.stage)
	}
	if !strings.Contains(s.View(100, 30), "couldn't make a quiz") {
		t.Error("expected a friendly error")
	}
}

func TestQuizScreen_CancelIgnoresLateResult(t *testing.T) {
	s := New(&fakeMaster{questions: sample})
	typeText(s, "fives")
	_, cmd := s.Update(enter())

	s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if s.stage != stageTopic {
		t.Fatalf("stage = %v, want topic after cancel", s.stage)
	}
	s.Update(cmd())
	if s.stage != stageTopic || s.quiz != nil {
		t.Error("a cancelled request should be ignored")
	}
}

func TestQuizScreen_EscDuringQuizRestarts(t *testing.T) {
	s := New(&fakeMaster{questions: sample})
	start(t, s, "twos")

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd != nil {
		t.Error("esc during a quiz should not leave the screen")
	}
	if s.stage != stageTopic || s.topic.Value() != "twos" {
		t.Error("esc should return to the topic prompt keeping the topic")
	}
}
