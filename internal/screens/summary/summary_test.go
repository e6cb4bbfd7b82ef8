package summary

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/tablestar/internal/drill"
	"github.com/abhisek/tablestar/internal/router"
	"github.com/abhisek/tablestar/internal/screen"
	"github.com/abhisek/tablestar/internal/session"
)

type stubScreen struct{}

func (stubScreen) Init() tea.Cmd                           { return nil }
func (s stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (stubScreen) View(int, int) string                    { return "practice" }
func (stubScreen) Title() string                           { return "Practice" }

func testItem() *session.HistoryItem {
	fact := drill.NewFact(drill.Multiply, 7, 8)
	return &session.HistoryItem{
		ID:        "round-1",
		Date:      time.Date(2026, 5, 1, 17, 0, 0, 0, time.UTC),
		Score:     80,
		Questions: 10,
		UserName:  "Mai",
		Results: append(
			[]session.QuestionResult{{Question: drill.Calculation{Fact: fact}, Submitted: "54", Correct: false}},
			correctResults(9)...,
		),
	}
}

func correctResults(n int) []session.QuestionResult {
	out := make([]session.QuestionResult, n)
	for i := range out {
		out[i] = session.QuestionResult{Question: drill.Calculation{Fact: drill.NewFact(drill.Multiply, 2, 3)}, Submitted: "6", Correct: true}
	}
	return out
}

func TestSummaryScreen_Title(t *testing.T) {
	s := New(testItem(), nil, nil)
	if s.Title() != "Round Complete" {
		t.Errorf("Title = %q, want %q", s.Title(), "Round Complete")
	}
}

func TestSummaryScreen_Display(t *testing.T) {
	s := New(testItem(), nil, nil)
	view := s.View(100, 30)
	for _, want := range []string{"Well played, Mai!", "80 points", "9 of 10 correct", "Champion", "7 × 8"} {
		if !strings.Contains(view, want) {
			t.Errorf("summary view missing %q", want)
		}
	}
	if strings.Contains(view, "could not be saved") {
		t.Error("no save warning expected")
	}
}

func TestSummaryScreen_SaveWarning(t *testing.T) {
	s := New(testItem(), errors.New("disk full"), nil)
	if !strings.Contains(s.View(100, 30), "could not be saved") {
		t.Error("expected save warning")
	}
}

func TestSummaryScreen_EnterGoesHome(t *testing.T) {
	s := New(testItem(), nil, nil)
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command on Enter")
	}
	if _, ok := cmd().(router.PopToRootMsg); !ok {
		t.Error("expected PopToRootMsg")
	}
}

func TestSummaryScreen_PlayAgain(t *testing.T) {
	calls := 0
	s := New(testItem(), nil, func() screen.Screen {
		calls++
		return stubScreen{}
	})

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command on Enter")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", cmd())
	}
	if msg.Screen.Title() != "Practice" || calls != 1 {
		t.Error("expected a fresh practice screen")
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	_, cmd = s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if _, ok := cmd().(router.PopToRootMsg); !ok {
		t.Error("Home button should pop to root")
	}
}

func TestSummaryScreen_EscGoesHome(t *testing.T) {
	s := New(testItem(), nil, nil)
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected a command on Esc")
	}
	if _, ok := cmd().(router.PopToRootMsg); !ok {
		t.Error("expected PopToRootMsg")
	}
}
