package history

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/tablestar/internal/drill"
	"github.com/abhisek/tablestar/internal/router"
	"github.com/abhisek/tablestar/internal/session"
)

func seed(t *testing.T, names ...string) *session.MemoryRecorder {
	t.Helper()
	rec := session.NewMemoryRecorder()
	for i, name := range names {
		item := session.HistoryItem{
			ID:        name,
			Date:      time.Date(2026, 3, 1+i, 9, 0, 0, 0, time.UTC),
			Score:     20,
			Questions: 5,
			Config:    drill.DefaultConfig(),
			UserName:  name,
			Results: []session.QuestionResult{
				{Question: drill.Calculation{Fact: drill.NewFact(drill.Multiply, 6, 7)}, Submitted: "41"},
			},
		}
		if err := rec.Append(context.Background(), item); err != nil {
			t.Fatal(err)
		}
	}
	return rec
}

func load(t *testing.T, s *HistoryScreen) {
	t.Helper()
	cmd := s.Init()
	if cmd == nil {
		t.Fatal("expected a load command")
	}
	s.Update(cmd())
}

func TestHistoryScreen_Empty(t *testing.T) {
	s := New(session.NewMemoryRecorder())
	if !strings.Contains(s.View(100, 30), "Loading") {
		t.Error("expected loading message before data arrives")
	}
	load(t, s)
	if !strings.Contains(s.View(100, 30), "No rounds yet") {
		t.Error("expected empty message")
	}
}

func TestHistoryScreen_NewestFirst(t *testing.T) {
	s := New(seed(t, "Ana", "Ben"))
	load(t, s)

	view := s.View(120, 30)
	ben, ana := strings.Index(view, "Ben"), strings.Index(view, "Ana")
	if ben < 0 || ana < 0 || ben > ana {
		t.Errorf("expected Ben before Ana in:\n%s", view)
	}
	if !strings.Contains(view, "Hard Worker") {
		t.Error("expected the rank in each row")
	}
}

func TestHistoryScreen_EnterOpensDetail(t *testing.T) {
	s := New(seed(t, "Ana"))
	load(t, s)

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a push command")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected PushScreenMsg")
	}
	view := push.Screen.View(100, 30)
	for _, want := range []string{"Ana", "6 × 7", "you said 41, answer 42"} {
		if !strings.Contains(view, want) {
			t.Errorf("detail view missing %q", want)
		}
	}
}

func TestHistoryScreen_ClearAll(t *testing.T) {
	rec := seed(t, "Ana", "Ben")
	s := New(rec)
	load(t, s)

	s.Update(tea.KeyPressMsg{Code: 'c', Text: "c"})
	if !s.CapturesInput() {
		t.Fatal("clear prompt should capture esc")
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if s.confirm {
		t.Fatal("esc should cancel the prompt")
	}

	s.Update(tea.KeyPressMsg{Code: 'c', Text: "c"})
	_, cmd := s.Update(tea.KeyPressMsg{Code: 'y', Text: "y"})
	if cmd == nil {
		t.Fatal("expected a clear command")
	}
	s.Update(cmd())

	items, _ := rec.LoadAll(context.Background())
	if len(items) != 0 {
		t.Errorf("history has %d items after clear", len(items))
	}
	if !strings.Contains(s.View(100, 30), "No rounds yet") {
		t.Error("expected empty list after clear")
	}
}

func TestHistoryScreen_Navigation(t *testing.T) {
	s := New(seed(t, "Ana", "Ben", "Cy"))
	load(t, s)

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if s.selected != 2 {
		t.Errorf("selected = %d, want 2", s.selected)
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if s.selected != 1 {
		t.Errorf("selected = %d, want 1", s.selected)
	}
}
