// Package chat is the conversation screen with the times tables tutor.
package chat

import (
	"context"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/tablestar/internal/llm"
	"github.com/abhisek/tablestar/internal/screen"
	"github.com/abhisek/tablestar/internal/ui/components"
	"github.com/abhisek/tablestar/internal/ui/layout"
	"github.com/abhisek/tablestar/internal/ui/theme"
)

const replyTimeout = 45 * time.Second

// Replier answers the learner given the earlier turns.
type Replier interface {
	Greeting() string
	Reply(ctx context.Context, history []llm.Message, message string) (string, error)
}

type replyMsg struct {
	question string
	text     string
	err      error
}

// ChatScreen shows the conversation and an input line.
type ChatScreen struct {
	tutor      Replier
	transcript []llm.Message // everything shown, greeting included
	history    []llm.Message // turns sent back to the model
	input      components.TextInput
	waiting    bool
}

var _ screen.Screen = (*ChatScreen)(nil)
var _ screen.KeyHintProvider = (*ChatScreen)(nil)

// New opens a conversation with t.
func New(t Replier) *ChatScreen {
	return &ChatScreen{
		tutor:      t,
		transcript: []llm.Message{{Role: llm.RoleAssistant, Content: t.Greeting()}},
		input:      components.NewTextInput("Ask me anything about times tables", false, 200),
	}
}

func (s *ChatScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *ChatScreen) Title() string {
	return "Ask the Tutor"
}

func (s *ChatScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Send"},
		{Key: "Esc", Description: "Back"},
	}
}

// Transcript returns the messages shown so far.
func (s *ChatScreen) Transcript() []llm.Message {
	return s.transcript
}

func (s *ChatScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case replyMsg:
		s.waiting = false
		s.transcript = append(s.transcript, llm.Message{Role: llm.RoleAssistant, Content: msg.text})
		if msg.err == nil {
			s.history = append(s.history, llm.UserMessage(msg.question),
				llm.Message{Role: llm.RoleAssistant, Content: msg.text})
		}
		return s, nil

	case tea.KeyPressMsg:
		if msg.String() == "enter" {
			return s, s.send()
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *ChatScreen) send() tea.Cmd {
	text := strings.TrimSpace(s.input.Value())
	if text == "" || s.waiting {
		return nil
	}
	s.input.Reset()
	s.waiting = true
	s.transcript = append(s.transcript, llm.UserMessage(text))

	t := s.tutor
	history := append([]llm.Message(nil), s.history...)
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), replyTimeout)
		defer cancel()
		reply, err := t.Reply(ctx, history, text)
		return replyMsg{question: text, text: reply, err: err}
	}
}

func (s *ChatScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	bubble := lipgloss.NewStyle().Width(cw - 4).Padding(0, 1)
	tutorStyle := bubble.Foreground(theme.Text).BorderLeft(true).
		BorderStyle(lipgloss.ThickBorder()).BorderForeground(theme.StarGold)
	learnerStyle := bubble.Foreground(theme.SkyCyan).Align(lipgloss.Right)

	var blocks []string
	for _, m := range s.transcript {
		if m.Role == llm.RoleUser {
			blocks = append(blocks, learnerStyle.Render(m.Content))
		} else {
			blocks = append(blocks, tutorStyle.Render("★ "+m.Content))
		}
	}
	if s.waiting {
		blocks = append(blocks, theme.Hint.Render("  ★ thinking..."))
	}

	// Keep the latest lines visible above the input.
	lines := strings.Split(strings.Join(blocks, "\n\n"), "\n")
	if room := max(height-4, 3); len(lines) > room {
		lines = lines[len(lines)-room:]
	}

	var b strings.Builder
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Width(cw).Render(strings.Join(lines, "\n"))))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Width(cw).Render(s.input.View())))
	return b.String()
}
