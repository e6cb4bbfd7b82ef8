package tutor

import (
	"context"
	"strings"

	"github.com/abhisek/tablestar/internal/llm"
)

// maxHistory caps how many earlier turns are sent with each question.
const maxHistory = 20

// Tutor answers children's questions about times tables.
type Tutor struct {
	provider  llm.Provider
	maxTokens int
}

// NewTutor creates a Tutor.
func NewTutor(provider llm.Provider) *Tutor {
	return &Tutor{provider: provider, maxTokens: 512}
}

// Greeting returns the opening message.
func (t *Tutor) Greeting() string {
	return greeting
}

// Reply answers message given the earlier conversation. It always returns
// something to show: on failure that is a gentle fallback and the error
// is returned alongside it.
func (t *Tutor) Reply(ctx context.Context, history []llm.Message, message string) (string, error) {
	if len(history) > maxHistory {
		history = history[len(history)-maxHistory:]
	}
	msgs := make([]llm.Message, 0, len(history)+1)
	msgs = append(msgs, history...)
	msgs = append(msgs, llm.UserMessage(message))

	ctx = llm.WithPurpose(ctx, llm.PurposeTutor)
	resp, err := t.provider.Generate(ctx, llm.Request{
		System:      tutorSystemPrompt,
		Messages:    msgs,
		MaxTokens:   t.maxTokens,
		Temperature: 0.8,
	})
	if err != nil {
		return FallbackError, err
	}
	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return FallbackEmpty, nil
	}
	return text, nil
}
