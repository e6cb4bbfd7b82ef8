package llm

import (
	"context"
	"encoding/json"
	"fmt"
)

// Provider sends prompts to one hosted model.
type Provider interface {
	// Generate runs a single completion. When req.Schema is set the reply is
	// validated JSON in Response.Content; otherwise it is plain text in
	// Response.Text.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier requests are sent to.
	ModelID() string
}

// Request is one completion call.
type Request struct {
	// System sets the assistant's persona and rules.
	System string

	// Messages is the conversation so far, oldest first. The last message
	// is normally from the user.
	Messages []Message

	// Schema, when set, asks for structured JSON output.
	Schema *Schema

	// MaxTokens caps the reply length.
	MaxTokens int

	// Temperature in [0, 1]; zero leaves the provider default.
	Temperature float64
}

// Message is one conversation turn.
type Message struct {
	Role    Role
	Content string
}

// Role identifies who sent a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// UserMessage is shorthand for a single user turn.
func UserMessage(text string) Message {
	return Message{Role: RoleUser, Content: text}
}

// Schema describes the JSON object a structured reply must match.
type Schema struct {
	// Name identifies the schema, kebab-case. It doubles as the tool name
	// for providers that implement structured output through tool calls.
	Name string

	// Description tells the model what the object represents.
	Description string

	// Definition is a JSON Schema document. Use []any for "required" and
	// "enum" lists.
	Definition map[string]any
}

// StopReason is the normalised reason generation ended.
type StopReason string

const (
	StopEnd       StopReason = "end"
	StopMaxTokens StopReason = "max_tokens"
)

// Response is a completed generation.
type Response struct {
	// Content holds the validated JSON object for structured requests.
	Content json.RawMessage

	// Text holds the reply for plain-text requests.
	Text string

	Usage      Usage
	Model      string
	StopReason StopReason
}

// Decode unmarshals structured content into v.
func (r *Response) Decode(v any) error {
	if len(r.Content) == 0 {
		return fmt.Errorf("decode response: no structured content")
	}
	if err := json.Unmarshal(r.Content, v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// Usage is the token count of one call.
type Usage struct {
	InputTokens  int
	OutputTokens int
}

// Total returns input plus output tokens.
func (u Usage) Total() int {
	return u.InputTokens + u.OutputTokens
}

// finish turns raw provider output into a Response: truncated structured
// replies are rejected, structured replies are validated, and plain replies
// are passed through as text.
func finish(req Request, raw string, stop StopReason, usage Usage, model string) (*Response, error) {
	resp := &Response{Usage: usage, Model: model, StopReason: stop}
	if req.Schema == nil {
		resp.Text = raw
		return resp, nil
	}
	content := json.RawMessage(raw)
	if stop == StopMaxTokens {
		return nil, &ErrMaxTokensExceeded{Content: content}
	}
	if err := validateResponse(req.Schema, content); err != nil {
		return nil, err
	}
	resp.Content = content
	return resp, nil
}
