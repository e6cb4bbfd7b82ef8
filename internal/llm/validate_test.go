package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func testSchema() *Schema {
	return &Schema{
		Name:        "answer",
		Description: "A single answer",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"answer": map[string]any{"type": "string"},
			},
			"required":             []any{"answer"},
			"additionalProperties": false,
		},
	}
}

func quizItemSchema() *Schema {
	return &Schema{
		Name: "quiz-item-test",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"question": map[string]any{"type": "string"},
				"options": map[string]any{
					"type":     "array",
					"items":    map[string]any{"type": "string"},
					"minItems": 2,
				},
				"level": map[string]any{"type": "string", "enum": []any{"easy", "medium", "hard"}},
				"hint":  map[string]any{"type": "string"},
			},
			"required": []any{"question", "options", "level"},
		},
	}
}

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"valid", `{"question":"2x3?","options":["5","6"],"level":"easy","hint":"count"}`, false},
		{"optional omitted", `{"question":"2x3?","options":["5","6"],"level":"easy"}`, false},
		{"missing required", `{"question":"2x3?","options":["5","6"]}`, true},
		{"wrong type", `{"question":7,"options":["5","6"],"level":"easy"}`, true},
		{"bad enum", `{"question":"2x3?","options":["5","6"],"level":"extreme"}`, true},
		{"too few items", `{"question":"2x3?","options":["6"],"level":"easy"}`, true},
		{"malformed", `{"question":`, true},
		{"empty", ``, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(quizItemSchema(), json.RawMessage(tt.raw))
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var invalid *ErrInvalidResponse
				if !errors.As(err, &invalid) {
					t.Fatalf("expected ErrInvalidResponse, got %T", err)
				}
				if string(invalid.Content) != tt.raw {
					t.Fatalf("content not preserved: %s", invalid.Content)
				}
			}
		})
	}
}

func TestValidateResponse_NilSchema(t *testing.T) {
	if err := validateResponse(nil, json.RawMessage(`not json`)); err != nil {
		t.Fatalf("nil schema should skip validation: %v", err)
	}
}

func TestValidateResponse_AdditionalPropertiesRejected(t *testing.T) {
	err := validateResponse(testSchema(), json.RawMessage(`{"answer":"1","extra":true}`))
	if err == nil {
		t.Fatal("expected additional property to be rejected")
	}
}
