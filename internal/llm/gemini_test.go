package llm

import (
	"testing"

	"google.golang.org/genai"
)

func TestGeminiModelMapping(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"gemini-flash", "gemini-2.5-flash"},
		{"gemini-pro", "gemini-2.5-pro"},
		{"gemini-2.0-flash", "gemini-2.0-flash"},
	}
	for _, tt := range tests {
		if got := resolveModel(tt.input, geminiModels); got != tt.expected {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestBuildGeminiSchema(t *testing.T) {
	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type":     "array",
				"minItems": 5,
				"maxItems": 5,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question": map[string]any{"type": "string"},
						"level":    map[string]any{"type": "string", "enum": []any{"easy", "hard"}},
						"points":   map[string]any{"type": "integer"},
					},
					"required": []any{"question"},
				},
			},
		},
		"required": []any{"questions"},
	}

	schema := buildGeminiSchema(def)

	if schema.Type != genai.TypeObject {
		t.Fatalf("type = %s", schema.Type)
	}
	if len(schema.Required) != 1 || schema.Required[0] != "questions" {
		t.Fatalf("required = %v", schema.Required)
	}
	questions := schema.Properties["questions"]
	if questions.Type != genai.TypeArray {
		t.Fatalf("questions type = %s", questions.Type)
	}
	if questions.MinItems == nil || *questions.MinItems != 5 {
		t.Fatalf("minItems = %v", questions.MinItems)
	}
	item := questions.Items
	if item.Properties["points"].Type != genai.TypeInteger {
		t.Fatalf("points type = %s", item.Properties["points"].Type)
	}
	if len(item.Properties["level"].Enum) != 2 {
		t.Fatalf("level enum = %v", item.Properties["level"].Enum)
	}
}
