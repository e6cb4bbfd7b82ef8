package store

import (
	"context"
	"testing"
	"time"
)

func TestLLMEvents_AppendQueryGet(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []LLMRequestEventData{
		{Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "quiz", InputTokens: 100, OutputTokens: 400, LatencyMs: 900, Success: true, RequestBody: "[user]\nquiz", ResponseBody: "{}"},
		{Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "tutor", InputTokens: 50, OutputTokens: 80, LatencyMs: 300, Success: true},
		{Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "quiz", LatencyMs: 100, Success: false, ErrorMessage: "rate limited"},
	}
	for _, e := range events {
		if err := repo.AppendLLMRequest(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	all, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("len = %d, want 3", len(all))
	}
	if all[0].ErrorMessage != "rate limited" || all[0].Success {
		t.Errorf("newest event = %+v", all[0])
	}
	if all[0].Sequence <= all[1].Sequence {
		t.Errorf("sequence not descending: %d then %d", all[0].Sequence, all[1].Sequence)
	}

	quiz, err := repo.QueryLLMEvents(ctx, QueryOpts{Purpose: "quiz", Limit: 1})
	if err != nil {
		t.Fatalf("query quiz: %v", err)
	}
	if len(quiz) != 1 || quiz[0].Purpose != "quiz" {
		t.Errorf("quiz events = %+v", quiz)
	}

	future, err := repo.QueryLLMEvents(ctx, QueryOpts{From: time.Now().Add(time.Hour)})
	if err != nil {
		t.Fatalf("query future: %v", err)
	}
	if len(future) != 0 {
		t.Errorf("expected no events from the future, got %d", len(future))
	}

	first := all[2]
	got, err := repo.GetLLMEvent(ctx, first.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || got.RequestBody != "[user]\nquiz" || got.ResponseBody != "{}" {
		t.Errorf("get = %+v", got)
	}

	missing, err := repo.GetLLMEvent(ctx, 9999)
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for missing event")
	}
}

func TestLLMEvents_Usage(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	data := []LLMRequestEventData{
		{Model: "gpt-4o-mini", Purpose: "quiz", InputTokens: 10, OutputTokens: 20, LatencyMs: 100, Success: true},
		{Model: "gpt-4o-mini", Purpose: "quiz", InputTokens: 30, OutputTokens: 40, LatencyMs: 300, Success: true},
		{Model: "claude-haiku-4-5", Purpose: "tutor", InputTokens: 5, OutputTokens: 6, LatencyMs: 50, Success: true},
	}
	for _, d := range data {
		if err := repo.AppendLLMRequest(ctx, d); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("usage by purpose: %v", err)
	}
	if len(byPurpose) != 2 {
		t.Fatalf("len = %d, want 2", len(byPurpose))
	}
	q := byPurpose[0]
	if q.Purpose != "quiz" || q.Calls != 2 || q.InputTokens != 40 || q.OutputTokens != 60 || q.AvgLatencyMs != 200 {
		t.Errorf("quiz usage = %+v", q)
	}

	byModel, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatalf("usage by model: %v", err)
	}
	if len(byModel) != 2 || byModel[0].Model != "claude-haiku-4-5" || byModel[1].Calls != 2 {
		t.Errorf("model usage = %+v", byModel)
	}
}
