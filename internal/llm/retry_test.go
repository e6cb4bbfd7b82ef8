package llm

import (
	"context"
	"errors"
	"testing"
	"time"
)

func newTestRetry(p Provider, attempts int) (*RetryProvider, *[]time.Duration) {
	var waits []time.Duration
	r := WithRetry(p, RetryConfig{
		MaxAttempts: attempts,
		InitialWait: 100 * time.Millisecond,
		MaxWait:     time.Second,
		Multiplier:  2,
	}).(*RetryProvider)
	r.sleep = func(ctx context.Context, d time.Duration) error {
		waits = append(waits, d)
		return ctx.Err()
	}
	return r, &waits
}

func textReq() Request {
	return Request{Messages: []Message{UserMessage("hi")}}
}

func TestRetry_SucceedsOnFirstAttempt(t *testing.T) {
	mock := NewMockProvider(MockResponse{Text: "ok"})
	r, waits := newTestRetry(mock, 3)

	resp, err := r.Generate(context.Background(), textReq())
	if err != nil {
		t.Fatal(err)
	}
	if resp.Text != "ok" || mock.CallCount() != 1 || len(*waits) != 0 {
		t.Fatalf("resp=%+v calls=%d waits=%v", resp, mock.CallCount(), *waits)
	}
}

func TestRetry_TransientThenSuccess(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("502")}},
		MockResponse{Err: &ErrRateLimit{Err: errors.New("429")}},
		MockResponse{Text: "ok"},
	)
	r, waits := newTestRetry(mock, 3)

	if _, err := r.Generate(context.Background(), textReq()); err != nil {
		t.Fatal(err)
	}
	if mock.CallCount() != 3 {
		t.Fatalf("calls = %d, want 3", mock.CallCount())
	}
	if len(*waits) != 2 {
		t.Fatalf("waits = %v", *waits)
	}
	// 100ms then 200ms, each within ±20%
	if w := (*waits)[1]; w < 160*time.Millisecond || w > 240*time.Millisecond {
		t.Fatalf("second wait = %s", w)
	}
}

func TestRetry_AllAttemptsFail(t *testing.T) {
	mock := NewMockProvider()
	r, waits := newTestRetry(mock, 3)

	_, err := r.Generate(context.Background(), textReq())
	var unavailable *ErrProviderUnavailable
	if !errors.As(err, &unavailable) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
	if mock.CallCount() != 3 || len(*waits) != 2 {
		t.Fatalf("calls=%d waits=%d", mock.CallCount(), len(*waits))
	}
}

func TestRetry_NotRetried(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"max tokens", &ErrMaxTokensExceeded{}},
		{"canceled", context.Canceled},
		{"client error", errors.New("400 bad request")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := NewMockProvider(MockResponse{Err: tt.err}, MockResponse{Text: "unused"})
			r, _ := newTestRetry(mock, 3)
			if _, err := r.Generate(context.Background(), textReq()); !errors.Is(err, tt.err) {
				t.Fatalf("err = %v", err)
			}
			if mock.CallCount() != 1 {
				t.Fatalf("calls = %d, want 1", mock.CallCount())
			}
		})
	}
}

func TestRetry_InvalidResponseRetriedOnce(t *testing.T) {
	invalid := &ErrInvalidResponse{Err: errors.New("bad json")}
	mock := NewMockProvider(MockResponse{Err: invalid}, MockResponse{Err: invalid}, MockResponse{Text: "unused"})
	r, _ := newTestRetry(mock, 5)

	_, err := r.Generate(context.Background(), textReq())
	if !errors.Is(err, invalid) {
		t.Fatalf("err = %v", err)
	}
	if mock.CallCount() != 2 {
		t.Fatalf("calls = %d, want 2", mock.CallCount())
	}
}

func TestRetry_ContextCancelledDuringWait(t *testing.T) {
	mock := NewMockProvider(MockResponse{Err: &ErrProviderUnavailable{}}, MockResponse{Text: "unused"})
	r, _ := newTestRetry(mock, 3)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := r.Generate(ctx, textReq()); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v", err)
	}
	if mock.CallCount() != 1 {
		t.Fatalf("calls = %d", mock.CallCount())
	}
}

func TestRetry_RateLimitRespectsRetryAfter(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrRateLimit{RetryAfter: 7 * time.Second}},
		MockResponse{Text: "ok"},
	)
	r, waits := newTestRetry(mock, 3)

	if _, err := r.Generate(context.Background(), textReq()); err != nil {
		t.Fatal(err)
	}
	if len(*waits) != 1 || (*waits)[0] != 7*time.Second {
		t.Fatalf("waits = %v", *waits)
	}
}

func TestRetry_BackoffCapped(t *testing.T) {
	r, _ := newTestRetry(NewMockProvider(), 10)
	for attempt := range 8 {
		if w := r.backoff(attempt, errors.New("x")); w > 1200*time.Millisecond {
			t.Fatalf("attempt %d wait %s exceeds cap plus jitter", attempt, w)
		}
	}
}

func TestTimeoutProvider(t *testing.T) {
	var deadline time.Time
	var ok bool
	p := WithTimeout(providerFunc(func(ctx context.Context, _ Request) (*Response, error) {
		deadline, ok = ctx.Deadline()
		return &Response{}, nil
	}), time.Minute)

	if _, err := p.Generate(context.Background(), textReq()); err != nil {
		t.Fatal(err)
	}
	if !ok || time.Until(deadline) > time.Minute {
		t.Fatalf("deadline not applied: %v %v", deadline, ok)
	}
}

type providerFunc func(ctx context.Context, req Request) (*Response, error)

func (f providerFunc) Generate(ctx context.Context, req Request) (*Response, error) {
	return f(ctx, req)
}

func (f providerFunc) ModelID() string { return "func" }
