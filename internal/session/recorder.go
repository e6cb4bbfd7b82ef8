package session

import (
	"context"
	"slices"
	"sync"
)

// Recorder persists finished sessions.
type Recorder interface {
	// Append stores item as the most recent entry.
	Append(ctx context.Context, item HistoryItem) error

	// LoadAll returns every stored item, most recent first.
	LoadAll(ctx context.Context) ([]HistoryItem, error)

	// ClearAll deletes every stored item.
	ClearAll(ctx context.Context) error
}

// MemoryRecorder keeps history in memory. It is safe for concurrent use.
type MemoryRecorder struct {
	mu    sync.Mutex
	items []HistoryItem // oldest first
}

// NewMemoryRecorder returns an empty in-memory recorder.
func NewMemoryRecorder() *MemoryRecorder {
	return &MemoryRecorder{}
}

func (m *MemoryRecorder) Append(_ context.Context, item HistoryItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = append(m.items, item)
	return nil
}

func (m *MemoryRecorder) LoadAll(_ context.Context) ([]HistoryItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := slices.Clone(m.items)
	slices.Reverse(out)
	return out, nil
}

func (m *MemoryRecorder) ClearAll(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = nil
	return nil
}
