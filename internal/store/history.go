package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/abhisek/tablestar/internal/session"
)

var historyColumns = []string{
	colSessionID, colTimestamp, colUserName, colScore, colQuestions, colConfig, colResults,
}

// HistoryRepo stores finished practice sessions. It implements
// session.Recorder.
type HistoryRepo struct {
	drv *entsql.Driver
	seq *sequenceCounter
}

var _ session.Recorder = (*HistoryRepo)(nil)

// Append stores item as the newest history entry.
func (r *HistoryRepo) Append(ctx context.Context, item session.HistoryItem) error {
	cfg, err := json.Marshal(item.Config)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	results := item.Results
	if results == nil {
		results = []session.QuestionResult{}
	}
	res, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("encode results: %w", err)
	}

	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := sqlite.Insert(historyTableName).
		Columns(append([]string{colSequence}, historyColumns...)...).
		Values(
			seqNum,
			item.ID,
			item.Date.UnixMilli(),
			item.UserName,
			item.Score,
			item.Questions,
			string(cfg),
			string(res),
		).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save history item: %w", err)
	}
	return nil
}

// LoadAll returns every stored session, most recently saved first.
func (r *HistoryRepo) LoadAll(ctx context.Context) ([]session.HistoryItem, error) {
	sel := sqlite.Select(historyColumns...).
		From(sqlite.Table(historyTableName)).
		OrderBy(entsql.Desc(colSequence))
	items, err := r.scan(ctx, sel)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	return items, nil
}

// Recent returns up to limit sessions, most recent first.
func (r *HistoryRepo) Recent(ctx context.Context, limit int) ([]session.HistoryItem, error) {
	sel := sqlite.Select(historyColumns...).
		From(sqlite.Table(historyTableName)).
		OrderBy(entsql.Desc(colSequence)).
		Limit(limit)
	items, err := r.scan(ctx, sel)
	if err != nil {
		return nil, fmt.Errorf("load recent history: %w", err)
	}
	return items, nil
}

// Get returns the session with id, or nil if there is none.
func (r *HistoryRepo) Get(ctx context.Context, id string) (*session.HistoryItem, error) {
	sel := sqlite.Select(historyColumns...).
		From(sqlite.Table(historyTableName)).
		Where(entsql.EQ(colSessionID, id)).
		Limit(1)
	items, err := r.scan(ctx, sel)
	if err != nil {
		return nil, fmt.Errorf("get history item %s: %w", id, err)
	}
	if len(items) == 0 {
		return nil, nil
	}
	return &items[0], nil
}

// Count returns the number of stored sessions.
func (r *HistoryRepo) Count(ctx context.Context) (int, error) {
	query, args := sqlite.Select(entsql.Count("*")).
		From(sqlite.Table(historyTableName)).
		Query()
	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return 0, fmt.Errorf("count history: %w", err)
	}
	defer rows.Close()

	n, err := entsql.ScanInt(rows)
	if err != nil {
		return 0, fmt.Errorf("count history: %w", err)
	}
	return n, nil
}

// ClearAll deletes every stored session.
func (r *HistoryRepo) ClearAll(ctx context.Context) error {
	query, args := sqlite.Delete(historyTableName).Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}

func (r *HistoryRepo) scan(ctx context.Context, sel *entsql.Selector) ([]session.HistoryItem, error) {
	query, args := sel.Query()
	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []session.HistoryItem{}
	for rows.Next() {
		var (
			item         session.HistoryItem
			ts           int64
			cfg, results string
		)
		if err := rows.Scan(&item.ID, &ts, &item.UserName, &item.Score, &item.Questions, &cfg, &results); err != nil {
			return nil, err
		}
		item.Date = time.UnixMilli(ts)
		if err := json.Unmarshal([]byte(cfg), &item.Config); err != nil {
			return nil, fmt.Errorf("decode config of %s: %w", item.ID, err)
		}
		if err := json.Unmarshal([]byte(results), &item.Results); err != nil {
			return nil, fmt.Errorf("decode results of %s: %w", item.ID, err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
