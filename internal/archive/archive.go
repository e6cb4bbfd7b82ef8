// Package archive moves practice history in and out of the app as a
// versioned JSON document.
package archive

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"time"

	"golang.org/x/mod/semver"

	"github.com/abhisek/tablestar/internal/session"
)

const (
	// Format tags every archive document.
	Format = "tablestar-history"

	// Version is written by Export. Import accepts any version with the
	// same major.
	Version = "v1.0.0"
)

var (
	ErrNotArchive         = errors.New("not a tablestar history archive")
	ErrUnsupportedVersion = errors.New("unsupported archive version")
)

// Document is the on-disk shape.
type Document struct {
	Format     string                `json:"format"`
	Version    string                `json:"version"`
	ExportedAt time.Time             `json:"exported_at"`
	Items      []session.HistoryItem `json:"items"`
}

// Export writes items as an indented archive document.
func Export(w io.Writer, items []session.HistoryItem, now time.Time) error {
	if items == nil {
		items = []session.HistoryItem{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	doc := Document{Format: Format, Version: Version, ExportedAt: now.UTC(), Items: items}
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("write archive: %w", err)
	}
	return nil
}

// Import reads and checks an archive document.
func Import(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("read archive: %w", err)
	}
	if doc.Format != Format {
		return nil, fmt.Errorf("%w: format %q", ErrNotArchive, doc.Format)
	}
	if !semver.IsValid(doc.Version) {
		return nil, fmt.Errorf("%w: %q is not a semantic version", ErrUnsupportedVersion, doc.Version)
	}
	if semver.Major(doc.Version) != semver.Major(Version) {
		return nil, fmt.Errorf("%w: %s (this build reads %s.x)", ErrUnsupportedVersion, doc.Version, semver.Major(Version))
	}
	for i, item := range doc.Items {
		if item.ID == "" {
			return nil, fmt.Errorf("read archive: item %d has no id", i)
		}
	}
	return &doc, nil
}

// Restore appends the archived items that rec does not already hold,
// oldest first so that the recorder's ordering matches the original
// play order. It returns how many items were added.
func Restore(ctx context.Context, rec session.Recorder, items []session.HistoryItem) (int, error) {
	existing, err := rec.LoadAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("load history: %w", err)
	}
	seen := make(map[string]bool, len(existing))
	for _, item := range existing {
		seen[item.ID] = true
	}

	ordered := slices.Clone(items)
	slices.SortStableFunc(ordered, func(a, b session.HistoryItem) int {
		return a.Date.Compare(b.Date)
	})

	added := 0
	for _, item := range ordered {
		if seen[item.ID] {
			continue
		}
		if err := rec.Append(ctx, item); err != nil {
			return added, fmt.Errorf("append %s: %w", item.ID, err)
		}
		seen[item.ID] = true
		added++
	}
	return added, nil
}
