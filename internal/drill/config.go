package drill

import (
	"fmt"
	"slices"
)

// Table range bounds accepted by Validate.
const (
	MinTable = 2
	MaxTable = 9
)

// QuestionCounts are the session lengths offered in menus. Any positive
// count is accepted.
var QuestionCounts = []int{5, 10, 20}

// Config describes what a practice session asks.
type Config struct {
	StartTable    int         `json:"start_table"`
	EndTable      int         `json:"end_table"`
	Difficulty    Difficulty  `json:"difficulty"`
	QuestionCount int         `json:"question_count"`
	Operations    []Operation `json:"operations"`
	Kinds         []Kind      `json:"types"`
}

// DefaultConfig returns tables 2 through 9, ten questions, both operations
// and every archetype.
func DefaultConfig() Config {
	return Config{
		StartTable:    MinTable,
		EndTable:      MaxTable,
		Difficulty:    DifficultyMedium,
		QuestionCount: 10,
		Operations:    slices.Clone(AllOperations),
		Kinds:         slices.Clone(AllKinds),
	}
}

// ConfigError describes an invalid configuration field.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// Validate checks the configuration and returns the first problem found.
func (c Config) Validate() error {
	if c.StartTable < MinTable || c.StartTable > MaxTable {
		return &ConfigError{Field: "start table", Message: fmt.Sprintf("%d is outside %d-%d", c.StartTable, MinTable, MaxTable)}
	}
	if c.EndTable < MinTable || c.EndTable > MaxTable {
		return &ConfigError{Field: "end table", Message: fmt.Sprintf("%d is outside %d-%d", c.EndTable, MinTable, MaxTable)}
	}
	if c.StartTable > c.EndTable {
		return &ConfigError{Field: "table range", Message: fmt.Sprintf("start %d is after end %d", c.StartTable, c.EndTable)}
	}
	if c.Difficulty != "" && !c.Difficulty.Valid() {
		return &ConfigError{Field: "difficulty", Message: fmt.Sprintf("unknown value %q", c.Difficulty)}
	}
	if c.QuestionCount <= 0 {
		return &ConfigError{Field: "question count", Message: "must be positive"}
	}
	if len(c.Operations) == 0 {
		return &ConfigError{Field: "operations", Message: "at least one is required"}
	}
	for _, op := range c.Operations {
		if !op.Valid() {
			return &ConfigError{Field: "operations", Message: fmt.Sprintf("unknown value %q", op)}
		}
	}
	if len(c.Kinds) == 0 {
		return &ConfigError{Field: "question types", Message: "at least one is required"}
	}
	for _, k := range c.Kinds {
		if !k.Valid() {
			return &ConfigError{Field: "question types", Message: fmt.Sprintf("unknown value %q", k)}
		}
	}
	return nil
}

// HasOperation reports whether op is enabled.
func (c Config) HasOperation(op Operation) bool {
	return slices.Contains(c.Operations, op)
}

// HasKind reports whether k is enabled.
func (c Config) HasKind(k Kind) bool {
	return slices.Contains(c.Kinds, k)
}

// ToggleOperation enables or disables op. Disabling the last enabled
// operation is refused and reported by returning false.
func (c *Config) ToggleOperation(op Operation) bool {
	if i := slices.Index(c.Operations, op); i >= 0 {
		if len(c.Operations) == 1 {
			return false
		}
		c.Operations = slices.Delete(slices.Clone(c.Operations), i, i+1)
		return true
	}
	c.Operations = orderedInsert(c.Operations, op, AllOperations)
	return true
}

// ToggleKind enables or disables k. Disabling the last enabled archetype is
// refused and reported by returning false.
func (c *Config) ToggleKind(k Kind) bool {
	if i := slices.Index(c.Kinds, k); i >= 0 {
		if len(c.Kinds) == 1 {
			return false
		}
		c.Kinds = slices.Delete(slices.Clone(c.Kinds), i, i+1)
		return true
	}
	c.Kinds = orderedInsert(c.Kinds, k, AllKinds)
	return true
}

// Tables returns the enabled tables in ascending order.
func (c Config) Tables() []int {
	lo, hi := c.tableRange()
	out := make([]int, 0, hi-lo+1)
	for t := lo; t <= hi; t++ {
		out = append(out, t)
	}
	return out
}

// tableRange returns the normalised inclusive range. A reversed range is
// swapped and tables below 1 are raised to 1.
func (c Config) tableRange() (int, int) {
	lo, hi := c.StartTable, c.EndTable
	if lo > hi {
		lo, hi = hi, lo
	}
	lo = max(lo, 1)
	hi = max(hi, lo)
	return lo, hi
}

// orderedInsert adds v to set keeping the order defined by all.
func orderedInsert[T comparable](set []T, v T, all []T) []T {
	out := make([]T, 0, len(set)+1)
	for _, candidate := range all {
		if candidate == v || slices.Contains(set, candidate) {
			out = append(out, candidate)
		}
	}
	return out
}
