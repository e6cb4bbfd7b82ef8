package drill

import (
	"errors"
	"slices"
	"testing"
)

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.StartTable != 2 || cfg.EndTable != 9 || cfg.QuestionCount != 10 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if len(cfg.Operations) != 2 || len(cfg.Kinds) != 6 {
		t.Errorf("defaults should enable everything: %+v", cfg)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"start below range", func(c *Config) { c.StartTable = 1 }, "start table"},
		{"end above range", func(c *Config) { c.EndTable = 12 }, "end table"},
		{"reversed", func(c *Config) { c.StartTable, c.EndTable = 8, 3 }, "table range"},
		{"zero count", func(c *Config) { c.QuestionCount = 0 }, "question count"},
		{"no operations", func(c *Config) { c.Operations = nil }, "operations"},
		{"bad operation", func(c *Config) { c.Operations = []Operation{"add"} }, "operations"},
		{"no kinds", func(c *Config) { c.Kinds = []Kind{} }, "question types"},
		{"bad kind", func(c *Config) { c.Kinds = []Kind{"mcq"} }, "question types"},
		{"bad difficulty", func(c *Config) { c.Difficulty = "insane" }, "difficulty"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			var cerr *ConfigError
			if !errors.As(err, &cerr) {
				t.Fatalf("Validate() = %v, want *ConfigError", err)
			}
			if cerr.Field != tc.field {
				t.Errorf("field = %q, want %q", cerr.Field, tc.field)
			}
		})
	}
}

func TestConfig_ToggleOperationKeepsOne(t *testing.T) {
	cfg := DefaultConfig()
	if !cfg.ToggleOperation(Multiply) {
		t.Fatal("disabling multiply with divide enabled was refused")
	}
	if cfg.HasOperation(Multiply) {
		t.Fatal("multiply still enabled")
	}
	if cfg.ToggleOperation(Divide) {
		t.Fatal("disabling the last operation was allowed")
	}
	if !cfg.HasOperation(Divide) {
		t.Fatal("divide was removed")
	}
	if !cfg.ToggleOperation(Multiply) {
		t.Fatal("re-enabling multiply was refused")
	}
	if !slices.Equal(cfg.Operations, AllOperations) {
		t.Errorf("operations = %v, want display order %v", cfg.Operations, AllOperations)
	}
}

func TestConfig_ToggleKindKeepsOne(t *testing.T) {
	cfg := DefaultConfig()
	for _, k := range AllKinds[:len(AllKinds)-1] {
		if !cfg.ToggleKind(k) {
			t.Fatalf("disabling %s was refused", k)
		}
	}
	last := AllKinds[len(AllKinds)-1]
	if cfg.ToggleKind(last) {
		t.Fatal("disabling the last archetype was allowed")
	}
	if !slices.Equal(cfg.Kinds, []Kind{last}) {
		t.Errorf("kinds = %v", cfg.Kinds)
	}
}

func TestConfig_ToggleDoesNotAliasDefaults(t *testing.T) {
	a := DefaultConfig()
	b := a
	a.ToggleKind(KindWord)
	if !b.HasKind(KindWord) {
		t.Error("toggling one config changed a copy")
	}
	if !slices.Equal(AllKinds, []Kind{KindCalculation, KindMissing, KindCompare, KindTrueFalse, KindSign, KindWord}) {
		t.Error("AllKinds was modified")
	}
}

func TestConfig_Tables(t *testing.T) {
	cfg := Config{StartTable: 6, EndTable: 4}
	if got := cfg.Tables(); !slices.Equal(got, []int{4, 5, 6}) {
		t.Errorf("Tables() = %v", got)
	}
}

func TestParseOperation(t *testing.T) {
	for _, in := range []string{"mul", "×", "x", "Multiply"} {
		if op, err := ParseOperation(in); err != nil || op != Multiply {
			t.Errorf("ParseOperation(%q) = %v, %v", in, op, err)
		}
	}
	for _, in := range []string{"div", "÷", "/", "division"} {
		if op, err := ParseOperation(in); err != nil || op != Divide {
			t.Errorf("ParseOperation(%q) = %v, %v", in, op, err)
		}
	}
	if _, err := ParseOperation("add"); err == nil {
		t.Error("ParseOperation(add) should fail")
	}
}

func TestParseKind(t *testing.T) {
	for _, k := range AllKinds {
		got, err := ParseKind(string(k))
		if err != nil || got != k {
			t.Errorf("ParseKind(%q) = %v, %v", k, got, err)
		}
	}
	if _, err := ParseKind("mcq"); err == nil {
		t.Error("ParseKind(mcq) should fail")
	}
}
