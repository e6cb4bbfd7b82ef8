package drill

import (
	"fmt"
	"strings"
)

// Operation is one of the two arithmetic operations practised.
type Operation string

const (
	Multiply Operation = "mul"
	Divide   Operation = "div"
)

// AllOperations lists every operation in display order.
var AllOperations = []Operation{Multiply, Divide}

// Symbol returns the printed operator.
func (o Operation) Symbol() string {
	switch o {
	case Multiply:
		return "×"
	case Divide:
		return "÷"
	default:
		return "?"
	}
}

// Label returns a human-readable name.
func (o Operation) Label() string {
	switch o {
	case Multiply:
		return "Multiplication"
	case Divide:
		return "Division"
	default:
		return string(o)
	}
}

// Valid reports whether o is a known operation.
func (o Operation) Valid() bool {
	return o == Multiply || o == Divide
}

// apply computes left op right. Division is integer division; facts built
// by NewFact never have a remainder.
func (o Operation) apply(left, right int) int {
	if o == Divide {
		if right == 0 {
			return 0
		}
		return left / right
	}
	return left * right
}

// ParseOperation accepts the canonical names plus common spellings and symbols.
func ParseOperation(s string) (Operation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mul", "multiply", "multiplication", "×", "x", "*":
		return Multiply, nil
	case "div", "divide", "division", "÷", "/", ":":
		return Divide, nil
	}
	return "", fmt.Errorf("unknown operation %q", s)
}

// Kind identifies one of the six question archetypes.
type Kind string

const (
	KindCalculation Kind = "calc"
	KindMissing     Kind = "missing"
	KindCompare     Kind = "compare"
	KindTrueFalse   Kind = "tf"
	KindSign        Kind = "sign"
	KindWord        Kind = "word"
)

// AllKinds lists every archetype in display order.
var AllKinds = []Kind{
	KindCalculation,
	KindMissing,
	KindCompare,
	KindTrueFalse,
	KindSign,
	KindWord,
}

// Label returns the name shown in menus.
func (k Kind) Label() string {
	switch k {
	case KindCalculation:
		return "Calculate"
	case KindMissing:
		return "Missing number"
	case KindCompare:
		return "Compare"
	case KindTrueFalse:
		return "True or false"
	case KindSign:
		return "Find the sign"
	case KindWord:
		return "Word problem"
	default:
		return string(k)
	}
}

// Valid reports whether k is a known archetype.
func (k Kind) Valid() bool {
	for _, known := range AllKinds {
		if k == known {
			return true
		}
	}
	return false
}

// ParseKind accepts the canonical archetype names and a few aliases.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "calc", "calculation":
		return KindCalculation, nil
	case "missing", "missing-operand":
		return KindMissing, nil
	case "compare", "comparison":
		return KindCompare, nil
	case "tf", "truefalse", "true-false":
		return KindTrueFalse, nil
	case "sign", "operator":
		return KindSign, nil
	case "word", "word-problem":
		return KindWord, nil
	}
	return "", fmt.Errorf("unknown question type %q", s)
}

// Difficulty is a label carried with the configuration. It does not change
// how questions are generated.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Valid reports whether d is a known difficulty label.
func (d Difficulty) Valid() bool {
	return d == DifficultyEasy || d == DifficultyMedium || d == DifficultyHard
}

// Side identifies which operand of a fact is hidden.
type Side string

const (
	SideLeft  Side = "left"
	SideRight Side = "right"
)

// Relation is the answer to a comparison question.
type Relation string

const (
	Less    Relation = "<"
	Equal   Relation = "="
	Greater Relation = ">"
)

// Relations lists the comparison choices in display order.
var Relations = []Relation{Less, Equal, Greater}

func relationOf(a, b int) Relation {
	switch {
	case a < b:
		return Less
	case a > b:
		return Greater
	default:
		return Equal
	}
}
