package drill

import (
	"fmt"
	"math/rand/v2"
)

// Multipliers are drawn from [MinMultiplier, MaxMultiplier].
const (
	MinMultiplier = 2
	MaxMultiplier = 10
)

// compareSpread is the half-width of the decoy offset for comparisons.
const compareSpread = 2

// maxTrueFalseOffset bounds how far a wrong true/false result is shown.
const maxTrueFalseOffset = 5

// Generator produces practice questions. All randomness comes from the
// source it was built with, so a seeded source gives a reproducible stream.
// A Generator is not safe for concurrent use.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator returns a generator drawing from src.
func NewGenerator(src rand.Source) *Generator {
	return &Generator{rng: rand.New(src)}
}

// NewRandomGenerator returns a generator seeded from the runtime's entropy.
func NewRandomGenerator() *Generator {
	return NewGenerator(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// Generate produces one question for cfg.
//
// Draw order is fixed: table, multiplier, operation, archetype, then any
// archetype-specific values. Empty operation or archetype sets fall back to
// multiplication and direct calculation.
func (g *Generator) Generate(cfg Config) Question {
	lo, hi := cfg.tableRange()
	table := lo + g.rng.IntN(hi-lo+1)
	multiplier := MinMultiplier + g.rng.IntN(MaxMultiplier-MinMultiplier+1)

	op := pick(g.rng, cfg.Operations, Multiply)
	kind := pick(g.rng, cfg.Kinds, KindCalculation)

	return g.build(kind, NewFact(op, table, multiplier))
}

func (g *Generator) build(kind Kind, f Fact) Question {
	switch kind {
	case KindMissing:
		hidden := SideRight
		if g.rng.IntN(2) == 0 {
			hidden = SideLeft
		}
		return MissingOperand{Fact: f, Hidden: hidden}

	case KindCompare:
		offset := g.rng.IntN(2*compareSpread+1) - compareSpread
		decoy := compareDecoy(f.Result, offset)
		return Comparison{Fact: f, CompareTo: decoy, Answer: relationOf(f.Result, decoy)}

	case KindTrueFalse:
		shown := f.Result
		if g.rng.IntN(2) != 0 {
			magnitude := 1 + g.rng.IntN(maxTrueFalseOffset)
			offset := magnitude
			if g.rng.IntN(2) == 0 {
				offset = -magnitude
			}
			shown = wrongResult(f.Result, offset)
		}
		return TrueFalse{Fact: f, Shown: shown, Answer: shown == f.Result}

	case KindSign:
		return OperatorSign{Fact: f}

	case KindWord:
		templates := wordTemplates[f.Op]
		tmpl := templates[g.rng.IntN(len(templates))]
		return WordProblem{Fact: f, Text: fmt.Sprintf(tmpl, f.Left, f.Right)}

	default:
		return Calculation{Fact: f}
	}
}

// compareDecoy returns the number a result is compared against. Decoys
// that would not be positive are moved above the result.
func compareDecoy(result, offset int) int {
	decoy := result + offset
	if decoy <= 0 {
		decoy = result + abs(offset) + 1
	}
	return decoy
}

// wrongResult returns the incorrect result shown by a false equation. Values
// that would not be positive are moved above the result.
func wrongResult(result, offset int) int {
	shown := result + offset
	if shown <= 0 {
		shown = max(1, result+abs(offset))
	}
	return shown
}

// wordTemplates take the left then the right operand of the fact.
var wordTemplates = map[Operation][]string{
	Multiply: {
		"There are %d boxes and each box holds %d candies. How many candies are there in all?",
		"A class has %d groups with %d students in each group. How many students are in the class?",
	},
	Divide: {
		"%d apples are shared equally among %d friends. How many apples does each friend get?",
		"%d flowers are arranged equally into %d vases. How many flowers go in each vase?",
	},
}

func pick[T any](rng *rand.Rand, set []T, fallback T) T {
	if len(set) == 0 {
		return fallback
	}
	return set[rng.IntN(len(set))]
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
