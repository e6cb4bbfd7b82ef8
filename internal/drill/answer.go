package drill

import "strings"

// Evaluate reports whether submitted answers q.
//
// Surrounding whitespace is ignored. Typed archetypes compare the integer
// value, so "012" matches 12 and anything that does not parse is simply
// wrong. Comparison and operator questions require the exact symbol.
// True/false accepts anything strconv.ParseBool does.
func Evaluate(q Question, submitted string) bool {
	if q == nil {
		return false
	}
	submitted = strings.TrimSpace(submitted)
	if submitted == "" {
		return false
	}
	return q.isCorrect(submitted)
}
