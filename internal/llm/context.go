package llm

import "context"

// Purpose labels recorded with every logged request.
const (
	PurposeQuiz    = "quiz"
	PurposeTutor   = "tutor"
	PurposeUnknown = "unknown"
)

type purposeKey struct{}

// WithPurpose tags ctx with the feature making the request.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom returns the purpose tag, or PurposeUnknown.
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey{}).(string); ok && v != "" {
		return v
	}
	return PurposeUnknown
}
