package llm

import "context"

// Purposes recorded with LLM events.
const (
	PurposeLearning = "learning"
	PurposeUnknown  = "unknown"
)

type purposeKey struct{}

// WithPurpose labels the LLM calls made with ctx.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom returns ctx's purpose label, or PurposeUnknown.
func PurposeFrom(ctx context.Context) string {
	if p, ok := ctx.Value(purposeKey{}).(string); ok && p != "" {
		return p
	}
	return PurposeUnknown
}
