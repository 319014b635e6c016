package driven

import "context"

// AnswerGenerator produces a short natural-language explanation of why
// a retrieved snippet answers the user's query.
//
// Generation is best-effort presentation logic: implementations return
// a fixed fallback string instead of an error when the underlying
// service fails.
type AnswerGenerator interface {
	// Generate answers the query using the matched video title and
	// transcript snippet.
	Generate(ctx context.Context, query, title, snippet string) (string, error)
}
