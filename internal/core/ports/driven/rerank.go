package driven

import "context"

// Reranker re-scores a broad candidate set against a query with a more
// expensive relevance model. Used as the precision stage of the
// retrieval funnel.
type Reranker interface {
	// Rerank scores the documents against the query and returns up to
	// topN hits ordered by descending relevance. Hits reference
	// documents by input index; their scores replace (never merge with)
	// first-stage similarity scores.
	Rerank(ctx context.Context, query string, documents []string, topN int) ([]RerankHit, error)
}

// RerankHit is one reranked document reference.
type RerankHit struct {
	// Index is the position of the document in the input slice.
	Index int

	// Score is the relevance score assigned by the reranking model.
	Score float64
}
