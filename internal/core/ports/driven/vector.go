package driven

import (
	"context"

	"github.com/morphuslabs/podseek/internal/core/domain"
)

// VectorStore indexes chunks and serves similarity queries. The store
// owns its own persistence layout; this core only writes chunks and
// reads matches.
type VectorStore interface {
	// Add embeds and indexes the given chunks. Chunks are immutable
	// once written; there is no update or deduplication path.
	Add(ctx context.Context, chunks []domain.Chunk) error

	// Search returns the k nearest chunks for a free-text query,
	// ordered by descending similarity.
	Search(ctx context.Context, query string, k int) ([]VectorHit, error)

	// Clear removes every indexed chunk.
	Clear(ctx context.Context) error
}

// VectorHit is a similarity search match.
type VectorHit struct {
	// Chunk is the matched chunk, reconstructed from stored metadata.
	Chunk domain.Chunk

	// Score is the similarity score. Not comparable with reranker
	// relevance scores.
	Score float64
}
