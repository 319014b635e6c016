// Package driving provides interfaces for external actors (primary/
// inbound ports). The CLI and TUI adapters drive the core through
// these.
package driving

import (
	"context"

	"github.com/morphuslabs/podseek/internal/core/domain"
)

// Ingestor drives the ingestion pipeline for external actors.
type Ingestor interface {
	// IngestURLs processes each video URL independently and returns one
	// outcome per URL. One item's failure never aborts the batch.
	IngestURLs(ctx context.Context, urls []string) []domain.IngestOutcome

	// IngestDir recursively discovers text documents under dir and
	// ingests each with the same isolation discipline. The returned
	// error covers directory discovery only, never per-file failures.
	IngestDir(ctx context.Context, dir string) ([]domain.IngestOutcome, error)

	// IngestFile ingests a single local text document.
	IngestFile(ctx context.Context, path string) domain.IngestOutcome
}

// SearchOptions configures one retrieval funnel run.
type SearchOptions struct {
	// TopN is the number of results requested from the precision stage.
	// Defaults to 1.
	TopN int

	// Rerank enables the precision stage. When false (or when no
	// reranker is configured) first-stage similarity results are
	// returned directly.
	Rerank bool

	// WithAnswer attaches a generated explanation to each result.
	WithAnswer bool
}

// Searcher drives the retrieval funnel for external actors.
type Searcher interface {
	// Search answers a free-text query with scored, timestamped
	// results. Failures propagate; the caller decides how to surface
	// them.
	Search(ctx context.Context, query string, opts SearchOptions) ([]domain.SearchResult, error)
}

// IndexAdmin exposes destructive index maintenance.
type IndexAdmin interface {
	// Clear removes every indexed chunk from the vector store.
	Clear(ctx context.Context) error
}
