package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/morphuslabs/podseek/internal/core/domain"
	"github.com/morphuslabs/podseek/internal/core/ports/driven"
	"github.com/morphuslabs/podseek/internal/core/ports/driving"
	"github.com/morphuslabs/podseek/internal/logger"
)

// Ensure SearchService implements the interfaces.
var (
	_ driving.Searcher   = (*SearchService)(nil)
	_ driving.IndexAdmin = (*SearchService)(nil)
)

// Funnel defaults.
const (
	// DefaultCandidateCount is the recall-stage width: how many
	// similarity candidates feed the reranker.
	DefaultCandidateCount = 20

	// DefaultTopN is the precision-stage width when the caller asks for
	// no specific result count.
	DefaultTopN = 1
)

// SearchService runs the two-stage retrieval funnel: a wide vector
// similarity pass followed by an optional reranking pass.
type SearchService struct {
	store      driven.VectorStore
	reranker   driven.Reranker
	answers    driven.AnswerGenerator
	candidates int
}

// NewSearchService creates a new search service.
// The reranker and answers parameters are optional (can be nil).
func NewSearchService(
	store driven.VectorStore,
	reranker driven.Reranker,
	answers driven.AnswerGenerator,
) *SearchService {
	return &SearchService{
		store:      store,
		reranker:   reranker,
		answers:    answers,
		candidates: DefaultCandidateCount,
	}
}

// Search answers a free-text query with scored, timestamped results.
func (s *SearchService) Search(
	ctx context.Context, query string, opts driving.SearchOptions,
) ([]domain.SearchResult, error) {
	logger.Section("Search Execution")
	logger.Debug("Query: %q", query)

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("search: %w: empty query", domain.ErrInvalidInput)
	}
	if s.store == nil {
		return nil, fmt.Errorf("search: %w", domain.ErrVectorStoreUnavailable)
	}

	topN := opts.TopN
	if topN <= 0 {
		topN = DefaultTopN
	}

	// The recall stage always fetches the full candidate width so the
	// reranker has something to rank, even when only one result is
	// requested.
	k := s.candidates
	if topN > k {
		k = topN
	}
	logger.Debug("Candidates: %d, topN: %d, rerank: %t", k, topN, opts.Rerank)

	hits, err := s.store.Search(ctx, query, k)
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}
	logger.Debug("Recall stage returned %d candidates", len(hits))

	// No candidates means no results. The reranker is never consulted
	// on an empty candidate set.
	if len(hits) == 0 {
		return []domain.SearchResult{}, nil
	}

	var results []domain.SearchResult
	if opts.Rerank && s.reranker != nil {
		results, err = s.rerankHits(ctx, query, hits, topN)
		if err != nil {
			return nil, err
		}
	} else {
		if topN > len(hits) {
			topN = len(hits)
		}
		results = make([]domain.SearchResult, topN)
		for i, hit := range hits[:topN] {
			results[i] = toResult(hit.Chunk, hit.Score)
		}
	}

	if opts.WithAnswer && s.answers != nil {
		s.attachAnswers(ctx, query, results)
	}

	return results, nil
}

// rerankHits runs the precision stage. Reranker scores replace vector
// similarities outright; the two scales are not comparable.
func (s *SearchService) rerankHits(
	ctx context.Context, query string, hits []driven.VectorHit, topN int,
) ([]domain.SearchResult, error) {
	documents := make([]string, len(hits))
	for i, hit := range hits {
		documents[i] = hit.Chunk.Content
	}

	ranked, err := s.reranker.Rerank(ctx, query, documents, topN)
	if err != nil {
		return nil, fmt.Errorf("rerank: %w", err)
	}
	logger.Debug("Precision stage returned %d results", len(ranked))

	results := make([]domain.SearchResult, 0, len(ranked))
	for _, r := range ranked {
		if r.Index < 0 || r.Index >= len(hits) {
			return nil, fmt.Errorf("rerank: index %d out of range", r.Index)
		}
		results = append(results, toResult(hits[r.Index].Chunk, r.Score))
	}
	return results, nil
}

// attachAnswers generates an explanation per result. Generation is
// best-effort; adapters degrade to a fallback string rather than fail.
func (s *SearchService) attachAnswers(ctx context.Context, query string, results []domain.SearchResult) {
	for i := range results {
		answer, err := s.answers.Generate(ctx, query, results[i].Title, results[i].Snippet)
		if err != nil {
			logger.Warn("answer generation failed for %q: %v", results[i].Title, err)
			continue
		}
		results[i].Answer = answer
	}
}

// Clear removes every indexed chunk from the vector store.
func (s *SearchService) Clear(ctx context.Context) error {
	if s.store == nil {
		return fmt.Errorf("clear: %w", domain.ErrVectorStoreUnavailable)
	}
	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear index: %w", err)
	}
	return nil
}

// toResult converts a scored chunk into its display form.
func toResult(chunk domain.Chunk, score float64) domain.SearchResult {
	return domain.SearchResult{
		Score:        score,
		Title:        chunk.Title,
		Snippet:      domain.Snippet(chunk.Content),
		VideoURL:     chunk.VideoURL,
		StartSeconds: chunk.StartSeconds,
		StartHMS:     domain.FormatHMS(chunk.StartSeconds),
	}
}
