package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/morphuslabs/podseek/internal/core/domain"
	"github.com/morphuslabs/podseek/internal/core/ports/driven"
	"github.com/morphuslabs/podseek/internal/core/ports/driving"
)

// mockReranker implements driven.Reranker for testing.
type mockReranker struct {
	hits   []driven.RerankHit
	err    error
	called bool
	gotTop int
}

func (m *mockReranker) Rerank(_ context.Context, _ string, _ []string, topN int) ([]driven.RerankHit, error) {
	m.called = true
	m.gotTop = topN
	if m.err != nil {
		return nil, m.err
	}
	return m.hits, nil
}

// mockAnswers implements driven.AnswerGenerator for testing.
type mockAnswers struct {
	answer string
	err    error
	called int
}

func (m *mockAnswers) Generate(_ context.Context, _, _, _ string) (string, error) {
	m.called++
	if m.err != nil {
		return "", m.err
	}
	return m.answer, nil
}

func someHits() []driven.VectorHit {
	return []driven.VectorHit{
		{Chunk: domain.Chunk{Content: "pods are scheduled onto nodes", Title: "K8s Talk", VideoURL: "https://youtu.be/aaaaaaaaaaa", StartSeconds: 95, Source: domain.SourceYouTubeAPI}, Score: 0.82},
		{Chunk: domain.Chunk{Content: "vector stores index embeddings", Title: "RAG Talk", VideoURL: "https://youtu.be/bbbbbbbbbbb", StartSeconds: 3700, Source: domain.SourceYouTubeAPI}, Score: 0.77},
		{Chunk: domain.Chunk{Content: "notes about chunk overlap", Title: "Notes", StartSeconds: 28, Source: domain.SourceMarkdownEstimated, RawPath: "/docs/notes.md"}, Score: 0.61},
	}
}

func TestSearchService_Search(t *testing.T) {
	t.Run("rejects empty query", func(t *testing.T) {
		svc := NewSearchService(&mockVectorStore{}, nil, nil)

		_, err := svc.Search(context.Background(), "   ", driving.SearchOptions{})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("defaults to one result without rerank", func(t *testing.T) {
		store := &mockVectorStore{hits: someHits()}
		svc := NewSearchService(store, nil, nil)

		results, err := svc.Search(context.Background(), "scheduling", driving.SearchOptions{})
		require.NoError(t, err)
		require.Len(t, results, 1)

		assert.Equal(t, DefaultCandidateCount, store.searchK)
		assert.Equal(t, "K8s Talk", results[0].Title)
		assert.InDelta(t, 0.82, results[0].Score, 1e-9)
		assert.Equal(t, "00:01:35", results[0].StartHMS)
	})

	t.Run("zero candidates short-circuits the reranker", func(t *testing.T) {
		store := &mockVectorStore{hits: nil}
		reranker := &mockReranker{}
		svc := NewSearchService(store, reranker, nil)

		results, err := svc.Search(context.Background(), "anything", driving.SearchOptions{Rerank: true, TopN: 5})
		require.NoError(t, err)

		assert.Empty(t, results)
		assert.NotNil(t, results, "no matches is an empty result set, not an error")
		assert.False(t, reranker.called)
	})

	t.Run("rerank scores replace vector similarities", func(t *testing.T) {
		store := &mockVectorStore{hits: someHits()}
		reranker := &mockReranker{hits: []driven.RerankHit{
			{Index: 2, Score: 0.95},
			{Index: 0, Score: 0.40},
		}}
		svc := NewSearchService(store, reranker, nil)

		results, err := svc.Search(context.Background(), "overlap", driving.SearchOptions{Rerank: true, TopN: 2})
		require.NoError(t, err)
		require.Len(t, results, 2)

		assert.True(t, reranker.called)
		assert.Equal(t, 2, reranker.gotTop)

		assert.Equal(t, "Notes", results[0].Title)
		assert.InDelta(t, 0.95, results[0].Score, 1e-9, "reranker score replaces the 0.61 similarity")
		assert.Equal(t, "K8s Talk", results[1].Title)
		assert.InDelta(t, 0.40, results[1].Score, 1e-9)
	})

	t.Run("rerank requested but no reranker configured", func(t *testing.T) {
		store := &mockVectorStore{hits: someHits()}
		svc := NewSearchService(store, nil, nil)

		results, err := svc.Search(context.Background(), "embeddings", driving.SearchOptions{Rerank: true, TopN: 2})
		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.InDelta(t, 0.82, results[0].Score, 1e-9, "similarity scores pass through")
	})

	t.Run("topN above candidate count is clamped", func(t *testing.T) {
		store := &mockVectorStore{hits: someHits()}
		svc := NewSearchService(store, nil, nil)

		results, err := svc.Search(context.Background(), "talks", driving.SearchOptions{TopN: 10})
		require.NoError(t, err)
		assert.Len(t, results, 3)
	})

	t.Run("topN above default widens the recall stage", func(t *testing.T) {
		store := &mockVectorStore{hits: someHits()}
		svc := NewSearchService(store, nil, nil)

		_, err := svc.Search(context.Background(), "talks", driving.SearchOptions{TopN: 50})
		require.NoError(t, err)
		assert.Equal(t, 50, store.searchK)
	})

	t.Run("long content is truncated into the snippet", func(t *testing.T) {
		long := strings.Repeat("transcript text ", 40) // > 400 chars
		store := &mockVectorStore{hits: []driven.VectorHit{
			{Chunk: domain.Chunk{Content: long, Title: "Long Talk"}, Score: 0.9},
		}}
		svc := NewSearchService(store, nil, nil)

		results, err := svc.Search(context.Background(), "transcript", driving.SearchOptions{})
		require.NoError(t, err)
		require.Len(t, results, 1)

		assert.Len(t, results[0].Snippet, domain.SnippetMaxChars+len("..."))
		assert.True(t, strings.HasSuffix(results[0].Snippet, "..."))
	})

	t.Run("answers attached when requested", func(t *testing.T) {
		store := &mockVectorStore{hits: someHits()}
		answers := &mockAnswers{answer: "This segment explains node scheduling."}
		svc := NewSearchService(store, nil, answers)

		results, err := svc.Search(context.Background(), "scheduling", driving.SearchOptions{TopN: 2, WithAnswer: true})
		require.NoError(t, err)
		require.Len(t, results, 2)

		assert.Equal(t, 2, answers.called)
		assert.Equal(t, "This segment explains node scheduling.", results[0].Answer)
	})

	t.Run("answer failure leaves the result intact", func(t *testing.T) {
		store := &mockVectorStore{hits: someHits()}
		answers := &mockAnswers{err: errors.New("model offline")}
		svc := NewSearchService(store, nil, answers)

		results, err := svc.Search(context.Background(), "scheduling", driving.SearchOptions{WithAnswer: true})
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Empty(t, results[0].Answer)
		assert.NotEmpty(t, results[0].Snippet)
	})

	t.Run("vector store failure propagates", func(t *testing.T) {
		store := &mockVectorStore{searchErr: errors.New("index offline")}
		svc := NewSearchService(store, nil, nil)

		_, err := svc.Search(context.Background(), "anything", driving.SearchOptions{})
		assert.ErrorContains(t, err, "vector search")
	})

	t.Run("reranker failure propagates", func(t *testing.T) {
		store := &mockVectorStore{hits: someHits()}
		reranker := &mockReranker{err: errors.New("rate limited")}
		svc := NewSearchService(store, reranker, nil)

		_, err := svc.Search(context.Background(), "anything", driving.SearchOptions{Rerank: true})
		assert.ErrorContains(t, err, "rerank")
	})
}

func TestSearchService_Clear(t *testing.T) {
	t.Run("clears the store", func(t *testing.T) {
		store := &mockVectorStore{}
		svc := NewSearchService(store, nil, nil)

		require.NoError(t, svc.Clear(context.Background()))
		assert.True(t, store.cleared)
	})

	t.Run("propagates store failure", func(t *testing.T) {
		store := &mockVectorStore{clearErr: errors.New("forbidden")}
		svc := NewSearchService(store, nil, nil)

		assert.Error(t, svc.Clear(context.Background()))
	})
}
