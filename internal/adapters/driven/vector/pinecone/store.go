// Package pinecone provides a vector store adapter backed by a
// Pinecone serverless index. Chunk text and metadata are stored
// alongside each vector so matches can be reconstructed without a
// separate document store.
package pinecone

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/morphuslabs/podseek/internal/core/domain"
	"github.com/morphuslabs/podseek/internal/core/ports/driven"
	"github.com/morphuslabs/podseek/internal/logger"
)

// Ensure Store implements the interface.
var _ driven.VectorStore = (*Store)(nil)

// DefaultTimeout is the request timeout for index operations.
const DefaultTimeout = 60 * time.Second

// Config holds configuration for the Pinecone store.
type Config struct {
	// APIKey is the Pinecone API key (required).
	APIKey string

	// IndexHost is the full index endpoint, e.g.
	// https://my-index-abc1234.svc.aped-4627-b74a.pinecone.io (required).
	IndexHost string

	// Namespace scopes all operations. Empty uses the default namespace.
	Namespace string

	// Timeout is the request timeout (default: 60s).
	Timeout time.Duration
}

// Store indexes chunks in Pinecone, embedding them with the injected
// embedding service.
type Store struct {
	client    *http.Client
	host      string
	apiKey    string
	namespace string
	embedder  driven.EmbeddingService
}

// upsertRequest is the Pinecone /vectors/upsert request format.
type upsertRequest struct {
	Vectors   []vector `json:"vectors"`
	Namespace string   `json:"namespace,omitempty"`
}

// vector is one indexed point.
type vector struct {
	ID       string         `json:"id"`
	Values   []float32      `json:"values"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// queryRequest is the Pinecone /query request format.
type queryRequest struct {
	Vector          []float32 `json:"vector"`
	TopK            int       `json:"topK"`
	Namespace       string    `json:"namespace,omitempty"`
	IncludeMetadata bool      `json:"includeMetadata"`
}

// queryResponse is the Pinecone /query response format.
type queryResponse struct {
	Matches []struct {
		ID       string         `json:"id"`
		Score    float64        `json:"score"`
		Metadata map[string]any `json:"metadata"`
	} `json:"matches"`
}

// deleteRequest is the Pinecone /vectors/delete request format.
type deleteRequest struct {
	DeleteAll bool   `json:"deleteAll"`
	Namespace string `json:"namespace,omitempty"`
}

// NewStore creates a new Pinecone-backed vector store.
func NewStore(cfg Config, embedder driven.EmbeddingService) (*Store, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("pinecone: API key is required")
	}
	if cfg.IndexHost == "" {
		return nil, fmt.Errorf("pinecone: index host is required")
	}
	if embedder == nil {
		return nil, fmt.Errorf("pinecone: %w", domain.ErrEmbeddingUnavailable)
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Store{
		client:    &http.Client{Timeout: cfg.Timeout},
		host:      cfg.IndexHost,
		apiKey:    cfg.APIKey,
		namespace: cfg.Namespace,
		embedder:  embedder,
	}, nil
}

// Add embeds and upserts the given chunks. Chunk IDs are assigned when
// missing; existing IDs are upserted as-is, so re-ingesting a source
// appends fresh vectors rather than replacing old ones.
func (s *Store) Add(ctx context.Context, chunks []domain.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Content
	}

	embeddings, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return fmt.Errorf("embed chunks: %w", err)
	}
	if len(embeddings) != len(chunks) {
		return fmt.Errorf("embed chunks: expected %d embeddings, got %d", len(chunks), len(embeddings))
	}

	vectors := make([]vector, len(chunks))
	for i, c := range chunks {
		id := c.ID
		if id == "" {
			id = uuid.New().String()
		}
		vectors[i] = vector{
			ID:       id,
			Values:   embeddings[i],
			Metadata: chunkMetadata(c),
		}
	}

	logger.Debug("Upserting %d vectors to Pinecone", len(vectors))
	return s.post(ctx, "/vectors/upsert", upsertRequest{
		Vectors:   vectors,
		Namespace: s.namespace,
	}, nil)
}

// Search embeds the query and returns the k nearest chunks ordered by
// descending similarity.
func (s *Store) Search(ctx context.Context, query string, k int) ([]driven.VectorHit, error) {
	embedding, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	var queryResp queryResponse
	err = s.post(ctx, "/query", queryRequest{
		Vector:          embedding,
		TopK:            k,
		Namespace:       s.namespace,
		IncludeMetadata: true,
	}, &queryResp)
	if err != nil {
		return nil, err
	}

	hits := make([]driven.VectorHit, len(queryResp.Matches))
	for i, m := range queryResp.Matches {
		chunk := chunkFromMetadata(m.Metadata)
		chunk.ID = m.ID
		hits[i] = driven.VectorHit{Chunk: chunk, Score: m.Score}
	}
	return hits, nil
}

// Clear deletes every vector in the configured namespace.
func (s *Store) Clear(ctx context.Context) error {
	logger.Info("Clearing all vectors from Pinecone index")
	return s.post(ctx, "/vectors/delete", deleteRequest{
		DeleteAll: true,
		Namespace: s.namespace,
	}, nil)
}

// post sends a JSON request to the index endpoint and decodes the
// response into out when non-nil.
func (s *Store) post(ctx context.Context, path string, payload any, out any) error {
	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.host+path, bytes.NewReader(jsonBody))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Api-Key", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("pinecone error (status %d): %s", resp.StatusCode, string(body))
	}

	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// chunkMetadata maps a chunk onto the stable metadata keys persisted
// with each vector.
func chunkMetadata(c domain.Chunk) map[string]any {
	meta := map[string]any{
		domain.MetaKeyText:         c.Content,
		domain.MetaKeyTitle:        c.Title,
		domain.MetaKeyStartSeconds: c.StartSeconds,
		domain.MetaKeySource:       string(c.Source),
	}
	if c.VideoURL != "" {
		meta[domain.MetaKeyVideoURL] = c.VideoURL
	}
	if c.RawPath != "" {
		meta[domain.MetaKeyRawPath] = c.RawPath
	}
	return meta
}

// chunkFromMetadata rebuilds a chunk from stored metadata. JSON numbers
// arrive as float64.
func chunkFromMetadata(meta map[string]any) domain.Chunk {
	c := domain.Chunk{}
	if v, ok := meta[domain.MetaKeyText].(string); ok {
		c.Content = v
	}
	if v, ok := meta[domain.MetaKeyTitle].(string); ok {
		c.Title = v
	}
	if v, ok := meta[domain.MetaKeyVideoURL].(string); ok {
		c.VideoURL = v
	}
	if v, ok := meta[domain.MetaKeyRawPath].(string); ok {
		c.RawPath = v
	}
	if v, ok := meta[domain.MetaKeySource].(string); ok {
		c.Source = domain.Source(v)
	}
	switch v := meta[domain.MetaKeyStartSeconds].(type) {
	case float64:
		c.StartSeconds = int(v)
	case int:
		c.StartSeconds = v
	}
	return c
}
