package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidVideoURL indicates a URL that does not contain a
	// recognisable video identifier.
	ErrInvalidVideoURL = errors.New("invalid video URL")

	// ErrVideoNotFound indicates the platform has no video for the
	// requested identifier.
	ErrVideoNotFound = errors.New("video not found")

	// ErrVectorStoreUnavailable indicates the vector store is not
	// configured. Both ingestion and search are disabled without it.
	ErrVectorStoreUnavailable = errors.New("vector store unavailable")

	// ErrRerankerUnavailable indicates the reranking service is not
	// configured. Search degrades to similarity scores only.
	ErrRerankerUnavailable = errors.New("reranker unavailable")

	// ErrEmbeddingUnavailable indicates the embedding service is not
	// configured.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")
)
