// Package driven provides interfaces for infrastructure adapters
// (secondary/outbound ports). The core services are written against
// these interfaces so that external collaborators — the video platform,
// the vector store, the embedding, reranking and text-generation
// services — can be replaced with fakes in tests.
package driven
