package services

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/morphuslabs/podseek/internal/chunker"
	"github.com/morphuslabs/podseek/internal/core/domain"
	"github.com/morphuslabs/podseek/internal/core/ports/driven"
	"github.com/morphuslabs/podseek/internal/core/ports/driving"
	"github.com/morphuslabs/podseek/internal/logger"
	"github.com/morphuslabs/podseek/internal/sources/textdoc"
)

// Ensure IngestService implements the interface.
var _ driving.Ingestor = (*IngestService)(nil)

// documentExtensions lists the file types IngestDir picks up.
var documentExtensions = map[string]bool{
	".md":       true,
	".markdown": true,
	".txt":      true,
}

// IngestService runs the ingestion pipeline: acquire timed text,
// chunk it, and index the chunks. Every batch item is processed in
// isolation; one failure becomes an outcome record, never an abort.
type IngestService struct {
	metadata    driven.MetadataService
	transcripts driven.TranscriptService
	store       driven.VectorStore
	chunks      *chunker.Chunker
	docs        *textdoc.Builder
}

// NewIngestService creates a new ingest service.
func NewIngestService(
	metadata driven.MetadataService,
	transcripts driven.TranscriptService,
	store driven.VectorStore,
	chunks *chunker.Chunker,
	docs *textdoc.Builder,
) *IngestService {
	return &IngestService{
		metadata:    metadata,
		transcripts: transcripts,
		store:       store,
		chunks:      chunks,
		docs:        docs,
	}
}

// IngestURLs processes each video URL independently and returns one
// outcome per URL, in input order.
func (s *IngestService) IngestURLs(ctx context.Context, urls []string) []domain.IngestOutcome {
	logger.Section("Video Ingestion")
	logger.Info("Ingesting %d video(s)", len(urls))

	outcomes := make([]domain.IngestOutcome, len(urls))
	for i, url := range urls {
		outcomes[i] = s.ingestURL(ctx, url)
	}

	logger.Info("Ingestion complete: %d/%d succeeded", domain.SucceededCount(outcomes), len(outcomes))
	return outcomes
}

// ingestURL runs the full pipeline for one video. The recover guard
// turns a panicking adapter into an outcome record, preserving batch
// isolation.
func (s *IngestService) ingestURL(ctx context.Context, url string) (outcome domain.IngestOutcome) {
	outcome = domain.IngestOutcome{Identifier: url}

	defer func() {
		if r := recover(); r != nil {
			logger.Error("panic ingesting %s: %v", url, r)
			outcome.Status = domain.StatusError
			outcome.ErrorKind = domain.ErrorKindUnknown
			outcome.Detail = fmt.Sprintf("panic: %v", r)
		}
	}()

	meta, err := s.metadata.Fetch(ctx, url)
	if err != nil {
		logger.Error("metadata fetch failed for %s: %v", url, err)
		outcome.Status = domain.StatusError
		outcome.ErrorKind = domain.ErrorKindMetadataFetch
		outcome.Detail = err.Error()
		return outcome
	}
	logger.Debug("Video %s: %q (%ds)", meta.ID, meta.Title, meta.DurationSeconds)

	units, err := s.transcripts.Fetch(ctx, meta.ID)
	if err != nil {
		logger.Error("transcript fetch failed for %s: %v", url, err)
		outcome.Status = domain.StatusError
		outcome.ErrorKind = domain.ErrorKindTranscriptFetch
		outcome.Detail = err.Error()
		return outcome
	}
	if len(units) == 0 {
		logger.Error("no transcript available for %s", url)
		outcome.Status = domain.StatusError
		outcome.ErrorKind = domain.ErrorKindNoTranscript
		outcome.Detail = "no caption track available"
		return outcome
	}

	segments := s.chunks.Chunk(units)
	if len(segments) == 0 {
		outcome.Status = domain.StatusEmpty
		return outcome
	}
	logger.Debug("Chunked %d units into %d segments", len(units), len(segments))

	chunks := make([]domain.Chunk, len(segments))
	for i, seg := range segments {
		chunks[i] = domain.Chunk{
			ID:           uuid.New().String(),
			Content:      seg.Content,
			StartSeconds: seg.StartSeconds,
			Title:        meta.Title,
			VideoURL:     url,
			Source:       domain.SourceYouTubeAPI,
		}
	}

	if err := s.store.Add(ctx, chunks); err != nil {
		logger.Error("indexing failed for %s: %v", url, err)
		outcome.Status = domain.StatusError
		outcome.ErrorKind = domain.ErrorKindEmbedding
		outcome.Detail = err.Error()
		return outcome
	}

	outcome.Status = domain.StatusOK
	outcome.ChunkCount = len(chunks)
	return outcome
}

// IngestDir recursively discovers text documents under dir and ingests
// each one. The returned error covers discovery only; per-file failures
// become outcome records.
func (s *IngestService) IngestDir(ctx context.Context, dir string) ([]domain.IngestOutcome, error) {
	logger.Section("Document Ingestion")

	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if documentExtensions[strings.ToLower(filepath.Ext(path))] {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", dir, err)
	}
	logger.Info("Found %d document(s) under %s", len(paths), dir)

	outcomes := make([]domain.IngestOutcome, len(paths))
	for i, path := range paths {
		outcomes[i] = s.IngestFile(ctx, path)
	}

	logger.Info("Ingestion complete: %d/%d succeeded", domain.SucceededCount(outcomes), len(outcomes))
	return outcomes, nil
}

// IngestFile ingests a single local text document.
func (s *IngestService) IngestFile(ctx context.Context, path string) (outcome domain.IngestOutcome) {
	outcome = domain.IngestOutcome{Identifier: path}

	defer func() {
		if r := recover(); r != nil {
			logger.Error("panic ingesting %s: %v", path, r)
			outcome.Status = domain.StatusError
			outcome.ErrorKind = domain.ErrorKindUnknown
			outcome.Detail = fmt.Sprintf("panic: %v", r)
		}
	}()

	content, err := os.ReadFile(path)
	if err != nil {
		logger.Error("read failed for %s: %v", path, err)
		outcome.Status = domain.StatusError
		outcome.ErrorKind = domain.ErrorKindUnknown
		outcome.Detail = err.Error()
		return outcome
	}

	chunks, err := s.docs.Build(ctx, path, string(content))
	if err != nil {
		logger.Error("chunk build failed for %s: %v", path, err)
		outcome.Status = domain.StatusError
		outcome.ErrorKind = domain.ErrorKindUnknown
		outcome.Detail = err.Error()
		return outcome
	}
	if len(chunks) == 0 {
		logger.Warn("document %s yielded no text", path)
		outcome.Status = domain.StatusEmpty
		return outcome
	}

	if err := s.store.Add(ctx, chunks); err != nil {
		logger.Error("indexing failed for %s: %v", path, err)
		outcome.Status = domain.StatusError
		outcome.ErrorKind = domain.ErrorKindEmbedding
		outcome.Detail = err.Error()
		return outcome
	}

	outcome.Status = domain.StatusOK
	outcome.ChunkCount = len(chunks)
	return outcome
}
