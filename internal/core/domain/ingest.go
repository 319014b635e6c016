package domain

// IngestStatus classifies the result of ingesting one source item.
type IngestStatus string

const (
	// StatusOK means the item was chunked and indexed.
	StatusOK IngestStatus = "ok"

	// StatusEmpty means the item yielded no text to index. This is a
	// soft outcome distinct from an error (e.g. a document with no
	// sentences).
	StatusEmpty IngestStatus = "empty"

	// StatusError means a pipeline stage failed for this item.
	StatusError IngestStatus = "error"
)

// ErrorKind classifies ingestion failures by the stage that produced
// them.
type ErrorKind string

const (
	// ErrorKindMetadataFetch means video metadata could not be fetched.
	ErrorKindMetadataFetch ErrorKind = "metadata_fetch_failed"

	// ErrorKindNoTranscript means no caption track exists for the video.
	ErrorKindNoTranscript ErrorKind = "no_transcript"

	// ErrorKindTranscriptFetch means transcript acquisition failed.
	ErrorKindTranscriptFetch ErrorKind = "transcript_fetch_failed"

	// ErrorKindEmbedding means embedding or indexing the chunks failed.
	ErrorKindEmbedding ErrorKind = "embedding_failed"

	// ErrorKindUnknown is the catch-all for unclassified failures.
	ErrorKindUnknown ErrorKind = "unknown_error"
)

// IngestOutcome reports the result of ingesting a single source item
// (a video URL or a document path). Batches always produce one outcome
// per requested item; a failure is recorded here, never propagated.
type IngestOutcome struct {
	// Identifier is the URL or file path that was requested.
	Identifier string `json:"identifier"`

	// Status is ok, empty or error.
	Status IngestStatus `json:"status"`

	// ChunkCount is the number of chunks indexed. Only meaningful when
	// Status is ok.
	ChunkCount int `json:"chunk_count,omitempty"`

	// ErrorKind classifies the failure when Status is error.
	ErrorKind ErrorKind `json:"error_kind,omitempty"`

	// Detail is a human-readable description of the failure.
	Detail string `json:"detail,omitempty"`
}

// AllFailed reports whether a non-empty batch produced only errors.
// Callers typically treat this as a harder failure than partial
// success. An empty batch is a degenerate success.
func AllFailed(outcomes []IngestOutcome) bool {
	if len(outcomes) == 0 {
		return false
	}
	for _, o := range outcomes {
		if o.Status != StatusError {
			return false
		}
	}
	return true
}

// SucceededCount returns the number of outcomes with status ok.
func SucceededCount(outcomes []IngestOutcome) int {
	n := 0
	for _, o := range outcomes {
		if o.Status == StatusOK {
			n++
		}
	}
	return n
}
