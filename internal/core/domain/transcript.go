package domain

// Source identifies the provenance of a chunk. It is recorded in the
// vector store for diagnostics and never drives retrieval behaviour.
type Source string

const (
	// SourceYouTubeAPI marks chunks built from platform caption tracks.
	SourceYouTubeAPI Source = "youtube_api"

	// SourceMarkdownEstimated marks chunks built from local text documents
	// with interpolated timestamps.
	SourceMarkdownEstimated Source = "md_estimated"
)

// TimedUnit is an atomic piece of transcript text anchored to the
// earliest second it is spoken. Units are produced transiently by a
// transcript source and consumed immediately by the chunker.
type TimedUnit struct {
	// StartSeconds is the anchor time, truncated to whole seconds.
	StartSeconds int

	// Text is the trimmed caption or sentence text. Never empty.
	Text string
}

// VideoMetadata describes a source video as reported by the platform.
type VideoMetadata struct {
	// ID is the platform video identifier.
	ID string

	// DurationSeconds is the total video length. Zero when unknown.
	DurationSeconds int

	// Title is the human-readable video title.
	Title string
}

// Chunk is the unit of retrieval: a bounded span of transcript text with
// a reconstructible timestamp. Chunks are written once to the vector
// store and never updated; re-ingesting a source appends duplicates.
type Chunk struct {
	// ID is the unique identifier assigned at creation.
	ID string

	// Content is the chunk text. May begin with overlap text carried
	// over verbatim from the previous chunk's tail.
	Content string

	// StartSeconds is the anchor time of the first unit that began this
	// chunk. Overlap prefix text keeps no timestamp of its own.
	StartSeconds int

	// Title is the human-readable source title.
	Title string

	// VideoURL is the linkable origin. Empty for sources without one.
	VideoURL string

	// Source records provenance.
	Source Source

	// RawPath is the originating file path for document sources.
	RawPath string
}

// Stable metadata keys persisted alongside each chunk in the vector
// store. These form the cross-version contract for stored chunks.
const (
	MetaKeyText         = "text"
	MetaKeyVideoURL     = "video_url"
	MetaKeyTitle        = "title"
	MetaKeyStartSeconds = "start_seconds"
	MetaKeySource       = "source"
	MetaKeyRawPath      = "raw_path"
)
