// Package textdoc turns local text documents into timestamped chunks.
//
// Documents have no real timeline, so anchors are synthesised: when the
// document links a video the platform duration is used, otherwise the
// duration is estimated from word count at a fixed reading speed, and
// chunk anchors are interpolated linearly across it.
package textdoc

import (
	"context"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/morphuslabs/podseek/internal/chunker"
	"github.com/morphuslabs/podseek/internal/core/domain"
	"github.com/morphuslabs/podseek/internal/core/ports/driven"
	"github.com/morphuslabs/podseek/internal/logger"
)

// minSentenceChars is the merge threshold below which adjacent sentence
// fragments are accumulated to avoid degenerate micro-sentences.
const minSentenceChars = 60

// secondsPerWord estimates spoken duration at roughly 160 words per
// minute.
const secondsPerWord = 0.375

// frontMatterMaxLines bounds how far into the document the closing
// front matter delimiter may appear.
const frontMatterMaxLines = 30

// frontMatterDelimiter is the bare delimiter line.
const frontMatterDelimiter = "---"

// sentenceBoundary splits after sentence-ending punctuation followed by
// whitespace.
var sentenceBoundary = regexp.MustCompile(`[.!?]\s+`)

// Builder assembles chunks from document text. The metadata service is
// optional; without it (or when it fails) linked videos contribute no
// duration or title and the estimate is used instead.
type Builder struct {
	chunks   *chunker.Chunker
	metadata driven.MetadataService
}

// NewBuilder creates a document chunk builder.
func NewBuilder(chunks *chunker.Chunker, metadata driven.MetadataService) *Builder {
	return &Builder{chunks: chunks, metadata: metadata}
}

// Build parses a document and returns its chunks. A document yielding
// zero sentences returns (nil, nil); callers report that as an empty
// outcome, distinct from an error.
func (b *Builder) Build(ctx context.Context, path string, content string) ([]domain.Chunk, error) {
	meta, body := ParseFrontMatter(content)
	videoURL := meta["youtube_url"]

	sentences := SplitSentences(body)
	if len(sentences) == 0 {
		return nil, nil
	}

	title := TitleFromPath(path)
	duration := 0
	if videoURL != "" && b.metadata != nil {
		vm, err := b.metadata.Fetch(ctx, videoURL)
		if err != nil {
			// Linkage metadata is best-effort: proceed with estimates.
			logger.Warn("Metadata lookup failed for %s: %v", videoURL, err)
		} else {
			duration = vm.DurationSeconds
			if vm.Title != "" {
				title = vm.Title
			}
		}
	}
	if duration == 0 {
		duration = EstimateDurationSeconds(body)
	}

	// Sentences are the atomic join unit here; real timestamps do not
	// exist, so anchors are assigned after chunking.
	units := make([]domain.TimedUnit, len(sentences))
	for i, s := range sentences {
		units[i] = domain.TimedUnit{Text: s}
	}
	segments := b.chunks.Chunk(units)

	out := make([]domain.Chunk, len(segments))
	n := len(segments)
	for i, seg := range segments {
		out[i] = domain.Chunk{
			ID:           uuid.New().String(),
			Content:      seg.Content,
			StartSeconds: interpolateAnchor(i, n, duration),
			Title:        title,
			VideoURL:     videoURL,
			Source:       domain.SourceMarkdownEstimated,
			RawPath:      path,
		}
	}
	return out, nil
}

// ParseFrontMatter extracts an optional leading delimited header. The
// header opens with a bare "---" as the very first line and closes with
// a second bare "---" within the first 30 lines; it holds "key: value"
// pairs. The returned body excludes the header block and any blank
// lines immediately following it. Without a valid header the whole
// input is the body.
func ParseFrontMatter(text string) (map[string]string, string) {
	meta := map[string]string{}
	lines := strings.Split(text, "\n")

	if len(lines) == 0 || strings.TrimRight(lines[0], "\r") != frontMatterDelimiter {
		return meta, text
	}

	end := -1
	limit := frontMatterMaxLines
	if limit > len(lines) {
		limit = len(lines)
	}
	for i := 1; i < limit; i++ {
		if strings.TrimRight(lines[i], "\r") == frontMatterDelimiter {
			end = i
			break
		}
	}
	if end < 0 {
		// Unclosed header: treat the whole input as body.
		return meta, text
	}

	for _, line := range lines[1:end] {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if key != "" && value != "" {
			meta[key] = value
		}
	}

	body := strings.Join(lines[end+1:], "\n")
	body = strings.TrimLeft(body, "\r\n")
	return meta, body
}

// SplitSentences splits body text after any '.', '!' or '?' followed by
// whitespace, then greedily merges fragments left to right until each
// buffered sentence reaches the minimum length.
func SplitSentences(body string) []string {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil
	}

	var raw []string
	pos := 0
	for _, loc := range sentenceBoundary.FindAllStringIndex(body, -1) {
		// Cut just after the punctuation character.
		raw = append(raw, body[pos:loc[0]+1])
		pos = loc[1]
	}
	if pos < len(body) {
		raw = append(raw, body[pos:])
	}

	var sentences []string
	buf := ""
	for _, frag := range raw {
		frag = strings.TrimSpace(frag)
		if frag == "" {
			continue
		}
		if buf == "" {
			buf = frag
		} else {
			buf = buf + " " + frag
		}
		if len(buf) >= minSentenceChars {
			sentences = append(sentences, buf)
			buf = ""
		}
	}
	if buf != "" {
		sentences = append(sentences, buf)
	}
	return sentences
}

// EstimateDurationSeconds approximates spoken duration from word count
// at a fixed reading speed.
func EstimateDurationSeconds(body string) int {
	words := len(strings.Fields(body))
	return int(float64(words) * secondsPerWord)
}

// TitleFromPath derives a display title from a document filename.
func TitleFromPath(path string) string {
	base := path
	if i := strings.LastIndexAny(base, "/\\"); i >= 0 {
		base = base[i+1:]
	}
	if i := strings.LastIndex(base, "."); i > 0 {
		base = base[:i]
	}
	base = strings.ReplaceAll(base, "_", " ")
	base = strings.ReplaceAll(base, "-", " ")
	return base
}

// interpolateAnchor assigns chunk i of n an anchor at floor(i/n) of the
// duration. The mapping assumes a uniform speaking rate and ignores
// chunk content length; downstream consumers depend on this crude
// linear mapping.
func interpolateAnchor(i, n, durationSeconds int) int {
	if n <= 0 || durationSeconds <= 0 {
		return 0
	}
	anchor := int(float64(i) / float64(n) * float64(durationSeconds))
	if anchor < 0 {
		return 0
	}
	return anchor
}
