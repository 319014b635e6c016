package domain

import "fmt"

// SnippetMaxChars is the display length bound for result snippets.
const SnippetMaxChars = 400

// snippetEllipsis marks a truncated snippet.
const snippetEllipsis = "..."

// SearchResult is one scored match returned by the retrieval funnel.
type SearchResult struct {
	// Score is either the vector similarity or the reranker relevance,
	// depending on which stage produced the result. The two are not
	// comparable and are never merged.
	Score float64 `json:"score"`

	// Title is the source title.
	Title string `json:"title"`

	// Snippet is the chunk content truncated to SnippetMaxChars.
	Snippet string `json:"snippet"`

	// VideoURL is the linkable origin, empty for document sources
	// without one.
	VideoURL string `json:"video_url,omitempty"`

	// StartSeconds is the recovered anchor timestamp.
	StartSeconds int `json:"start_seconds"`

	// StartHMS is StartSeconds formatted as HH:MM:SS.
	StartHMS string `json:"start_hms"`

	// Answer is an optional generated explanation of the match.
	Answer string `json:"answer,omitempty"`
}

// Snippet truncates chunk content for display, appending an ellipsis
// marker when text was cut.
func Snippet(content string) string {
	if len(content) <= SnippetMaxChars {
		return content
	}
	return content[:SnippetMaxChars] + snippetEllipsis
}

// FormatHMS renders a non-negative number of seconds as HH:MM:SS.
// Negative input is clamped to zero.
func FormatHMS(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// JumpURL appends a start-time parameter to a video URL so the player
// opens at the matched moment. Returns the URL unchanged when empty.
func JumpURL(videoURL string, startSeconds int) string {
	if videoURL == "" {
		return ""
	}
	sep := "?"
	for i := 0; i < len(videoURL); i++ {
		if videoURL[i] == '?' {
			sep = "&"
			break
		}
	}
	return fmt.Sprintf("%s%st=%ds", videoURL, sep, startSeconds)
}
