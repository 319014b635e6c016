package driven

import (
	"context"

	"github.com/morphuslabs/podseek/internal/core/domain"
)

// TranscriptService acquires the timed transcript for a video.
//
// Absence of captions is an expected, common case: implementations
// return an empty slice with a nil error rather than an error. An error
// means acquisition itself failed (network, parsing).
type TranscriptService interface {
	// Fetch returns the ordered transcript units for a video ID.
	// Units carry truncated whole-second start times and trimmed text;
	// segments that are empty after trimming are dropped.
	Fetch(ctx context.Context, videoID string) ([]domain.TimedUnit, error)
}
