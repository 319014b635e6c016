package driven

import (
	"context"

	"github.com/morphuslabs/podseek/internal/core/domain"
)

// MetadataService fetches video metadata from the hosting platform.
type MetadataService interface {
	// Fetch resolves a video URL to its identifier, duration and title.
	// It fails for URLs without a recognisable video identifier and for
	// unreachable or missing videos.
	Fetch(ctx context.Context, videoURL string) (*domain.VideoMetadata, error)
}
