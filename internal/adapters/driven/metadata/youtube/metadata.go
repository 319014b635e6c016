// Package youtube provides a video metadata adapter using the YouTube
// Data API v3.
package youtube

import (
	"context"
	"fmt"
	"regexp"
	"strconv"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"github.com/morphuslabs/podseek/internal/core/domain"
	"github.com/morphuslabs/podseek/internal/core/ports/driven"
	"github.com/morphuslabs/podseek/internal/logger"
)

// Ensure MetadataService implements the interface.
var _ driven.MetadataService = (*MetadataService)(nil)

// videoIDPattern matches the 11-character video ID in watch URLs,
// short links, and embed URLs.
var videoIDPattern = regexp.MustCompile(`(?:v=|/)([0-9A-Za-z_-]{11})`)

// isoDurationPattern matches ISO 8601 durations as returned by the
// contentDetails part, e.g. PT1H2M30S.
var isoDurationPattern = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

// Config holds configuration for the YouTube metadata service.
type Config struct {
	// APIKey is the YouTube Data API key (required).
	APIKey string
}

// MetadataService fetches video title and duration from the YouTube
// Data API.
type MetadataService struct {
	service  *youtube.Service
	throttle driven.Throttle
}

// NewMetadataService creates a new YouTube metadata service. The
// throttle paces API calls and may be nil.
func NewMetadataService(ctx context.Context, cfg Config, throttle driven.Throttle) (*MetadataService, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("youtube: API key is required")
	}

	service, err := youtube.NewService(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("create youtube service: %w", err)
	}

	return &MetadataService{service: service, throttle: throttle}, nil
}

// ExtractVideoID pulls the video ID out of a YouTube URL. Returns
// domain.ErrInvalidVideoURL when no ID is present.
func ExtractVideoID(videoURL string) (string, error) {
	m := videoIDPattern.FindStringSubmatch(videoURL)
	if m == nil {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidVideoURL, videoURL)
	}
	return m[1], nil
}

// Fetch returns the metadata for the video addressed by videoURL.
// Returns domain.ErrVideoNotFound when the API has no such video.
func (s *MetadataService) Fetch(ctx context.Context, videoURL string) (*domain.VideoMetadata, error) {
	videoID, err := ExtractVideoID(videoURL)
	if err != nil {
		return nil, err
	}

	if s.throttle != nil {
		if err := s.throttle.Wait(ctx); err != nil {
			return nil, fmt.Errorf("throttle: %w", err)
		}
	}

	resp, err := s.service.Videos.
		List([]string{"snippet", "contentDetails"}).
		Id(videoID).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("fetch video %s: %w", videoID, err)
	}

	if len(resp.Items) == 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrVideoNotFound, videoID)
	}

	item := resp.Items[0]
	duration, err := parseISODuration(item.ContentDetails.Duration)
	if err != nil {
		logger.Warn("unparseable duration %q for video %s", item.ContentDetails.Duration, videoID)
		duration = 0
	}

	return &domain.VideoMetadata{
		ID:              videoID,
		Title:           item.Snippet.Title,
		DurationSeconds: duration,
	}, nil
}

// parseISODuration converts an ISO 8601 duration like PT1H2M30S to
// seconds.
func parseISODuration(iso string) (int, error) {
	m := isoDurationPattern.FindStringSubmatch(iso)
	if m == nil {
		return 0, fmt.Errorf("invalid ISO 8601 duration: %q", iso)
	}

	seconds := 0
	for i, mult := range []int{3600, 60, 1} {
		if m[i+1] == "" {
			continue
		}
		n, err := strconv.Atoi(m[i+1])
		if err != nil {
			return 0, fmt.Errorf("invalid ISO 8601 duration: %q", iso)
		}
		seconds += n * mult
	}
	return seconds, nil
}
