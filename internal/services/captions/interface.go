package captions

import (
	"context"
	"errors"
)

// ErrNoCaptions is returned when a video's watch page carries no caption
// track listing, i.e. captions are disabled for the video.
var ErrNoCaptions = errors.New("no caption tracks available")

// Track is one timed-text stream attached to a video. Fields mirror the
// listing embedded in the watch page; tracks are never mutated and their
// platform ordering is preserved.
type Track struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	VssID        string `json:"vssId"`
}

// Source locates and retrieves caption tracks for a video. The watch-page
// scraping strategy sits behind this interface so it can be swapped or
// faked without touching the rest of the pipeline.
type Source interface {
	// ListTracks returns the caption tracks for a video, in platform order.
	// Returns ErrNoCaptions when the video has no caption listing.
	ListTracks(ctx context.Context, videoID string) ([]Track, error)

	// FetchTrack retrieves the raw timed-text document for a track.
	FetchTrack(ctx context.Context, track Track) (string, error)
}
