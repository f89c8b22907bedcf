package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/vidask/vidask/internal/utils"
)

const (
	defaultOembedURL = "https://www.youtube.com/oembed"

	fallbackTitle        = "YouTube Video"
	fallbackThumbnailFmt = "https://i.ytimg.com/vi/%s/hqdefault.jpg"
)

// Video is the display metadata for a video.
type Video struct {
	Title        string
	ThumbnailURL string
}

// Fetcher retrieves title and thumbnail from YouTube's public oEmbed
// endpoint. It is best-effort: lookups that fail for any reason fall back to
// defaults derived from the video id and never fail the overall request.
type Fetcher struct {
	httpClient *http.Client
	oembedURL  string
}

func NewFetcher(timeout time.Duration) *Fetcher {
	return &Fetcher{
		httpClient: &http.Client{Timeout: timeout},
		oembedURL:  defaultOembedURL,
	}
}

func (f *Fetcher) Fetch(ctx context.Context, videoID string) Video {
	fallback := Video{
		Title:        fallbackTitle,
		ThumbnailURL: fmt.Sprintf(fallbackThumbnailFmt, videoID),
	}

	watchURL := "https://www.youtube.com/watch?v=" + videoID
	lookupURL := fmt.Sprintf("%s?url=%s&format=json", f.oembedURL, url.QueryEscape(watchURL))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, lookupURL, nil)
	if err != nil {
		return fallback
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		utils.LogWarn(ctx, "Metadata lookup failed, using defaults", utils.Fields{
			"video_id": videoID,
			"error":    err.Error(),
		})
		return fallback
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		utils.LogWarn(ctx, "Metadata lookup returned non-success status, using defaults", utils.Fields{
			"video_id": videoID,
			"status":   resp.StatusCode,
		})
		return fallback
	}

	var body struct {
		Title        string `json:"title"`
		ThumbnailURL string `json:"thumbnail_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		utils.LogWarn(ctx, "Metadata response was malformed, using defaults", utils.Fields{
			"video_id": videoID,
			"error":    err.Error(),
		})
		return fallback
	}

	video := fallback
	if body.Title != "" {
		video.Title = body.Title
	}
	if body.ThumbnailURL != "" {
		video.ThumbnailURL = body.ThumbnailURL
	}
	return video
}
