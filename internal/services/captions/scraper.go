package captions

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"
)

const (
	defaultWatchURL = "https://www.youtube.com/watch?v=%s"

	// A browser-like user agent; YouTube serves a slimmed-down page (without
	// the player payload) to clients it does not recognize.
	browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"
)

// captionTracksRe pulls the caption track listing out of the player payload
// embedded in the watch page. The listing is a single-line JSON array.
var captionTracksRe = regexp.MustCompile(`"captionTracks":(\[.*?\])`)

// Scraper implements Source by fetching a video's public watch page and
// extracting the embedded caption track listing. This surface is unofficial
// and undocumented; when YouTube changes the page structure, only this type
// needs to change.
type Scraper struct {
	httpClient *http.Client
	watchURL   string
}

// NewScraper creates a watch-page caption source. Every outbound call is
// bounded by the given timeout.
func NewScraper(timeout time.Duration) *Scraper {
	return &Scraper{
		httpClient: &http.Client{Timeout: timeout},
		watchURL:   defaultWatchURL,
	}
}

func (s *Scraper) ListTracks(ctx context.Context, videoID string) ([]Track, error) {
	url := fmt.Sprintf(s.watchURL, videoID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create watch page request: %w", err)
	}

	req.Header.Set("User-Agent", browserUserAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch watch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("watch page returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read watch page: %w", err)
	}

	return extractTracks(string(body))
}

// extractTracks parses the caption track listing out of a watch page
// document. Returns ErrNoCaptions when the listing is absent or empty.
func extractTracks(page string) ([]Track, error) {
	match := captionTracksRe.FindStringSubmatch(page)
	if match == nil {
		return nil, ErrNoCaptions
	}

	var tracks []Track
	if err := json.Unmarshal([]byte(match[1]), &tracks); err != nil {
		return nil, fmt.Errorf("failed to parse caption track listing: %w", err)
	}
	if len(tracks) == 0 {
		return nil, ErrNoCaptions
	}

	return tracks, nil
}

// SelectTrack picks the track to transcribe: the first one marked English
// by language code or internal identifier, otherwise the first listed.
// Deterministic for a given listing.
func SelectTrack(tracks []Track) Track {
	for _, t := range tracks {
		if strings.HasPrefix(t.LanguageCode, "en") || strings.Contains(t.VssID, ".en") {
			return t
		}
	}
	return tracks[0]
}

func (s *Scraper) FetchTrack(ctx context.Context, track Track) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, track.BaseURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create caption request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch captions: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("caption endpoint returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read caption response: %w", err)
	}

	return string(body), nil
}
