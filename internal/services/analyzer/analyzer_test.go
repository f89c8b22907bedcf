package analyzer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"

	"github.com/vidask/vidask/internal/services/captions"
	"github.com/vidask/vidask/internal/services/metadata"
	"github.com/vidask/vidask/internal/utils"
)

type fakeSource struct {
	tracks     []captions.Track
	listErr    error
	doc        string
	fetchErr   error
	listCalls  int
	fetchCalls int
}

func (f *fakeSource) ListTracks(ctx context.Context, videoID string) ([]captions.Track, error) {
	f.listCalls++
	return f.tracks, f.listErr
}

func (f *fakeSource) FetchTrack(ctx context.Context, track captions.Track) (string, error) {
	f.fetchCalls++
	return f.doc, f.fetchErr
}

type fakeLLM struct {
	answer    string
	err       error
	gotPrompt string
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string) (string, error) {
	f.gotPrompt = prompt
	return f.answer, f.err
}

type fakeMetadata struct {
	video metadata.Video
	calls int
}

func (f *fakeMetadata) Fetch(ctx context.Context, videoID string) metadata.Video {
	f.calls++
	return f.video
}

const captionDoc = `<transcript>` +
	`<text start="0" dur="2">we begin with an intro</text>` +
	`<text start="2" dur="3">and then the main topic</text>` +
	`</transcript>`

func englishTracks() []captions.Track {
	return []captions.Track{
		{BaseURL: "https://captions/en", LanguageCode: "en", VssID: ".en"},
	}
}

func TestAnalyzeSuccess(t *testing.T) {
	source := &fakeSource{tracks: englishTracks(), doc: captionDoc}
	llm := &fakeLLM{answer: "The video covers the main topic."}
	meta := &fakeMetadata{video: metadata.Video{Title: "Great Talk", ThumbnailURL: "https://thumb/x.jpg"}}

	a := New(source, llm, meta)
	result, err := a.Analyze(context.Background(), "https://www.youtube.com/watch?v=abc123 What is discussed at minute 2?")
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}

	if result.Analysis != "The video covers the main topic." {
		t.Errorf("Analysis = %q", result.Analysis)
	}
	if result.Video.VideoURL != "https://www.youtube.com/watch?v=abc123" {
		t.Errorf("VideoURL = %q", result.Video.VideoURL)
	}
	if result.Video.Title != "Great Talk" || result.Video.ThumbnailURL != "https://thumb/x.jpg" {
		t.Errorf("metadata not merged: %+v", result.Video)
	}
	if result.Video.Duration != "N/A" {
		t.Errorf("Duration = %q, want N/A", result.Video.Duration)
	}

	// The prompt must carry both the transcript and the question.
	if !strings.Contains(llm.gotPrompt, "we begin with an intro and then the main topic") {
		t.Errorf("prompt does not contain the transcript: %q", llm.gotPrompt)
	}
	if !strings.Contains(llm.gotPrompt, "What is discussed at minute 2?") {
		t.Errorf("prompt does not contain the question: %q", llm.gotPrompt)
	}
}

func TestAnalyzeInvalidInputMakesNoCalls(t *testing.T) {
	source := &fakeSource{}
	llm := &fakeLLM{}
	meta := &fakeMetadata{}

	a := New(source, llm, meta)
	_, err := a.Analyze(context.Background(), "not a url")

	var appErr *utils.AppError
	if !errors.As(err, &appErr) || appErr.Code != utils.ErrorCodeInvalidInput {
		t.Fatalf("expected invalid input error, got %v", err)
	}
	if source.listCalls != 0 || source.fetchCalls != 0 || meta.calls != 0 || llm.gotPrompt != "" {
		t.Error("invalid input must not trigger any outbound call")
	}
}

func TestAnalyzeNoCaptions(t *testing.T) {
	source := &fakeSource{listErr: captions.ErrNoCaptions}

	a := New(source, &fakeLLM{}, &fakeMetadata{})
	_, err := a.Analyze(context.Background(), "https://youtu.be/abc123")

	var appErr *utils.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *utils.AppError, got %v", err)
	}
	if appErr.Code != utils.ErrorCodeNoCaptions {
		t.Errorf("Code = %s, want %s", appErr.Code, utils.ErrorCodeNoCaptions)
	}
	if appErr.StatusCode != 400 {
		t.Errorf("StatusCode = %d, want 400", appErr.StatusCode)
	}
}

func TestAnalyzeNoCaptionsLogsStage(t *testing.T) {
	hook := logtest.NewLocal(utils.GetLogger())
	defer utils.GetLogger().ReplaceHooks(make(logrus.LevelHooks))

	source := &fakeSource{listErr: captions.ErrNoCaptions}
	a := New(source, &fakeLLM{}, &fakeMetadata{})
	if _, err := a.Analyze(context.Background(), "https://youtu.be/abc123"); err == nil {
		t.Fatal("expected error")
	}

	for _, entry := range hook.AllEntries() {
		if entry.Message != "Video has no captions" {
			continue
		}
		if entry.Data["stage"] != "locate_captions" {
			t.Errorf("stage = %v, want locate_captions", entry.Data["stage"])
		}
		if entry.Data["video_id"] != "abc123" {
			t.Errorf("video_id = %v, want abc123", entry.Data["video_id"])
		}
		return
	}
	t.Error("no-captions warning was not logged")
}

func TestAnalyzeEmptyTrackListing(t *testing.T) {
	// A Source that returns ([], nil) instead of ErrNoCaptions must still
	// yield the no-captions error, not a panic in track selection.
	source := &fakeSource{tracks: []captions.Track{}}

	a := New(source, &fakeLLM{}, &fakeMetadata{})
	_, err := a.Analyze(context.Background(), "https://youtu.be/abc123")

	var appErr *utils.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *utils.AppError, got %v", err)
	}
	if appErr.Code != utils.ErrorCodeNoCaptions {
		t.Errorf("Code = %s, want %s", appErr.Code, utils.ErrorCodeNoCaptions)
	}
	if source.fetchCalls != 0 {
		t.Error("empty listing must not trigger a caption fetch")
	}
}

func TestAnalyzeCaptionFetchFailure(t *testing.T) {
	testCases := []struct {
		name   string
		source *fakeSource
	}{
		{
			name:   "Watch page fetch fails",
			source: &fakeSource{listErr: errors.New("watch page returned status 503")},
		},
		{
			name:   "Caption document fetch fails",
			source: &fakeSource{tracks: englishTracks(), fetchErr: errors.New("connection reset")},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			a := New(tc.source, &fakeLLM{}, &fakeMetadata{})
			_, err := a.Analyze(context.Background(), "https://youtu.be/abc123")

			var appErr *utils.AppError
			if !errors.As(err, &appErr) {
				t.Fatalf("expected *utils.AppError, got %v", err)
			}
			if appErr.Code != utils.ErrorCodeCaptionFetchFailed {
				t.Errorf("Code = %s, want %s", appErr.Code, utils.ErrorCodeCaptionFetchFailed)
			}
			if appErr.StatusCode != 400 {
				t.Errorf("StatusCode = %d, want 400", appErr.StatusCode)
			}
		})
	}
}

func TestAnalyzeEmptyTranscript(t *testing.T) {
	source := &fakeSource{tracks: englishTracks(), doc: "<transcript></transcript>"}

	a := New(source, &fakeLLM{}, &fakeMetadata{})
	_, err := a.Analyze(context.Background(), "https://youtu.be/abc123")

	var appErr *utils.AppError
	if !errors.As(err, &appErr) || appErr.Code != utils.ErrorCodeEmptyTranscript {
		t.Fatalf("expected empty transcript error, got %v", err)
	}
}

func TestAnalyzeInferenceFailure(t *testing.T) {
	source := &fakeSource{tracks: englishTracks(), doc: captionDoc}
	llm := &fakeLLM{err: errors.New("api key rejected")}

	a := New(source, llm, &fakeMetadata{})
	_, err := a.Analyze(context.Background(), "https://youtu.be/abc123")

	var appErr *utils.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *utils.AppError, got %v", err)
	}
	if appErr.Code != utils.ErrorCodeInferenceFailed {
		t.Errorf("Code = %s, want %s", appErr.Code, utils.ErrorCodeInferenceFailed)
	}
	if appErr.StatusCode != 500 {
		t.Errorf("StatusCode = %d, want 500", appErr.StatusCode)
	}
	if !strings.Contains(appErr.Detail, "api key rejected") {
		t.Errorf("Detail = %q, want it to carry the underlying failure", appErr.Detail)
	}
}

func TestAnalyzeMetadataDefaultsNeverFailRequest(t *testing.T) {
	source := &fakeSource{tracks: englishTracks(), doc: captionDoc}
	// A fetcher that already fell back to its defaults.
	meta := &fakeMetadata{video: metadata.Video{
		Title:        "YouTube Video",
		ThumbnailURL: "https://i.ytimg.com/vi/abc123/hqdefault.jpg",
	}}

	a := New(source, &fakeLLM{answer: "ok"}, meta)
	result, err := a.Analyze(context.Background(), "https://youtu.be/abc123")
	if err != nil {
		t.Fatalf("metadata fallback must not fail the request: %v", err)
	}

	if result.Video.Title != "YouTube Video" {
		t.Errorf("Title = %q, want fallback title", result.Video.Title)
	}
	if result.Video.ThumbnailURL != "https://i.ytimg.com/vi/abc123/hqdefault.jpg" {
		t.Errorf("ThumbnailURL = %q, want deterministic fallback", result.Video.ThumbnailURL)
	}
}
