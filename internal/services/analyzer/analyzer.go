package analyzer

import (
	"context"
	"errors"

	"github.com/vidask/vidask/internal/models"
	"github.com/vidask/vidask/internal/services/captions"
	"github.com/vidask/vidask/internal/services/inference"
	"github.com/vidask/vidask/internal/services/metadata"
	"github.com/vidask/vidask/internal/utils"
)

// MetadataFetcher is the best-effort metadata lookup. Implementations never
// fail; they fall back to defaults instead.
type MetadataFetcher interface {
	Fetch(ctx context.Context, videoID string) metadata.Video
}

// Analyzer runs the transcript question-answering pipeline: resolve the
// input, locate and fetch a caption track, flatten it into a bounded
// transcript, and ask the model. Metadata is fetched alongside inference.
// All state is request-scoped; an Analyzer is safe for concurrent use.
type Analyzer struct {
	captions  captions.Source
	inference inference.Client
	metadata  MetadataFetcher
}

func New(captionSource captions.Source, llm inference.Client, meta MetadataFetcher) *Analyzer {
	return &Analyzer{
		captions:  captionSource,
		inference: llm,
		metadata:  meta,
	}
}

// Analyze answers the question embedded in rawInput about the video it
// references. Errors are always *utils.AppError carrying the HTTP status
// class for the failed stage.
func (a *Analyzer) Analyze(ctx context.Context, rawInput string) (*models.AnalyzeResponse, error) {
	in, err := ParseInput(rawInput)
	if err != nil {
		return nil, err
	}

	utils.LogInfo(ctx, "Analyzing video", utils.Fields{
		"video_id": in.VideoID,
		"question": in.Question,
	})

	tracks, err := a.captions.ListTracks(ctx, in.VideoID)
	if err != nil {
		if errors.Is(err, captions.ErrNoCaptions) {
			utils.LogWarn(ctx, "Video has no captions", utils.Fields{
				"video_id": in.VideoID,
				"stage":    "locate_captions",
			})
			return nil, utils.NewNoCaptionsError()
		}
		utils.LogError(ctx, "Failed to locate caption tracks", err, utils.Fields{
			"video_id": in.VideoID,
			"stage":    "locate_captions",
		})
		return nil, utils.NewCaptionFetchError(err)
	}
	// A Source should report ErrNoCaptions rather than an empty listing,
	// but an implementation that returns neither must not panic SelectTrack.
	if len(tracks) == 0 {
		utils.LogWarn(ctx, "Video has no captions", utils.Fields{
			"video_id": in.VideoID,
			"stage":    "locate_captions",
		})
		return nil, utils.NewNoCaptionsError()
	}

	track := captions.SelectTrack(tracks)

	raw, err := a.captions.FetchTrack(ctx, track)
	if err != nil {
		utils.LogError(ctx, "Failed to fetch caption track", err, utils.Fields{
			"video_id": in.VideoID,
			"language": track.LanguageCode,
			"stage":    "fetch_captions",
		})
		return nil, utils.NewCaptionFetchError(err)
	}

	transcript, err := captions.ParseTranscript(raw)
	if err != nil {
		utils.LogError(ctx, "Caption track yielded no transcript", err, utils.Fields{
			"video_id": in.VideoID,
			"stage":    "parse_transcript",
		})
		return nil, utils.NewEmptyTranscriptError()
	}

	bounded := captions.Budget(transcript, captions.MaxTranscriptChars)

	// Metadata has no dependency on the model's answer; fetch it while the
	// inference call is in flight.
	metaCh := make(chan metadata.Video, 1)
	go func() {
		metaCh <- a.metadata.Fetch(ctx, in.VideoID)
	}()

	prompt := inference.BuildPrompt(bounded, in.Question)
	answer, err := a.inference.Generate(ctx, prompt)
	if err != nil {
		utils.LogError(ctx, "Inference call failed", err, utils.Fields{
			"video_id": in.VideoID,
			"stage":    "inference",
		})
		return nil, utils.NewInferenceError(err)
	}

	meta := <-metaCh

	return &models.AnalyzeResponse{
		Analysis: answer,
		Video: models.VideoMeta{
			Title:        meta.Title,
			ThumbnailURL: meta.ThumbnailURL,
			VideoURL:     in.VideoURL,
			Duration:     "N/A",
		},
	}, nil
}
