package analyzer

import (
	"regexp"
	"strings"

	"github.com/vidask/vidask/internal/utils"
)

// DefaultQuestion is asked when the input carries a URL and nothing else.
const DefaultQuestion = "What is this video about?"

var urlRe = regexp.MustCompile(`https?://[^\s]+`)

// The supported YouTube URL shapes. All three yield the same identifier for
// the same video.
var videoIDRes = []*regexp.Regexp{
	regexp.MustCompile(`youtube\.com/watch\?v=([a-zA-Z0-9_-]+)`),
	regexp.MustCompile(`youtu\.be/([a-zA-Z0-9_-]+)`),
	regexp.MustCompile(`youtube\.com/embed/([a-zA-Z0-9_-]+)`),
}

// Input is the resolved form of the free-form request string.
type Input struct {
	VideoID  string
	VideoURL string
	Question string
}

// ParseInput splits a free-form input string into a video reference and the
// user's question. The first URL substring is taken as the video link; the
// rest of the input is the question.
func ParseInput(raw string) (*Input, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, utils.NewInvalidInputError("No input provided")
	}

	loc := urlRe.FindStringIndex(raw)
	if loc == nil {
		return nil, utils.NewInvalidInputError("Please provide a valid YouTube URL")
	}
	videoURL := raw[loc[0]:loc[1]]

	var videoID string
	for _, re := range videoIDRes {
		if m := re.FindStringSubmatch(videoURL); len(m) > 1 {
			videoID = m[1]
			break
		}
	}
	if videoID == "" {
		return nil, utils.NewInvalidInputError("Could not extract a video ID from the provided URL")
	}

	question := strings.TrimSpace(raw[:loc[0]] + " " + raw[loc[1]:])
	if question == "" {
		question = DefaultQuestion
	}

	return &Input{
		VideoID:  videoID,
		VideoURL: "https://www.youtube.com/watch?v=" + videoID,
		Question: question,
	}, nil
}
