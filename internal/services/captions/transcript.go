package captions

import (
	"errors"
	"regexp"
	"strings"
)

// MaxTranscriptChars is the context budget of the downstream model. Longer
// transcripts are truncated with TruncationMarker appended.
const MaxTranscriptChars = 100000

// TruncationMarker is appended when a transcript exceeds the budget.
const TruncationMarker = "... [transcript truncated]"

// ErrEmptyTranscript is returned when a caption document yields no text.
var ErrEmptyTranscript = errors.New("transcript is empty")

// textSegmentRe matches timed <text> elements, tolerating attributes and
// segments that span lines.
var textSegmentRe = regexp.MustCompile(`(?s)<text[^>]*>(.*?)</text>`)

var entityReplacer = strings.NewReplacer(
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#39;", "'",
)

// ParseTranscript flattens a raw timed-text caption document into one plain
// string: every <text> segment is entity-decoded, line breaks collapse to
// spaces, and segments join with single spaces. No markup or entity escapes
// survive parsing.
func ParseTranscript(raw string) (string, error) {
	matches := textSegmentRe.FindAllStringSubmatch(raw, -1)

	segments := make([]string, 0, len(matches))
	for _, m := range matches {
		text := entityReplacer.Replace(m[1])
		text = strings.ReplaceAll(text, "\n", " ")
		text = strings.TrimSpace(text)
		if text != "" {
			segments = append(segments, text)
		}
	}

	transcript := strings.Join(segments, " ")
	if strings.TrimSpace(transcript) == "" {
		return "", ErrEmptyTranscript
	}

	return transcript, nil
}

// Budget bounds a transcript to at most limit characters. Transcripts within
// the budget pass through unchanged; longer ones are cut at the limit with a
// visible truncation marker. Pure and idempotent at a fixed limit.
func Budget(transcript string, limit int) string {
	if len(transcript) <= limit {
		return transcript
	}
	return transcript[:limit] + TruncationMarker
}
