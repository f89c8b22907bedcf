package inference

import "fmt"

// BuildPrompt packages a bounded transcript and a question into a single
// instruction block. The transcript is fenced so the model cannot confuse it
// with the question, and the model is told to answer from the transcript
// alone. The wording here is a contract surface: the model's tendency to
// comply depends on it.
func BuildPrompt(transcript, question string) string {
	return fmt.Sprintf(`You are answering a question about a YouTube video. Below is the full transcript of the video, followed by the question.

TRANSCRIPT:
"""
%s
"""

QUESTION: %s

Answer the question using only information present in the transcript above. If the transcript does not contain enough information to answer, say so.`, transcript, question)
}
