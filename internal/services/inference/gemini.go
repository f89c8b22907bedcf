package inference

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/vidask/vidask/internal/config"
)

// Model identifier and output token budget are fixed, not user-configurable.
const (
	modelName       = "gemini-2.5-flash"
	maxOutputTokens = 1024
)

// Gemini implements Client against the hosted Gemini API.
type Gemini struct {
	client  *genai.Client
	timeout time.Duration
}

func NewGemini(ctx context.Context, cfg *config.GeminiConfig) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Gemini{
		client:  client,
		timeout: cfg.RequestTimeout,
	}, nil
}

// Generate sends the prompt as a single user-role message and returns the
// concatenation of the text parts of the model's reply, in order. Non-text
// parts are skipped rather than treated as errors.
func (g *Gemini) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{genai.NewPartFromText(prompt)}, genai.RoleUser),
	}

	result, err := g.client.Models.GenerateContent(ctx, modelName, contents, &genai.GenerateContentConfig{
		MaxOutputTokens: maxOutputTokens,
	})
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	answer := collectText(result)
	if answer == "" {
		return "", fmt.Errorf("model response contained no text")
	}

	return answer, nil
}

func collectText(result *genai.GenerateContentResponse) string {
	if len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return ""
	}

	var sb strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		if part == nil || part.Text == "" {
			continue
		}
		sb.WriteString(part.Text)
	}
	return strings.TrimSpace(sb.String())
}
