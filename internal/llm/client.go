// Package llm provides the client for the external text-generation backend.
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Client is an abstraction over LLM providers.
// Generate submits a fully composed prompt and returns the raw model text.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
	// Close releases any resources held by the client
	Close() error
}

// Options holds the fixed decoding parameters for generation.
// They are service configuration, never user-controlled, to bound
// cost and output size.
type Options struct {
	Model           string
	Temperature     float32
	TopP            float32
	MaxOutputTokens int32
}

// DefaultOptions returns the decoding parameters used in production.
func DefaultOptions() Options {
	return Options{
		Model:           "gemini-1.5-flash",
		Temperature:     0.7,
		TopP:            0.95,
		MaxOutputTokens: 2048,
	}
}

// GeminiClient implements Client for Google Gemini
type GeminiClient struct {
	client *genai.Client
	opts   Options
}

// NewGeminiClient creates a new Gemini client
func NewGeminiClient(ctx context.Context, apiKey string, opts Options) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if opts.Model == "" {
		opts = DefaultOptions()
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{client: client, opts: opts}, nil
}

// Generate submits the prompt and returns the raw model text.
// Failures are classified into backend error kinds; context expiry
// surfaces as a timeout. The client never retries.
func (c *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	model := c.client.GenerativeModel(c.opts.Model)
	model.SetTemperature(c.opts.Temperature)
	model.SetTopP(c.opts.TopP)
	model.SetMaxOutputTokens(c.opts.MaxOutputTokens)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", Classify(err)
	}

	return extractTextFromResponse(resp)
}

// Close releases resources held by the client
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// extractTextFromResponse extracts text from Gemini API response
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", &BackendError{Kind: KindUnknown, Err: fmt.Errorf("no candidates in response")}
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", &BackendError{Kind: KindUnknown, Err: fmt.Errorf("no content in response")}
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}

	if len(parts) == 0 {
		return "", &BackendError{Kind: KindUnknown, Err: fmt.Errorf("no text parts in response")}
	}

	return strings.Join(parts, ""), nil
}
