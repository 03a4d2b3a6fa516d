package utils

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiContentClient implements ContentClientInterface using Google's Gemini models
type GeminiContentClient struct {
	client *genai.Client
	model  string
}

// NewGeminiContentClient creates a new Gemini client
func NewGeminiContentClient(apiKey, model string) (*GeminiContentClient, error) {
	if model == "" {
		model = "gemini-1.5-flash"
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiContentClient{
		client: client,
		model:  model,
	}, nil
}

func (c *GeminiContentClient) GenerateContent(ctx context.Context, req ContentRequest) (ContentResponse, error) {
	m := c.client.GenerativeModel(c.model)
	m.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(req.SystemPrompt)}}
	m.ResponseMIMEType = "application/json"
	m.ResponseSchema = &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"title":       {Type: genai.TypeString},
			"description": {Type: genai.TypeString},
		},
		Required: []string{"title", "description"},
	}
	m.SetTemperature(0.7)

	resp, err := m.GenerateContent(ctx, genai.Text(req.UserPrompt))
	if err != nil {
		return ContentResponse{}, fmt.Errorf("%w: gemini: %v", ErrGenerationFailure, err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return ContentResponse{}, fmt.Errorf("%w: no content generated by Gemini", ErrGenerationFailure)
	}
	if resp.Candidates[0].FinishReason == genai.FinishReasonSafety {
		return ContentResponse{}, fmt.Errorf("%w: blocked by safety filter", ErrGenerationFailure)
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}

	return parseContentResponse(sb.String())
}

// Close closes the Gemini client
func (c *GeminiContentClient) Close() error {
	return c.client.Close()
}
