package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// ContentRequest is one rewrite request sent to a hosted text model.
type ContentRequest struct {
	SystemPrompt string
	UserPrompt   string
}

// ContentResponse is the structured answer expected back from the model.
type ContentResponse struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type ContentClientInterface interface {
	GenerateContent(ctx context.Context, req ContentRequest) (ContentResponse, error)
}

// NewContentClient picks a provider by name.
func NewContentClient(cfg ContentClientConfig) (ContentClientInterface, error) {
	switch strings.ToLower(cfg.Provider) {
	case "openai":
		return NewOpenAIContentClient(cfg.APIKey, cfg.Model), nil
	case "azure":
		return NewAzureOpenAIContentClient(cfg.APIKey, cfg.Endpoint, cfg.APIVersion, cfg.Model), nil
	case "gemini":
		client, err := NewGeminiContentClient(cfg.APIKey, cfg.Model)
		if err != nil {
			return nil, err
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unsupported generation provider: %s. Use 'openai', 'azure' or 'gemini'", cfg.Provider)
	}
}

type ContentClientConfig struct {
	Provider   string
	APIKey     string
	Model      string
	Endpoint   string
	APIVersion string
}

// parseContentResponse decodes the model output, tolerating markdown fences
// and prose around the JSON object.
func parseContentResponse(raw string) (ContentResponse, error) {
	var out ContentResponse
	cleaned := cleanJSONResponse(raw)
	if err := json.Unmarshal([]byte(cleaned), &out); err != nil {
		return ContentResponse{}, fmt.Errorf("%w: response is not valid JSON: %v", ErrGenerationFailure, err)
	}
	out.Title = strings.TrimSpace(out.Title)
	out.Description = strings.TrimSpace(out.Description)
	if out.Title == "" || out.Description == "" {
		return ContentResponse{}, fmt.Errorf("%w: response is missing title or description", ErrGenerationFailure)
	}
	return out, nil
}

func cleanJSONResponse(response string) string {
	response = strings.ReplaceAll(response, "```json", "")
	response = strings.ReplaceAll(response, "```JSON", "")
	response = strings.ReplaceAll(response, "```", "")
	response = strings.TrimSpace(response)

	start := strings.Index(response, "{")
	if start == -1 {
		return response
	}
	if end := findMatchingBrace(response, start); end != -1 {
		return response[start : end+1]
	}
	return response[start:]
}

// findMatchingBrace finds the closing brace for the object opened at start,
// skipping braces inside string literals.
func findMatchingBrace(s string, start int) int {
	if start >= len(s) || s[start] != '{' {
		return -1
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		char := s[i]

		if escaped {
			escaped = false
			continue
		}
		if char == '\\' && inString {
			escaped = true
			continue
		}
		if char == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}

		switch char {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}

	return -1
}
