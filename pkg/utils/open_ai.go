package utils

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"
)

const defaultOpenAIModel = "gpt-4o-2024-08-06"

// OpenAIContentClient talks to OpenAI or an Azure OpenAI deployment and asks
// for a strict JSON schema response.
type OpenAIContentClient struct {
	client *openai.Client
	model  string
}

func NewOpenAIContentClient(apiKey, model string) *OpenAIContentClient {
	if model == "" {
		model = defaultOpenAIModel
	}
	return &OpenAIContentClient{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

func NewAzureOpenAIContentClient(apiKey, endpoint, apiVersion, model string) *OpenAIContentClient {
	if model == "" {
		model = defaultOpenAIModel
	}
	cfg := openai.DefaultAzureConfig(apiKey, endpoint)
	if apiVersion != "" {
		cfg.APIVersion = apiVersion
	}
	return &OpenAIContentClient{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

var poiContentSchema = &jsonschema.Definition{
	Type: jsonschema.Object,
	Properties: map[string]jsonschema.Definition{
		"title": {
			Type:        jsonschema.String,
			Description: "A catchy and informative title for the POI",
		},
		"description": {
			Type:        jsonschema.String,
			Description: "An engaging and detailed description of the POI",
		},
	},
	Required:             []string{"title", "description"},
	AdditionalProperties: false,
}

func (c *OpenAIContentClient) GenerateContent(ctx context.Context, req ContentRequest) (ContentResponse, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.SystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: req.UserPrompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   "poi_response",
				Schema: poiContentSchema,
				Strict: true,
			},
		},
	})
	if err != nil {
		return ContentResponse{}, fmt.Errorf("%w: openai: %v", ErrGenerationFailure, err)
	}
	if len(resp.Choices) == 0 {
		return ContentResponse{}, fmt.Errorf("%w: openai returned no choices", ErrGenerationFailure)
	}

	choice := resp.Choices[0]
	if choice.Message.Refusal != "" {
		return ContentResponse{}, fmt.Errorf("%w: model refused: %s", ErrGenerationFailure, choice.Message.Refusal)
	}
	if choice.FinishReason == openai.FinishReasonContentFilter {
		return ContentResponse{}, fmt.Errorf("%w: blocked by content filter", ErrGenerationFailure)
	}

	return parseContentResponse(choice.Message.Content)
}
