package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"

	"github.com/bryanwahyu/review-miner/internal/domain/analysis"
	"github.com/bryanwahyu/review-miner/internal/infra/ai/prompt"
)

const (
	DefaultModel = "gpt-4o"
	maxTokens    = 2048
	schemaName   = "analysis"
)

// completion is the structured-output shape requested from the model.
type completion struct {
	CommonIssues []string `json:"commonIssues" description:"ユーザーが報告している一般的な問題点のリスト(日本語で回答してください)"`
	Suggestions  []string `json:"suggestions" description:"アプリ改善のための具体的な提案のリスト(日本語で回答してください)"`
}

type Client struct {
	*openai.Client
	model  string
	schema *jsonschema.Definition
}

var _ analysis.Analyzer = (*Client)(nil)

// NewClient builds a client for the public API; baseURL overrides it for
// compatible gateways and tests.
func NewClient(apiKey, model, baseURL string) (*Client, error) {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = strings.TrimRight(baseURL, "/")
	}
	if model == "" {
		model = DefaultModel
	}
	schema, err := jsonschema.GenerateSchemaForType(completion{})
	if err != nil {
		return nil, fmt.Errorf("failed to build response schema: %w", err)
	}
	return &Client{Client: openai.NewClientWithConfig(cfg), model: model, schema: schema}, nil
}

func (c *Client) Model() string { return c.model }

// Analyze sends the review block as a single prompt and decodes the
// schema-constrained answer.
func (c *Client) Analyze(ctx context.Context, reviewText string) (analysis.Result, error) {
	req := openai.ChatCompletionRequest{
		Model: c.model,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   schemaName,
				Schema: c.schema,
				Strict: true,
			},
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: prompt.GetSystemPrompt()},
			{Role: openai.ChatMessageRoleUser, Content: prompt.GetUserPrompt(reviewText)},
		},
	}
	// For reasoning models (o1/o3/o4/gpt-5*) use MaxCompletionTokens instead of MaxTokens
	if strings.HasPrefix(c.model, "o1") || strings.HasPrefix(c.model, "o3") || strings.HasPrefix(c.model, "o4") || strings.HasPrefix(c.model, "gpt-5") {
		req.MaxCompletionTokens = maxTokens
	} else {
		req.MaxTokens = maxTokens
	}

	resp, err := c.CreateChatCompletion(ctx, req)
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == http.StatusTooManyRequests {
			return analysis.Result{}, fmt.Errorf("%w: %v", analysis.ErrQuotaExceeded, err)
		}
		return analysis.Result{}, fmt.Errorf("failed to create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return analysis.Result{}, analysis.ErrEmptyCompletion
	}

	var out completion
	if err := c.schema.Unmarshal(resp.Choices[0].Message.Content, &out); err != nil {
		return analysis.Result{}, fmt.Errorf("failed to parse analysis: %w", err)
	}
	if out.CommonIssues == nil {
		out.CommonIssues = []string{}
	}
	if out.Suggestions == nil {
		out.Suggestions = []string{}
	}
	return analysis.Result{CommonIssues: out.CommonIssues, Suggestions: out.Suggestions}, nil
}
