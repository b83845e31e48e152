package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/sashabaranov/go-openai"

	domai "github.com/bryanwahyu/rivalscan/internal/domain/ai"
	"github.com/bryanwahyu/rivalscan/internal/domain/search"
	"github.com/bryanwahyu/rivalscan/internal/infra/ai/prompt"
	"github.com/bryanwahyu/rivalscan/internal/middleware"
)

const maxTokens = 1024

type Client struct {
	*openai.Client
	Model string
}

func NewClient(apiKey, model string) *Client {
	return &Client{Client: openai.NewClient(apiKey), Model: model}
}

var _ domai.Client = (*Client)(nil)

func (c *Client) Industries(ctx context.Context, startupName, pitch string) ([]string, error) {
	raw, err := c.complete(ctx, prompt.GetIndustriesSystemPrompt(), prompt.GetIndustriesUserPrompt(startupName, pitch))
	if err != nil {
		return nil, err
	}
	return prompt.ParseIndustries(raw), nil
}

func (c *Client) SearchQuery(ctx context.Context, startupName, pitch, industry string) (string, error) {
	raw, err := c.complete(ctx, prompt.GetQuerySystemPrompt(), prompt.GetQueryUserPrompt(startupName, pitch, industry))
	if err != nil {
		return "", err
	}
	return prompt.ParseQuery(raw), nil
}

func (c *Client) Competitors(ctx context.Context, industry string, results []search.Result) ([]domai.Competitor, error) {
	raw, err := c.complete(ctx, prompt.GetCompetitorsSystemPrompt(), prompt.GetCompetitorsUserPrompt(industry, results))
	if err != nil {
		return nil, err
	}
	return prompt.ParseCompetitors(raw), nil
}

func (c *Client) Commentary(ctx context.Context, startupName, pitch, industry string) (string, error) {
	raw, err := c.complete(ctx, prompt.GetCommentarySystemPrompt(), prompt.GetCommentaryUserPrompt(startupName, pitch, industry))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(raw), nil
}

func (c *Client) complete(ctx context.Context, system, user string) (string, error) {
	model := c.Model
	if model == "" {
		model = "gpt-4o-mini"
	}
	req := openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	}
	// For reasoning models (o1/o3/o4/gpt-5*) use MaxCompletionTokens instead of MaxTokens
	if strings.HasPrefix(model, "o1") || strings.HasPrefix(model, "o3") || strings.HasPrefix(model, "o4") || strings.HasPrefix(model, "gpt-5") {
		req.MaxCompletionTokens = maxTokens
	} else {
		req.MaxTokens = maxTokens
	}

	middleware.IncrementAICalls()
	resp, err := c.CreateChatCompletion(ctx, req)
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == http.StatusTooManyRequests {
			return "", domai.ErrQuotaExceeded
		}
		return "", fmt.Errorf("failed to create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}

	return resp.Choices[0].Message.Content, nil
}
