package anthropic

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/liushuangls/go-anthropic/v2"

	domai "github.com/bryanwahyu/rivalscan/internal/domain/ai"
	"github.com/bryanwahyu/rivalscan/internal/domain/search"
	"github.com/bryanwahyu/rivalscan/internal/infra/ai/prompt"
	"github.com/bryanwahyu/rivalscan/internal/middleware"
)

const maxTokens = 1024

type Client struct {
	*anthropic.Client
	Model string
}

func NewClient(apiKey, model string) *Client {
	return &Client{Client: anthropic.NewClient(apiKey), Model: model}
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
		model = "claude-3-5-sonnet-latest"
	}
	middleware.IncrementAICalls()
	resp, err := c.CreateMessages(ctx, anthropic.MessagesRequest{
		Model:  anthropic.Model(model),
		System: system,
		Messages: []anthropic.Message{
			anthropic.NewUserTextMessage(user),
		},
		MaxTokens: maxTokens,
	})
	if err != nil {
		var apiErr *anthropic.APIError
		if errors.As(err, &apiErr) && apiErr.IsRateLimitErr() {
			return "", domai.ErrQuotaExceeded
		}
		var reqErr *anthropic.RequestError
		if errors.As(err, &reqErr) && reqErr.StatusCode == http.StatusTooManyRequests {
			return "", domai.ErrQuotaExceeded
		}
		return "", fmt.Errorf("failed to create messages: %w", err)
	}

	return resp.GetFirstContentText(), nil
}
