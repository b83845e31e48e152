package brave

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/bryanwahyu/rivalscan/internal/domain/analysis"
	"github.com/bryanwahyu/rivalscan/internal/domain/search"
)

const endpoint = "https://api.search.brave.com/res/v1/web/search"

// Client queries the Brave Web Search API.
type Client struct {
	apiKey string
	client *http.Client
}

var _ search.Searcher = (*Client)(nil)

func NewClient(apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		apiKey: apiKey,
		client: &http.Client{Timeout: timeout},
	}
}

func (c *Client) Search(ctx context.Context, req *search.Request) (*search.Response, error) {
	if c.apiKey == "" {
		return nil, search.ErrMissingCredentials
	}

	params := url.Values{}
	params.Set("q", req.Query)
	max := req.MaxResults
	if max <= 0 {
		max = 20
	}
	params.Set("count", strconv.Itoa(max))
	if tr := timeRange(req.Period); tr != "" {
		params.Set("time_range", tr)
	}
	if cc := countryCode(req.Region); cc != "" {
		params.Set("country", cc)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build brave request: %w", err)
	}
	httpReq.Header.Set("X-Subscription-Token", c.apiKey)
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to call brave api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, fmt.Errorf("brave api returned %d: %s", resp.StatusCode, string(body))
	}

	var payload webResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode brave response: %w", err)
	}

	now := time.Now()
	results := make([]search.Result, 0, len(payload.Web.Results))
	for _, r := range payload.Web.Results {
		results = append(results, search.Result{
			Title:       r.Title,
			Description: r.Description,
			URL:         r.URL,
			PublishedAt: parsePageAge(r.PageAge, now),
		})
	}

	return &search.Response{Provider: "brave", Query: req.Query, Results: results}, nil
}

type webResponse struct {
	Web struct {
		Results []struct {
			Title       string `json:"title"`
			URL         string `json:"url"`
			Description string `json:"description"`
			PageAge     string `json:"page_age"`
		} `json:"results"`
	} `json:"web"`
}

// timeRange converts the analysis period into the Brave freshness value.
// "Last 3 Months" memang dipetakan ke past_6_months, Brave tidak punya
// bucket 3 bulan.
func timeRange(p analysis.TimePeriod) string {
	switch p {
	case analysis.PeriodLastMonth:
		return "past_month"
	case analysis.PeriodLast3Months:
		return "past_6_months"
	case analysis.PeriodLast6Months:
		return "past_6_months"
	case analysis.PeriodLastYear:
		return "past_year"
	default:
		return ""
	}
}

func countryCode(r analysis.Region) string {
	switch r {
	case analysis.RegionUnitedStates:
		return "US"
	case analysis.RegionUnitedKingdom:
		return "GB"
	case analysis.RegionGermany:
		return "DE"
	case analysis.RegionIndia:
		return "IN"
	case analysis.RegionIndonesia:
		return "ID"
	default:
		return ""
	}
}

// parsePageAge reads Brave's page_age timestamp, falling back to the fetch
// time when absent or unparsable.
func parsePageAge(s string, fallback time.Time) time.Time {
	if s == "" {
		return fallback
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return fallback
}
