package googlenews

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/bryanwahyu/rivalscan/internal/domain/analysis"
	"github.com/bryanwahyu/rivalscan/internal/domain/competitors"
	"github.com/bryanwahyu/rivalscan/internal/domain/search"
)

const endpoint = "https://news.google.com/rss/search"

// Client reads the Google News RSS search feed. Useful for press coverage
// rather than company homepages.
type Client struct {
	parser *gofeed.Parser
}

var _ search.Searcher = (*Client)(nil)

func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	p := gofeed.NewParser()
	p.UserAgent = "rivalscan/1.0"
	p.Client = &http.Client{Timeout: timeout}
	return &Client{parser: p}
}

func (c *Client) Search(ctx context.Context, req *search.Request) (*search.Response, error) {
	query := req.Query
	if w := whenQualifier(req.Period); w != "" {
		query += " " + w
	}

	hl, gl, ceid := locale(req.Region)
	params := url.Values{}
	params.Set("q", query)
	params.Set("hl", hl)
	params.Set("gl", gl)
	params.Set("ceid", ceid)

	feed, err := c.parser.ParseURLWithContext(endpoint+"?"+params.Encode(), ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch google news feed: %w", err)
	}

	max := req.MaxResults
	if max <= 0 {
		max = 20
	}

	now := time.Now()
	results := make([]search.Result, 0, max)
	for _, item := range feed.Items {
		if len(results) >= max {
			break
		}
		published := now
		if item.PublishedParsed != nil {
			published = *item.PublishedParsed
		}
		results = append(results, search.Result{
			Title:       item.Title,
			Description: competitors.StripHTML(item.Description),
			URL:         item.Link,
			PublishedAt: published,
		})
	}

	return &search.Response{Provider: "googlenews", Query: req.Query, Results: results}, nil
}

// whenQualifier narrows the feed with Google News' when: operator.
func whenQualifier(p analysis.TimePeriod) string {
	switch p {
	case analysis.PeriodLastMonth:
		return "when:30d"
	case analysis.PeriodLast3Months:
		return "when:90d"
	case analysis.PeriodLast6Months:
		return "when:180d"
	case analysis.PeriodLastYear:
		return "when:1y"
	default:
		return ""
	}
}

func locale(r analysis.Region) (hl, gl, ceid string) {
	switch r {
	case analysis.RegionUnitedKingdom:
		return "en-GB", "GB", "GB:en"
	case analysis.RegionGermany:
		return "de", "DE", "DE:de"
	case analysis.RegionIndia:
		return "en-IN", "IN", "IN:en"
	case analysis.RegionIndonesia:
		return "id", "ID", "ID:id"
	default:
		return "en-US", "US", "US:en"
	}
}
