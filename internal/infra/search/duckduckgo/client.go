package duckduckgo

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/bryanwahyu/rivalscan/internal/domain/analysis"
	"github.com/bryanwahyu/rivalscan/internal/domain/search"
)

const (
	endpoint  = "https://html.duckduckgo.com/html/"
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"
)

// Client scrapes the DuckDuckGo HTML endpoint. No API key needed, which makes
// it the default backend when no Brave key is configured.
type Client struct {
	client *http.Client
}

var _ search.Searcher = (*Client)(nil)

func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{client: &http.Client{Timeout: timeout}}
}

func (c *Client) Search(ctx context.Context, req *search.Request) (*search.Response, error) {
	form := url.Values{}
	form.Set("q", req.Query)
	if df := dateFilter(req.Period); df != "" {
		form.Set("df", df)
	}
	if kl := regionCode(req.Region); kl != "" {
		form.Set("kl", kl)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to build duckduckgo request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	httpReq.Header.Set("User-Agent", userAgent)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to call duckduckgo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, fmt.Errorf("duckduckgo returned %d: %s", resp.StatusCode, string(body))
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse duckduckgo html: %w", err)
	}

	max := req.MaxResults
	if max <= 0 {
		max = 20
	}

	now := time.Now()
	var results []search.Result
	doc.Find(".result").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if s.HasClass("result--ad") {
			return true
		}
		link := s.Find(".result__a").First()
		title := strings.TrimSpace(link.Text())
		href, _ := link.Attr("href")
		target := unwrapRedirect(href)
		if title == "" || target == "" {
			return true
		}
		results = append(results, search.Result{
			Title:       title,
			Description: strings.TrimSpace(s.Find(".result__snippet").First().Text()),
			URL:         target,
			PublishedAt: now,
		})
		return len(results) < max
	})

	return &search.Response{Provider: "duckduckgo", Query: req.Query, Results: results}, nil
}

// unwrapRedirect resolves DuckDuckGo's /l/?uddg=<encoded> redirect links to
// the destination URL.
func unwrapRedirect(href string) string {
	if href == "" {
		return ""
	}
	if strings.HasPrefix(href, "//") {
		href = "https:" + href
	}
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	if uddg := u.Query().Get("uddg"); uddg != "" {
		return uddg
	}
	return href
}

// dateFilter converts the analysis period into DuckDuckGo's df value. DDG
// only has day/week/month/year buckets, so the wider periods round up to a
// year.
func dateFilter(p analysis.TimePeriod) string {
	switch p {
	case analysis.PeriodLastMonth:
		return "m"
	case analysis.PeriodLast3Months:
		return "m"
	case analysis.PeriodLast6Months:
		return "y"
	case analysis.PeriodLastYear:
		return "y"
	default:
		return ""
	}
}

func regionCode(r analysis.Region) string {
	switch r {
	case analysis.RegionUnitedStates:
		return "us-en"
	case analysis.RegionUnitedKingdom:
		return "uk-en"
	case analysis.RegionGermany:
		return "de-de"
	case analysis.RegionIndia:
		return "in-en"
	case analysis.RegionIndonesia:
		return "id-id"
	default:
		return ""
	}
}
