package competitors

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/bryanwahyu/rivalscan/internal/domain/analysis"
)

// MaxCompetitors caps the rule-derived competitor list.
const MaxCompetitors = 5

// Hosts containing these fragments are news/blog outlets, not competitors.
var excludedDomainParts = []string{"news", "blog", "medium"}

// PrimaryDomain extracts the lowercased host of a URL minus a leading
// "www.". Bare domains without a scheme are accepted too.
func PrimaryDomain(rawURL string) string {
	raw := strings.TrimSpace(rawURL)
	if raw == "" {
		return ""
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	host := strings.ToLower(u.Hostname())
	return strings.TrimPrefix(host, "www.")
}

// CoerceWebsite normalizes a domain to the canonical card URL form.
func CoerceWebsite(domain string) string {
	if domain == "" {
		return ""
	}
	return "https://www." + domain
}

// NameFromTitle takes the part of a result title before the first dash
// separator, the usual "Company - tagline" pattern.
func NameFromTitle(title string) string {
	if strings.Contains(title, "-") {
		return strings.TrimSpace(strings.SplitN(title, "-", 2)[0])
	}
	return strings.TrimSpace(title)
}

// StripHTML flattens snippet markup to plain text.
func StripHTML(s string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return strings.TrimSpace(s)
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}

func isExcluded(domain string) bool {
	for _, part := range excludedDomainParts {
		if strings.Contains(domain, part) {
			return true
		}
	}
	return false
}

// Derive builds competitor cards from search hits: first hit per primary
// domain wins, news/blog/medium hosts are skipped, and differentiators
// are assigned round-robin from the industry template list.
func Derive(hits []analysis.SearchHit, industry string) []analysis.Competitor {
	diffs := Differentiators(industry)
	seen := map[string]bool{}
	var out []analysis.Competitor
	for _, h := range hits {
		domain := PrimaryDomain(h.URL)
		if domain == "" || seen[domain] || isExcluded(domain) {
			continue
		}
		seen[domain] = true
		out = append(out, analysis.Competitor{
			Name:           NameFromTitle(h.Title),
			Website:        CoerceWebsite(domain),
			Description:    StripHTML(h.Description),
			Differentiator: diffs[len(out)%len(diffs)],
			Sentiment:      h.Sentiment,
		})
		if len(out) == MaxCompetitors {
			break
		}
	}
	return out
}

// industryDifferentiators holds positioning templates for industries
// with tailored advice; everything else gets the generic list.
var industryDifferentiators = map[string][]string{
	"AI and Machine Learning": {
		"Focus on explainable AI and transparency",
		"Offer more user-friendly interface for non-technical users",
		"Specialize in specific industry verticals",
		"Provide better data privacy guarantees",
		"Offer hybrid AI-human solutions",
	},
	"Financial Technology": {
		"Provide better integration with existing systems",
		"Focus on specific customer segments",
		"Offer more competitive pricing",
		"Enhance security features",
		"Provide better customer support",
	},
}

var genericDifferentiators = []string{
	"Focus on superior user experience",
	"Target underserved market segments",
	"Offer more competitive pricing",
	"Provide better customer support",
	"Develop unique features",
}

// Differentiators returns the positioning suggestions for an industry.
func Differentiators(industry string) []string {
	if d, ok := industryDifferentiators[industry]; ok {
		return d
	}
	return genericDifferentiators
}
