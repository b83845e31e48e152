package prompt

import (
	"encoding/json"
	"strings"

	"github.com/bryanwahyu/rivalscan/internal/domain/ai"
	"github.com/bryanwahyu/rivalscan/internal/domain/classify"
)

// ExtractJSON trims markdown fences and surrounding prose so that only the
// first JSON array or object remains. Model kadang membungkus output dalam
// ```json fence walau sudah dilarang.
func ExtractJSON(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		if idx := strings.LastIndex(s, "```"); idx >= 0 {
			s = s[:idx]
		}
		s = strings.TrimSpace(s)
	}

	start := strings.IndexAny(s, "[{")
	if start < 0 {
		return s
	}
	var end int
	if s[start] == '[' {
		end = strings.LastIndex(s, "]")
	} else {
		end = strings.LastIndex(s, "}")
	}
	if end <= start {
		return s
	}
	return s[start : end+1]
}

// ParseIndustries decodes the classification answer. A malformed or empty
// answer falls back to the default triad so the analysis can proceed.
func ParseIndustries(raw string) []string {
	var out []string
	if err := json.Unmarshal([]byte(ExtractJSON(raw)), &out); err != nil {
		return classify.Default()
	}
	cleaned := make([]string, 0, len(out))
	for _, v := range out {
		v = strings.TrimSpace(v)
		if v != "" {
			cleaned = append(cleaned, v)
		}
	}
	if len(cleaned) == 0 {
		return classify.Default()
	}
	if len(cleaned) > 3 {
		cleaned = cleaned[:3]
	}
	return cleaned
}

// ParseCompetitors decodes the extraction answer. Malformed output yields nil
// so the caller renders the empty-state card instead of failing the request.
func ParseCompetitors(raw string) []ai.Competitor {
	var out []ai.Competitor
	if err := json.Unmarshal([]byte(ExtractJSON(raw)), &out); err != nil {
		return nil
	}
	cleaned := make([]ai.Competitor, 0, len(out))
	for _, c := range out {
		c.Name = strings.TrimSpace(c.Name)
		if c.Name == "" {
			continue
		}
		cleaned = append(cleaned, c)
	}
	if len(cleaned) == 0 {
		return nil
	}
	if len(cleaned) > 3 {
		cleaned = cleaned[:3]
	}
	return cleaned
}

// ParseQuery keeps the first non-empty line of a query answer.
func ParseQuery(raw string) string {
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		line = strings.Trim(line, "`\"")
		if line != "" {
			return line
		}
	}
	return ""
}
