package classify

import (
	"context"
	"sort"
	"strings"
)

// industryKeywords is the scoring taxonomy, in relevance-tiebreak order.
// Matching is plain substring containment over the lowercased
// name+pitch text.
var industryKeywords = []struct {
	name     string
	keywords []string
}{
	{"AI and Machine Learning", []string{"ai", "machine learning", "artificial intelligence", "ml", "deep learning", "neural", "automation"}},
	{"Financial Technology", []string{"fintech", "banking", "payment", "finance", "insurance", "lending", "crypto"}},
	{"Healthcare Technology", []string{"health", "medical", "healthcare", "biotech", "wellness", "diagnosis", "clinical"}},
	{"E-commerce", []string{"ecommerce", "retail", "shopping", "marketplace", "commerce", "store", "shop"}},
	{"Enterprise Software", []string{"saas", "enterprise", "business software", "b2b", "cloud", "workflow"}},
	{"Education Technology", []string{"edtech", "education", "learning", "teaching", "school", "student", "training"}},
	{"Cybersecurity", []string{"security", "cyber", "privacy", "encryption", "protection", "firewall"}},
	{"Clean Technology", []string{"cleantech", "renewable", "sustainability", "green", "energy", "environmental"}},
	{"Internet of Things", []string{"iot", "connected devices", "smart home", "sensors", "hardware"}},
	{"Mobile Applications", []string{"mobile", "app", "android", "ios", "smartphone", "tablets"}},
}

// KeywordClassifier scores the fixed taxonomy against the pitch text
// and returns the top 3 industries, or the default triad when no
// keyword matches. It never returns an error.
type KeywordClassifier struct{}

func (KeywordClassifier) Industries(_ context.Context, startupName, pitch string) ([]string, error) {
	text := strings.ToLower(startupName + " " + pitch)

	type scored struct {
		name  string
		score int
	}
	var matches []scored
	for _, ind := range industryKeywords {
		score := 0
		for _, kw := range ind.keywords {
			if strings.Contains(text, kw) {
				score++
			}
		}
		if score > 0 {
			matches = append(matches, scored{name: ind.name, score: score})
		}
	}

	// stable sort keeps taxonomy order on ties
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].score > matches[j].score })

	if len(matches) == 0 {
		return Default(), nil
	}
	if len(matches) > 3 {
		matches = matches[:3]
	}
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.name)
	}
	return out, nil
}
