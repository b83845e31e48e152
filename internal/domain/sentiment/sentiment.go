package sentiment

import (
	"regexp"
	"strings"

	"github.com/grassmudhorses/vader-go/lexicon"
	"github.com/grassmudhorses/vader-go/sentitext"
)

var (
	urlPattern     = regexp.MustCompile(`http\S+|www\S+|https\S+`)
	nonWordPattern = regexp.MustCompile(`[^\w\s]`)
)

// Clean strips URLs and punctuation and lowercases the text before scoring.
func Clean(text string) string {
	text = urlPattern.ReplaceAllString(text, "")
	text = nonWordPattern.ReplaceAllString(text, "")
	return strings.ToLower(text)
}

// Score returns the lexicon compound polarity of the text, in [-1, 1].
func Score(text string) float64 {
	cleaned := Clean(text)
	if strings.TrimSpace(cleaned) == "" {
		return 0
	}
	parsed := sentitext.Parse(cleaned, lexicon.DefaultLexicon)
	return sentitext.PolarityScore(parsed).Compound
}

// Mean averages the scores; empty input is neutral.
func Mean(scores []float64) float64 {
	if len(scores) == 0 {
		return 0
	}
	sum := 0.0
	for _, s := range scores {
		sum += s
	}
	return sum / float64(len(scores))
}

// Label maps a score onto the five fixed bands.
func Label(score float64) (emoji string, label string) {
	switch {
	case score >= 0.5:
		return "🤩", "Very Positive"
	case score > 0:
		return "😊", "Positive"
	case score == 0:
		return "😐", "Neutral"
	case score > -0.5:
		return "😕", "Negative"
	default:
		return "😢", "Very Negative"
	}
}

// Trend buckets an average score by sign.
func Trend(avg float64) string {
	switch {
	case avg > 0:
		return "Positive"
	case avg < 0:
		return "Negative"
	default:
		return "Neutral"
	}
}
