package keywords

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/bbalet/stopwords"
)

// Count is one entry of the keyword frequency table.
type Count struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// Top tallies the most frequent non-stopword terms longer than 3
// characters across the texts. Ties break alphabetically so output is
// deterministic.
func Top(texts []string, n int) []Count {
	if n <= 0 {
		n = 10
	}
	cleaned := stopwords.CleanString(strings.Join(texts, " "), "en", true)

	freq := map[string]int{}
	for _, w := range strings.Fields(cleaned) {
		if utf8.RuneCountInString(w) > 3 {
			freq[w]++
		}
	}
	if len(freq) == 0 {
		return nil
	}

	out := make([]Count, 0, len(freq))
	for w, c := range freq {
		out = append(out, Count{Word: w, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Word < out[j].Word
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
