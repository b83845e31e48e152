package competitors

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bryanwahyu/rivalscan/internal/domain/analysis"
)

func hit(title, url, desc string) analysis.SearchHit {
	return analysis.SearchHit{Title: title, URL: url, Description: desc}
}

func TestDeriveDedupAndExclusions(t *testing.T) {
	hits := []analysis.SearchHit{
		hit("Acme - payments for startups", "https://www.acme.io/product", "<strong>Acme</strong> handles payments"),
		hit("Acme raises round", "https://acme.io/press", "dup domain"),
		hit("Acme coverage", "https://technews.com/acme", "excluded host"),
		hit("Rival blog post", "https://blog.rival.com/post", "excluded host"),
		hit("Writeup", "https://medium.com/@x/writeup", "excluded host"),
		hit("Bolt", "https://bolt.dev", "checkout"),
	}

	got := Derive(hits, "Financial Technology")

	assert.Len(t, got, 2)
	assert.Equal(t, "Acme", got[0].Name)
	assert.Equal(t, "https://www.acme.io", got[0].Website)
	assert.Equal(t, "Acme handles payments", got[0].Description)
	assert.Equal(t, "Bolt", got[1].Name)
	assert.Equal(t, "https://www.bolt.dev", got[1].Website)
}

func TestDeriveCapsAtFive(t *testing.T) {
	var hits []analysis.SearchHit
	for _, d := range []string{"a.com", "b.com", "c.com", "d.com", "e.com", "f.com", "g.com"} {
		hits = append(hits, hit("Site "+d, "https://"+d, "desc"))
	}
	got := Derive(hits, "E-commerce")
	assert.Len(t, got, MaxCompetitors)
}

func TestDeriveRoundRobinDifferentiators(t *testing.T) {
	hits := []analysis.SearchHit{
		hit("One", "https://one.com", ""),
		hit("Two", "https://two.com", ""),
	}
	got := Derive(hits, "AI and Machine Learning")
	diffs := Differentiators("AI and Machine Learning")
	assert.Equal(t, diffs[0], got[0].Differentiator)
	assert.Equal(t, diffs[1], got[1].Differentiator)
}

func TestDifferentiatorsFallback(t *testing.T) {
	assert.Equal(t, genericDifferentiators, Differentiators("Clean Technology"))
	assert.Len(t, Differentiators("Financial Technology"), 5)
}

func TestPrimaryDomain(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://www.Example.com/a/b", "example.com"},
		{"http://example.com", "example.com"},
		{"example.com", "example.com"},
		{"www.example.com/path", "example.com"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PrimaryDomain(tt.in), "input %q", tt.in)
	}
}

func TestNameFromTitle(t *testing.T) {
	assert.Equal(t, "Acme", NameFromTitle("Acme - the best payments"))
	assert.Equal(t, "No Separator Here", NameFromTitle("No Separator Here"))
}
