package prompt

import (
	"fmt"
	"strings"

	"github.com/bryanwahyu/rivalscan/internal/domain/search"
)

// GetIndustriesSystemPrompt directs the model to answer with a bare JSON array.
func GetIndustriesSystemPrompt() string {
	return `You are a startup market analyst. You must respond with one valid JSON array only (no markdown, no commentary, no code fences).

Requirements:
- Output exactly 3 industry labels as a JSON array of strings.
- Labels are short market categories such as "Financial Technology" or "Healthcare Technology".
- Order the labels from most to least relevant.

Example output:
["Financial Technology", "Enterprise Software", "Mobile Applications"]`
}

// GetIndustriesUserPrompt builds the classification request for a pitch.
func GetIndustriesUserPrompt(startupName, pitch string) string {
	return fmt.Sprintf("Startup: %s\nPitch: %s\nReturn the 3 most relevant industries as a JSON array.", startupName, pitch)
}

// GetQuerySystemPrompt directs the model to answer with a single search query.
func GetQuerySystemPrompt() string {
	return `You are a competitive-intelligence researcher. Respond with one concise web-search query on a single line. No quotes, no markdown, no explanation.`
}

// GetQueryUserPrompt builds the query-generation request.
func GetQueryUserPrompt(startupName, pitch, industry string) string {
	return fmt.Sprintf("Write a web-search query to find direct competitors of this startup.\nStartup: %s\nPitch: %s\nIndustry: %s", startupName, pitch, industry)
}

// GetCompetitorsSystemPrompt provides strict directions and schema for JSON output.
func GetCompetitorsSystemPrompt() string {
	return `You are a startup market analyst. You must produce one valid JSON array only (no markdown, no commentary) that follows the schema below. Do not include code fences.

Requirements:
- Output must be a JSON array of exactly 3 objects.
- Each object has the keys: name, website, description, key_differentiator.
- website is the company domain, for example "acme.com".
- description is one sentence about what the company does.
- key_differentiator is one sentence on how a newcomer could position against it.

Schema (example with empty values):
[
  {
    "name": "<string>",
    "website": "<string>",
    "description": "<string>",
    "key_differentiator": "<string>"
  }
]`
}

// GetCompetitorsUserPrompt renders the raw search results into the
// extraction request.
func GetCompetitorsUserPrompt(industry string, results []search.Result) string {
	return fmt.Sprintf("Extract the 3 most direct competitors in the %s industry from these search results. Respond with the JSON per schema.\n\n%s",
		industry, FormatSearchResults(results))
}

// GetCommentarySystemPrompt asks for a short positioning note.
func GetCommentarySystemPrompt() string {
	return `You are a startup market analyst. Respond with 2-3 plain sentences of market commentary. No markdown, no lists, no headings.`
}

// GetCommentaryUserPrompt builds the commentary request.
func GetCommentaryUserPrompt(startupName, pitch, industry string) string {
	return fmt.Sprintf("Give a brief market-positioning commentary for this startup within the %s industry.\nStartup: %s\nPitch: %s", industry, startupName, pitch)
}

// FormatSearchResults flattens hits into the numbered list fed to the model.
func FormatSearchResults(results []search.Result) string {
	var b strings.Builder
	for i, r := range results {
		fmt.Fprintf(&b, "%d. %s - %s (%s)\n", i+1, r.Title, r.Description, r.URL)
	}
	return b.String()
}
