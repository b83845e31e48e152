package httpserver

import (
	"html/template"
	"net/http"
)

type selectOption struct {
	Value    string
	Selected bool
}

type formEcho struct {
	StartupName string
	Pitch       string
	TimePeriod  string
	Region      string
}

type recentItem struct {
	ID          string
	StartupName string
	Status      string
	CreatedAt   string
}

type homePage struct {
	Warnings []string
	Error    string
	Form     formEcho
	Periods  []selectOption
	Regions  []selectOption
	Recent   []recentItem
}

type industryTab struct {
	Name     string
	Analyzed bool
	Selected bool
}

type competitorCard struct {
	Name           string
	Website        string
	Description    string
	Differentiator string
}

type sentimentView struct {
	Score string
	Emoji string
	Label string
	Trend string
}

type keywordBar struct {
	Word  string
	Count int
	Width int
}

type hitView struct {
	Title       string
	URL         string
	Description string
	Date        string
	Emoji       string
	Score       string
}

type reportView struct {
	Industry        string
	Query           string
	Empty           bool
	Competitors     []competitorCard
	Sentiment       *sentimentView
	Keywords        []keywordBar
	Differentiators []string
	Commentary      string
	Hits            []hitView
	AnalyzedAt      string
}

type showPage struct {
	ID          string
	StartupName string
	Pitch       string
	TimePeriod  string
	Region      string
	Status      string
	Banners     []string
	Industries  []industryTab
	Report      *reportView
}

func renderHome(w http.ResponseWriter, status int, page homePage) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	return homeTmpl.Execute(w, page)
}

func renderShow(w http.ResponseWriter, status int, page showPage) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	return showTmpl.Execute(w, page)
}

var (
	homeTmpl = template.Must(template.New("home").Parse(homeHTML))
	showTmpl = template.Must(template.New("show").Parse(showHTML))
)

// Palet warna dan layout kartu dipertahankan dari UI lama.
const pageStyle = `<style>
@import url('https://fonts.googleapis.com/css2?family=Poppins:wght@300;400;600&display=swap');

html * {
    font-family: 'Poppins', sans-serif;
}

body {
    margin: 0;
    background: #ffffff;
    color: #31333F;
}

.container {
    max-width: 860px;
    margin: 0 auto;
    padding: 24px 16px 64px;
}

.analysis-form label {
    display: block;
    margin-top: 12px;
    font-weight: 600;
}

.analysis-form input,
.analysis-form textarea,
.analysis-form select {
    width: 100%;
    box-sizing: border-box;
    padding: 8px;
    margin-top: 4px;
    border: 1px solid #ccc;
    border-radius: 5px;
    font-size: 1em;
}

button, .button-link {
    background-color: #4CAF50;
    color: white;
    font-weight: bold;
    border: none;
    border-radius: 5px;
    padding: 10px 18px;
    margin-top: 16px;
    cursor: pointer;
    text-decoration: none;
    display: inline-block;
}

.competitor-card {
    padding: 20px;
    border-radius: 10px;
    background-color: #f8f9fa;
    margin: 10px 0;
    border-left: 5px solid #4CAF50;
}

.sentiment-box {
    padding: 20px;
    border-radius: 10px;
    margin: 10px 0;
    background-color: #f8f9fa;
}

.article-date {
    color: #666;
    font-size: 0.9em;
}

.differentiator {
    background-color: #e8f5e9;
    padding: 15px;
    border-radius: 8px;
    margin: 10px 0;
}

.banner {
    background-color: #fff3cd;
    border: 1px solid #ffeeba;
    border-radius: 5px;
    padding: 12px;
    margin: 10px 0;
}

.error-box {
    background-color: #f8d7da;
    border: 1px solid #f5c6cb;
    border-radius: 5px;
    padding: 12px;
    margin: 10px 0;
}

.warning {
    background-color: #fff3cd;
    border-radius: 5px;
    padding: 12px;
    margin: 10px 0;
}

.industry-buttons {
    display: flex;
    flex-wrap: wrap;
    gap: 8px;
}

.industry-buttons form {
    display: inline;
}

.keyword-row {
    display: flex;
    align-items: center;
    gap: 8px;
    margin: 4px 0;
}

.keyword-row .keyword {
    min-width: 140px;
}

.keyword-row .bar {
    height: 12px;
    background-color: #4CAF50;
    border-radius: 3px;
}

.coverage {
    margin: 14px 0;
}

.recent-list {
    list-style: none;
    padding: 0;
}

.recent-list li {
    padding: 6px 0;
    border-bottom: 1px solid #eee;
}
</style>`

const homeHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Relevant Venture Studio Competitor Analysis</title>
` + pageStyle + `
</head>
<body>
<div class="container">
<h1>📊 Relevant Venture Studio Competitor Analysis</h1>
{{range .Warnings}}<div class="banner">{{.}}</div>
{{end}}
{{if .Error}}<div class="error-box">{{.Error}}</div>{{end}}
<form class="analysis-form" method="post" action="/analyses">
  <label for="startup_name">Startup Name</label>
  <input type="text" id="startup_name" name="startup_name" maxlength="80" value="{{.Form.StartupName}}" required>

  <label for="pitch">One-line Pitch</label>
  <textarea id="pitch" name="pitch" rows="3" maxlength="200" required>{{.Form.Pitch}}</textarea>

  <label for="time_period">Time Period for Analysis</label>
  <select id="time_period" name="time_period">
    {{range .Periods}}<option value="{{.Value}}"{{if .Selected}} selected{{end}}>{{.Value}}</option>
    {{end}}
  </select>

  <label for="region">Region</label>
  <select id="region" name="region">
    {{range .Regions}}<option value="{{.Value}}"{{if .Selected}} selected{{end}}>{{.Value}}</option>
    {{end}}
  </select>

  <button type="submit">🔍 Analyze Competitors</button>
</form>

{{if .Recent}}
<h2>Recent Analyses</h2>
<ul class="recent-list">
  {{range .Recent}}<li><a href="/analyses/{{.ID}}">{{.StartupName}}</a> <span class="article-date">{{.CreatedAt}} ({{.Status}})</span></li>
  {{end}}
</ul>
{{end}}
</div>
</body>
</html>`

const showHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Competitor Analysis: {{.StartupName}}</title>
` + pageStyle + `
</head>
<body>
<div class="container">
<p><a href="/">← New analysis</a></p>
<h1>📊 {{.StartupName}}</h1>
<p>{{.Pitch}}</p>
<p class="article-date">{{.TimePeriod}} · {{.Region}} · {{.Status}}</p>

{{range .Banners}}<div class="banner">{{.}}</div>
{{end}}

<h2>Select Industry for Analysis</h2>
<p>Based on your input, we've identified these relevant industries:</p>
<div class="industry-buttons">
  {{range .Industries}}<form method="post" action="/analyses/{{$.ID}}/industries">
    <input type="hidden" name="industry" value="{{.Name}}">
    <button type="submit">📊 {{.Name}}{{if .Analyzed}} ✓{{end}}</button>
  </form>
  {{end}}
</div>

{{with .Report}}
<h2>Competitor Analysis Results: {{.Industry}}</h2>
<p class="article-date">Query: {{.Query}} · Analyzed {{.AnalyzedAt}}</p>

{{if .Commentary}}
<h3>Market Commentary</h3>
<p>{{.Commentary}}</p>
{{end}}

<h3>🏢 Key Competitors Analysis</h3>
{{if .Empty}}
<div class="warning">No direct competitors found. Try adjusting your search criteria.</div>
{{else}}
{{range .Competitors}}<div class="competitor-card">
  <h3>{{.Name}}</h3>
  <p><strong>Website:</strong> <a href="{{.Website}}" target="_blank" rel="noopener">{{.Website}}</a></p>
  <p><strong>Summary:</strong> {{.Description}}</p>
  {{if .Differentiator}}<p><strong>Key Differentiator:</strong> {{.Differentiator}}</p>{{end}}
</div>
{{end}}
{{end}}

{{with .Sentiment}}
<div class="sentiment-box">
  <h3>{{.Emoji}} Overall Sentiment: {{.Score}}</h3>
  <p><strong>{{.Label}}</strong> coverage, {{.Trend}} trend.</p>
  <p class="article-date">🤩 0.5 to 1.0: Very Positive · 😊 0.0 to 0.5: Positive · 😐 0.0: Neutral · 😕 -0.5 to 0.0: Negative · 😢 -1.0 to -0.5: Very Negative</p>
</div>
{{end}}

{{if .Keywords}}
<h3>Trending Keywords</h3>
{{range .Keywords}}<div class="keyword-row">
  <span class="keyword">{{.Word}}</span>
  <div class="bar" style="width: {{.Width}}%"></div>
  <span class="article-date">{{.Count}}</span>
</div>
{{end}}
{{end}}

<h3>💡 Differentiation Opportunities</h3>
<div class="differentiator">
  <h4>Recommended Positioning Strategies:</h4>
  <ul>
    {{range .Differentiators}}<li>{{.}}</li>
    {{end}}
  </ul>
</div>

{{if .Hits}}
<h3>Recent Coverage</h3>
{{range .Hits}}<div class="coverage">
  <a href="{{.URL}}" target="_blank" rel="noopener">{{.Title}}</a>{{if .Emoji}} <span>{{.Emoji}} {{.Score}}</span>{{end}}
  <p class="article-date">{{.Date}}</p>
  <p>{{.Description}}</p>
</div>
{{end}}
{{end}}

<p><a class="button-link" href="/analyses/{{$.ID}}/export.csv">📥 Download Results as CSV</a></p>
{{end}}
</div>
</body>
</html>`
