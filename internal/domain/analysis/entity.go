package analysis

import (
	"time"
)

// ID tipe untuk Analysis
type AnalysisID string

// TimePeriod enum, dipakai juga sebagai label di form
type TimePeriod string

const (
	PeriodLastMonth   TimePeriod = "Last Month"
	PeriodLast3Months TimePeriod = "Last 3 Months"
	PeriodLast6Months TimePeriod = "Last 6 Months"
	PeriodLastYear    TimePeriod = "Last Year"
	PeriodAnyTime     TimePeriod = "Any Time"
)

// Periods returns the selectable time periods in form order.
func Periods() []TimePeriod {
	return []TimePeriod{PeriodLastMonth, PeriodLast3Months, PeriodLast6Months, PeriodLastYear, PeriodAnyTime}
}

// Region enum, label tampilan untuk pilihan wilayah pencarian
type Region string

const (
	RegionGlobal        Region = "Global"
	RegionUnitedStates  Region = "United States"
	RegionUnitedKingdom Region = "United Kingdom"
	RegionGermany       Region = "Germany"
	RegionIndia         Region = "India"
	RegionIndonesia     Region = "Indonesia"
)

// Regions returns the selectable regions in form order.
func Regions() []Region {
	return []Region{RegionGlobal, RegionUnitedStates, RegionUnitedKingdom, RegionGermany, RegionIndia, RegionIndonesia}
}

// Status enum
type Status string

const (
	StatusPending  Status = "pending"
	StatusPartial  Status = "partial"
	StatusComplete Status = "complete"
)

// SearchHit is one scored search result kept alongside an industry report.
type SearchHit struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	PublishedAt time.Time `json:"published_at"`
	Sentiment   float64   `json:"sentiment"`
}

// Competitor value object, satu kartu kompetitor
type Competitor struct {
	Name           string  `json:"name"`
	Website        string  `json:"website"`
	Description    string  `json:"description"`
	Differentiator string  `json:"differentiator,omitempty"`
	Sentiment      float64 `json:"sentiment"`
}

// SentimentSummary aggregates hit polarity for one industry.
type SentimentSummary struct {
	Average float64 `json:"average"`
	Trend   string  `json:"trend"`
	Emoji   string  `json:"emoji"`
	Label   string  `json:"label"`
}

// KeywordCount is one bar of the keyword frequency chart.
type KeywordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// IndustryReport is the outcome of analyzing one industry.
type IndustryReport struct {
	Industry        string            `json:"industry"`
	Query           string            `json:"query"`
	Competitors     []Competitor      `json:"competitors"`
	Differentiators []string          `json:"differentiators,omitempty"`
	Hits            []SearchHit       `json:"hits,omitempty"`
	Sentiment       *SentimentSummary `json:"sentiment,omitempty"`
	Keywords        []KeywordCount    `json:"keywords,omitempty"`
	Commentary      string            `json:"commentary,omitempty"`
	AnalyzedAt      time.Time         `json:"analyzed_at"`
}

// Aggregate Root: Analysis
type Analysis struct {
	ID          AnalysisID       `json:"id"`
	StartupName string           `json:"startup_name"`
	Pitch       string           `json:"pitch"`
	TimePeriod  TimePeriod       `json:"time_period"`
	Region      Region           `json:"region,omitempty"`
	Industries  []string         `json:"industries"`
	Reports     []IndustryReport `json:"reports,omitempty"`
	Status      Status           `json:"status"`
	ArtifactURL string           `json:"artifact_url,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
}

// Report returns the report for an industry, if it has been analyzed.
func (a *Analysis) Report(industry string) (*IndustryReport, bool) {
	for i := range a.Reports {
		if a.Reports[i].Industry == industry {
			return &a.Reports[i], true
		}
	}
	return nil, false
}

// HasIndustry reports whether the industry was classified for this analysis.
func (a *Analysis) HasIndustry(industry string) bool {
	for _, ind := range a.Industries {
		if ind == industry {
			return true
		}
	}
	return false
}

// UpsertReport replaces the report for its industry or appends it,
// then refreshes Status.
func (a *Analysis) UpsertReport(rep IndustryReport) {
	for i := range a.Reports {
		if a.Reports[i].Industry == rep.Industry {
			a.Reports[i] = rep
			a.refreshStatus()
			return
		}
	}
	a.Reports = append(a.Reports, rep)
	a.refreshStatus()
}

func (a *Analysis) refreshStatus() {
	switch {
	case len(a.Reports) == 0:
		a.Status = StatusPending
	case len(a.Reports) < len(a.Industries):
		a.Status = StatusPartial
	default:
		a.Status = StatusComplete
	}
}

// CompetitorsTotal counts competitors across all reports.
func (a *Analysis) CompetitorsTotal() int {
	n := 0
	for _, rep := range a.Reports {
		n += len(rep.Competitors)
	}
	return n
}

// AvgSentiment is the mean of the per-industry sentiment averages.
// Reports without a sentiment summary are skipped.
func (a *Analysis) AvgSentiment() float64 {
	sum, n := 0.0, 0
	for _, rep := range a.Reports {
		if rep.Sentiment != nil {
			sum += rep.Sentiment.Average
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}
