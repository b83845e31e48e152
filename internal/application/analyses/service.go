package analyses

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/bryanwahyu/rivalscan/internal/application"
	domai "github.com/bryanwahyu/rivalscan/internal/domain/ai"
	domain "github.com/bryanwahyu/rivalscan/internal/domain/analysis"
	domerr "github.com/bryanwahyu/rivalscan/internal/domain/analysiserrors"
	"github.com/bryanwahyu/rivalscan/internal/domain/classify"
	"github.com/bryanwahyu/rivalscan/internal/domain/competitors"
	"github.com/bryanwahyu/rivalscan/internal/domain/keywords"
	"github.com/bryanwahyu/rivalscan/internal/domain/search"
	"github.com/bryanwahyu/rivalscan/internal/domain/sentiment"
)

const (
	ModeRules = "rules"
	ModeLLM   = "llm"
)

// pipeline phases recorded in the error journal
const (
	phaseClassify   = "classify"
	phaseQuery      = "query"
	phaseSearch     = "search"
	phaseExtract    = "extract"
	phaseCommentary = "commentary"
	phaseArchive    = "archive"
)

// ErrUnknownIndustry is returned when an analysis is asked to analyze an
// industry that classification never proposed for it.
var ErrUnknownIndustry = errors.New("industry not part of analysis")

// Service implements use-cases untuk analisis kompetitor
// Service is designed to be used concurrently and is thread-safe
type Service struct {
	Repo       domain.Repository
	Errors     domerr.Repository
	Classifier classify.Classifier
	Searcher   search.Searcher
	AI         domai.Client         // nil saat mode rules
	Artifacts  domain.ArtifactStore // optional, boleh nil
	Clock      application.Clock
	Mode       string // "rules" | "llm"
	Sentiment  bool
	MaxResults int
}

//
// ==== USE CASES ====
//

// Command untuk membuat analysis baru
type CreateAnalysisCommand struct {
	StartupName string
	Pitch       string
	TimePeriod  string
	Region      string
}

// Create classifies the pitch into up to three industries and persists the
// pending analysis. Classification never blocks the flow: any failure falls
// back to the default triad and lands in the error journal.
func (s *Service) Create(ctx context.Context, cmd CreateAnalysisCommand) (*domain.Analysis, error) {
	now := s.Clock.Now()
	id := domain.AnalysisID(uuid.New().String())

	name := strings.TrimSpace(cmd.StartupName)
	pitch := strings.TrimSpace(cmd.Pitch)

	period := domain.TimePeriod(cmd.TimePeriod)
	if period == "" {
		period = domain.PeriodAnyTime
	}
	region := domain.Region(cmd.Region)
	if region == "" {
		region = domain.RegionGlobal
	}

	industries, err := s.Classifier.Industries(ctx, name, pitch)
	if err != nil {
		logrus.WithError(err).Warn("industry classification failed, using default industries")
		s.recordError(ctx, id, "", phaseClassify, err, "")
		industries = classify.Default()
	}
	if len(industries) == 0 {
		industries = classify.Default()
	}
	if len(industries) > 3 {
		industries = industries[:3]
	}

	a := &domain.Analysis{
		ID:          id,
		StartupName: name,
		Pitch:       pitch,
		TimePeriod:  period,
		Region:      region,
		Industries:  industries,
		Status:      domain.StatusPending,
		CreatedAt:   now,
	}
	if err := s.Repo.Save(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// AnalyzeIndustry runs the pipeline for one of the proposed industries and
// stores the resulting report on the analysis.
func (s *Service) AnalyzeIndustry(ctx context.Context, id domain.AnalysisID, industry string) (*domain.Analysis, error) {
	a, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !a.HasIndustry(industry) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownIndustry, industry)
	}

	rep, err := s.analyzeOne(ctx, a, industry)
	if err != nil {
		return nil, err
	}
	a.UpsertReport(rep)

	if err := s.Repo.Save(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Run membuat analysis lalu menganalisis semua industri berurutan, satu per
// satu. Kuota AI yang habis menghentikan sisa industri, progres tetap
// tersimpan.
func (s *Service) Run(ctx context.Context, cmd CreateAnalysisCommand) (*domain.Analysis, error) {
	a, err := s.Create(ctx, cmd)
	if err != nil {
		return nil, err
	}

	for _, industry := range a.Industries {
		rep, err := s.analyzeOne(ctx, a, industry)
		if err != nil {
			_ = s.Repo.Save(ctx, a)
			return a, err
		}
		a.UpsertReport(rep)
	}

	if err := s.Repo.Save(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// analyzeOne: search → sentiment → competitors → keywords → commentary.
// Search and extraction failures degrade to an empty report section and are
// journaled; only an exhausted AI quota during extraction propagates.
func (s *Service) analyzeOne(ctx context.Context, a *domain.Analysis, industry string) (domain.IndustryReport, error) {
	rep := domain.IndustryReport{
		Industry:        industry,
		Differentiators: competitors.Differentiators(industry),
		AnalyzedAt:      s.Clock.Now(),
	}

	query := s.buildQuery(ctx, a, industry)
	rep.Query = query

	resp, err := s.Searcher.Search(ctx, &search.Request{
		Query:      query,
		Period:     a.TimePeriod,
		Region:     a.Region,
		MaxResults: s.maxResults(),
	})
	if err != nil {
		logrus.WithError(err).WithField("industry", industry).Warn("web search failed")
		s.recordError(ctx, a.ID, industry, phaseSearch, err, query)
		return rep, nil
	}

	hits := make([]domain.SearchHit, 0, len(resp.Results))
	for _, r := range resp.Results {
		hit := domain.SearchHit{
			Title:       r.Title,
			Description: r.Description,
			URL:         r.URL,
			PublishedAt: r.PublishedAt,
		}
		if s.Sentiment {
			hit.Sentiment = sentiment.Score(r.Title + " " + r.Description)
		}
		hits = append(hits, hit)
	}
	rep.Hits = hits

	if s.Mode == ModeLLM && s.AI != nil {
		comps, err := s.AI.Competitors(ctx, industry, resp.Results)
		if err != nil {
			if errors.Is(err, domai.ErrQuotaExceeded) {
				return rep, err
			}
			logrus.WithError(err).WithField("industry", industry).Warn("competitor extraction failed")
			s.recordError(ctx, a.ID, industry, phaseExtract, err, query)
			comps = nil
		}
		rep.Competitors = s.fromAI(comps, hits, industry)
	} else {
		rep.Competitors = competitors.Derive(hits, industry)
	}

	if s.Sentiment && len(hits) > 0 {
		scores := make([]float64, len(hits))
		for i, h := range hits {
			scores[i] = h.Sentiment
		}
		avg := sentiment.Mean(scores)
		emoji, label := sentiment.Label(avg)
		rep.Sentiment = &domain.SentimentSummary{
			Average: avg,
			Trend:   sentiment.Trend(avg),
			Emoji:   emoji,
			Label:   label,
		}
	}

	texts := make([]string, 0, len(hits))
	for _, h := range hits {
		texts = append(texts, h.Description)
	}
	for _, kc := range keywords.Top(texts, 10) {
		rep.Keywords = append(rep.Keywords, domain.KeywordCount{Word: kc.Word, Count: kc.Count})
	}

	if s.Mode == ModeLLM && s.AI != nil {
		text, err := s.AI.Commentary(ctx, a.StartupName, a.Pitch, industry)
		if err != nil {
			logrus.WithError(err).WithField("industry", industry).Warn("market commentary failed")
			s.recordError(ctx, a.ID, industry, phaseCommentary, err, "")
		} else {
			rep.Commentary = strings.TrimSpace(text)
		}
	}

	return rep, nil
}

// buildQuery pakai query AI di mode llm, selain itu gabungan nama+pitch+industri
func (s *Service) buildQuery(ctx context.Context, a *domain.Analysis, industry string) string {
	fallback := fmt.Sprintf("%s %s %s", a.StartupName, a.Pitch, industry)
	if s.Mode != ModeLLM || s.AI == nil {
		return fallback
	}
	q, err := s.AI.SearchQuery(ctx, a.StartupName, a.Pitch, industry)
	if err != nil {
		logrus.WithError(err).WithField("industry", industry).Warn("query generation failed, using plain query")
		s.recordError(ctx, a.ID, industry, phaseQuery, err, "")
		return fallback
	}
	if strings.TrimSpace(q) == "" {
		return fallback
	}
	return q
}

// fromAI normalizes model-extracted competitors: coerced website, fallback
// differentiator, sentiment borrowed from the matching search hit.
func (s *Service) fromAI(comps []domai.Competitor, hits []domain.SearchHit, industry string) []domain.Competitor {
	diffs := competitors.Differentiators(industry)
	out := make([]domain.Competitor, 0, len(comps))
	for _, c := range comps {
		if len(out) >= competitors.MaxCompetitors {
			break
		}
		dom := competitors.PrimaryDomain(c.Website)
		diff := strings.TrimSpace(c.KeyDifferentiator)
		if diff == "" && len(diffs) > 0 {
			diff = diffs[len(out)%len(diffs)]
		}
		out = append(out, domain.Competitor{
			Name:           c.Name,
			Website:        competitors.CoerceWebsite(dom),
			Description:    competitors.StripHTML(c.Description),
			Differentiator: diff,
			Sentiment:      hitSentiment(hits, dom),
		})
	}
	return out
}

func hitSentiment(hits []domain.SearchHit, dom string) float64 {
	if dom == "" {
		return 0
	}
	for _, h := range hits {
		if competitors.PrimaryDomain(h.URL) == dom {
			return h.Sentiment
		}
	}
	return 0
}

func (s *Service) maxResults() int {
	if s.MaxResults <= 0 {
		return 20
	}
	return s.MaxResults
}

func (s *Service) recordError(ctx context.Context, id domain.AnalysisID, industry, phase string, cause error, query string) {
	if s.Errors == nil {
		return
	}
	e := &domerr.AnalysisError{
		AnalysisID: string(id),
		Industry:   industry,
		Phase:      phase,
		Message:    cause.Error(),
		CreatedAt:  s.Clock.Now(),
	}
	if query != "" {
		b, _ := json.Marshal(map[string]string{"query": query})
		e.DetailsJSON = string(b)
	}
	if err := s.Errors.Save(ctx, e); err != nil {
		logrus.WithError(err).Warn("failed to record analysis error")
	}
}

// Latest ambil N analysis terakhir
func (s *Service) Latest(ctx context.Context, limit int) ([]*domain.Analysis, error) {
	return s.Repo.Latest(ctx, limit)
}

// Get ambil 1 analysis by id
func (s *Service) Get(ctx context.Context, id domain.AnalysisID) (*domain.Analysis, error) {
	return s.Repo.Get(ctx, id)
}

// Paginate list analyses dengan filter opsional
func (s *Service) Paginate(ctx context.Context, page, pageSize int, filters map[string]interface{}) (domain.PaginatedResult, error) {
	return s.Repo.Paginate(ctx, page, pageSize, filters)
}

// Summary rekap hasil analysis N hari terakhir
func (s *Service) Summary(ctx context.Context, sinceDays int) (map[string]any, error) {
	analyses, totalCompetitors, avgSentiment, err := s.Repo.Summary(ctx, sinceDays)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"total_analyses":    analyses,
		"total_competitors": totalCompetitors,
		"avg_sentiment":     avgSentiment,
	}, nil
}

// ListErrors ambil isi error journal untuk satu analysis
func (s *Service) ListErrors(ctx context.Context, id domain.AnalysisID, limit int) ([]*domerr.AnalysisError, error) {
	if s.Errors == nil {
		return nil, nil
	}
	return s.Errors.ListByAnalysis(ctx, string(id), limit)
}
