package analyses

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/rivalscan/internal/application"
	domai "github.com/bryanwahyu/rivalscan/internal/domain/ai"
	domain "github.com/bryanwahyu/rivalscan/internal/domain/analysis"
	"github.com/bryanwahyu/rivalscan/internal/domain/search"
	"github.com/bryanwahyu/rivalscan/internal/infra/db/memory"
)

type stubClassifier struct {
	industries []string
	err        error
}

func (s stubClassifier) Industries(context.Context, string, string) ([]string, error) {
	return s.industries, s.err
}

type stubSearcher struct {
	results []search.Result
	err     error
	calls   int
	lastReq *search.Request
}

func (s *stubSearcher) Search(_ context.Context, req *search.Request) (*search.Response, error) {
	s.calls++
	s.lastReq = req
	if s.err != nil {
		return nil, s.err
	}
	return &search.Response{Provider: "stub", Query: req.Query, Results: s.results}, nil
}

type stubAI struct {
	query         string
	queryErr      error
	comps         []domai.Competitor
	compsErr      error
	commentary    string
	commentaryErr error
}

func (s *stubAI) Industries(context.Context, string, string) ([]string, error) {
	return nil, nil
}

func (s *stubAI) SearchQuery(context.Context, string, string, string) (string, error) {
	return s.query, s.queryErr
}

func (s *stubAI) Competitors(context.Context, string, []search.Result) ([]domai.Competitor, error) {
	return s.comps, s.compsErr
}

func (s *stubAI) Commentary(context.Context, string, string, string) (string, error) {
	return s.commentary, s.commentaryErr
}

func newService(classifier stubClassifier, searcher *stubSearcher) (*Service, *memory.AnalysisRepository, *memory.AnalysisErrorRepository) {
	repo := memory.NewAnalysisRepository()
	errRepo := memory.NewAnalysisErrorRepository()
	svc := &Service{
		Repo:       repo,
		Errors:     errRepo,
		Classifier: classifier,
		Searcher:   searcher,
		Clock:      application.FixedClock{T: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)},
		Mode:       ModeRules,
		Sentiment:  true,
		MaxResults: 20,
	}
	return svc, repo, errRepo
}

func fintechResults() []search.Result {
	return []search.Result{
		{Title: "Acme - Modern payments", Description: "Acme is an excellent payments platform loved by startups", URL: "https://acme.io/product"},
		{Title: "Acme raises a new round", Description: "duplicate domain entry", URL: "https://www.acme.io/news"},
		{Title: "TechNews fintech roundup", Description: "weekly digest of fintech coverage", URL: "https://technews.com/roundup"},
		{Title: "Bolt - Checkout", Description: "Bolt builds checkout flows criticized for hidden fees", URL: "https://bolt.dev"},
	}
}

func TestRunRulesMode(t *testing.T) {
	searcher := &stubSearcher{results: fintechResults()}
	svc, repo, _ := newService(stubClassifier{industries: []string{"Financial Technology"}}, searcher)

	a, err := svc.Run(context.Background(), CreateAnalysisCommand{
		StartupName: "PayFlow",
		Pitch:       "Instant payments for small businesses",
		TimePeriod:  "Last Month",
		Region:      "Global",
	})
	require.NoError(t, err)
	require.NotNil(t, a)

	assert.Equal(t, domain.StatusComplete, a.Status)
	require.Len(t, a.Reports, 1)
	rep := a.Reports[0]

	assert.Equal(t, "PayFlow Instant payments for small businesses Financial Technology", rep.Query)
	assert.Equal(t, 1, searcher.calls)
	assert.Equal(t, domain.PeriodLastMonth, searcher.lastReq.Period)

	// dedup by domain, aggregator hosts dropped
	require.Len(t, rep.Competitors, 2)
	assert.Equal(t, "Acme", rep.Competitors[0].Name)
	assert.Equal(t, "https://www.acme.io", rep.Competitors[0].Website)
	assert.Equal(t, "Bolt", rep.Competitors[1].Name)

	require.NotNil(t, rep.Sentiment)
	assert.NotEmpty(t, rep.Sentiment.Emoji)
	assert.Len(t, rep.Hits, 4)

	var words []string
	for _, kc := range rep.Keywords {
		words = append(words, kc.Word)
	}
	assert.Contains(t, words, "payments")

	stored, err := repo.Get(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusComplete, stored.Status)
}

func TestRunSearchFailureJournalsAndContinues(t *testing.T) {
	searcher := &stubSearcher{err: errors.New("brave api returned 503")}
	svc, _, errRepo := newService(stubClassifier{industries: []string{"Financial Technology"}}, searcher)

	a, err := svc.Run(context.Background(), CreateAnalysisCommand{
		StartupName: "PayFlow",
		Pitch:       "Instant payments",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusComplete, a.Status)
	require.Len(t, a.Reports, 1)
	assert.Empty(t, a.Reports[0].Competitors)
	assert.Nil(t, a.Reports[0].Sentiment)

	journal, err := errRepo.ListByAnalysis(context.Background(), string(a.ID), 10)
	require.NoError(t, err)
	require.Len(t, journal, 1)
	assert.Equal(t, "search", journal[0].Phase)
	assert.Contains(t, journal[0].Message, "503")
	assert.Contains(t, journal[0].DetailsJSON, "PayFlow")
}

func TestCreateClassifierFailureFallsBack(t *testing.T) {
	svc, _, errRepo := newService(stubClassifier{err: errors.New("model unavailable")}, &stubSearcher{})

	a, err := svc.Create(context.Background(), CreateAnalysisCommand{
		StartupName: "Mystery",
		Pitch:       "Something unusual",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"Technology", "Software", "Consumer"}, a.Industries)
	assert.Equal(t, domain.StatusPending, a.Status)
	assert.Equal(t, domain.PeriodAnyTime, a.TimePeriod)
	assert.Equal(t, domain.RegionGlobal, a.Region)

	journal, err := errRepo.ListByAnalysis(context.Background(), string(a.ID), 10)
	require.NoError(t, err)
	require.Len(t, journal, 1)
	assert.Equal(t, "classify", journal[0].Phase)
}

func TestAnalyzeIndustryRejectsUnknown(t *testing.T) {
	svc, _, _ := newService(stubClassifier{industries: []string{"Financial Technology"}}, &stubSearcher{})

	a, err := svc.Create(context.Background(), CreateAnalysisCommand{StartupName: "PayFlow", Pitch: "payments"})
	require.NoError(t, err)

	_, err = svc.AnalyzeIndustry(context.Background(), a.ID, "Gaming and Entertainment")
	assert.ErrorIs(t, err, ErrUnknownIndustry)
}

func TestAnalyzeIndustryUpdatesStatus(t *testing.T) {
	searcher := &stubSearcher{results: fintechResults()}
	svc, repo, _ := newService(stubClassifier{industries: []string{"Financial Technology", "Mobile Applications"}}, searcher)

	a, err := svc.Create(context.Background(), CreateAnalysisCommand{StartupName: "PayFlow", Pitch: "payments"})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, a.Status)

	a, err = svc.AnalyzeIndustry(context.Background(), a.ID, "Financial Technology")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPartial, a.Status)

	a, err = svc.AnalyzeIndustry(context.Background(), a.ID, "Mobile Applications")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusComplete, a.Status)

	stored, err := repo.Get(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Reports, 2)
}

func TestRunLLMMode(t *testing.T) {
	searcher := &stubSearcher{results: []search.Result{
		{Title: "Acme - Modern payments", Description: "Acme is an excellent payments platform", URL: "https://acme.com/product"},
	}}
	svc, _, _ := newService(stubClassifier{industries: []string{"Financial Technology"}}, searcher)
	svc.Mode = ModeLLM
	svc.AI = &stubAI{
		query: "acme payment api rivals",
		comps: []domai.Competitor{
			{Name: "Acme", Website: "acme.com", Description: "<b>Payments</b> API", KeyDifferentiator: "Own a niche vertical"},
			{Name: "Stripe", Website: "https://stripe.com/en", Description: "Payments infrastructure"},
		},
		commentary: "Crowded market with strong incumbents.",
	}

	a, err := svc.Run(context.Background(), CreateAnalysisCommand{StartupName: "PayFlow", Pitch: "payments"})
	require.NoError(t, err)

	require.Len(t, a.Reports, 1)
	rep := a.Reports[0]
	assert.Equal(t, "acme payment api rivals", rep.Query)
	assert.Equal(t, "Crowded market with strong incumbents.", rep.Commentary)

	require.Len(t, rep.Competitors, 2)
	assert.Equal(t, "https://www.acme.com", rep.Competitors[0].Website)
	assert.Equal(t, "Payments API", rep.Competitors[0].Description)
	assert.Equal(t, "Own a niche vertical", rep.Competitors[0].Differentiator)
	// sentiment borrowed from the acme.com search hit
	assert.Greater(t, rep.Competitors[0].Sentiment, 0.0)

	assert.Equal(t, "https://www.stripe.com", rep.Competitors[1].Website)
	// missing differentiator filled from the industry playbook
	assert.NotEmpty(t, rep.Competitors[1].Differentiator)
}

func TestRunLLMQueryFailureFallsBackToPlainQuery(t *testing.T) {
	searcher := &stubSearcher{results: fintechResults()}
	svc, _, errRepo := newService(stubClassifier{industries: []string{"Financial Technology"}}, searcher)
	svc.Mode = ModeLLM
	svc.AI = &stubAI{queryErr: errors.New("timeout"), comps: nil}

	a, err := svc.Run(context.Background(), CreateAnalysisCommand{StartupName: "PayFlow", Pitch: "payments"})
	require.NoError(t, err)

	require.Len(t, a.Reports, 1)
	assert.Equal(t, "PayFlow payments Financial Technology", a.Reports[0].Query)

	journal, err := errRepo.ListByAnalysis(context.Background(), string(a.ID), 10)
	require.NoError(t, err)
	var phases []string
	for _, e := range journal {
		phases = append(phases, e.Phase)
	}
	assert.Contains(t, phases, "query")
}

func TestRunQuotaExceededStopsRemainingIndustries(t *testing.T) {
	searcher := &stubSearcher{results: fintechResults()}
	svc, repo, _ := newService(stubClassifier{industries: []string{"Financial Technology", "Mobile Applications"}}, searcher)
	svc.Mode = ModeLLM
	svc.AI = &stubAI{query: "q", compsErr: domai.ErrQuotaExceeded}

	a, err := svc.Run(context.Background(), CreateAnalysisCommand{StartupName: "PayFlow", Pitch: "payments"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domai.ErrQuotaExceeded)
	require.NotNil(t, a)

	// progress saved before bailing out
	stored, gerr := repo.Get(context.Background(), a.ID)
	require.NoError(t, gerr)
	assert.Equal(t, domain.StatusPending, stored.Status)
	assert.Empty(t, stored.Reports)
}

func TestRunEmptyResultsYieldsEmptyState(t *testing.T) {
	searcher := &stubSearcher{results: nil}
	svc, _, _ := newService(stubClassifier{industries: []string{"Financial Technology"}}, searcher)

	a, err := svc.Run(context.Background(), CreateAnalysisCommand{StartupName: "PayFlow", Pitch: "payments"})
	require.NoError(t, err)

	require.Len(t, a.Reports, 1)
	assert.Empty(t, a.Reports[0].Competitors)
	assert.Empty(t, a.Reports[0].Keywords)
	assert.Nil(t, a.Reports[0].Sentiment)
	assert.Equal(t, domain.StatusComplete, a.Status)
}
