package memory

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/bryanwahyu/rivalscan/internal/domain/analysis"
	domerr "github.com/bryanwahyu/rivalscan/internal/domain/analysiserrors"
)

func sampleAnalysis(id, name string, created time.Time) *domain.Analysis {
	return &domain.Analysis{
		ID:          domain.AnalysisID(id),
		StartupName: name,
		Pitch:       "We help startups find their rivals",
		TimePeriod:  domain.PeriodLastMonth,
		Region:      domain.RegionGlobal,
		Industries:  []string{"Financial Technology"},
		Status:      domain.StatusPending,
		CreatedAt:   created,
	}
}

func TestSaveGetRoundTrip(t *testing.T) {
	repo := NewAnalysisRepository()
	ctx := context.Background()

	a := sampleAnalysis("a-1", "PayFlow", time.Now())
	a.UpsertReport(domain.IndustryReport{
		Industry: "Financial Technology",
		Competitors: []domain.Competitor{
			{Name: "Acme", Website: "https://www.acme.io"},
		},
	})
	require.NoError(t, repo.Save(ctx, a))

	got, err := repo.Get(ctx, "a-1")
	require.NoError(t, err)
	assert.Equal(t, "PayFlow", got.StartupName)
	require.Len(t, got.Reports, 1)
	assert.Equal(t, "Acme", got.Reports[0].Competitors[0].Name)

	// stored copy is isolated from later caller mutations
	a.StartupName = "changed"
	got2, err := repo.Get(ctx, "a-1")
	require.NoError(t, err)
	assert.Equal(t, "PayFlow", got2.StartupName)
}

func TestGetMissingReturnsNoRows(t *testing.T) {
	repo := NewAnalysisRepository()
	_, err := repo.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestLatestOrdersNewestFirst(t *testing.T) {
	repo := NewAnalysisRepository()
	ctx := context.Background()
	base := time.Now()

	require.NoError(t, repo.Save(ctx, sampleAnalysis("a-1", "Oldest", base.Add(-2*time.Hour))))
	require.NoError(t, repo.Save(ctx, sampleAnalysis("a-2", "Newest", base)))
	require.NoError(t, repo.Save(ctx, sampleAnalysis("a-3", "Middle", base.Add(-time.Hour))))

	got, err := repo.Latest(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Newest", got[0].StartupName)
	assert.Equal(t, "Middle", got[1].StartupName)
}

func TestPaginateFilters(t *testing.T) {
	repo := NewAnalysisRepository()
	ctx := context.Background()
	base := time.Now()

	a := sampleAnalysis("a-1", "PayFlow", base)
	a.Status = domain.StatusComplete
	require.NoError(t, repo.Save(ctx, a))
	require.NoError(t, repo.Save(ctx, sampleAnalysis("a-2", "MediTrack", base.Add(-time.Minute))))
	require.NoError(t, repo.Save(ctx, sampleAnalysis("a-3", "PayLater", base.Add(-2*time.Minute))))

	res, err := repo.Paginate(ctx, 1, 10, map[string]interface{}{"startup": "pay"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Total)
	require.Len(t, res.Data, 2)
	assert.Equal(t, "PayFlow", res.Data[0].StartupName)

	res, err = repo.Paginate(ctx, 1, 10, map[string]interface{}{"status": "complete"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Total)

	res, err = repo.Paginate(ctx, 2, 2, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(3), res.Total)
	assert.Equal(t, 2, res.TotalPages)
	require.Len(t, res.Data, 1)
}

func TestSummaryAggregates(t *testing.T) {
	repo := NewAnalysisRepository()
	ctx := context.Background()

	a := sampleAnalysis("a-1", "PayFlow", time.Now())
	a.UpsertReport(domain.IndustryReport{
		Industry:    "Financial Technology",
		Competitors: []domain.Competitor{{Name: "Acme"}, {Name: "Bolt"}},
		Sentiment:   &domain.SentimentSummary{Average: 0.4},
	})
	require.NoError(t, repo.Save(ctx, a))

	old := sampleAnalysis("a-2", "Ancient", time.Now().AddDate(0, 0, -30))
	require.NoError(t, repo.Save(ctx, old))

	analyses, competitors, avg, err := repo.Summary(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, 1, analyses)
	assert.Equal(t, 2, competitors)
	assert.InDelta(t, 0.4, avg, 1e-9)
}

func TestSetArtifactURL(t *testing.T) {
	repo := NewAnalysisRepository()
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, sampleAnalysis("a-1", "PayFlow", time.Now())))
	require.NoError(t, repo.SetArtifactURL(ctx, "a-1", "https://minio.local/exports/a-1.csv"))

	got, err := repo.Get(ctx, "a-1")
	require.NoError(t, err)
	assert.Equal(t, "https://minio.local/exports/a-1.csv", got.ArtifactURL)

	assert.ErrorIs(t, repo.SetArtifactURL(ctx, "missing", "x"), sql.ErrNoRows)
}

func TestErrorRepoListNewestFirst(t *testing.T) {
	repo := NewAnalysisErrorRepository()
	ctx := context.Background()

	for _, phase := range []string{"classify", "search", "extract"} {
		require.NoError(t, repo.Save(ctx, &domerr.AnalysisError{
			AnalysisID: "a-1",
			Industry:   "Financial Technology",
			Phase:      phase,
			Message:    phase + " failed",
		}))
	}
	require.NoError(t, repo.Save(ctx, &domerr.AnalysisError{AnalysisID: "a-2", Phase: "search"}))

	got, err := repo.ListByAnalysis(ctx, "a-1", 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "extract", got[0].Phase)
	assert.Equal(t, "search", got[1].Phase)
}
