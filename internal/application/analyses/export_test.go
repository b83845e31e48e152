package analyses

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/rivalscan/internal/application"
	domain "github.com/bryanwahyu/rivalscan/internal/domain/analysis"
	"github.com/bryanwahyu/rivalscan/internal/infra/db/memory"
)

type stubArtifacts struct {
	url      string
	lastKey  string
	lastPath string
}

func (s *stubArtifacts) Upload(_ context.Context, localPath, key string) (string, error) {
	s.lastPath = localPath
	s.lastKey = key
	return s.url, nil
}

func (s *stubArtifacts) UploadAndCleanup(ctx context.Context, localPath, key string) (string, error) {
	url, err := s.Upload(ctx, localPath, key)
	if err != nil {
		return "", err
	}
	os.Remove(localPath)
	return url, nil
}

func exportFixture(t *testing.T) (*Service, *memory.AnalysisRepository, domain.AnalysisID) {
	t.Helper()
	repo := memory.NewAnalysisRepository()
	svc := &Service{
		Repo:  repo,
		Clock: application.FixedClock{T: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)},
	}

	a := &domain.Analysis{
		ID:          "a-1",
		StartupName: "Pay Flow",
		Pitch:       "Instant payments",
		TimePeriod:  domain.PeriodLastMonth,
		Region:      domain.RegionGlobal,
		Industries:  []string{"Financial Technology"},
		CreatedAt:   time.Now(),
	}
	a.UpsertReport(domain.IndustryReport{
		Industry: "Financial Technology",
		Competitors: []domain.Competitor{
			{
				Name:           "Acme",
				Website:        "https://www.acme.io",
				Description:    "Payments, checkout and billing",
				Differentiator: "Focus on underserved segments",
			},
			{
				Name:           "Bolt",
				Website:        "https://www.bolt.dev",
				Description:    "One-click checkout",
				Differentiator: "Compete on pricing",
			},
		},
	})
	require.NoError(t, repo.Save(context.Background(), a))
	return svc, repo, a.ID
}

func TestExportCSV(t *testing.T) {
	svc, _, id := exportFixture(t)

	data, filename, err := svc.ExportCSV(context.Background(), id)
	require.NoError(t, err)

	assert.Equal(t, "competitor_analysis_pay_flow.csv", filename)

	out := string(data)
	assert.True(t, strings.HasPrefix(out, "Industry, Competitor, Website, Description, Key Differentiator\n"))

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3)
	// description with a comma gets quoted
	assert.Equal(t, `Financial Technology,Acme,https://www.acme.io,"Payments, checkout and billing",Focus on underserved segments`, lines[1])
	assert.Equal(t, "Financial Technology,Bolt,https://www.bolt.dev,One-click checkout,Compete on pricing", lines[2])
}

func TestExportCSVMissingAnalysis(t *testing.T) {
	svc, _, _ := exportFixture(t)
	_, _, err := svc.ExportCSV(context.Background(), "missing")
	assert.Error(t, err)
}

func TestArchiveUploadsAndRecordsURL(t *testing.T) {
	svc, repo, id := exportFixture(t)
	store := &stubArtifacts{url: "https://minio.local/rivalscan/exports/a-1/competitor_analysis_pay_flow.csv"}
	svc.Artifacts = store

	url, err := svc.Archive(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, store.url, url)
	assert.Equal(t, "exports/a-1/competitor_analysis_pay_flow.csv", store.lastKey)

	got, err := repo.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, store.url, got.ArtifactURL)
}

func TestArchiveWithoutStoreFails(t *testing.T) {
	svc, _, id := exportFixture(t)
	_, err := svc.Archive(context.Background(), id)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}
