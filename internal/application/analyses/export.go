package analyses

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	domain "github.com/bryanwahyu/rivalscan/internal/domain/analysis"
)

// csvHeader matches the export header of the earlier spreadsheet workflow,
// spaces after the commas included.
const csvHeader = "Industry, Competitor, Website, Description, Key Differentiator\n"

// ExportCSV renders every competitor of every analyzed industry as CSV and
// returns the bytes plus the suggested filename.
func (s *Service) ExportCSV(ctx context.Context, id domain.AnalysisID) ([]byte, string, error) {
	a, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, "", err
	}

	var buf bytes.Buffer
	buf.WriteString(csvHeader)

	w := csv.NewWriter(&buf)
	for _, rep := range a.Reports {
		for _, c := range rep.Competitors {
			if err := w.Write([]string{rep.Industry, c.Name, c.Website, c.Description, c.Differentiator}); err != nil {
				return nil, "", fmt.Errorf("writing csv row: %w", err)
			}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", fmt.Errorf("flushing csv: %w", err)
	}

	return buf.Bytes(), exportFilename(a.StartupName), nil
}

// Archive uploads the CSV export to the artifact store and records the URL on
// the analysis.
func (s *Service) Archive(ctx context.Context, id domain.AnalysisID) (string, error) {
	if s.Artifacts == nil {
		return "", fmt.Errorf("artifact storage is not configured")
	}

	data, filename, err := s.ExportCSV(ctx, id)
	if err != nil {
		return "", err
	}

	tmp := filepath.Join(os.TempDir(), fmt.Sprintf("%s-%s", id, filename))
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return "", fmt.Errorf("writing temp export: %w", err)
	}

	key := fmt.Sprintf("exports/%s/%s", id, filename)
	url, err := s.Artifacts.UploadAndCleanup(ctx, tmp, key)
	if err != nil {
		os.Remove(tmp)
		s.recordError(ctx, id, "", phaseArchive, err, "")
		return "", err
	}

	if err := s.Repo.SetArtifactURL(ctx, id, url); err != nil {
		return "", err
	}
	return url, nil
}

// exportFilename: competitor_analysis_<startup dengan spasi jadi underscore>.csv
func exportFilename(startupName string) string {
	name := strings.ToLower(strings.TrimSpace(startupName))
	name = strings.ReplaceAll(name, " ", "_")
	if name == "" {
		name = "startup"
	}
	return fmt.Sprintf("competitor_analysis_%s.csv", name)
}
