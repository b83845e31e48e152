package analysis

import "context"

// Repository port (interface untuk persistence)
type Repository interface {
	Save(ctx context.Context, a *Analysis) error
	Get(ctx context.Context, id AnalysisID) (*Analysis, error)
	Latest(ctx context.Context, limit int) ([]*Analysis, error)
	Summary(ctx context.Context, sinceDays int) (int, int, float64, error)
	SetArtifactURL(ctx context.Context, id AnalysisID, url string) error

	// offset pagination dengan filter opsional (startup, status)
	Paginate(ctx context.Context, page, pageSize int, filters map[string]interface{}) (PaginatedResult, error)
}

// ArtifactStore port (interface untuk penyimpanan export CSV)
type ArtifactStore interface {
	Upload(ctx context.Context, localPath, key string) (string, error)
	UploadAndCleanup(ctx context.Context, localPath, key string) (string, error)
}
