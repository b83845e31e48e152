package analysiserrors

import "time"

// AnalysisError represents a persisted pipeline error entry
type AnalysisError struct {
	ID          int64     `json:"id"`
	AnalysisID  string    `json:"analysis_id"`
	Industry    string    `json:"industry,omitempty"`
	Phase       string    `json:"phase,omitempty"` // classify | query | search | extract | commentary | archive
	Message     string    `json:"message"`
	DetailsJSON string    `json:"details_json,omitempty"` // raw JSON string
	CreatedAt   time.Time `json:"created_at"`
}
