package httpapi

import (
	"assethunt-engine/internal/dispatch"
	"assethunt-engine/internal/domain"
)

type DispatchStatus struct {
	LastRunAt     string           `json:"last_run_at"`
	LastOkAt      string           `json:"last_ok_at"`
	LastError     string           `json:"last_error"`
	LastSucceeded int              `json:"last_succeeded"`
	LastFailed    int              `json:"last_failed"`
	Running       bool             `json:"running"`
	LastReport    *dispatch.Report `json:"last_report,omitempty"`
}

type searchRequest struct {
	Query        string   `json:"query"`
	Type         string   `json:"type,omitempty"`
	MaxResults   *int     `json:"max_results,omitempty"`
	PerSourceCap *int     `json:"per_source_cap,omitempty"`
	Extensions   []string `json:"extensions,omitempty"`
}

type dispatchRequest struct {
	Resources []domain.Resource `json:"resources"`
}
