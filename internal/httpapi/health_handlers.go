package httpapi

import (
	"context"
	"net/http"
	"time"
)

type HealthHandler struct {
	D Deps
}

// Health reports liveness plus whether the download manager answers.
func (h HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	reachable := false
	if svc, err := h.D.services(); err == nil && svc.Downloads != nil {
		ctx, cancel := context.WithTimeout(r.Context(), h.D.config().ProbeTimeout())
		reachable = svc.Downloads.Probe(ctx)
		cancel()
	}
	writeJSON(w, map[string]any{
		"ok":               true,
		"time":             time.Now().UTC().Format(time.RFC3339),
		"download_manager": reachable,
	})
}
