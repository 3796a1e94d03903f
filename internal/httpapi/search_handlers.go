package httpapi

import (
	"net/http"
	"strings"

	"assethunt-engine/internal/config"
	"assethunt-engine/internal/domain"
	"assethunt-engine/internal/events"
	"assethunt-engine/internal/pipeline"
	"assethunt-engine/internal/search"
)

type SearchHandler struct {
	D Deps
}

func (h SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := decodeBody(w, r, &req); err != nil {
		WritePipelineError(w, r, err)
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		WritePipelineError(w, r, pipeline.Wrap(pipeline.ErrInput, "search", "", "query is required", nil))
		return
	}

	svc, err := h.D.services()
	if err != nil {
		WritePipelineError(w, r, err)
		return
	}

	q := queryFrom(h.D.config(), req)
	results := svc.Search.Search(r.Context(), q)
	summary := search.Summarize(results)

	h.D.Hub.Emit(RequestIDFrom(r.Context()), events.TypeSearchCompleted, map[string]any{
		"query": q.Keywords,
		"count": len(results),
	})
	writeJSON(w, map[string]any{
		"results": results,
		"summary": summary,
	})
}

// queryFrom fills request gaps from the config.
func queryFrom(cfg config.Config, req searchRequest) domain.Query {
	q := cfg.BaseQuery(req.Query, req.Type)
	if req.PerSourceCap != nil {
		q.PerSourceCap = *req.PerSourceCap
	}
	if req.MaxResults != nil {
		q.MaxResults = *req.MaxResults
	}
	if req.Extensions != nil {
		q.Extensions = req.Extensions
	}
	return q
}
