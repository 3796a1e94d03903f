package httpapi

import (
	"net/http"
	"strings"

	"assethunt-engine/internal/domain"
)

type DownloadsHandler struct {
	D Deps
}

func (h DownloadsHandler) Active(w http.ResponseWriter, r *http.Request) {
	svc, err := h.D.services()
	if err != nil {
		WritePipelineError(w, r, err)
		return
	}
	jobs, err := svc.Downloads.ActiveJobs(r.Context())
	if err != nil {
		WriteError(w, r, http.StatusBadGateway, "download_manager", err.Error())
		return
	}
	if jobs == nil {
		jobs = []domain.JobStatus{}
	}
	writeJSON(w, map[string]any{"jobs": jobs})
}

// ByPath serves /downloads/{gid} (GET, DELETE) and
// /downloads/{gid}/pause|unpause (POST).
func (h DownloadsHandler) ByPath(w http.ResponseWriter, r *http.Request) {
	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, "/downloads/"), "/")
	parts := strings.Split(rest, "/")
	gid := parts[0]
	if gid == "" || len(parts) > 2 {
		WriteError(w, r, http.StatusNotFound, "not_found", "unknown download path")
		return
	}

	svc, err := h.D.services()
	if err != nil {
		WritePipelineError(w, r, err)
		return
	}
	d := svc.Downloads
	ctx := r.Context()

	action := ""
	if len(parts) == 2 {
		action = parts[1]
	}

	switch {
	case action == "" && r.Method == http.MethodGet:
		st, err := d.TellStatus(ctx, gid)
		if err != nil {
			WriteError(w, r, http.StatusBadGateway, "download_manager", err.Error())
			return
		}
		writeJSON(w, st)
		return
	case action == "" && r.Method == http.MethodDelete:
		err = d.Remove(ctx, gid)
	case action == "pause" && r.Method == http.MethodPost:
		err = d.Pause(ctx, gid)
	case action == "unpause" && r.Method == http.MethodPost:
		err = d.Unpause(ctx, gid)
	default:
		WriteError(w, r, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	if err != nil {
		WriteError(w, r, http.StatusBadGateway, "download_manager", err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
