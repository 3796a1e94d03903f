package httpapi

import (
	"context"
	"net/http"
	"sync"
	"time"

	"assethunt-engine/internal/dispatch"
	"assethunt-engine/internal/events"
	"assethunt-engine/internal/pipeline"
)

type DispatchHandler struct {
	D Deps
	// mu serializes the running check with the status store.
	mu *sync.Mutex
}

func (h DispatchHandler) Status(w http.ResponseWriter, r *http.Request) {
	st := h.D.DispatchStatus.Load().(DispatchStatus)
	writeJSON(w, st)
}

// Run validates the resources, then dispatches them in the background.
// Progress and the final report arrive as events and through Status.
func (h DispatchHandler) Run(w http.ResponseWriter, r *http.Request) {
	var req dispatchRequest
	if err := decodeBody(w, r, &req); err != nil {
		WritePipelineError(w, r, err)
		return
	}
	if len(req.Resources) == 0 {
		WritePipelineError(w, r, pipeline.Wrap(pipeline.ErrInput, "dispatch", "", "resources is empty", nil))
		return
	}
	if err := dispatch.Validate(req.Resources); err != nil {
		WritePipelineError(w, r, err)
		return
	}

	svc, err := h.D.services()
	if err != nil {
		WritePipelineError(w, r, err)
		return
	}

	h.mu.Lock()
	st := h.D.DispatchStatus.Load().(DispatchStatus)
	if st.Running {
		h.mu.Unlock()
		WriteError(w, r, http.StatusConflict, "already_running", "a dispatch is already running")
		return
	}
	h.D.DispatchStatus.Store(DispatchStatus{
		LastRunAt: time.Now().Format(time.RFC3339),
		Running:   true,
		LastOkAt:  st.LastOkAt,
	})
	h.mu.Unlock()

	reqID := RequestIDFrom(r.Context())
	resources := dispatch.Reclassify(req.Resources)
	h.D.Hub.Emit(reqID, events.TypeDispatchStarted, map[string]int{"jobs": len(resources)})

	go func() {
		rep := svc.Dispatch.Dispatch(context.Background(), resources)

		now := time.Now().Format(time.RFC3339)
		h.mu.Lock()
		next := h.D.DispatchStatus.Load().(DispatchStatus)
		next.Running = false
		next.LastRunAt = now
		next.LastSucceeded = len(rep.Successful)
		next.LastFailed = len(rep.Failed)
		next.LastReport = &rep
		if err := rep.Err(); err != nil {
			next.LastError = err.Error()
		} else {
			next.LastError = ""
			next.LastOkAt = now
		}
		h.D.DispatchStatus.Store(next)
		h.mu.Unlock()

		h.D.Hub.Emit(reqID, events.TypeDispatchCompleted, map[string]any{
			"succeeded": len(rep.Successful),
			"failed":    len(rep.Failed),
			"reachable": rep.Reachable,
		})
	}()

	WriteJSON(w, http.StatusAccepted, map[string]any{"ok": true, "jobs": len(resources)})
}
