package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"

	"assethunt-engine/internal/pipeline"
)

const maxBodyBytes = 4 << 20

func writeJSON(w http.ResponseWriter, v any) {
	WriteJSON(w, http.StatusOK, v)
}

func methodMux(m map[string]http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h, ok := m[r.Method]; ok {
			h(w, r)
			return
		}
		WriteError(w, r, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
	}
}

// decodeBody reads one JSON value, rejecting unknown fields and trailing data.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return pipeline.Wrap(pipeline.ErrInput, "", "", "invalid JSON", err)
	}
	if dec.More() {
		return pipeline.Wrap(pipeline.ErrInput, "", "", "invalid JSON", fmt.Errorf("trailing data"))
	}
	return nil
}
