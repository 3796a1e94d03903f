package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"assethunt-engine/internal/pipeline"
)

type APIError struct {
	Error struct {
		Code      string `json:"code"`
		Message   string `json:"message"`
		RequestID string `json:"request_id,omitempty"`
	} `json:"error"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	var e APIError
	e.Error.Code = code
	e.Error.Message = message
	e.Error.RequestID = RequestIDFrom(r.Context())
	WriteJSON(w, status, e)
}

// WritePipelineError maps pipeline sentinels to HTTP statuses.
func WritePipelineError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, pipeline.ErrInput):
		status = http.StatusBadRequest
	case errors.Is(err, pipeline.ErrConfiguration):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, pipeline.ErrConnectivity):
		status = http.StatusBadGateway
	}
	WriteError(w, r, status, pipeline.Kind(err), err.Error())
}
