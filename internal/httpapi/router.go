package httpapi

import (
	"log/slog"
	"net/http"
	"sync"
)

// NewMux registers every route on a fresh mux.
func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()
	if d.cache == nil {
		d.cache = &serviceCache{build: d.Build}
	}

	hh := HealthHandler{D: d}
	mux.HandleFunc("/health", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: hh.Health,
	}))

	// Search
	srh := SearchHandler{D: d}
	mux.HandleFunc("/search", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: srh.Search,
	}))

	// Dispatch
	dh := DispatchHandler{D: d, mu: &sync.Mutex{}}
	mux.HandleFunc("/dispatch", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: dh.Run,
	}))
	mux.HandleFunc("/dispatch/status", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: dh.Status,
	}))

	// Download manager
	dlh := DownloadsHandler{D: d}
	mux.HandleFunc("/downloads", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: dlh.Active,
	}))
	mux.HandleFunc("/downloads/", dlh.ByPath)

	// Config
	ch := ConfigHandler{
		CfgVal:      d.CfgVal,
		UserCfgPath: d.UserCfgPath,
		LoadCfg:     d.LoadCfg,
	}
	mux.HandleFunc("/config", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Get,
		http.MethodPut: ch.Put,
	}))
	mux.HandleFunc("/config/path", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Path,
	}))
	mux.HandleFunc("/config/validate", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Validate,
	}))

	// Secrets
	sh := SecretsHandler{CfgVal: d.CfgVal, SetToken: d.SetToken}
	mux.HandleFunc("/api/secrets/rpc-token", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: sh.SetRPCToken,
	}))

	// SSE events
	eh := EventsHandler{Hub: d.Hub}
	mux.HandleFunc("/events", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: eh.ServeSSE,
	}))

	return mux
}

// NewHandler wraps the mux with the standard middleware chain.
func NewHandler(d Deps) http.Handler {
	logger := d.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	logger = logger.With("component", "httpapi")
	return Chain(NewMux(d), RequestID, Recover(logger), AccessLog(logger), Cors)
}
