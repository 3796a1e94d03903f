package config

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"assethunt-engine/internal/domain"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate returns a normalized copy of cfg and what is wrong with it.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	var out = cfg
	var res Validation

	out.RPC.Endpoint = strings.TrimSpace(out.RPC.Endpoint)
	out.RPC.Token = strings.TrimSpace(out.RPC.Token)
	out.Download.OutputRoot = strings.TrimSpace(out.Download.OutputRoot)
	out.Search.AcceptedExtensions = domain.NormalizeExtensions(out.Search.AcceptedExtensions)
	if out.Download.DefaultExtension = strings.TrimSpace(out.Download.DefaultExtension); out.Download.DefaultExtension != "" &&
		!strings.HasPrefix(out.Download.DefaultExtension, ".") {
		out.Download.DefaultExtension = "." + out.Download.DefaultExtension
	}
	out.Logging.Level = strings.ToLower(strings.TrimSpace(out.Logging.Level))
	out.Logging.Format = strings.ToLower(strings.TrimSpace(out.Logging.Format))

	// rpc
	if out.RPC.Endpoint == "" {
		res.addErr("rpc.endpoint is required")
	} else if u, err := url.Parse(out.RPC.Endpoint); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		res.addErr("rpc.endpoint must be an http(s) URL, got %q", out.RPC.Endpoint)
	}
	if out.RPC.Token == "" && strings.TrimSpace(out.RPC.TokenKeyringAccount) == "" {
		res.addErr("rpc.token is required (or set rpc.token_keyring_account)")
	}
	if out.RPC.TimeoutSeconds <= 0 {
		res.addErr("rpc.timeout_seconds must be > 0")
	}
	if out.RPC.ProbeTimeoutSeconds <= 0 {
		res.addErr("rpc.probe_timeout_seconds must be > 0")
	}

	// download
	if out.Download.OutputRoot == "" {
		res.addErr("download.output_root is required")
	} else if !filepath.IsAbs(out.Download.OutputRoot) {
		res.addWarn("download.output_root %q is relative; the download manager resolves it against its own working directory.", out.Download.OutputRoot)
	}
	if out.Download.MaxConcurrency <= 0 {
		res.addErr("download.max_concurrency must be > 0")
	} else if out.Download.MaxConcurrency > 16 {
		res.addWarn("download.max_concurrency is high (%d); the download manager may reject bursts.", out.Download.MaxConcurrency)
	}
	if out.Download.SubmitDelayMS < 0 {
		res.addErr("download.submit_delay_ms must be >= 0")
	}
	if out.Download.Split <= 0 || out.Download.MaxConnectionPerServer <= 0 {
		res.addErr("download.split and download.max_connection_per_server must be > 0")
	}

	// search
	if out.Search.PerSourceCap <= 0 {
		res.addErr("search.per_source_cap must be > 0")
	}
	if out.Search.MaxResults < 0 {
		res.addErr("search.max_results must be >= 0")
	}
	if out.Search.SourceTimeoutSeconds <= 0 {
		res.addErr("search.source_timeout_seconds must be > 0")
	}
	if len(out.Search.AcceptedExtensions) == 0 {
		res.addWarn("search.accepted_extensions is empty; every file type will be accepted.")
	}

	// sources
	enabled := 0
	sources := out.SourceMap()
	for _, name := range SourceNames() {
		s := sources[name]
		if !s.Enabled {
			continue
		}
		enabled++
		if s.MinDelayMS < 0 {
			res.addErr("sources.%s.min_delay_ms must be >= 0", name)
		}
		if s.BaseURL != "" {
			if u, err := url.Parse(s.BaseURL); err != nil || u.Host == "" {
				res.addErr("sources.%s.base_url is not a valid URL", name)
			}
		}
	}
	if enabled == 0 {
		res.addWarn("no sources enabled; searches will find nothing.")
	}
	if out.Sources.Pixabay.Enabled && strings.TrimSpace(out.Sources.Pixabay.APIKey) == "" {
		res.addWarn("sources.pixabay is enabled without api_key; it will return no results.")
	}

	// logging
	switch out.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		res.addErr("logging.level must be debug, info, warn or error")
	}
	switch out.Logging.Format {
	case "console", "json", "auto":
	default:
		res.addErr("logging.format must be console, json or auto")
	}

	return out, res
}

// SourceNames lists the adapters in fan-out order.
func SourceNames() []string {
	return []string{"opengameart", "kenney", "polyhaven", "pixabay", "freepik"}
}

// SourceMap indexes the source sections by adapter name.
func (c Config) SourceMap() map[string]SourceConfig {
	return map[string]SourceConfig{
		"opengameart": c.Sources.OpenGameArt,
		"kenney":      c.Sources.Kenney,
		"polyhaven":   c.Sources.PolyHaven,
		"pixabay":     c.Sources.Pixabay,
		"freepik":     c.Sources.Freepik,
	}
}
