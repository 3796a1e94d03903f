package config

import "strings"

const (
	EnvRPCEndpoint = "ASSETHUNT_RPC_ENDPOINT"
	EnvRPCToken    = "ASSETHUNT_RPC_TOKEN"
	EnvOutputRoot  = "ASSETHUNT_OUTPUT_ROOT"
	EnvPixabayKey  = "ASSETHUNT_PIXABAY_KEY"
)

// OverlayEnv applies non-empty environment values over cfg.
func OverlayEnv(cfg *Config, getenv func(string) string) {
	set := func(dst *string, key string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}
	set(&cfg.RPC.Endpoint, EnvRPCEndpoint)
	set(&cfg.RPC.Token, EnvRPCToken)
	set(&cfg.Download.OutputRoot, EnvOutputRoot)
	set(&cfg.Sources.Pixabay.APIKey, EnvPixabayKey)
}
