package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"assethunt-engine/internal/pipeline"
)

func validConfig() Config {
	cfg := Default()
	cfg.RPC.Endpoint = "http://127.0.0.1:16800/jsonrpc"
	cfg.RPC.Token = "secret"
	cfg.Download.OutputRoot = "/srv/assets"
	return cfg
}

func TestDefaultNeedsRequiredInputs(t *testing.T) {
	_, v := NormalizeAndValidate(Default())
	joined := strings.Join(v.Errors, "\n")
	for _, want := range []string{"rpc.endpoint is required", "rpc.token is required", "download.output_root is required"} {
		if !strings.Contains(joined, want) {
			t.Errorf("missing error %q in:\n%s", want, joined)
		}
	}
	if err := Validate(Default()); !errors.Is(err, pipeline.ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
}

func TestValidConfig(t *testing.T) {
	if err := Validate(validConfig()); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestNormalizeAndValidate(t *testing.T) {
	cfg := validConfig()
	cfg.Search.AcceptedExtensions = []string{" ZIP", ".png", ".zip", ""}
	cfg.Download.DefaultExtension = "bin"
	cfg.Logging.Level = " DEBUG "
	cfg.Download.OutputRoot = "relative/dir"
	cfg.RPC.Token = ""
	cfg.RPC.TokenKeyringAccount = "rpc"

	out, v := NormalizeAndValidate(cfg)
	if !v.OK() {
		t.Fatalf("unexpected errors: %v", v.Errors)
	}
	if got := strings.Join(out.Search.AcceptedExtensions, ","); got != ".zip,.png" {
		t.Fatalf("extensions = %q", got)
	}
	if out.Download.DefaultExtension != ".bin" || out.Logging.Level != "debug" {
		t.Fatalf("not normalized: %+v", out)
	}
	if len(v.Warnings) == 0 || !strings.Contains(strings.Join(v.Warnings, "\n"), "relative") {
		t.Fatalf("expected relative output_root warning, got %v", v.Warnings)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"endpoint scheme", func(c *Config) { c.RPC.Endpoint = "ftp://host/x" }, "rpc.endpoint must be"},
		{"concurrency", func(c *Config) { c.Download.MaxConcurrency = 0 }, "max_concurrency"},
		{"cap", func(c *Config) { c.Search.PerSourceCap = 0 }, "per_source_cap"},
		{"log format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"source url", func(c *Config) { c.Sources.Kenney.BaseURL = "::" }, "sources.kenney.base_url"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := Validate(cfg)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestEnsureUserConfigAndLoad(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	path, err := EnsureUserConfig(dir)
	if err != nil {
		t.Fatalf("EnsureUserConfig: %v", err)
	}
	if path != filepath.Join(dir, "config.yml") {
		t.Fatalf("path = %q", path)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.RPC.Endpoint != "http://127.0.0.1:16800/jsonrpc" || cfg.Download.MaxConcurrency != 5 || cfg.Search.PerSourceCap != 3 {
		t.Fatalf("bundled config not loaded: %+v", cfg)
	}
	if !cfg.Sources.OpenGameArt.Enabled || cfg.Sources.Freepik.Enabled {
		t.Fatalf("unexpected source flags: %+v", cfg.Sources)
	}

	// existing files are left alone
	if err := os.WriteFile(path, []byte("rpc:\n  endpoint: http://other:1/jsonrpc\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := EnsureUserConfig(dir); err != nil {
		t.Fatal(err)
	}
	cfg, err = Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.RPC.Endpoint != "http://other:1/jsonrpc" {
		t.Fatalf("config overwritten: %q", cfg.RPC.Endpoint)
	}
	// keys missing from the file keep their defaults
	if cfg.Download.Split != 16 {
		t.Fatalf("default lost: split = %d", cfg.Download.Split)
	}
}

func TestOverlayEnv(t *testing.T) {
	cfg := Default()
	cfg.RPC.Endpoint = "http://file/jsonrpc"
	env := map[string]string{
		EnvRPCToken:    "from-env",
		EnvOutputRoot:  "/env/assets",
		EnvRPCEndpoint: "  ",
	}
	OverlayEnv(&cfg, func(k string) string { return env[k] })

	if cfg.RPC.Token != "from-env" || cfg.Download.OutputRoot != "/env/assets" {
		t.Fatalf("overlay not applied: %+v", cfg.RPC)
	}
	if cfg.RPC.Endpoint != "http://file/jsonrpc" {
		t.Fatalf("blank env value overwrote endpoint: %q", cfg.RPC.Endpoint)
	}
}

func TestSaveAtomic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := SaveAtomic(path, Default()); err == nil {
		t.Fatal("invalid config saved")
	}

	first := validConfig()
	if err := SaveAtomic(path, first); err != nil {
		t.Fatalf("SaveAtomic: %v", err)
	}
	second := validConfig()
	second.Download.MaxConcurrency = 3
	if err := SaveAtomic(path, second); err != nil {
		t.Fatalf("SaveAtomic: %v", err)
	}

	got, err := Load(path)
	if err != nil || got.Download.MaxConcurrency != 3 {
		t.Fatalf("Load = %+v, %v", got.Download, err)
	}
	bak, err := Load(path + ".bak")
	if err != nil || bak.Download.MaxConcurrency != 5 {
		t.Fatalf("backup = %+v, %v", bak.Download, err)
	}
}

func TestRedacted(t *testing.T) {
	cfg := validConfig()
	cfg.Sources.Pixabay.APIKey = "k"
	r := cfg.Redacted()
	if r.RPC.Token == "secret" || r.Sources.Pixabay.APIKey == "k" {
		t.Fatalf("secrets leaked: %+v", r.RPC)
	}
	if cfg.RPC.Token != "secret" {
		t.Fatal("original mutated")
	}
}
