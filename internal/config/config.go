package config

import (
	"os"
	"strings"
	"time"

	"assethunt-engine/internal/domain"

	"gopkg.in/yaml.v3"
)

// SourceConfig configures one source adapter.
type SourceConfig struct {
	Enabled        bool   `yaml:"enabled" json:"enabled"`
	BaseURL        string `yaml:"base_url,omitempty" json:"base_url,omitempty"`
	MinDelayMS     int    `yaml:"min_delay_ms" json:"min_delay_ms"`
	TimeoutSeconds int    `yaml:"timeout_seconds,omitempty" json:"timeout_seconds,omitempty"`
	APIKey         string `yaml:"api_key,omitempty" json:"api_key,omitempty"`
}

func (s SourceConfig) MinDelay() time.Duration {
	return time.Duration(s.MinDelayMS) * time.Millisecond
}

type Config struct {
	RPC struct {
		Endpoint            string `yaml:"endpoint" json:"endpoint"`
		Token               string `yaml:"token" json:"token"`
		TokenKeyringAccount string `yaml:"token_keyring_account,omitempty" json:"token_keyring_account,omitempty"`
		TimeoutSeconds      int    `yaml:"timeout_seconds" json:"timeout_seconds"`
		ProbeTimeoutSeconds int    `yaml:"probe_timeout_seconds" json:"probe_timeout_seconds"`
	} `yaml:"rpc" json:"rpc"`

	Download struct {
		OutputRoot             string `yaml:"output_root" json:"output_root"`
		MaxConcurrency         int    `yaml:"max_concurrency" json:"max_concurrency"`
		SubmitDelayMS          int    `yaml:"submit_delay_ms" json:"submit_delay_ms"`
		Split                  int    `yaml:"split" json:"split"`
		MaxConnectionPerServer int    `yaml:"max_connection_per_server" json:"max_connection_per_server"`
		DefaultExtension       string `yaml:"default_extension" json:"default_extension"`
	} `yaml:"download" json:"download"`

	Search struct {
		PerSourceCap         int      `yaml:"per_source_cap" json:"per_source_cap"`
		MaxResults           int      `yaml:"max_results" json:"max_results"`
		AcceptedExtensions   []string `yaml:"accepted_extensions" json:"accepted_extensions"`
		SourceTimeoutSeconds int      `yaml:"source_timeout_seconds" json:"source_timeout_seconds"`
	} `yaml:"search" json:"search"`

	Sources struct {
		OpenGameArt SourceConfig `yaml:"opengameart" json:"opengameart"`
		Kenney      SourceConfig `yaml:"kenney" json:"kenney"`
		PolyHaven   SourceConfig `yaml:"polyhaven" json:"polyhaven"`
		Pixabay     SourceConfig `yaml:"pixabay" json:"pixabay"`
		Freepik     SourceConfig `yaml:"freepik" json:"freepik"`
	} `yaml:"sources" json:"sources"`

	Logging struct {
		Level  string `yaml:"level" json:"level"`
		Format string `yaml:"format" json:"format"` // console, json, auto
	} `yaml:"logging" json:"logging"`

	Server struct {
		Bind string `yaml:"bind" json:"bind"`
	} `yaml:"server" json:"server"`

	ResultsDir string `yaml:"results_dir" json:"results_dir"`
}

// Default holds every non-secret default. Endpoint, token and output root
// have none.
func Default() Config {
	var cfg Config
	cfg.RPC.TimeoutSeconds = 10
	cfg.RPC.ProbeTimeoutSeconds = 5

	cfg.Download.MaxConcurrency = 5
	cfg.Download.SubmitDelayMS = 100
	cfg.Download.Split = 16
	cfg.Download.MaxConnectionPerServer = 16
	cfg.Download.DefaultExtension = ".zip"

	cfg.Search.PerSourceCap = 3
	cfg.Search.MaxResults = 10
	cfg.Search.AcceptedExtensions = []string{".zip", ".png", ".jpg", ".ogg", ".wav"}
	cfg.Search.SourceTimeoutSeconds = 30

	cfg.Sources.OpenGameArt = SourceConfig{Enabled: true, MinDelayMS: 1000}
	cfg.Sources.Kenney = SourceConfig{Enabled: true, MinDelayMS: 1000}
	cfg.Sources.PolyHaven = SourceConfig{Enabled: true}
	cfg.Sources.Pixabay = SourceConfig{Enabled: true, MinDelayMS: 1000}
	cfg.Sources.Freepik = SourceConfig{Enabled: false, MinDelayMS: 2000}

	cfg.Logging.Level = "info"
	cfg.Logging.Format = "auto"
	cfg.Server.Bind = "127.0.0.1:8787"
	cfg.ResultsDir = "."
	return cfg
}

// Load reads a YAML file over Default.
func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}

func (c Config) RPCTimeout() time.Duration {
	return time.Duration(c.RPC.TimeoutSeconds) * time.Second
}

func (c Config) ProbeTimeout() time.Duration {
	return time.Duration(c.RPC.ProbeTimeoutSeconds) * time.Second
}

func (c Config) SubmitDelay() time.Duration {
	return time.Duration(c.Download.SubmitDelayMS) * time.Millisecond
}

func (c Config) SourceTimeout() time.Duration {
	return time.Duration(c.Search.SourceTimeoutSeconds) * time.Second
}

// BaseQuery builds a query carrying the configured caps and extensions.
func (c Config) BaseQuery(keywords, typeHint string) domain.Query {
	return domain.Query{
		Keywords:     strings.TrimSpace(keywords),
		TypeHint:     strings.TrimSpace(typeHint),
		PerSourceCap: c.Search.PerSourceCap,
		MaxResults:   c.Search.MaxResults,
		Extensions:   append([]string(nil), c.Search.AcceptedExtensions...),
	}
}

// Redacted returns a copy safe to show: token and API keys are masked.
func (c Config) Redacted() Config {
	out := c
	if out.RPC.Token != "" {
		out.RPC.Token = "********"
	}
	if out.Sources.Pixabay.APIKey != "" {
		out.Sources.Pixabay.APIKey = "********"
	}
	out.Search.AcceptedExtensions = append([]string(nil), c.Search.AcceptedExtensions...)
	return out
}
