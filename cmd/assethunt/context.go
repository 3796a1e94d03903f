package main

import (
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"assethunt-engine/internal/aria2"
	"assethunt-engine/internal/config"
	"assethunt-engine/internal/dispatch"
	"assethunt-engine/internal/logging"
	"assethunt-engine/internal/pipeline"
	"assethunt-engine/internal/search"
	"assethunt-engine/internal/secrets"
)

// EnvDataDir overrides the default data directory.
const EnvDataDir = "ASSETHUNT_DATA_DIR"

type commandContext struct {
	configFlag   *string
	dataDirFlag  *string
	logLevelFlag *string

	getenv func(string) string

	configOnce sync.Once
	config     config.Config
	configPath string
	validation config.Validation
	configErr  error
}

func newCommandContext(configFlag, dataDirFlag, logLevelFlag *string) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		dataDirFlag:  dataDirFlag,
		logLevelFlag: logLevelFlag,
		getenv:       os.Getenv,
	}
}

// resolveConfigPath returns --config, or <data dir>/config.yml bootstrapped
// from the bundled template.
func (c *commandContext) resolveConfigPath() (string, error) {
	if p := strings.TrimSpace(*c.configFlag); p != "" {
		return p, nil
	}
	dir, err := c.dataDir()
	if err != nil {
		return "", err
	}
	return config.EnsureUserConfig(dir)
}

func (c *commandContext) dataDir() (string, error) {
	if d := strings.TrimSpace(*c.dataDirFlag); d != "" {
		return d, nil
	}
	if d := strings.TrimSpace(c.getenv(EnvDataDir)); d != "" {
		return d, nil
	}
	return config.DefaultDataDir()
}

// loadConfig reads, overlays and normalizes the config once. It does not fail
// on validation errors; ensureConfig does.
func (c *commandContext) loadConfig() (config.Config, config.Validation, error) {
	c.configOnce.Do(func() {
		path, err := c.resolveConfigPath()
		if err != nil {
			c.configErr = pipeline.Wrap(pipeline.ErrConfiguration, "config", "path", "", err)
			return
		}
		c.configPath = path

		cfg, err := config.Load(path)
		if err != nil {
			c.configErr = pipeline.Wrap(pipeline.ErrConfiguration, "config", "load", path, err)
			return
		}
		config.OverlayEnv(&cfg, c.getenv)
		if lvl := strings.TrimSpace(*c.logLevelFlag); lvl != "" {
			cfg.Logging.Level = lvl
		}
		c.config, c.validation = config.NormalizeAndValidate(cfg)
	})
	return c.config, c.validation, c.configErr
}

func (c *commandContext) ensureConfig() (config.Config, error) {
	cfg, v, err := c.loadConfig()
	if err != nil {
		return cfg, err
	}
	if !v.OK() {
		return cfg, config.Validate(cfg)
	}
	return cfg, nil
}

func (c *commandContext) logger(cmd *cobra.Command) *slog.Logger {
	cfg, _, _ := c.loadConfig()
	return newLogger(cfg, cmd.ErrOrStderr())
}

func newLogger(cfg config.Config, w io.Writer) *slog.Logger {
	logger, err := logging.New(logging.Options{Level: cfg.Logging.Level, Format: cfg.Logging.Format, Output: w})
	if err != nil {
		return slog.New(slog.NewTextHandler(w, nil))
	}
	return logger
}

// services is the pipeline wired from one config snapshot.
type services struct {
	search   *search.Aggregator
	client   *aria2.Client
	dispatch *dispatch.Dispatcher
}

// buildServices resolves the RPC token (config, env or keychain) and wires
// the aggregator, the download manager client and the dispatcher.
func buildServices(cfg config.Config, logger *slog.Logger) (services, error) {
	client, err := newClient(cfg, logger)
	if err != nil {
		return services{}, err
	}
	disp := dispatch.New(dispatch.Config{
		OutputRoot:       cfg.Download.OutputRoot,
		Concurrency:      cfg.Download.MaxConcurrency,
		SubmitDelay:      cfg.SubmitDelay(),
		DefaultExtension: cfg.Download.DefaultExtension,
	}, client, logger)

	return services{
		search:   search.NewFromConfig(cfg, logger),
		client:   client,
		dispatch: disp,
	}, nil
}

func newClient(cfg config.Config, logger *slog.Logger) (*aria2.Client, error) {
	token, err := secrets.ResolveToken(cfg.RPC.Token, cfg.RPC.TokenKeyringAccount)
	if err != nil {
		return nil, pipeline.Wrap(pipeline.ErrConfiguration, "config", "rpc token", "", err)
	}
	return aria2.New(aria2.Config{
		Endpoint:               cfg.RPC.Endpoint,
		Token:                  token,
		Timeout:                cfg.RPCTimeout(),
		ProbeTimeout:           cfg.ProbeTimeout(),
		Split:                  cfg.Download.Split,
		MaxConnectionPerServer: cfg.Download.MaxConnectionPerServer,
	}, &http.Client{}, logger), nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
