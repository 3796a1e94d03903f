package httpapi

import (
	"context"
	"log/slog"
	"reflect"
	"sync"
	"sync/atomic"

	"assethunt-engine/internal/config"
	"assethunt-engine/internal/dispatch"
	"assethunt-engine/internal/domain"
	"assethunt-engine/internal/events"
)

type Searcher interface {
	Search(ctx context.Context, q domain.Query) []domain.Resource
}

type Dispatcher interface {
	Dispatch(ctx context.Context, rs []domain.Resource) dispatch.Report
}

// Downloads is the download manager surface exposed over HTTP.
type Downloads interface {
	Probe(ctx context.Context) bool
	ActiveJobs(ctx context.Context) ([]domain.JobStatus, error)
	TellStatus(ctx context.Context, gid string) (domain.JobStatus, error)
	Pause(ctx context.Context, gid string) error
	Unpause(ctx context.Context, gid string) error
	Remove(ctx context.Context, gid string) error
}

// Services is the pipeline wired from one config snapshot.
type Services struct {
	Search    Searcher
	Dispatch  Dispatcher
	Downloads Downloads
}

type Deps struct {
	Hub    *events.Hub
	Logger *slog.Logger

	// Atomic stores
	CfgVal         *atomic.Value // stores config.Config
	DispatchStatus *atomic.Value // stores httpapi.DispatchStatus

	// Config persistence
	UserCfgPath string
	LoadCfg     func() (config.Config, error)

	// Build wires services from the current config (inject for testability).
	Build func(cfg config.Config) (Services, error)

	// SetToken stores the RPC token for a keychain account.
	SetToken func(account, token string) error

	// cache is shared by every handler built from one NewMux call.
	cache *serviceCache
}

func (d Deps) config() config.Config {
	return d.CfgVal.Load().(config.Config)
}

func (d Deps) services() (Services, error) {
	if d.cache == nil {
		return d.Build(d.config())
	}
	return d.cache.get(d.config())
}

// serviceCache keeps the Services built for the current config snapshot.
// Source adapters own their per-host limiters, so reusing them keeps request
// spacing across API calls. A new snapshot (config PUT) rebuilds everything.
type serviceCache struct {
	build func(config.Config) (Services, error)

	mu    sync.Mutex
	cfg   config.Config
	svc   Services
	built bool
}

func (c *serviceCache) get(cfg config.Config) (Services, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.built && reflect.DeepEqual(c.cfg, cfg) {
		return c.svc, nil
	}
	svc, err := c.build(cfg)
	if err != nil {
		return Services{}, err
	}
	c.cfg, c.svc, c.built = cfg, svc, true
	return svc, nil
}
