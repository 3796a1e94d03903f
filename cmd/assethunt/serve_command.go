package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/spf13/cobra"

	"assethunt-engine/internal/config"
	"assethunt-engine/internal/events"
	"assethunt-engine/internal/httpapi"
	"assethunt-engine/internal/scheduler"
	"assethunt-engine/internal/secrets"
)

const progressInterval = 2 * time.Second

func newServeCommand(ctx *commandContext) *cobra.Command {
	var bind string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the local HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger := ctx.logger(cmd)

			addr := strings.TrimSpace(bind)
			if addr == "" {
				addr = cfg.Server.Bind
			}

			var cfgVal atomic.Value // stores config.Config
			cfgVal.Store(cfg)
			var statusVal atomic.Value // stores httpapi.DispatchStatus
			statusVal.Store(httpapi.DispatchStatus{})

			hub := events.NewHub()
			loadCfg := func() (config.Config, error) {
				c, err := config.Load(ctx.configPath)
				if err != nil {
					return c, err
				}
				config.OverlayEnv(&c, ctx.getenv)
				c, _ = config.NormalizeAndValidate(c)
				return c, nil
			}

			deps := httpapi.Deps{
				Hub:            hub,
				Logger:         logger,
				CfgVal:         &cfgVal,
				DispatchStatus: &statusVal,
				UserCfgPath:    ctx.configPath,
				LoadCfg:        loadCfg,
				Build: func(c config.Config) (httpapi.Services, error) {
					svc, err := buildServices(c, logger)
					if err != nil {
						return httpapi.Services{}, err
					}
					return httpapi.Services{Search: svc.search, Dispatch: svc.dispatch, Downloads: svc.client}, nil
				},
				SetToken: secrets.SetRPCToken,
			}

			runCtx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			go scheduler.Every(runCtx, progressInterval, "downloads_progress",
				progressTask(hub, &cfgVal, logger), logger)

			srv := &http.Server{
				Addr:              addr,
				Handler:           httpapi.NewHandler(deps),
				ReadHeaderTimeout: 10 * time.Second,
				// request contexts end with runCtx so SSE streams close on shutdown
				BaseContext: func(net.Listener) context.Context { return runCtx },
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Info("engine listening", "addr", addr, "config", ctx.configPath)
				errCh <- srv.ListenAndServe()
			}()
			fmt.Fprintf(cmd.OutOrStdout(), "Listening on http://%s\n", addr)

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-cmd.Context().Done():
			}

			cancel()
			shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
			defer done()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return err
			}
			logger.Info("engine stopped")
			return nil
		},
	}

	cmd.Flags().StringVar(&bind, "bind", "", "Listen address (default: server.bind)")
	return cmd
}

// progressTask publishes active downloads while anyone listens on /events.
func progressTask(hub *events.Hub, cfgVal *atomic.Value, logger *slog.Logger) scheduler.Task {
	return func(ctx context.Context) error {
		if hub.Subscribers() == 0 {
			return nil
		}
		client, err := newClient(cfgVal.Load().(config.Config), logger)
		if err != nil {
			return err
		}
		jobs, err := client.ActiveJobs(ctx)
		if err != nil {
			return err
		}
		hub.Emit("", events.TypeDownloadsProgress, map[string]any{"jobs": jobs})
		return nil
	}
}
