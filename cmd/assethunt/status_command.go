package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"assethunt-engine/internal/pipeline"
	"assethunt-engine/internal/scheduler"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var watch bool
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show active downloads on the download manager",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger := ctx.logger(cmd)
			client, err := newClient(cfg, logger)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			show := func(ctx context.Context) error {
				jobs, err := client.ActiveJobs(ctx)
				if err != nil {
					return pipeline.Wrap(pipeline.ErrConnectivity, "status", "active jobs", client.Endpoint(), err)
				}
				if watch {
					fmt.Fprintf(out, "\n%s\n", time.Now().Format(time.TimeOnly))
				}
				printJobs(out, jobs)
				return nil
			}

			if !watch {
				return show(cmd.Context())
			}
			if interval <= 0 {
				interval = 2 * time.Second
			}
			scheduler.Every(cmd.Context(), interval, "status", show, logger)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Refresh until interrupted")
	cmd.Flags().DurationVar(&interval, "interval", 2*time.Second, "Refresh interval for --watch")
	return cmd
}
