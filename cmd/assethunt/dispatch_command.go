package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"assethunt-engine/internal/dispatch"
	"assethunt-engine/internal/store"
)

func newDispatchCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "dispatch <results.json>",
		Short: "Queue resources from a saved results file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			rs, err := store.LoadResults(args[0])
			if err != nil {
				return err
			}
			if err := dispatch.Validate(rs); err != nil {
				return err
			}
			rs = dispatch.Reclassify(rs)
			fmt.Fprintf(out, "Loaded %d resources from %s\n", len(rs), args[0])

			svc, err := buildServices(cfg, ctx.logger(cmd))
			if err != nil {
				return err
			}
			rep := svc.dispatch.Dispatch(cmd.Context(), rs)
			printReport(out, rep)
			return rep.Err()
		},
	}
}
