package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"assethunt-engine/internal/pipeline"
	"assethunt-engine/internal/search"
	"assethunt-engine/internal/store"
)

// defaultResultsMarker is the value --save-results takes without an argument.
const defaultResultsMarker = "auto"

func newSearchCommand(ctx *commandContext) *cobra.Command {
	var (
		typeHint    string
		maxResults  int
		formats     []string
		perSource   int
		saveResults string
		dryRun      bool
		showStatus  bool
	)

	cmd := &cobra.Command{
		Use:   "search <query>...",
		Short: "Search every enabled source and queue the results",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger := ctx.logger(cmd)
			out := cmd.OutOrStdout()

			q := cfg.BaseQuery(strings.Join(args, " "), typeHint)
			if q.Keywords == "" {
				return pipeline.Wrap(pipeline.ErrInput, "search", "", "query is empty", nil)
			}
			if cmd.Flags().Changed("max-results") {
				q.MaxResults = maxResults
			}
			if cmd.Flags().Changed("per-source") {
				q.PerSourceCap = perSource
			}
			if cmd.Flags().Changed("formats") {
				q.Extensions = formats
			}
			if q.MaxResults < 0 || q.PerSourceCap <= 0 {
				return pipeline.Wrap(pipeline.ErrInput, "search", "", "max-results must be >= 0 and per-source > 0", nil)
			}

			agg := search.NewFromConfig(cfg, logger)
			fmt.Fprintf(out, "Searching %s for %q\n", strings.Join(agg.Sources(), ", "), q.Keywords)

			results := agg.Search(cmd.Context(), q)
			if len(results) == 0 {
				fmt.Fprintln(out, "No resources found.")
				return pipeline.Wrap(pipeline.ErrNoJobsAdded, "search", "", "no resources found", nil)
			}

			printResources(out, results)
			printSummary(out, search.Summarize(results))

			if saveResults != "" {
				path := saveResults
				if path == defaultResultsMarker {
					path = filepath.Join(cfg.ResultsDir, store.DefaultResultsName(time.Now()))
				}
				if err := store.SaveResults(path, results); err != nil {
					return err
				}
				fmt.Fprintf(out, "Saved %d resources to %s\n", len(results), path)
			}

			if dryRun {
				fmt.Fprintln(out, "Dry run: nothing submitted.")
				return nil
			}

			svc, err := buildServices(cfg, logger)
			if err != nil {
				return err
			}
			rep := svc.dispatch.Dispatch(cmd.Context(), results)
			printReport(out, rep)

			if showStatus && rep.Reachable {
				jobs, err := svc.client.ActiveJobs(cmd.Context())
				if err != nil {
					logger.Warn("active jobs unavailable", "error", err)
				} else {
					printJobs(out, jobs)
				}
			}
			return rep.Err()
		},
	}

	cmd.Flags().StringVarP(&typeHint, "type", "t", "", "Asset type hint (3d, 2d, sound, music, texture)")
	cmd.Flags().IntVarP(&maxResults, "max-results", "n", 0, "Maximum results after filtering (0 = unlimited)")
	cmd.Flags().StringSliceVarP(&formats, "formats", "f", nil, "Accepted file extensions, e.g. -f .zip -f .png")
	cmd.Flags().IntVarP(&perSource, "per-source", "s", 0, "Maximum results per source")
	cmd.Flags().StringVar(&saveResults, "save-results", "", "Save results as JSON (default name in results_dir when no path is given)")
	cmd.Flags().Lookup("save-results").NoOptDefVal = defaultResultsMarker
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Search only; do not submit downloads")
	cmd.Flags().BoolVar(&showStatus, "status", false, "Show active downloads after submitting")
	return cmd
}
