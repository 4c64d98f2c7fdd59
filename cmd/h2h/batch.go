package main

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/heat-tracker/internal/async"
	"github.com/joseph-ayodele/heat-tracker/internal/export"
	"github.com/joseph-ayodele/heat-tracker/internal/extract"
	"github.com/joseph-ayodele/heat-tracker/internal/ingest"
	"github.com/joseph-ayodele/heat-tracker/internal/pipeline"
)

func batchCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Parse and store every heat sheet in a directory",
		Long: `Walk a directory, parse every .pdf and .txt heat sheet with a pool of
workers and store the results. Files already stored (same content) are
skipped.

Example:
  h2h batch --dir ./inbox --workers 4
  h2h batch --dir ./inbox --out laatste.xlsx`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")
			out, _ := cmd.Flags().GetString("out")
			workers, _ := cmd.Flags().GetInt("workers")
			skipHidden, _ := cmd.Flags().GetBool("skip-hidden")
			if workers <= 0 {
				workers = a.cfg.Ingest.Workers
			}
			ctx := cmd.Context()

			db, sheets, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			proc := pipeline.NewProcessor(a.logger, extract.NewOCRAdapter(a.extractor(), a.logger), sheets, a.opts)

			var (
				mu       sync.Mutex
				stored   int
				reused   int
				review   int
				failed   int
				last     *pipeline.Outcome
				lastTime time.Time
			)
			q := async.NewProcessorQueue(proc, a.logger,
				async.WithWorkers(workers),
				async.WithOnDone(func(job async.Job, o *pipeline.Outcome, err error) {
					mu.Lock()
					defer mu.Unlock()
					switch {
					case err != nil:
						failed++
						fmt.Fprintf(cmd.ErrOrStderr(), "FOUT  %s: %v\n", job.Path, err)
						return
					case o.Deduplicated:
						reused++
					default:
						stored++
					}
					if o.Sheet.NeedsReview() {
						review++
					}
					if o.Sheet.CreatedAt.After(lastTime) || last == nil {
						last, lastTime = o, o.Sheet.CreatedAt
					}
				}),
			)

			stats, err := ingest.EnqueueDirectory(ctx, q, dir, skipHidden, a.logger)
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
			defer cancel()
			q.Shutdown(shutdownCtx)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Bestanden: %d gevonden, %d in wachtrij\n", stats.Matched, stats.Enqueued)
			fmt.Fprintf(w, "Opgeslagen: %d nieuw, %d al bekend, %d te controleren, %d mislukt\n",
				stored, reused, review, failed+stats.Failed)

			if out != "" && last != nil {
				data, err := export.WriteHeatsXLSX(last.Sheet.Metadata, last.Heats)
				if err != nil {
					return err
				}
				if err := os.WriteFile(out, data, 0o644); err != nil {
					return fmt.Errorf("write %s: %w", out, err)
				}
				fmt.Fprintf(w, "Geschreven: %s (%s)\n", out, last.Sheet.SourcePath)
			}
			if failed+stats.Failed > 0 {
				return fmt.Errorf("%d file(s) failed", failed+stats.Failed)
			}
			return nil
		},
	}

	cmd.Flags().String("dir", "", "Directory to scan recursively")
	cmd.Flags().StringP("out", "o", "", "Also export the most recently stored sheet to this .xlsx path")
	cmd.Flags().Int("workers", 0, "Number of parse workers (default from INGEST_WORKERS)")
	cmd.Flags().Bool("skip-hidden", true, "Skip hidden files and directories")
	_ = cmd.MarkFlagRequired("dir")
	return cmd
}
