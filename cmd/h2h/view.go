package main

import (
	"context"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/heat-tracker/internal/parser"
	"github.com/joseph-ayodele/heat-tracker/internal/tui"
)

func viewCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "view <file>",
		Short: "Browse the heats of a heat sheet in the terminal",
		Long: `Open an interactive head-to-head viewer.

Keys: left/right step through heats, o reloads the file, q quits.
Logs are written to LOG_FILE while the viewer owns the terminal.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
				return fmt.Errorf("view needs a terminal; use `h2h parse` for piped output")
			}

			f, err := os.OpenFile(a.cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err != nil {
				return fmt.Errorf("open log file: %w", err)
			}
			defer f.Close()
			a.setLogger(f)

			path := args[0]
			v := tui.NewViewer(func(ctx context.Context) (parser.Result, error) {
				return a.parseFile(ctx, path)
			}, a.logger)
			a.logger.Info("view.start", "path", path)
			return v.Run()
		},
	}
}
