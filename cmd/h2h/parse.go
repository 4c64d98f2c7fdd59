package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/joseph-ayodele/heat-tracker/internal/common"
	"github.com/joseph-ayodele/heat-tracker/internal/server"
)

func parseCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a heat sheet and print its heats",
		Long: `Parse a heat sheet (PDF or text export) and print the paired heats.

With --remote the extracted text is sent to a running h2hd, which parses
and stores it; the stored sheet is printed.

Example:
  h2h parse ritten.pdf
  h2h parse ritten.pdf --strategy strict --format json
  h2h parse ritten.txt --remote localhost:8080`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")
			remote, _ := cmd.Flags().GetString("remote")
			path := args[0]
			ctx := cmd.Context()

			if remote != "" {
				return a.parseRemote(ctx, cmd.OutOrStdout(), remote, path, format)
			}

			res, err := a.parseFile(ctx, path)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if format == formatText {
				return writeHeats(out, res.Metadata, res.Heats, &res.Diagnostics)
			}
			return writeDocument(out, format, res)
		},
	}

	cmd.Flags().StringP("format", "f", formatText, "Output format: text, json or yaml")
	cmd.Flags().String("remote", "", "Address of an h2hd server to parse and store on")
	return cmd
}

func (a *app) parseRemote(ctx context.Context, w io.Writer, addr, path, format string) error {
	text, err := a.readText(ctx, path)
	if err != nil {
		return err
	}

	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return fmt.Errorf("connect %s: %w", addr, err)
	}
	defer conn.Close()

	ctx, cancel := common.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	view, err := server.NewClient(conn).ParseText(ctx, filepath.Base(path), text, a.cfg.Parser.Strategy)
	if err != nil {
		return fmt.Errorf("remote parse: %w", err)
	}
	a.logger.Info("parse.remote.ok", "addr", addr, "sheet_id", view.Sheet.ID, "deduplicated", view.Deduplicated)

	if format == formatText {
		return writeHeats(w, view.Sheet.Metadata, view.Heats, view.Diagnostics)
	}
	return writeDocument(w, format, view)
}
