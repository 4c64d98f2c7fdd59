package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/heat-tracker/constants"
	"github.com/joseph-ayodele/heat-tracker/internal/common"
	"github.com/joseph-ayodele/heat-tracker/internal/ocr"
	"github.com/joseph-ayodele/heat-tracker/internal/parser"
	"github.com/joseph-ayodele/heat-tracker/internal/repository"
)

// app carries what every subcommand needs: configuration, logger and parse options.
type app struct {
	cfg    *common.Config
	logger *slog.Logger
	opts   parser.Options
}

// init loads env config, applies flag overrides and installs the logger.
// Commands print their results on stdout, so logs go to stderr.
func (a *app) init(cmd *cobra.Command) error {
	a.cfg = common.LoadConfig()
	if v, _ := cmd.Flags().GetString("strategy"); v != "" {
		a.cfg.Parser.Strategy = v
	}
	if v, _ := cmd.Flags().GetString("locale"); v != "" {
		a.cfg.Parser.Locale = v
	}
	if v, _ := cmd.Flags().GetString("log-level"); v != "" {
		a.cfg.Log.Level = v
	}
	if err := a.cfg.Validate(); err != nil {
		return err
	}

	strategy, _ := constants.ParseStrategy(a.cfg.Parser.Strategy)
	a.opts = parser.Options{Strategy: strategy, Locale: parser.Locale(a.cfg.Parser.Locale)}
	a.setLogger(os.Stderr)
	return nil
}

func (a *app) setLogger(w io.Writer) {
	a.logger = slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: a.cfg.Log.SlogLevel()}))
	slog.SetDefault(a.logger)
}

func (a *app) extractor() *ocr.Extractor {
	return ocr.NewExtractor(ocr.Config{
		Pdftotext: a.cfg.Extractor.Pdftotext,
		MaxPages:  a.cfg.Extractor.MaxPages,
	}, a.logger)
}

// readText extracts the document text of path.
func (a *app) readText(ctx context.Context, path string) (string, error) {
	res, err := a.extractor().Extract(ctx, path)
	if err != nil {
		return "", err
	}
	for _, w := range res.Warnings {
		a.logger.Warn("extract.warning", "path", path, "warning", w)
	}
	return res.Text, nil
}

// parseFile extracts and parses path with the configured options.
func (a *app) parseFile(ctx context.Context, path string) (parser.Result, error) {
	text, err := a.readText(ctx, path)
	if err != nil {
		return parser.Result{}, err
	}
	res := parser.Parse(text, a.opts)
	a.logger.Info("parse.ok",
		"path", path,
		"strategy", res.Diagnostics.Strategy,
		"heats", len(res.Heats),
		"discarded_a", res.Diagnostics.DiscardedA,
		"discarded_b", res.Diagnostics.DiscardedB,
	)
	if err := parser.ValidateResult(res); err != nil {
		a.logger.Warn("parse.validate.failed", "path", path, "error", err)
	}
	return res, nil
}

// openStore opens and migrates the configured database.
func (a *app) openStore(ctx context.Context) (*repository.DB, repository.SheetRepository, error) {
	db, err := repository.Open(ctx, repository.Config{
		Driver:           a.cfg.Database.Driver,
		DSN:              a.cfg.Database.DSN,
		MaxConns:         a.cfg.Database.MaxConns,
		MinConns:         a.cfg.Database.MinConns,
		MaxConnLifetime:  a.cfg.Database.MaxConnLifetime,
		MaxConnIdleTime:  a.cfg.Database.MaxConnIdleTime,
		DialTimeout:      a.cfg.Database.DialTimeout,
		StatementTimeout: a.cfg.Database.StatementTimeout,
	}, a.logger)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Migrate(ctx); err != nil {
		db.Close()
		return nil, nil, err
	}
	return db, repository.NewSheetRepository(db, a.logger), nil
}
