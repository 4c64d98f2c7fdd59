package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/joseph-ayodele/heat-tracker/constants"
	"github.com/joseph-ayodele/heat-tracker/internal/async"
	"github.com/joseph-ayodele/heat-tracker/internal/common"
	"github.com/joseph-ayodele/heat-tracker/internal/export"
	"github.com/joseph-ayodele/heat-tracker/internal/extract"
	"github.com/joseph-ayodele/heat-tracker/internal/ingest"
	"github.com/joseph-ayodele/heat-tracker/internal/ocr"
	"github.com/joseph-ayodele/heat-tracker/internal/parser"
	"github.com/joseph-ayodele/heat-tracker/internal/pipeline"
	"github.com/joseph-ayodele/heat-tracker/internal/repository"
	"github.com/joseph-ayodele/heat-tracker/internal/server"
)

func main() {
	cfg := common.LoadConfig()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.Log.SlogLevel()}))
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("config.invalid", "error", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("h2hd.exit", "error", err)
		os.Exit(1)
	}
	logger.Info("h2hd.stopped")
}

func run(ctx context.Context, cfg *common.Config, logger *slog.Logger) error {
	db, err := repository.Open(ctx, repository.Config{
		Driver:           cfg.Database.Driver,
		DSN:              cfg.Database.DSN,
		MaxConns:         cfg.Database.MaxConns,
		MinConns:         cfg.Database.MinConns,
		MaxConnLifetime:  cfg.Database.MaxConnLifetime,
		MaxConnIdleTime:  cfg.Database.MaxConnIdleTime,
		DialTimeout:      cfg.Database.DialTimeout,
		StatementTimeout: cfg.Database.StatementTimeout,
	}, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.HealthCheck(ctx, 3*time.Second); err != nil {
		return err
	}
	if err := db.Migrate(ctx); err != nil {
		return err
	}
	logger.Info("db.ready", "driver", db.Dialect())

	sheets := repository.NewSheetRepository(db, logger)
	extractor := extract.NewOCRAdapter(ocr.NewExtractor(ocr.Config{
		Pdftotext: cfg.Extractor.Pdftotext,
		MaxPages:  cfg.Extractor.MaxPages,
	}, logger), logger)
	strategy, _ := constants.ParseStrategy(cfg.Parser.Strategy)
	proc := pipeline.NewProcessor(logger, extractor, sheets, parser.Options{
		Strategy: strategy,
		Locale:   parser.Locale(cfg.Parser.Locale),
	})

	queue := async.NewProcessorQueue(proc, logger,
		async.WithWorkers(cfg.Ingest.Workers),
		async.WithOnDone(func(job async.Job, out *pipeline.Outcome, err error) {
			if err != nil {
				return
			}
			logger.Info("ingest.stored",
				"path", job.Path,
				"trace_id", job.TraceID,
				"sheet_id", out.Sheet.ID,
				"status", out.Sheet.Status,
				"deduplicated", out.Deduplicated,
			)
		}),
	)

	svc := server.NewSheetService(proc, sheets, export.NewService(sheets, logger), queue, logger)
	grpcServer, hs := server.NewGRPCServer(svc, logger)

	lis, err := net.Listen("tcp", cfg.Server.GRPCAddr)
	if err != nil {
		return err
	}
	logger.Info("grpc.listen", "addr", lis.Addr().String())

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			return err
		}
		return nil
	})

	if cfg.Ingest.InboxDir != "" {
		g.Go(func() error {
			return watchInbox(gctx, cfg, queue, logger)
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("h2hd.shutdown")
		hs.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
		grpcServer.GracefulStop()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		queue.Shutdown(shutdownCtx)
		return nil
	})

	return g.Wait()
}

// watchInbox feeds files that land in the inbox directory to the queue.
func watchInbox(ctx context.Context, cfg *common.Config, queue async.Queue, logger *slog.Logger) error {
	files, errs, err := ingest.StartWatcher(ctx, ingest.WatchConfig{
		Roots:       []string{cfg.Ingest.InboxDir},
		InitialScan: true,
		SkipHidden:  true,
		Debounce:    cfg.Ingest.Debounce,
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	for {
		select {
		case path, ok := <-files:
			if !ok {
				return nil
			}
			job := async.Job{Path: path, SubmittedAt: time.Now()}
			if err := queue.Enqueue(ctx, job); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				logger.Error("inbox.enqueue.failed", "path", path, "error", err)
			}
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			logger.Warn("inbox.watch.error", "error", err)
		}
	}
}
