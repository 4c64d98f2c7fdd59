package ingest

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/heat-tracker/internal/async"
)

// ScanDirectory walks root and returns the heat sheet files below it in
// lexical order. Unreadable entries are counted and skipped.
func ScanDirectory(root string, skipHidden bool) ([]string, DirStats, error) {
	if strings.TrimSpace(root) == "" {
		return nil, DirStats{}, errors.New("root_path is required")
	}

	var paths []string
	var stats DirStats

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		stats.Scanned++
		if walkErr != nil {
			if path == root {
				return walkErr
			}
			slog.Warn("skipping unreadable entry", "path", path, "error", walkErr)
			stats.Failed++
			return nil
		}
		if skipHidden && path != root && IsHidden(path) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !IsSheetFile(path) {
			return nil
		}
		stats.Matched++
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return paths, stats, fmt.Errorf("walk: %w", err)
	}
	return paths, stats, nil
}

// EnqueueDirectory scans root and submits every match to q under one trace ID.
func EnqueueDirectory(ctx context.Context, q async.Queue, root string, skipHidden bool, logger *slog.Logger) (DirStats, error) {
	if logger == nil {
		logger = slog.Default()
	}
	paths, stats, err := ScanDirectory(root, skipHidden)
	if err != nil {
		return stats, err
	}

	trace := uuid.NewString()
	for _, p := range paths {
		if err := q.Enqueue(ctx, async.Job{Path: p, TraceID: trace}); err != nil {
			logger.Error("enqueue failed", "path", p, "error", err)
			stats.Failed++
			if ctx.Err() != nil {
				return stats, ctx.Err()
			}
			continue
		}
		stats.Enqueued++
	}
	logger.Info("directory enqueued",
		"root", root,
		"trace_id", trace,
		"scanned", stats.Scanned,
		"matched", stats.Matched,
		"enqueued", stats.Enqueued,
		"failed", stats.Failed,
	)
	return stats, nil
}
