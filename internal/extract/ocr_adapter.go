package extract

import (
	"context"
	"log/slog"

	"github.com/joseph-ayodele/heat-tracker/internal/ocr"
)

// OCRAdapter serves heat sheet text from the ocr package to the pipeline.
type OCRAdapter struct {
	e      *ocr.Extractor
	logger *slog.Logger
}

func NewOCRAdapter(e *ocr.Extractor, logger *slog.Logger) *OCRAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &OCRAdapter{e: e, logger: logger}
}

// Extract returns the page-ordered text of the sheet at path. On failure the
// partial result still carries the tool warnings.
func (a *OCRAdapter) Extract(ctx context.Context, path string) (TextExtractionResult, error) {
	r, err := a.e.Extract(ctx, path)
	res := TextExtractionResult{
		Text:       r.Text,
		Pages:      r.Pages,
		SourceType: r.SourceType,
		Method:     r.Method,
		Duration:   r.Duration,
		Warnings:   append([]string(nil), r.Warnings...),
	}
	if err != nil {
		a.logger.Warn("extract.failed", "path", path, "method", r.Method, "warnings", len(res.Warnings), "error", err)
		return res, err
	}
	a.logger.Debug("extract.ok",
		"path", path,
		"method", res.Method,
		"pages", res.Pages,
		"bytes", len(res.Text),
		"duration_ms", res.Duration.Milliseconds(),
	)
	return res, nil
}
