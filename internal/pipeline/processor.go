package pipeline

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/heat-tracker/constants"
	"github.com/joseph-ayodele/heat-tracker/internal/common"
	"github.com/joseph-ayodele/heat-tracker/internal/entity"
	"github.com/joseph-ayodele/heat-tracker/internal/extract"
	"github.com/joseph-ayodele/heat-tracker/internal/parser"
	"github.com/joseph-ayodele/heat-tracker/internal/repository"
)

// Outcome is what one processed document produced.
type Outcome struct {
	Sheet        *entity.Sheet
	Heats        []entity.Heat
	Diagnostics  parser.Diagnostics
	Deduplicated bool
}

// Processor coordinates text extraction, parsing and storage of heat sheets.
type Processor struct {
	logger    *slog.Logger
	extractor extract.TextExtractor
	sheets    repository.SheetRepository
	opts      parser.Options
}

func NewProcessor(logger *slog.Logger, extractor extract.TextExtractor, sheets repository.SheetRepository, opts parser.Options) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{logger: logger, extractor: extractor, sheets: sheets, opts: opts}
}

// Options returns the parse options used for every document.
func (p *Processor) Options() parser.Options { return p.opts }

// WithOptions returns a processor sharing p's collaborators but parsing with opts.
func (p *Processor) WithOptions(opts parser.Options) *Processor {
	cp := *p
	cp.opts = opts
	return &cp
}

// ProcessFile hashes the file, returns the stored sheet when the content was
// seen before, and otherwise extracts, parses and persists it. Extraction
// failures persist nothing.
func (p *Processor) ProcessFile(ctx context.Context, path string) (*Outcome, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, common.NewAppError("INVALID_PATH", path, fmt.Errorf("%w: %w", common.ErrInvalidInput, err))
	}
	format := constants.MapExtToFormat(filepath.Ext(abs))
	if format == "" {
		return nil, common.NewAppError("UNSUPPORTED_FORMAT", fmt.Sprintf("unsupported extension: %q", filepath.Ext(abs)), common.ErrInvalidInput)
	}

	sum, err := hashFile(abs, p.opts.Strategy)
	if err != nil {
		p.logger.Error("processor.hash.failed", "path", abs, "error", err)
		return nil, common.UnreadableInput("read "+filepath.Base(abs), err)
	}
	log := p.logger.With("path", abs, "hash", hex.EncodeToString(sum)[:12], "request_id", common.RequestIDFromContext(ctx))

	if out, ok, err := p.existing(ctx, sum); err != nil || ok {
		if ok {
			log.Info("processor.dedupe", "sheet_id", out.Sheet.ID)
		}
		return out, err
	}

	res, err := p.extractor.Extract(ctx, abs)
	if err != nil {
		log.Error("processor.extract.failed", "error", err)
		return nil, err
	}
	log.Debug("processor.extract.ok", "method", res.Method, "pages", res.Pages, "bytes", len(res.Text))
	for _, w := range res.Warnings {
		log.Warn("processor.extract.warning", "warning", w)
	}

	return p.store(ctx, log, &entity.Sheet{
		ContentHash: sum,
		SourcePath:  abs,
		SourceType:  res.SourceType,
	}, res.Text)
}

// ProcessText parses text that was already extracted elsewhere. name is
// recorded as the source path.
func (p *Processor) ProcessText(ctx context.Context, name, text string) (*Outcome, error) {
	sum, _ := contentKey(p.opts.Strategy, strings.NewReader(text))
	log := p.logger.With("source", name, "hash", hex.EncodeToString(sum)[:12], "request_id", common.RequestIDFromContext(ctx))

	if out, ok, err := p.existing(ctx, sum); err != nil || ok {
		if ok {
			log.Info("processor.dedupe", "sheet_id", out.Sheet.ID)
		}
		return out, err
	}

	return p.store(ctx, log, &entity.Sheet{
		ContentHash: sum,
		SourcePath:  name,
		SourceType:  constants.TEXT,
	}, text)
}

func (p *Processor) existing(ctx context.Context, sum []byte) (*Outcome, bool, error) {
	sheet, err := p.sheets.GetByHash(ctx, sum)
	if errors.Is(err, common.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	heats, err := p.sheets.Heats(ctx, sheet.ID)
	if err != nil {
		return nil, false, err
	}
	return &Outcome{
		Sheet:        sheet,
		Heats:        heats,
		Deduplicated: true,
		Diagnostics: parser.Diagnostics{
			Strategy:   constants.Strategy(sheet.Strategy),
			DiscardedA: sheet.DiscardedA,
			DiscardedB: sheet.DiscardedB,
		},
	}, true, nil
}

func (p *Processor) store(ctx context.Context, log *slog.Logger, sheet *entity.Sheet, text string) (*Outcome, error) {
	res := parser.Parse(text, p.opts)

	sheet.ID = uuid.New()
	ctx = common.WithSheetID(ctx, sheet.ID.String())
	sheet.Strategy = string(res.Diagnostics.Strategy)
	sheet.Metadata = res.Metadata
	sheet.DiscardedA = res.Diagnostics.DiscardedA
	sheet.DiscardedB = res.Diagnostics.DiscardedB
	sheet.Status = reviewStatus(log, res)

	stored, err := p.sheets.Create(ctx, sheet, res.Heats)
	if err != nil {
		log.Error("processor.store.failed", "sheet_id", common.SheetIDFromContext(ctx), "error", err)
		return nil, err
	}

	log.Info("processor.parse.ok",
		"sheet_id", stored.ID,
		"strategy", stored.Strategy,
		"heats", len(res.Heats),
		"discarded_a", res.Diagnostics.DiscardedA,
		"discarded_b", res.Diagnostics.DiscardedB,
		"status", stored.Status,
	)
	return &Outcome{Sheet: stored, Heats: res.Heats, Diagnostics: res.Diagnostics}, nil
}

// reviewStatus flags sheets whose result fails the document schema, that
// produced no heats, or that left lane records unpaired.
func reviewStatus(log *slog.Logger, res parser.Result) constants.SheetStatus {
	status := constants.SheetStatusOK
	if err := parser.ValidateResult(res); err != nil {
		log.Warn("processor.validate.failed", "error", err)
		status = constants.SheetStatusReview
	}
	if len(res.Heats) == 0 {
		log.Warn("processor.parse.empty")
		status = constants.SheetStatusReview
	}
	if res.Diagnostics.Discarded() > 0 {
		status = constants.SheetStatusReview
	}
	return status
}

func hashFile(path string, strategy constants.Strategy) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return contentKey(strategy, f)
}

// contentKey is the dedupe key of a document: the same bytes parsed with a
// different strategy are a different sheet.
func contentKey(strategy constants.Strategy, r io.Reader) ([]byte, error) {
	h := sha256.New()
	io.WriteString(h, string(strategy))
	h.Write([]byte{0})
	if _, err := io.Copy(h, r); err != nil {
		return nil, err
	}
	return h.Sum(nil), nil
}
