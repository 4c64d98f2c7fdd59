package server

import (
	"context"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/joseph-ayodele/heat-tracker/constants"
	"github.com/joseph-ayodele/heat-tracker/internal/async"
	"github.com/joseph-ayodele/heat-tracker/internal/common"
	"github.com/joseph-ayodele/heat-tracker/internal/entity"
	"github.com/joseph-ayodele/heat-tracker/internal/export"
	"github.com/joseph-ayodele/heat-tracker/internal/ingest"
	"github.com/joseph-ayodele/heat-tracker/internal/pipeline"
	"github.com/joseph-ayodele/heat-tracker/internal/repository"
	"github.com/joseph-ayodele/heat-tracker/internal/utils"
)

// SheetService implements HeatSheetServer on top of the pipeline and store.
type SheetService struct {
	processor *pipeline.Processor
	sheets    repository.SheetRepository
	exporter  *export.Service
	queue     async.Queue
	logger    *slog.Logger
}

// NewSheetService wires the service. queue may be nil, in which case the
// ingest methods report FailedPrecondition.
func NewSheetService(proc *pipeline.Processor, sheets repository.SheetRepository, exporter *export.Service, queue async.Queue, logger *slog.Logger) *SheetService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SheetService{processor: proc, sheets: sheets, exporter: exporter, queue: queue, logger: logger}
}

func (s *SheetService) ParseText(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	// Empty text is a valid document: it parses to placeholder metadata and no heats.
	field, ok := req.GetFields()["text"]
	if !ok {
		return nil, status.Error(codes.InvalidArgument, "text is required")
	}
	text := field.GetStringValue()
	name := utils.StringField(req, "name")
	if name == "" {
		name = "grpc:ParseText"
	}

	proc := s.processor
	if raw := utils.StringField(req, "strategy"); raw != "" {
		strategy, ok := constants.ParseStrategy(raw)
		if !ok {
			return nil, status.Errorf(codes.InvalidArgument, "unknown strategy %q", raw)
		}
		opts := proc.Options()
		opts.Strategy = strategy
		proc = proc.WithOptions(opts)
	}

	out, err := proc.ProcessText(ctx, name, text)
	if err != nil {
		return nil, err
	}
	return utils.ToStruct(SheetView{
		Sheet:        out.Sheet,
		Heats:        out.Heats,
		Diagnostics:  &out.Diagnostics,
		Deduplicated: out.Deduplicated,
	})
}

func (s *SheetService) GetSheet(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := sheetID(req)
	if err != nil {
		return nil, err
	}
	ctx = common.WithSheetID(ctx, id.String())

	sheet, err := s.sheets.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	heats, err := s.sheets.Heats(ctx, id)
	if err != nil {
		return nil, err
	}
	return utils.ToStruct(SheetView{Sheet: sheet, Heats: heats})
}

func (s *SheetService) ListSheets(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	limit := utils.IntField(req, "limit", repository.DefaultListLimit)
	sheets, err := s.sheets.List(ctx, limit)
	if err != nil {
		return nil, err
	}
	if sheets == nil {
		sheets = []*entity.Sheet{}
	}
	return utils.ToStruct(SheetList{Sheets: sheets})
}

func (s *SheetService) ExportSheet(ctx context.Context, req *structpb.Struct) (*wrapperspb.BytesValue, error) {
	id, err := sheetID(req)
	if err != nil {
		return nil, err
	}
	b, err := s.exporter.ExportSheetXLSX(ctx, id)
	if err != nil {
		return nil, err
	}
	return wrapperspb.Bytes(b), nil
}

func (s *SheetService) IngestFile(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if s.queue == nil {
		return nil, status.Error(codes.FailedPrecondition, "ingestion queue is not running")
	}
	path := utils.StringField(req, "path")
	if path == "" {
		return nil, status.Error(codes.InvalidArgument, "path is required")
	}
	if !ingest.IsSheetFile(path) {
		return nil, status.Errorf(codes.InvalidArgument, "unsupported file type: %s", path)
	}
	if _, err := os.Stat(path); err != nil {
		return nil, status.Errorf(codes.NotFound, "cannot access %s", path)
	}

	if err := s.queue.Enqueue(ctx, async.Job{Path: path, TraceID: common.RequestIDFromContext(ctx)}); err != nil {
		return nil, status.Errorf(codes.Unavailable, "enqueue: %v", err)
	}
	s.logger.Info("file queued", "path", path)
	return utils.ToStruct(IngestReply{Queued: 1, Matched: 1})
}

func (s *SheetService) IngestDirectory(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if s.queue == nil {
		return nil, status.Error(codes.FailedPrecondition, "ingestion queue is not running")
	}
	root := utils.StringField(req, "root")
	if root == "" {
		return nil, status.Error(codes.InvalidArgument, "root is required")
	}

	stats, err := ingest.EnqueueDirectory(ctx, s.queue, root, utils.BoolField(req, "skip_hidden"), s.logger)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "scan %s: %v", root, err)
	}
	return utils.ToStruct(IngestReply{Queued: stats.Enqueued, Matched: stats.Matched, Failed: stats.Failed})
}

func sheetID(req *structpb.Struct) (uuid.UUID, error) {
	raw := utils.StringField(req, "id")
	if raw == "" {
		return uuid.Nil, status.Error(codes.InvalidArgument, "id is required")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, status.Error(codes.InvalidArgument, "id must be a UUID")
	}
	return id, nil
}
