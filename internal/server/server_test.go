package server

import (
	"context"
	"net"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/joseph-ayodele/heat-tracker/constants"
	"github.com/joseph-ayodele/heat-tracker/internal/async"
	"github.com/joseph-ayodele/heat-tracker/internal/common"
	"github.com/joseph-ayodele/heat-tracker/internal/export"
	"github.com/joseph-ayodele/heat-tracker/internal/extract"
	"github.com/joseph-ayodele/heat-tracker/internal/ocr"
	"github.com/joseph-ayodele/heat-tracker/internal/parser"
	"github.com/joseph-ayodele/heat-tracker/internal/pipeline"
	"github.com/joseph-ayodele/heat-tracker/internal/repository"
)

const heatText = "Kwalificatie Toernooi Mannen 5000m " +
	"wt 73 Sil van der Veen HA2 NED 6:35.29 6:35.29 rd 34 Sjoerd den Hertog HSB NED 6:19,60"

type fakeQueue struct {
	mu   sync.Mutex
	jobs []async.Job
}

func (f *fakeQueue) Enqueue(_ context.Context, job async.Job) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.jobs = append(f.jobs, job)
	return nil
}

func (f *fakeQueue) Shutdown(context.Context) {}

type harness struct {
	client *Client
	conn   *grpc.ClientConn
	queue  *fakeQueue
}

func startServer(t *testing.T, withQueue bool) *harness {
	t.Helper()
	ctx := context.Background()

	db, err := repository.Open(ctx, repository.Config{DSN: "file::memory:?_pragma=foreign_keys(1)"}, nil)
	require.NoError(t, err)
	t.Cleanup(db.Close)
	require.NoError(t, db.Migrate(ctx))

	sheets := repository.NewSheetRepository(db, nil)
	extractor := extract.NewOCRAdapter(ocr.NewExtractor(ocr.Config{}, nil), nil)
	proc := pipeline.NewProcessor(nil, extractor, sheets, parser.Options{Strategy: constants.StrategyTolerant})

	h := &harness{}
	var q async.Queue
	if withQueue {
		h.queue = &fakeQueue{}
		q = h.queue
	}
	svc := NewSheetService(proc, sheets, export.NewService(sheets, nil), q, nil)
	grpcServer, _ := NewGRPCServer(svc, nil)

	lis := bufconn.Listen(1 << 20)
	go func() { _ = grpcServer.Serve(lis) }()
	t.Cleanup(grpcServer.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	h.conn = conn
	h.client = NewClient(conn)
	return h
}

func TestHeatSheetService_RoundTrip(t *testing.T) {
	h := startServer(t, false)
	ctx := context.Background()

	parsed, err := h.client.ParseText(ctx, "pasted.txt", heatText, "")
	require.NoError(t, err)
	require.NotNil(t, parsed.Sheet)
	require.Len(t, parsed.Heats, 1)
	assert.Equal(t, "Sil van der Veen", parsed.Heats[0].LaneA.Name)
	assert.Equal(t, "6:19.60", parsed.Heats[0].LaneB.PersonalRecord)
	assert.Equal(t, "Mannen 5000m", parsed.Sheet.Metadata.Distance)
	require.NotNil(t, parsed.Diagnostics)
	assert.Equal(t, 2, parsed.Diagnostics.Segments)
	assert.False(t, parsed.Deduplicated)

	again, err := h.client.ParseText(ctx, "pasted.txt", heatText, "")
	require.NoError(t, err)
	assert.True(t, again.Deduplicated)
	assert.Equal(t, parsed.Sheet.ID, again.Sheet.ID)

	got, err := h.client.GetSheet(ctx, parsed.Sheet.ID.String())
	require.NoError(t, err)
	assert.Equal(t, parsed.Heats, got.Heats)
	assert.Equal(t, constants.SheetStatusOK, got.Sheet.Status)

	list, err := h.client.ListSheets(ctx, 10)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, parsed.Sheet.ID, list[0].ID)

	xlsx, err := h.client.ExportSheet(ctx, parsed.Sheet.ID.String())
	require.NoError(t, err)
	assert.NotEmpty(t, xlsx)
	// XLSX files are zip archives.
	assert.Equal(t, []byte("PK"), xlsx[:2])
}

func TestHeatSheetService_Errors(t *testing.T) {
	h := startServer(t, false)
	ctx := context.Background()

	var view SheetView
	err := h.client.invoke(ctx, MethodParseText, map[string]any{"name": "no-text"}, &view)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = h.client.ParseText(ctx, "", heatText, "fancy")
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = h.client.GetSheet(ctx, "not-a-uuid")
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = h.client.GetSheet(ctx, "6f1c1d8e-2f43-4a8c-9a4e-1d2b3c4d5e6f")
	assert.Equal(t, codes.NotFound, status.Code(err))

	_, err = h.client.ExportSheet(ctx, "6f1c1d8e-2f43-4a8c-9a4e-1d2b3c4d5e6f")
	assert.Equal(t, codes.NotFound, status.Code(err))

	_, err = h.client.IngestFile(ctx, "/tmp/x.pdf")
	assert.Equal(t, codes.FailedPrecondition, status.Code(err))
}

func TestHeatSheetService_StrategyOverride(t *testing.T) {
	h := startServer(t, false)
	ctx := context.Background()

	base, err := h.client.ParseText(ctx, "", heatText, "")
	require.NoError(t, err)

	out, err := h.client.ParseText(ctx, "", heatText, "global")
	require.NoError(t, err)
	assert.False(t, out.Deduplicated)
	assert.NotEqual(t, base.Sheet.ID, out.Sheet.ID)
	assert.Equal(t, string(constants.StrategyGlobal), out.Sheet.Strategy)
	require.Len(t, out.Heats, 1)
}

func TestHeatSheetService_EmptyTextYieldsPlaceholders(t *testing.T) {
	h := startServer(t, false)

	out, err := h.client.ParseText(context.Background(), "empty.txt", "", "")
	require.NoError(t, err)
	assert.Equal(t, "Wedstrijd", out.Sheet.Metadata.Event)
	assert.Equal(t, "Afstand", out.Sheet.Metadata.Distance)
	assert.Empty(t, out.Heats)
	assert.Equal(t, constants.SheetStatusReview, out.Sheet.Status)
}

func TestHeatSheetService_Ingest(t *testing.T) {
	h := startServer(t, true)
	dir := t.TempDir()
	sheet := filepath.Join(dir, "1000m.pdf")
	require.NoError(t, os.WriteFile(sheet, []byte("%PDF"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.md"), []byte("x"), 0o644))

	ctx := common.WithRequestID(context.Background(), "req-42")
	reply, err := h.client.IngestFile(ctx, sheet)
	require.NoError(t, err)
	assert.Equal(t, 1, reply.Queued)

	h.queue.mu.Lock()
	require.Len(t, h.queue.jobs, 1)
	assert.Equal(t, sheet, h.queue.jobs[0].Path)
	assert.Equal(t, "req-42", h.queue.jobs[0].TraceID)
	h.queue.mu.Unlock()

	_, err = h.client.IngestFile(ctx, filepath.Join(dir, "notes.md"))
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
	_, err = h.client.IngestFile(ctx, filepath.Join(dir, "missing.pdf"))
	assert.Equal(t, codes.NotFound, status.Code(err))

	dirReply, err := h.client.IngestDirectory(ctx, dir, true)
	require.NoError(t, err)
	assert.Equal(t, 1, dirReply.Queued)
	assert.Equal(t, 1, dirReply.Matched)
}

func TestHealth(t *testing.T) {
	h := startServer(t, false)
	resp, err := grpc_health_v1.NewHealthClient(h.conn).Check(context.Background(), &grpc_health_v1.HealthCheckRequest{Service: ServiceName})
	require.NoError(t, err)
	assert.Equal(t, grpc_health_v1.HealthCheckResponse_SERVING, resp.GetStatus())
}
