package ocr

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/heat-tracker/constants"
	"github.com/joseph-ayodele/heat-tracker/internal/common"
)

type stubRunner struct {
	stdout []byte
	stderr []byte
	err    error

	gotName string
	gotArgs []string
}

func (s *stubRunner) Run(_ context.Context, name string, args ...string) ([]byte, []byte, error) {
	s.gotName = name
	s.gotArgs = args
	return s.stdout, s.stderr, s.err
}

func TestExtract_PDFPagesInOrder(t *testing.T) {
	r := &stubRunner{stdout: []byte("page one wt 1\fpage two rd 2\f")}
	e := NewExtractor(Config{}, nil).WithRunner(r)

	res, err := e.Extract(context.Background(), "/tmp/sheet.PDF")
	require.NoError(t, err)

	assert.Equal(t, "pdftotext", r.gotName)
	assert.Equal(t, []string{"-layout", "-enc", "UTF-8", "-eol", "unix", "/tmp/sheet.PDF", "-"}, r.gotArgs)
	assert.Equal(t, 2, res.Pages)
	assert.Equal(t, "page one wt 1\n\npage two rd 2", res.Text)
	assert.Equal(t, constants.PDF, res.SourceType)
	assert.Equal(t, "pdf-text", res.Method)
}

func TestExtract_PDFMaxPages(t *testing.T) {
	r := &stubRunner{stdout: []byte("a\fb\fc\f")}
	e := NewExtractor(Config{Pdftotext: "/opt/bin/pdftotext", MaxPages: 2}, nil).WithRunner(r)

	res, err := e.Extract(context.Background(), "x.pdf")
	require.NoError(t, err)
	assert.Equal(t, "/opt/bin/pdftotext", r.gotName)
	assert.Equal(t, 2, res.Pages)
	assert.Equal(t, "a\n\nb", res.Text)
	assert.Contains(t, res.Warnings, "page limit reached")
}

func TestExtract_PDFWithoutTextIsUnreadable(t *testing.T) {
	e := NewExtractor(Config{}, nil).WithRunner(&stubRunner{stdout: []byte("\f \f")})

	_, err := e.Extract(context.Background(), "scan.pdf")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrUnreadable)
}

func TestExtract_PDFToolFailure(t *testing.T) {
	boom := errors.New("exit status 1")
	e := NewExtractor(Config{}, nil).WithRunner(&stubRunner{stderr: []byte("Syntax Error"), err: boom})

	res, err := e.Extract(context.Background(), "broken.pdf")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrUnreadable)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"Syntax Error"}, res.Warnings)
}

func TestExtract_PlainText(t *testing.T) {
	dir := t.TempDir()

	utf := filepath.Join(dir, "utf8.txt")
	require.NoError(t, os.WriteFile(utf, []byte("wt 1 Zoë Ñúñez"), 0o644))
	res, err := NewExtractor(Config{}, nil).Extract(context.Background(), utf)
	require.NoError(t, err)
	assert.Equal(t, "wt 1 Zoë Ñúñez", res.Text)
	assert.Empty(t, res.Warnings)

	legacy := filepath.Join(dir, "cp1252.txt")
	require.NoError(t, os.WriteFile(legacy, []byte{'Z', 'o', 0xEB}, 0o644))
	res, err = NewExtractor(Config{}, nil).Extract(context.Background(), legacy)
	require.NoError(t, err)
	assert.Equal(t, "Zoë", res.Text)
	assert.Equal(t, []string{"decoded as windows-1252"}, res.Warnings)
}

func TestExtract_Unsupported(t *testing.T) {
	_, err := NewExtractor(Config{}, nil).Extract(context.Background(), "photo.jpg")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestExtract_MissingTextFile(t *testing.T) {
	_, err := NewExtractor(Config{}, nil).Extract(context.Background(), filepath.Join(t.TempDir(), "nope.txt"))
	assert.ErrorIs(t, err, common.ErrUnreadable)
}

func TestStderrTail(t *testing.T) {
	assert.Equal(t, "Syntax Error", stderrTail([]byte("  Syntax Error\n")))
	assert.Empty(t, stderrTail(nil))

	long := strings.Repeat("x", maxStderr) + "Couldn't open file"
	tail := stderrTail([]byte(long))
	assert.True(t, strings.HasPrefix(tail, "...(truncated)"))
	assert.True(t, strings.HasSuffix(tail, "Couldn't open file"))
}

func TestLastArgPath(t *testing.T) {
	assert.Equal(t, "ritten.pdf", lastArgPath([]string{"-layout", "ritten.pdf", "-"}))
	assert.Empty(t, lastArgPath([]string{"-"}))
}

func TestExecRunner_MissingTool(t *testing.T) {
	r := execRunner{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	_, _, err := r.Run(context.Background(), "h2h-no-such-pdftotext", "x.pdf", "-")
	require.Error(t, err)
}
