package ocr

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os/exec"
	"strings"
	"time"
)

// maxStderr caps how much tool diagnostics end up in logs and warnings.
const maxStderr = 8 << 10

// Runner runs the external text tool (pdftotext) and hands back its raw
// output. The page text arrives on stdout separated by form feeds.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)
}

// execRunner runs tools on the host. A missing binary and a non-zero exit
// are both reported as errors; the caller decides they make the sheet unreadable.
type execRunner struct {
	logger *slog.Logger
}

func (r execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	log := r.logger.With(
		"tool", name,
		"document", lastArgPath(args),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		log.Debug("ocr.exec.ok", "text_bytes", stdout.Len(), "form_feeds", bytes.Count(stdout.Bytes(), []byte{'\f'}))
	case errors.As(err, &exitErr):
		log.Error("ocr.exec.failed", "exit_code", exitErr.ExitCode(), "stderr", stderrTail(stderr.Bytes()))
	default:
		log.Error("ocr.exec.unavailable", "error", err)
	}
	return stdout.Bytes(), stderr.Bytes(), err
}

// lastArgPath returns the input document of a pdftotext invocation, which is
// the argument before the trailing "-" (stdout).
func lastArgPath(args []string) string {
	for i := len(args) - 1; i >= 0; i-- {
		if args[i] != "-" {
			return args[i]
		}
	}
	return ""
}

// stderrTail keeps the end of the tool's stderr, where pdftotext puts the
// reason it gave up.
func stderrTail(b []byte) string {
	s := strings.TrimSpace(string(b))
	if len(s) <= maxStderr {
		return s
	}
	return "...(truncated)" + s[len(s)-maxStderr:]
}
