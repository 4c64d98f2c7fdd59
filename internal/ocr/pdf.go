package ocr

import (
	"context"
	"strings"

	"github.com/joseph-ayodele/heat-tracker/constants"
	"github.com/joseph-ayodele/heat-tracker/internal/common"
)

// pageSeparator keeps a heat that straddles a page break adjacent to its
// neighbours while still reading as a paragraph break.
const pageSeparator = "\n\n"

func (e *Extractor) extractPDF(ctx context.Context, path string) (ExtractionResult, error) {
	res := ExtractionResult{SourceType: constants.PDF, Method: "pdf-text"}

	// pdftotext -layout -enc UTF-8 -eol unix <path> -
	out, errb, err := e.runner.Run(ctx, e.cfg.Pdftotext, "-layout", "-enc", "UTF-8", "-eol", "unix", path, "-")
	if err != nil {
		if tail := stderrTail(errb); tail != "" {
			res.Warnings = append(res.Warnings, tail)
		}
		return res, common.UnreadableInput("pdftotext failed", err)
	}

	pages := splitPages(string(out))
	if e.cfg.MaxPages > 0 && len(pages) > e.cfg.MaxPages {
		res.Warnings = append(res.Warnings, "page limit reached")
		pages = pages[:e.cfg.MaxPages]
	}
	res.Pages = len(pages)
	res.Text = strings.Join(pages, pageSeparator)

	if strings.TrimSpace(res.Text) == "" {
		// No text layer: most likely a scanned sheet.
		return res, common.UnreadableInput("document has no extractable text", nil)
	}
	return res, nil
}

// splitPages splits pdftotext output on form feeds. The trailing form feed
// pdftotext writes after the last page does not start a new page.
func splitPages(text string) []string {
	pages := strings.Split(text, "\f")
	if n := len(pages); n > 1 && strings.TrimSpace(pages[n-1]) == "" {
		pages = pages[:n-1]
	}
	return pages
}
