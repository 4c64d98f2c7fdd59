package ocr

import (
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/joseph-ayodele/heat-tracker/constants"
	"github.com/joseph-ayodele/heat-tracker/internal/common"
)

// extractPlain reads a text export. Files that are not valid UTF-8 are
// assumed to be Windows-1252, which is what older results software writes.
func (e *Extractor) extractPlain(path string) (ExtractionResult, error) {
	res := ExtractionResult{SourceType: constants.TEXT, Method: "plain-text", Pages: 1}

	b, err := os.ReadFile(path)
	if err != nil {
		return res, common.UnreadableInput("read text file", err)
	}
	if !utf8.Valid(b) {
		decoded, err := charmap.Windows1252.NewDecoder().Bytes(b)
		if err != nil {
			return res, common.UnreadableInput("decode text file", err)
		}
		res.Warnings = append(res.Warnings, "decoded as windows-1252")
		b = decoded
	}
	res.Text = string(b)
	return res, nil
}
