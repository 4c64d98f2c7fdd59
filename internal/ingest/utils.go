package ingest

import (
	"path/filepath"
	"strings"

	"github.com/joseph-ayodele/heat-tracker/constants"
)

// AllowedExt reports whether ext names a heat sheet format the extractor
// can read: a PDF with a text layer or a plain-text export.
func AllowedExt(ext string) bool {
	_, ok := constants.AllowedExtensions[constants.NormalizeExt(ext)]
	return ok
}

// IsSheetFile reports whether path looks like a finished heat sheet. Office
// and LibreOffice lock files ("~$ritten.txt", ".~lock.ritten.txt#") and
// editor backups ("ritten.txt~") are skipped even though they share the
// sheet's name.
func IsSheetFile(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, "~$") || strings.HasPrefix(base, ".~lock.") || strings.HasSuffix(base, "~") {
		return false
	}
	return AllowedExt(filepath.Ext(base))
}

// IsHidden reports whether the last path element is a dot file or directory.
func IsHidden(path string) bool {
	return strings.HasPrefix(filepath.Base(path), ".")
}
