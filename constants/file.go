package constants

import "strings"

const (
	PDF  = "PDF"
	TEXT = "TEXT"
)

// FileTypes holds the allowed values for the source_type column in sheets.
var FileTypes = []string{PDF, TEXT}

// AllowedExtensions holds the default allowed file extensions for heat sheet ingestion.
var AllowedExtensions = map[string]struct{}{
	"pdf": {},
	"txt": {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// MapExtToFormat maps a normalized extension to PDF | TEXT, or "" when unsupported.
func MapExtToFormat(ext string) string {
	switch NormalizeExt(ext) {
	case "pdf":
		return PDF
	case "txt", "text":
		return TEXT
	default:
		return ""
	}
}
