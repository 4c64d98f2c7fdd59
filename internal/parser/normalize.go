package parser

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	reCRLF       = regexp.MustCompile(`\r\n?`)
	reSpaceRun   = regexp.MustCompile(`[ \t\f\v]+`)
	reLineEdges  = regexp.MustCompile(` ?\n ?`)
	reMultiBlank = regexp.MustCompile(`\n{2,}`)
	reAnySpace   = regexp.MustCompile(`\s+`)
)

// Normalize flattens text for the token-stream strategies: non-breaking
// spaces become spaces, every whitespace run (newlines included) collapses
// to a single space, and the result is trimmed.
func Normalize(s string) string {
	if s == "" {
		return s
	}
	s = prepare(s)
	s = reAnySpace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// NormalizeLines is Normalize for the strict block strategy: line structure
// survives, spaces/tabs collapse, and runs of 2+ newlines become exactly two.
func NormalizeLines(s string) string {
	if s == "" {
		return s
	}
	s = prepare(s)
	s = reCRLF.ReplaceAllString(s, "\n")
	s = reSpaceRun.ReplaceAllString(s, " ")
	s = reLineEdges.ReplaceAllString(s, "\n")
	s = reMultiBlank.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

// Tidy collapses internal whitespace and trims.
func Tidy(s string) string {
	return strings.TrimSpace(reAnySpace.ReplaceAllString(s, " "))
}

func prepare(s string) string {
	s = norm.NFC.String(s)
	return strings.ReplaceAll(s, "\u00a0", " ")
}
