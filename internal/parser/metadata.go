package parser

import (
	"regexp"
	"strings"

	"github.com/joseph-ayodele/heat-tracker/internal/entity"
)

// Locale picks the placeholder language used when metadata is missing.
type Locale string

const (
	LocaleNL Locale = "nl"
	LocaleEN Locale = "en"
)

type placeholders struct {
	event    string
	distance string
}

var localePlaceholders = map[Locale]placeholders{
	LocaleNL: {event: "Wedstrijd", distance: "Afstand"},
	LocaleEN: {event: "Match", distance: "Distance"},
}

const extrasSeparator = " · "

var (
	reEvent    = regexp.MustCompile(`(?i)World\s*Cup.*?Kwalificatie.*?Toernooi|Kwalificatie.*?Toernooi|World\s*Cup.*?Toernooi`)
	reDistance = regexp.MustCompile(`(?i)(Mannen|Vrouwen)\s*\d{3,5}m`)
	reDateTime = regexp.MustCompile(`(?i)\b(20\d{2}[-/]\d{1,2}[-/]\d{1,2}|\d{1,2}[-/]\d{1,2}[-/]\d{2,4}).{0,10}\b\d{1,2}:\d{2}(:\d{2})?`)
	reVenue    = regexp.MustCompile(`(?i)Thialf.*?Heerenveen`)
)

// hint is one best-effort matcher; absence is never an error.
type hint func(text string) (string, bool)

func firstMatch(re *regexp.Regexp) hint {
	return func(text string) (string, bool) {
		m := re.FindString(text)
		if m == "" {
			return "", false
		}
		return Tidy(m), true
	}
}

// extraHints are tried in order; every hit is kept.
var extraHints = []hint{
	firstMatch(reDateTime),
	firstMatch(reVenue),
}

// ExtractMetadata scans normalized text for event, distance and extra hints.
// It always succeeds: unmatched fields fall back to the locale placeholder.
func ExtractMetadata(text string, locale Locale) entity.Metadata {
	ph, ok := localePlaceholders[locale]
	if !ok {
		ph = localePlaceholders[LocaleNL]
	}

	meta := entity.Metadata{Event: ph.event, Distance: ph.distance}
	if v, ok := firstMatch(reEvent)(text); ok {
		meta.Event = v
	}
	if v, ok := firstMatch(reDistance)(text); ok {
		meta.Distance = v
	}

	var extras []string
	for _, h := range extraHints {
		if v, ok := h(text); ok {
			extras = append(extras, v)
		}
	}
	meta.Extras = strings.Join(extras, extrasSeparator)
	return meta
}
