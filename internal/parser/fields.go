package parser

import (
	"regexp"
	"strings"

	"github.com/joseph-ayodele/heat-tracker/internal/entity"
)

const maxTimes = 3

var (
	reTime   = regexp.MustCompile(`^\d{1,2}:\d{2}[.,]\d{2}$`)
	reDigits = regexp.MustCompile(`^\d+$`)
)

// TimePolicy controls how the trailing time run is collected.
type TimePolicy int

const (
	// TrailingRun only accepts times at the very end of the span.
	TrailingRun TimePolicy = iota
	// SkipTrailingNoise ignores non-time tokens to the right of the first time found.
	SkipTrailingNoise
)

// IsTime reports whether tok looks like m:ss.ss or m:ss,ss.
func IsTime(tok string) bool { return reTime.MatchString(tok) }

// NormalizeTime rewrites the decimal comma to a dot. Idempotent.
func NormalizeTime(s string) string { return strings.ReplaceAll(s, ",", ".") }

func isDigits(tok string) bool { return reDigits.MatchString(tok) }

// ExtractLane parses one lane span from the right: up to three times, then
// nation, then category; a leading numeric token is the bib and everything
// in between is the name. Missing pieces come back empty.
func ExtractLane(span string, policy TimePolicy) entity.LaneRecord {
	tokens := strings.Fields(span)

	runStart, runEnd := -1, -1
	for i := len(tokens) - 1; i >= 0; i-- {
		if IsTime(tokens[i]) {
			if runEnd < 0 {
				runEnd = i + 1
			}
			runStart = i
			if runEnd-runStart == maxTimes {
				break
			}
			continue
		}
		if runEnd >= 0 || policy == TrailingRun {
			break
		}
	}
	if runStart < 0 {
		runStart, runEnd = len(tokens), len(tokens)
	}

	var rec entity.LaneRecord
	nameStart := 0
	if len(tokens) > 0 && isDigits(tokens[0]) {
		rec.Bib = tokens[0]
		nameStart = 1
	}

	natIdx := runStart - 1
	catIdx := runStart - 2
	rec.Nation = tokenAt(tokens, natIdx, nameStart)
	rec.Category = tokenAt(tokens, catIdx, nameStart)

	nameEnd := catIdx
	if nameEnd < nameStart {
		nameEnd = nameStart
	}
	if nameEnd > len(tokens) {
		nameEnd = len(tokens)
	}
	rec.Name = strings.Join(tokens[nameStart:nameEnd], " ")

	times := tokens[runStart:runEnd]
	slots := []*string{&rec.PersonalRecord, &rec.SeasonBest, &rec.RaceTime}
	for i, t := range times {
		*slots[i] = NormalizeTime(t)
	}
	return rec
}

// tokenAt returns tokens[i] when i lies in [min, len(tokens)), else "".
func tokenAt(tokens []string, i, min int) string {
	if i < min || i >= len(tokens) {
		return ""
	}
	return tokens[i]
}
