package parser

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/joseph-ayodele/heat-tracker/constants"
)

// Segment is the unparsed text of one skater, tagged with its lane.
// Heat is the printed heat number when the strategy recovers one, else 0.
type Segment struct {
	Lane constants.Lane
	Text string
	Heat int
}

// LaneSegmenter isolates lane segments from raw extracted text.
type LaneSegmenter interface {
	Strategy() constants.Strategy
	// Normalize prepares raw text the way Segments expects it.
	Normalize(raw string) string
	Segments(text string) []Segment
	TimePolicy() TimePolicy
}

// NewSegmenter returns the segmenter for s; unknown values get the tolerant scanner.
func NewSegmenter(s constants.Strategy) LaneSegmenter {
	switch s {
	case constants.StrategyStrict:
		return StrictSegmenter{}
	case constants.StrategyGlobal:
		return GlobalSegmenter{}
	default:
		return TolerantSegmenter{}
	}
}

// StrictSegmenter expects numbered blocks separated by a blank line, each
// holding exactly one heat-number line, one "wt" line and one "rd" line.
type StrictSegmenter struct{}

var reLaneLine = regexp.MustCompile(`(?i)^(wt|rd)(?:\s+(.*))?$`)

func (StrictSegmenter) Strategy() constants.Strategy { return constants.StrategyStrict }
func (StrictSegmenter) Normalize(raw string) string  { return NormalizeLines(raw) }
func (StrictSegmenter) TimePolicy() TimePolicy       { return TrailingRun }

func (StrictSegmenter) Segments(text string) []Segment {
	var out []Segment
	for _, block := range splitBlocks(text) {
		var laneA, laneB []string
		var numbers []string
		for _, ln := range block {
			if isDigits(ln) {
				numbers = append(numbers, ln)
				continue
			}
			m := reLaneLine.FindStringSubmatch(ln)
			if m == nil {
				continue
			}
			lane, _ := constants.LaneForMarker(m[1])
			if lane == constants.LaneA {
				laneA = append(laneA, m[2])
			} else {
				laneB = append(laneB, m[2])
			}
		}
		if len(laneA) != 1 || len(laneB) != 1 || len(numbers) != 1 {
			continue
		}
		no, err := strconv.Atoi(numbers[0])
		if err != nil || no <= 0 {
			continue
		}
		out = append(out,
			Segment{Lane: constants.LaneA, Text: laneA[0], Heat: no},
			Segment{Lane: constants.LaneB, Text: laneB[0], Heat: no},
		)
	}
	return out
}

// splitBlocks starts a new block at every digits-only line that directly follows a blank line.
func splitBlocks(text string) [][]string {
	lines := strings.Split(text, "\n")
	var blocks [][]string
	var cur []string
	for i, ln := range lines {
		if i > 0 && lines[i-1] == "" && isDigits(ln) && len(cur) > 0 {
			blocks = append(blocks, cur)
			cur = nil
		}
		cur = append(cur, ln)
	}
	if len(cur) > 0 {
		blocks = append(blocks, cur)
	}
	return blocks
}

// GlobalSegmenter finds self-contained entries anywhere in the text:
// marker, bib, name, category, nation and one to three times.
type GlobalSegmenter struct{}

var reEntry = regexp.MustCompile(`(?i)\b(wt|rd)\s+(\d+\s+.+?\s+[A-ZÄÖÜ]{1,5}\d?\s+[A-Z]{3}\s+(?:\d{1,2}:\d{2}[.,]\d{2}\s*){1,3})`)

func (GlobalSegmenter) Strategy() constants.Strategy { return constants.StrategyGlobal }
func (GlobalSegmenter) Normalize(raw string) string  { return Normalize(raw) }
func (GlobalSegmenter) TimePolicy() TimePolicy       { return TrailingRun }

func (GlobalSegmenter) Segments(text string) []Segment {
	var out []Segment
	for _, m := range reEntry.FindAllStringSubmatch(text, -1) {
		lane, ok := constants.LaneForMarker(m[1])
		if !ok {
			continue
		}
		out = append(out, Segment{Lane: lane, Text: m[2]})
	}
	return out
}

// TolerantSegmenter cuts the text at every lane marker; each segment runs to
// the next marker or the end of the text. Nothing but the marker is required.
type TolerantSegmenter struct{}

var reMarker = regexp.MustCompile(`(?i)\b(?:wt|rd)`)

func (TolerantSegmenter) Strategy() constants.Strategy { return constants.StrategyTolerant }
func (TolerantSegmenter) Normalize(raw string) string  { return Normalize(raw) }
func (TolerantSegmenter) TimePolicy() TimePolicy       { return SkipTrailingNoise }

func (TolerantSegmenter) Segments(text string) []Segment {
	var marks [][]int
	for _, loc := range reMarker.FindAllStringIndex(text, -1) {
		if r, _ := utf8.DecodeRuneInString(text[loc[1]:]); unicode.IsLetter(r) {
			continue
		}
		marks = append(marks, loc)
	}

	out := make([]Segment, 0, len(marks))
	for i, loc := range marks {
		end := len(text)
		if i+1 < len(marks) {
			end = marks[i+1][0]
		}
		lane, _ := constants.LaneForMarker(text[loc[0]:loc[1]])
		out = append(out, Segment{Lane: lane, Text: strings.TrimSpace(text[loc[1]:end])})
	}
	return out
}
