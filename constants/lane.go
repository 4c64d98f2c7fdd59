package constants

import "strings"

// Lane identifies one of the two lanes of a heat.
type Lane string

const (
	LaneA Lane = "A" // inner lane, printed as "wt" (wit)
	LaneB Lane = "B" // outer lane, printed as "rd" (rood)
)

// Lane markers as they appear in the source text.
const (
	MarkerLaneA = "wt"
	MarkerLaneB = "rd"
)

// LaneForMarker maps a printed marker (any case) to its lane.
func LaneForMarker(marker string) (Lane, bool) {
	switch strings.ToLower(marker) {
	case MarkerLaneA:
		return LaneA, true
	case MarkerLaneB:
		return LaneB, true
	default:
		return "", false
	}
}

// Strategy selects how lane records are segmented out of the text.
type Strategy string

const (
	StrategyStrict   Strategy = "strict"
	StrategyGlobal   Strategy = "global"
	StrategyTolerant Strategy = "tolerant"
)

var allStrategies = []Strategy{StrategyStrict, StrategyGlobal, StrategyTolerant}

func StrategiesAsStringSlice() []string {
	result := make([]string, len(allStrategies))
	for i, s := range allStrategies {
		result[i] = string(s)
	}
	return result
}

// ParseStrategy canonicalizes a strategy name. Empty input yields the tolerant default.
func ParseStrategy(input string) (Strategy, bool) {
	normalized := strings.ToLower(strings.TrimSpace(input))
	if normalized == "" {
		return StrategyTolerant, true
	}

	synonyms := map[string]Strategy{
		"s":       StrategyStrict,
		"blocks":  StrategyStrict,
		"g":       StrategyGlobal,
		"regex":   StrategyGlobal,
		"t":       StrategyTolerant,
		"segment": StrategyTolerant,
		"scan":    StrategyTolerant,
	}
	if s, ok := synonyms[normalized]; ok {
		return s, true
	}
	for _, s := range allStrategies {
		if normalized == string(s) {
			return s, true
		}
	}
	return StrategyTolerant, false
}
