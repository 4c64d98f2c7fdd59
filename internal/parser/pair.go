package parser

import (
	"sort"

	"github.com/joseph-ayodele/heat-tracker/internal/entity"
)

// LaneEntry is an extracted record together with the heat number printed
// next to it (0 when the strategy recovers none).
type LaneEntry struct {
	Record entity.LaneRecord
	Heat   int
}

// PairStats reports what pairing had to drop.
type PairStats struct {
	DiscardedA int
	DiscardedB int
}

// Pair zips lane A and lane B entries in discovery order into
// min(len(a), len(b)) heats. Heats are numbered 1..N unless every pair
// carries a printed number, in which case those are used and the result is
// sorted ascending. Surplus entries are dropped and counted.
func Pair(a, b []LaneEntry) ([]entity.Heat, PairStats) {
	n := min(len(a), len(b))
	stats := PairStats{DiscardedA: len(a) - n, DiscardedB: len(b) - n}

	heats := make([]entity.Heat, 0, n)
	explicit := n > 0
	for i := 0; i < n; i++ {
		no := a[i].Heat
		if no <= 0 {
			no = b[i].Heat
		}
		if no <= 0 {
			explicit = false
		}
		heats = append(heats, entity.Heat{Number: no, LaneA: a[i].Record, LaneB: b[i].Record})
	}

	if !explicit {
		for i := range heats {
			heats[i].Number = i + 1
		}
		return heats, stats
	}
	sort.SliceStable(heats, func(i, j int) bool { return heats[i].Number < heats[j].Number })
	return heats, stats
}
