package parser

import (
	"fmt"

	"github.com/joseph-ayodele/heat-tracker/constants"
	"github.com/joseph-ayodele/heat-tracker/internal/entity"
)

// Options selects the segmentation strategy and placeholder language.
type Options struct {
	Strategy constants.Strategy
	Locale   Locale
}

// Diagnostics describes how a parse went; none of it is an error.
type Diagnostics struct {
	Strategy   constants.Strategy `json:"strategy" yaml:"strategy"`
	Segments   int                `json:"segments" yaml:"segments"`
	LaneA      int                `json:"lane_a" yaml:"lane_a"`
	LaneB      int                `json:"lane_b" yaml:"lane_b"`
	DiscardedA int                `json:"discarded_a" yaml:"discarded_a"`
	DiscardedB int                `json:"discarded_b" yaml:"discarded_b"`
}

// Discarded is the number of lane records that did not end up in a heat.
func (d Diagnostics) Discarded() int { return d.DiscardedA + d.DiscardedB }

// Result is everything a host needs from one parse.
type Result struct {
	Metadata    entity.Metadata `json:"metadata" yaml:"metadata"`
	Heats       []entity.Heat   `json:"heats" yaml:"heats"`
	Diagnostics Diagnostics     `json:"diagnostics" yaml:"diagnostics"`
}

// Parse turns extracted heat sheet text into metadata plus paired heats.
// It is pure and never fails; malformed input yields placeholders, empty
// fields or fewer heats.
func Parse(text string, opts Options) Result {
	seg := NewSegmenter(opts.Strategy)
	if opts.Locale == "" {
		opts.Locale = LocaleNL
	}

	res := Result{
		Metadata: ExtractMetadata(Normalize(text), opts.Locale),
		Heats:    []entity.Heat{},
	}

	segments := seg.Segments(seg.Normalize(text))
	var laneA, laneB []LaneEntry
	for _, s := range segments {
		e := LaneEntry{Record: ExtractLane(s.Text, seg.TimePolicy()), Heat: s.Heat}
		switch s.Lane {
		case constants.LaneA:
			laneA = append(laneA, e)
		case constants.LaneB:
			laneB = append(laneB, e)
		}
	}

	heats, stats := Pair(laneA, laneB)
	res.Heats = append(res.Heats, heats...)
	res.Diagnostics = Diagnostics{
		Strategy:   seg.Strategy(),
		Segments:   len(segments),
		LaneA:      len(laneA),
		LaneB:      len(laneB),
		DiscardedA: stats.DiscardedA,
		DiscardedB: stats.DiscardedB,
	}
	return res
}

// HeatList renders one label per heat for a heat picker.
func HeatList(heats []entity.Heat) []string {
	labels := make([]string, len(heats))
	for i, h := range heats {
		labels[i] = fmt.Sprintf("Rit %d  %s vs %s", h.Number, h.LaneA.Name, h.LaneB.Name)
	}
	return labels
}
