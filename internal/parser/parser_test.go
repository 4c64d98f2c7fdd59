package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/heat-tracker/constants"
	"github.com/joseph-ayodele/heat-tracker/internal/entity"
)

const sampleFlat = "wt 73 Sil van der Veen HA2 NED 6:35.29 6:35.29 rd 34 Sjoerd den Hertog HSB NED 6:19,60"

var (
	silVanDerVeen = entity.LaneRecord{
		Bib: "73", Name: "Sil van der Veen", Category: "HA2", Nation: "NED",
		PersonalRecord: "6:35.29", SeasonBest: "6:35.29",
	}
	sjoerdDenHertog = entity.LaneRecord{
		Bib: "34", Name: "Sjoerd den Hertog", Category: "HSB", Nation: "NED",
		PersonalRecord: "6:19.60",
	}
)

func TestParse_TolerantSample(t *testing.T) {
	res := Parse(sampleFlat, Options{Strategy: constants.StrategyTolerant})

	require.Len(t, res.Heats, 1)
	h := res.Heats[0]
	assert.Equal(t, 1, h.Number)
	assert.Equal(t, silVanDerVeen, h.LaneA)
	assert.Equal(t, sjoerdDenHertog, h.LaneB)
	assert.Equal(t, Diagnostics{Strategy: constants.StrategyTolerant, Segments: 2, LaneA: 1, LaneB: 1}, res.Diagnostics)
}

func TestParse_EmptyInput(t *testing.T) {
	for _, s := range []constants.Strategy{constants.StrategyStrict, constants.StrategyGlobal, constants.StrategyTolerant} {
		t.Run(string(s), func(t *testing.T) {
			res := Parse("", Options{Strategy: s})
			assert.Equal(t, entity.Metadata{Event: "Wedstrijd", Distance: "Afstand", Extras: ""}, res.Metadata)
			assert.NotNil(t, res.Heats)
			assert.Empty(t, res.Heats)
		})
	}
}

func TestParse_GlobalSample(t *testing.T) {
	res := Parse(sampleFlat, Options{Strategy: constants.StrategyGlobal})

	require.Len(t, res.Heats, 1)
	assert.Equal(t, silVanDerVeen, res.Heats[0].LaneA)
	assert.Equal(t, sjoerdDenHertog, res.Heats[0].LaneB)
}

func TestParse_GlobalRequiresTimes(t *testing.T) {
	// The wt entry has no time of its own, so the rigid pattern swallows the
	// rd entry into its name and the heat cannot be paired.
	res := Parse("wt 1 Foo Bar HSA NED rd 2 Baz Qux HSB GER 1:59.00", Options{Strategy: constants.StrategyGlobal})

	assert.Empty(t, res.Heats)
	assert.Equal(t, 1, res.Diagnostics.LaneA)
	assert.Equal(t, 0, res.Diagnostics.LaneB)
	assert.Equal(t, 1, res.Diagnostics.DiscardedA)
}

func TestParse_StrictBlocks(t *testing.T) {
	text := "World Cup Kwalificatie Toernooi\nMannen 5000m\n\n" +
		"1\nwt 73 Sil van der Veen HA2 NED 6:35.29 6:35.29\nrd 34 Sjoerd den Hertog HSB NED 6:19,60\n\n" +
		"3\nwt 5 Anna de Boer DA1 NED 4:10.00\nrd 6 Ida Berg DA2 NOR 4:12.50\n\n" +
		"2\nwt 1 Lonely Skater HSA NED 6:50.00\n\n" +
		"4\nwt 7 One HSA NED 6:00.00\nwt 8 Two HSA NED 6:01.00\nrd 9 Three HSA NED 6:02.00\n"

	res := Parse(text, Options{Strategy: constants.StrategyStrict})

	require.Len(t, res.Heats, 2)
	assert.Equal(t, 1, res.Heats[0].Number)
	assert.Equal(t, silVanDerVeen, res.Heats[0].LaneA)
	assert.Equal(t, sjoerdDenHertog, res.Heats[0].LaneB)
	assert.Equal(t, 3, res.Heats[1].Number)
	assert.Equal(t, "Anna de Boer", res.Heats[1].LaneA.Name)
	assert.Equal(t, "NOR", res.Heats[1].LaneB.Nation)
	assert.Equal(t, "4:12.50", res.Heats[1].LaneB.PersonalRecord)

	assert.Equal(t, "World Cup Kwalificatie Toernooi", res.Metadata.Event)
	assert.Equal(t, "Mannen 5000m", res.Metadata.Distance)
}

func TestParse_StrictSortsByPrintedNumber(t *testing.T) {
	text := "\n\n7\nwt 1 A A HSA NED 1:00.00\nrd 2 B B HSA NED 1:00.00\n\n" +
		"2\nwt 3 C C HSA NED 1:00.00\nrd 4 D D HSA NED 1:00.00\n"

	res := Parse(text, Options{Strategy: constants.StrategyStrict})

	require.Len(t, res.Heats, 2)
	assert.Equal(t, 2, res.Heats[0].Number)
	assert.Equal(t, "C C", res.Heats[0].LaneA.Name)
	assert.Equal(t, 7, res.Heats[1].Number)
}

func TestParse_WhitespaceTolerance(t *testing.T) {
	mangled := "  wt  73\tSil  van\nder   Veen HA2 NED\n\n6:35.29   6:35.29\r\n" +
		"rd 34\t\tSjoerd den Hertog HSB NED 6:19,60  "

	for _, s := range []constants.Strategy{constants.StrategyGlobal, constants.StrategyTolerant} {
		t.Run(string(s), func(t *testing.T) {
			res := Parse(mangled, Options{Strategy: s})
			require.Len(t, res.Heats, 1)
			assert.Equal(t, silVanDerVeen, res.Heats[0].LaneA)
			assert.Equal(t, sjoerdDenHertog, res.Heats[0].LaneB)
		})
	}
}

func TestParse_TolerantSurplusIsDiscarded(t *testing.T) {
	text := sampleFlat + " wt 12 Extra Skater HSA BEL 6:40.00 wt 13 Another One HSA BEL 6:41.00"

	res := Parse(text, Options{Strategy: constants.StrategyTolerant})

	assert.Len(t, res.Heats, 1)
	assert.Equal(t, 3, res.Diagnostics.LaneA)
	assert.Equal(t, 2, res.Diagnostics.DiscardedA)
	assert.Equal(t, 0, res.Diagnostics.DiscardedB)
	assert.Equal(t, 2, res.Diagnostics.Discarded())
}

func TestParse_TolerantMarkerBoundaries(t *testing.T) {
	// "rdx" and "Sjoerd" must not be taken as lane markers.
	text := "wt 1 Ann Bos HSA NED 1:00.00 rdx noise rd 2 Sjoerd Dam HSB GER 1:01.00"

	res := Parse(text, Options{Strategy: constants.StrategyTolerant})

	require.Len(t, res.Heats, 1)
	assert.Equal(t, "Ann Bos", res.Heats[0].LaneA.Name)
	assert.Equal(t, "1:00.00", res.Heats[0].LaneA.PersonalRecord)
	assert.Equal(t, "Sjoerd Dam", res.Heats[0].LaneB.Name)
	assert.Equal(t, 2, res.Diagnostics.Segments)
}

func TestParse_EnglishPlaceholders(t *testing.T) {
	res := Parse("nothing to see", Options{Locale: LocaleEN})
	assert.Equal(t, "Match", res.Metadata.Event)
	assert.Equal(t, "Distance", res.Metadata.Distance)
	assert.Equal(t, constants.StrategyTolerant, res.Diagnostics.Strategy)
}

func TestHeatList(t *testing.T) {
	res := Parse(sampleFlat, Options{})
	assert.Equal(t, []string{"Rit 1  Sil van der Veen vs Sjoerd den Hertog"}, HeatList(res.Heats))
	assert.Empty(t, HeatList(nil))
}
