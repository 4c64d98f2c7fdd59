package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/heat-tracker/internal/entity"
)

func entries(names ...string) []LaneEntry {
	out := make([]LaneEntry, len(names))
	for i, n := range names {
		out[i] = LaneEntry{Record: entity.LaneRecord{Name: n}}
	}
	return out
}

func TestPair_Positional(t *testing.T) {
	heats, stats := Pair(entries("a1", "a2", "a3"), entries("b1", "b2"))

	require.Len(t, heats, 2)
	assert.Equal(t, 1, heats[0].Number)
	assert.Equal(t, "a1", heats[0].LaneA.Name)
	assert.Equal(t, "b1", heats[0].LaneB.Name)
	assert.Equal(t, 2, heats[1].Number)
	assert.Equal(t, PairStats{DiscardedA: 1}, stats)
}

func TestPair_NeverExceedsShorterSide(t *testing.T) {
	for a := 0; a < 4; a++ {
		for b := 0; b < 4; b++ {
			heats, stats := Pair(entries(make([]string, a)...), entries(make([]string, b)...))
			assert.Len(t, heats, min(a, b))
			assert.Equal(t, a-min(a, b), stats.DiscardedA)
			assert.Equal(t, b-min(a, b), stats.DiscardedB)
		}
	}
}

func TestPair_ExplicitNumbersAreSorted(t *testing.T) {
	a := []LaneEntry{{Record: entity.LaneRecord{Name: "x"}, Heat: 9}, {Record: entity.LaneRecord{Name: "y"}, Heat: 4}}
	b := []LaneEntry{{Heat: 9}, {Heat: 4}}

	heats, _ := Pair(a, b)

	require.Len(t, heats, 2)
	assert.Equal(t, 4, heats[0].Number)
	assert.Equal(t, "y", heats[0].LaneA.Name)
	assert.Equal(t, 9, heats[1].Number)
}

func TestPair_PartialNumbersFallBackToOrder(t *testing.T) {
	a := []LaneEntry{{Heat: 9}, {}}
	b := []LaneEntry{{Heat: 9}, {}}

	heats, _ := Pair(a, b)

	require.Len(t, heats, 2)
	assert.Equal(t, 1, heats[0].Number)
	assert.Equal(t, 2, heats[1].Number)
}
