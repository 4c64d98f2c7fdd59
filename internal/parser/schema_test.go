package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateResult(t *testing.T) {
	t.Run("well formed", func(t *testing.T) {
		require.NoError(t, ValidateResult(Parse(sampleFlat, Options{})))
	})

	t.Run("empty parse is still valid", func(t *testing.T) {
		require.NoError(t, ValidateResult(Parse("", Options{})))
	})

	t.Run("missing name needs review", func(t *testing.T) {
		res := Parse("wt 12 rd 13", Options{})
		require.Len(t, res.Heats, 1)
		assert.Error(t, ValidateResult(res))
	})

	t.Run("comma time needs review", func(t *testing.T) {
		res := Parse(sampleFlat, Options{})
		res.Heats[0].LaneA.RaceTime = "6:35,29"
		assert.Error(t, ValidateResult(res))
	})
}
