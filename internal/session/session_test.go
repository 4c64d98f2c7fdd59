package session

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/heat-tracker/internal/entity"
)

func heats(n int) []entity.Heat {
	out := make([]entity.Heat, n)
	for i := range out {
		out[i] = entity.Heat{Number: i + 1}
	}
	return out
}

func TestSession_Empty(t *testing.T) {
	s := New()
	s.Advance(1)
	s.Advance(-1)
	assert.False(t, s.Select(1))

	st := s.Snapshot()
	assert.False(t, st.Loaded())
	assert.Equal(t, -1, st.Index)
	_, ok := s.Current()
	assert.False(t, ok)
}

func TestSession_LoadResetsIndex(t *testing.T) {
	s := New()
	require.True(t, s.Load(s.Begin(), heats(3), entity.Metadata{Event: "E", Distance: "D"}))
	s.Advance(2)

	require.True(t, s.Load(s.Begin(), heats(5), entity.Metadata{Event: "F", Distance: "D"}))
	st := s.Snapshot()
	assert.Equal(t, 0, st.Index)
	assert.Len(t, st.Heats, 5)
	assert.Equal(t, "F", st.Metadata.Event)

	require.True(t, s.Load(s.Begin(), nil, entity.Metadata{}))
	assert.Equal(t, -1, s.Snapshot().Index)
}

func TestSession_AdvanceWraps(t *testing.T) {
	for _, n := range []int{1, 2, 7} {
		s := New()
		require.True(t, s.Load(s.Begin(), heats(n), entity.Metadata{}))
		for i := 0; i < n; i++ {
			s.Advance(+1)
		}
		assert.Equal(t, 0, s.Snapshot().Index, "n=%d", n)

		s.Advance(-1)
		assert.Equal(t, n-1, s.Snapshot().Index, "n=%d", n)
	}
}

func TestSession_AdvanceLargeDelta(t *testing.T) {
	s := New()
	require.True(t, s.Load(s.Begin(), heats(3), entity.Metadata{}))
	s.Advance(-7)
	assert.Equal(t, 2, s.Snapshot().Index)
	s.Advance(10)
	assert.Equal(t, 0, s.Snapshot().Index)
}

func TestSession_Select(t *testing.T) {
	s := New()
	hs := []entity.Heat{{Number: 4}, {Number: 9}, {Number: 12}}
	require.True(t, s.Load(s.Begin(), hs, entity.Metadata{}))

	assert.True(t, s.Select(12))
	h, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, 12, h.Number)

	assert.False(t, s.Select(5))
	assert.Equal(t, 2, s.Snapshot().Index)
}

func TestSession_StaleLoadIsDiscarded(t *testing.T) {
	s := New()
	older := s.Begin()
	newer := s.Begin()

	require.True(t, s.Load(newer, heats(2), entity.Metadata{Event: "new"}))
	assert.False(t, s.Load(older, heats(9), entity.Metadata{Event: "old"}))

	st := s.Snapshot()
	assert.Equal(t, "new", st.Metadata.Event)
	assert.Len(t, st.Heats, 2)
}

func TestSession_IsCurrent(t *testing.T) {
	s := New()
	older := s.Begin()
	assert.True(t, s.IsCurrent(older))

	newer := s.Begin()
	assert.False(t, s.IsCurrent(older))
	assert.True(t, s.IsCurrent(newer))
}

func TestSession_FailedLoadKeepsState(t *testing.T) {
	s := New()
	require.True(t, s.Load(s.Begin(), heats(2), entity.Metadata{Event: "kept"}))
	s.Advance(1)

	_ = s.Begin() // submission that fails and never calls Load

	st := s.Snapshot()
	assert.Equal(t, "kept", st.Metadata.Event)
	assert.Equal(t, 1, st.Index)
}

func TestSession_ConcurrentLoadsLastSubmittedWins(t *testing.T) {
	s := New()
	tickets := make([]Ticket, 20)
	for i := range tickets {
		tickets[i] = s.Begin()
	}

	var wg sync.WaitGroup
	for i, tk := range tickets {
		wg.Add(1)
		go func(i int, tk Ticket) {
			defer wg.Done()
			s.Load(tk, heats(i+1), entity.Metadata{})
			s.Advance(1)
		}(i, tk)
	}
	wg.Wait()

	assert.Len(t, s.Snapshot().Heats, len(tickets))
}

func TestState_SnapshotIsACopy(t *testing.T) {
	s := New()
	require.True(t, s.Load(s.Begin(), heats(2), entity.Metadata{}))
	st := s.Snapshot()
	st.Heats[0].Number = 99

	h, _ := s.Current()
	assert.Equal(t, 1, h.Number)
}
