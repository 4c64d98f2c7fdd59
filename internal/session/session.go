// Package session holds the navigable state of one loaded heat sheet.
//
// A session is either empty or loaded with heats and a current index.
// Loads replace everything at once and only the most recently submitted
// load may land; navigation wraps around the heat count.
package session

import (
	"sync"

	"github.com/joseph-ayodele/heat-tracker/internal/entity"
)

// Ticket identifies one submitted load.
type Ticket uint64

// State is a copy of the session at one instant.
type State struct {
	Heats    []entity.Heat
	Metadata entity.Metadata
	Index    int // -1 when empty
}

// Loaded reports whether there is at least one heat to show.
func (s State) Loaded() bool { return len(s.Heats) > 0 }

// Current returns the heat at Index.
func (s State) Current() (entity.Heat, bool) {
	if !s.Loaded() {
		return entity.Heat{}, false
	}
	return s.Heats[s.Index], true
}

type Session struct {
	mu        sync.Mutex
	heats     []entity.Heat
	meta      entity.Metadata
	idx       int
	submitted Ticket
}

func New() *Session {
	return &Session{idx: -1}
}

// Begin registers a new load and invalidates every earlier ticket.
func (s *Session) Begin() Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.submitted++
	return s.submitted
}

// IsCurrent reports whether t is the most recent ticket handed out by Begin.
func (s *Session) IsCurrent(t Ticket) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return t == s.submitted
}

// Load replaces heats and metadata if t is still the latest ticket.
// It returns false for a stale ticket and leaves the state untouched.
func (s *Session) Load(t Ticket, heats []entity.Heat, meta entity.Metadata) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t != s.submitted {
		return false
	}
	s.heats = append([]entity.Heat(nil), heats...)
	s.meta = meta
	s.idx = -1
	if len(s.heats) > 0 {
		s.idx = 0
	}
	return true
}

// Advance moves the current index by delta, wrapping modulo the heat count.
func (s *Session) Advance(delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.heats)
	if n == 0 {
		return
	}
	s.idx = ((s.idx+delta)%n + n) % n
}

// Select jumps to the heat with the given number. Unknown numbers are a no-op.
func (s *Session) Select(number int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, h := range s.heats {
		if h.Number == number {
			s.idx = i
			return true
		}
	}
	return false
}

func (s *Session) Current() (entity.Heat, bool) {
	return s.Snapshot().Current()
}

func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{
		Heats:    append([]entity.Heat(nil), s.heats...),
		Metadata: s.meta,
		Index:    s.idx,
	}
}
