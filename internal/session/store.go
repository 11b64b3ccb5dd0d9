package session

import (
	"strings"
	"sync"
)

// Store holds every active party keyed by its code.
//
// The map lock only guards membership. Each party carries its own mutex, and
// code that needs both always takes the party lock first.
type Store struct {
	parties map[string]*party
	mu      sync.RWMutex
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		parties: make(map[string]*party),
	}
}

// NormalizeCode upper-cases and trims a party code for lookup and storage.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// insert draws codes from next until one is free and stores the party built for it.
func (s *Store) insert(next func() string, build func(code string) *party) *party {
	s.mu.Lock()
	defer s.mu.Unlock()

	code := next()
	for {
		if _, taken := s.parties[code]; !taken {
			break
		}
		code = next()
	}
	p := build(code)
	s.parties[code] = p
	return p
}

func (s *Store) lookup(code string) (*party, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.parties[NormalizeCode(code)]
	return p, ok
}

// remove deletes code only while it still maps to p.
func (s *Store) remove(code string, p *party) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if current, ok := s.parties[code]; ok && current == p {
		delete(s.parties, code)
	}
}

func (s *Store) all() []*party {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*party, 0, len(s.parties))
	for _, p := range s.parties {
		out = append(out, p)
	}
	return out
}

// Len returns the number of stored parties.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.parties)
}
