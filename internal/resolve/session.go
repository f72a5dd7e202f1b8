package resolve

import "sync"

// Session hands out run generations so that results from a stale pipeline
// run can be discarded instead of overwriting newer data. A run begun later
// always invalidates every run begun before it.
type Session struct {
	mu      sync.Mutex
	current uint64
}

// Begin marks the start of a new run and returns its generation token.
func (s *Session) Begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current++
	return s.current
}

// Current reports whether the given generation is still the latest. Callers
// check this before committing a run's results.
func (s *Session) Current(generation uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return generation == s.current
}
