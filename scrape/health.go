package scrape

// SourceHealth remembers, per network origin, whether the server turned out
// to have a scraper for URLs at that origin. State is scoped to one
// orchestration run and never persisted.
//
// The asymmetry between the two sets matters: "missing" means the server has
// no scraper registered for the origin at all, so further attempts are
// pointless this run. An empty-but-present payload marks the origin working,
// because the scraper exists and may find data for other URLs.
type SourceHealth struct {
	working map[string]struct{}
	missing map[string]struct{}
}

// NewSourceHealth creates an empty tracker.
func NewSourceHealth() *SourceHealth {
	return &SourceHealth{
		working: make(map[string]struct{}),
		missing: make(map[string]struct{}),
	}
}

// ShouldAttempt reports whether a scrape should be attempted for the origin.
// Unknown origins are attempted by default; only a confirmed miss suppresses.
func (s *SourceHealth) ShouldAttempt(origin string) bool {
	if _, ok := s.working[origin]; ok {
		return true
	}
	_, miss := s.missing[origin]
	return !miss
}

// RecordOutcome records the result of a scrape attempt at the origin.
// gotResult is false only when the server returned no result object at all.
func (s *SourceHealth) RecordOutcome(origin string, gotResult bool) {
	if gotResult {
		s.working[origin] = struct{}{}
		return
	}
	s.missing[origin] = struct{}{}
}
