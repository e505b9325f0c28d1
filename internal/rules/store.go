package rules

import (
	"sync/atomic"
)

// Outcome classifies what a successful Refresh did.
type Outcome int

const (
	// OutcomeUnchanged means the file digest matched the active snapshot, so
	// no reparse happened and the active snapshot is untouched.
	OutcomeUnchanged Outcome = iota
	// OutcomeReloaded means a new snapshot was parsed and swapped in.
	OutcomeReloaded
)

// Refresh reports the result of one Store.Refresh call.
type Refresh struct {
	Outcome   Outcome
	RuleCount int
}

// Store owns the active rule set snapshot. Refresh is all-or-nothing: a new
// snapshot replaces the old one only after a digest change and a successful
// parse. Readers always observe one fully formed snapshot via Current.
//
// Refresh is not safe for concurrent use; the scheduler serializes cycles
// so only one Refresh runs at a time. Current may be called concurrently
// from IPC handlers, hence the atomic pointer.
type Store struct {
	path    string
	current atomic.Pointer[RuleSet]
}

// NewStore creates a store reading rule file content from path. No file
// access happens until the first Refresh.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the rule file location the store reads from.
func (s *Store) Path() string { return s.path }

// Current returns the active snapshot, or nil before the first successful
// Refresh.
func (s *Store) Current() *RuleSet {
	return s.current.Load()
}

// Digest returns the active snapshot's content digest, or zero when no
// snapshot is loaded.
func (s *Store) Digest() uint32 {
	if rs := s.current.Load(); rs != nil {
		return rs.Digest
	}
	return 0
}

// Refresh re-reads the rule file when its content changed.
//
// When the file is unreadable or empty the previous snapshot stays active
// and the read error is returned: stale-but-valid data beats no data. When
// the digest matches the active snapshot the call is a no-op and no reparse
// happens. When the digest changed, the file is reparsed; on success the new
// snapshot is swapped in atomically, on parse failure (ErrNoRules) the
// previous snapshot and digest stay untouched so the next cycle retries.
func (s *Store) Refresh() (Refresh, error) {
	digest, data, err := FileChecksum(s.path)
	if err != nil {
		return Refresh{}, err
	}

	if active := s.current.Load(); active != nil && active.Digest == digest {
		return Refresh{Outcome: OutcomeUnchanged, RuleCount: active.Len()}, nil
	}

	ruleSet, err := Parse(data, digest)
	if err != nil {
		return Refresh{}, err
	}

	s.current.Store(ruleSet)
	return Refresh{Outcome: OutcomeReloaded, RuleCount: ruleSet.Len()}, nil
}
