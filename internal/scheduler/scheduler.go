// Package scheduler drives the daemon's fixed-delay enforcement loop.
//
// Each cycle refreshes the rule file through its digest gate and then runs
// one enforcement pass over the process table. The delay between cycles is
// measured from the end of one cycle to the start of the next, so a slow
// pass never causes overlapping passes.
package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"tamer/internal/enforcer"
	"tamer/internal/logging"
	"tamer/internal/metrics"
	"tamer/internal/rules"
)

// State describes whether the scheduler holds an enforceable rule set.
type State string

const (
	// StateIdle means no rule set has ever loaded; cycles only poll the file.
	StateIdle State = "idle"
	// StateReady means a rule set is active and every cycle enforces it.
	StateReady State = "ready"
)

// Status is a snapshot of the loop for status reporting.
type Status struct {
	State       State
	RulesPath   string
	Digest      uint32
	RuleCount   int
	Interval    time.Duration
	Cycles      uint64
	LastCycle   time.Time
	LastReload  time.Time
	LastSummary enforcer.Summary
	LastError   string
}

// Scheduler alternates rule refresh and enforcement at the configured
// interval until its context is cancelled.
type Scheduler struct {
	store     *rules.Store
	enforcer  *enforcer.Enforcer
	collector *metrics.Collector
	logger    *slog.Logger

	// cycleMu serializes whole cycles so an operator triggered pass never
	// overlaps the loop's own refresh and enforcement.
	cycleMu sync.Mutex

	mu     sync.Mutex
	status Status
}

// New constructs a scheduler. The collector may be nil when metrics are not
// exposed.
func New(store *rules.Store, enf *enforcer.Enforcer, collector *metrics.Collector, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		store:     store,
		enforcer:  enf,
		collector: collector,
		logger:    logging.NewComponentLogger(logger, "scheduler"),
		status: Status{
			State:     StateIdle,
			RulesPath: store.Path(),
			Interval:  rules.DefaultInterval,
		},
	}
}

// Run executes cycles until ctx is cancelled. Cancellation is honored at
// cycle boundaries: a cycle already in flight finishes before Run returns.
func (s *Scheduler) Run(ctx context.Context) error {
	s.logger.Info("scheduler started", logging.String("rules_file", s.store.Path()))
	for {
		if err := ctx.Err(); err != nil {
			s.logger.Info("scheduler stopped")
			return nil
		}
		s.RunCycle()
		s.waitNextCycle(ctx)
	}
}

// RunCycle performs one refresh-then-enforce pass and returns the resulting
// loop status. Cycles are serialized: an operator triggered pass that
// arrives while the loop's own cycle is in flight waits for it to finish.
func (s *Scheduler) RunCycle() Status {
	s.cycleMu.Lock()
	defer s.cycleMu.Unlock()

	refresh, refreshErr := s.store.Refresh()
	if refreshErr != nil {
		if s.collector != nil {
			s.collector.RecordReloadError()
		}
		s.logger.Warn("rule refresh failed, keeping previous rules",
			logging.String("rules_file", s.store.Path()),
			logging.Error(refreshErr))
	} else if refresh.Outcome == rules.OutcomeReloaded {
		if s.collector != nil {
			s.collector.RecordReload(refresh.RuleCount)
		}
		s.logger.Info("rule set reloaded",
			logging.String("rules_file", s.store.Path()),
			logging.Uint64("digest", uint64(s.store.Digest())),
			logging.Int("rules", refresh.RuleCount))
	}

	current := s.store.Current()

	var summary enforcer.Summary
	var enforceErr error
	if current != nil {
		summary, enforceErr = s.enforcer.Enforce(current)
		if enforceErr != nil {
			s.logger.Warn("enforcement pass failed", logging.Error(enforceErr))
		}
	}
	if s.collector != nil {
		s.collector.RecordCycle(summary.Applied, summary.Skipped)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.status.Cycles++
	s.status.LastCycle = time.Now()
	s.status.LastSummary = summary
	s.status.LastError = ""
	switch {
	case refreshErr != nil:
		s.status.LastError = refreshErr.Error()
	case enforceErr != nil:
		s.status.LastError = enforceErr.Error()
	}
	if current != nil {
		s.status.State = StateReady
		s.status.Digest = current.Digest
		s.status.RuleCount = current.Len()
		s.status.Interval = current.Interval
		if refreshErr == nil && refresh.Outcome == rules.OutcomeReloaded {
			s.status.LastReload = s.status.LastCycle
		}
	}
	return s.status
}

// Status returns the most recent loop snapshot.
func (s *Scheduler) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *Scheduler) interval() time.Duration {
	if current := s.store.Current(); current != nil && current.Interval > 0 {
		return current.Interval
	}
	return rules.DefaultInterval
}

func (s *Scheduler) waitNextCycle(ctx context.Context) {
	select {
	case <-ctx.Done():
		return
	case <-time.After(s.interval()):
	}
}
