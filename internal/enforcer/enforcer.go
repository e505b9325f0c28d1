package enforcer

import (
	"fmt"
	"log/slog"

	"tamer/internal/logging"
	"tamer/internal/procs"
	"tamer/internal/rules"
)

// Summary reports one enforcement pass.
type Summary struct {
	// Matched counts enumerated processes whose image name matched a rule.
	Matched int
	// Applied counts successful priority corrections.
	Applied int
	// AlreadyOK counts matches whose priority already equaled the target.
	AlreadyOK int
	// Skipped counts matches that could not be read or adjusted, typically
	// protected processes or processes that exited after the snapshot.
	Skipped int
}

// Enforcer drives matching processes toward their configured priority.
type Enforcer struct {
	table  procs.Table
	logger *slog.Logger
}

// New constructs an enforcer over the given process table.
func New(table procs.Table, logger *slog.Logger) *Enforcer {
	return &Enforcer{table: table, logger: logging.NewComponentLogger(logger, "enforcer")}
}

// Enforce runs one enforcement pass against one fresh enumeration snapshot.
//
// The snapshot is not refreshed mid-pass: processes started afterwards are
// picked up on the next pass. Multiple live processes sharing an image name
// are enforced independently. A rule matching no live process is a silent
// no-op, and a process matching no rule is left entirely untouched.
func (e *Enforcer) Enforce(ruleSet *rules.RuleSet) (Summary, error) {
	var summary Summary
	if ruleSet == nil || ruleSet.Len() == 0 {
		return summary, nil
	}

	snapshot, err := e.table.Snapshot()
	if err != nil {
		return summary, fmt.Errorf("enforce: %w", err)
	}

	for _, proc := range snapshot {
		target, ok := ruleSet.PriorityFor(proc.Name)
		if !ok {
			continue
		}
		summary.Matched++

		current, err := e.table.Priority(proc.PID)
		if err != nil {
			summary.Skipped++
			e.logger.Debug("skipping process",
				logging.Int("pid", proc.PID),
				logging.String("process", proc.Name),
				logging.Error(err))
			continue
		}
		if current == target {
			summary.AlreadyOK++
			continue
		}
		if err := e.table.SetPriority(proc.PID, target); err != nil {
			summary.Skipped++
			e.logger.Debug("unable to adjust process",
				logging.Int("pid", proc.PID),
				logging.String("process", proc.Name),
				logging.Int("target_nice", target),
				logging.Error(err))
			continue
		}
		summary.Applied++
		e.logger.Info("process priority tamed",
			logging.Int("pid", proc.PID),
			logging.String("process", proc.Name),
			logging.Int("previous_nice", current),
			logging.Int("target_nice", target))
	}

	return summary, nil
}
