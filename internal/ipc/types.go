package ipc

import "time"

// Rule is the wire representation of one priority rule.
type Rule struct {
	ProcessName string `json:"process_name"`
	Nice        int    `json:"nice"`
}

// SchedulerStatus mirrors the enforcement loop state for status output.
type SchedulerStatus struct {
	State          string    `json:"state"`
	Digest         uint32    `json:"digest"`
	RuleCount      int       `json:"rule_count"`
	IntervalMillis int64     `json:"interval_millis"`
	Cycles         uint64    `json:"cycles"`
	LastCycle      time.Time `json:"last_cycle"`
	LastReload     time.Time `json:"last_reload"`
	Matched        int       `json:"matched"`
	Applied        int       `json:"applied"`
	AlreadyOK      int       `json:"already_ok"`
	Skipped        int       `json:"skipped"`
	LastError      string    `json:"last_error"`
}

// StatusRequest fetches daemon status.
type StatusRequest struct{}

// StatusResponse represents combined daemon and loop status information.
type StatusResponse struct {
	Running   bool            `json:"running"`
	PID       int             `json:"pid"`
	SessionID string          `json:"session_id"`
	RulesPath string          `json:"rules_path"`
	LockPath  string          `json:"lock_path"`
	LogPath   string          `json:"log_path"`
	Scheduler SchedulerStatus `json:"scheduler"`
}

// RulesRequest fetches the active rule set.
type RulesRequest struct{}

// RulesResponse carries the active rule set, if one has loaded.
type RulesResponse struct {
	Loaded         bool   `json:"loaded"`
	RulesPath      string `json:"rules_path"`
	Digest         uint32 `json:"digest"`
	DisplayName    string `json:"display_name"`
	Description    string `json:"description"`
	IntervalMillis int64  `json:"interval_millis"`
	Rules          []Rule `json:"rules"`
}

// ReloadRequest triggers an immediate rule refresh plus enforcement pass.
type ReloadRequest struct{}

// ReloadResponse reports the loop state after the forced pass.
type ReloadResponse struct {
	Scheduler SchedulerStatus `json:"scheduler"`
}

// CycleRequest triggers an immediate enforcement pass.
type CycleRequest struct{}

// CycleResponse reports the loop state after the forced pass.
type CycleResponse struct {
	Scheduler SchedulerStatus `json:"scheduler"`
}

// LogTailRequest reads daemon log lines from an offset. A negative offset
// requests the last Limit lines.
type LogTailRequest struct {
	Offset     int64 `json:"offset"`
	Limit      int   `json:"limit"`
	Follow     bool  `json:"follow"`
	WaitMillis int64 `json:"wait_millis"`
}

// LogTailResponse carries log lines and the offset to resume from.
type LogTailResponse struct {
	Lines  []string `json:"lines"`
	Offset int64    `json:"offset"`
}

// StopRequest stops the enforcement loop.
type StopRequest struct{}

// StopResponse indicates stop result.
type StopResponse struct {
	Stopped bool `json:"stopped"`
}
