package main

import (
	"strings"
	"testing"
	"time"

	"tamer/internal/ipc"
)

func TestRenderStatusLinePlain(t *testing.T) {
	line := renderStatusLine("Daemon", statusOK, "Running (pid 42)", false)
	if !strings.Contains(line, "Daemon:") || !strings.Contains(line, "[OK] Running (pid 42)") {
		t.Fatalf("unexpected line: %q", line)
	}
	if strings.Contains(line, "\x1b[") {
		t.Fatalf("plain render should not contain ANSI codes: %q", line)
	}
}

func TestRenderStatusLineColorized(t *testing.T) {
	line := renderStatusLine("Daemon", statusError, "boom", true)
	if !strings.HasPrefix(line, ansiRed) || !strings.HasSuffix(line, ansiReset) {
		t.Fatalf("expected red wrapping: %q", line)
	}
}

func TestRenderSectionHeaderTitleCases(t *testing.T) {
	lines := renderSectionHeader("enforcement loop", false)
	if len(lines) != 2 {
		t.Fatalf("expected header and rule, got %d lines", len(lines))
	}
	if lines[0] != "== Enforcement Loop ==" {
		t.Fatalf("unexpected header: %q", lines[0])
	}
	if len(lines[1]) != len(lines[0]) {
		t.Fatalf("rule length mismatch: %q vs %q", lines[0], lines[1])
	}
}

func TestSchedulerStatusLines(t *testing.T) {
	status := ipc.SchedulerStatus{
		State:          "ready",
		Digest:         0xCBF43926,
		RuleCount:      2,
		IntervalMillis: 10000,
		Cycles:         7,
		LastCycle:      time.Now(),
		Matched:        3,
		Applied:        1,
		AlreadyOK:      2,
	}
	joined := strings.Join(schedulerStatusLines(status, false), "\n")
	for _, want := range []string{"2 rule(s)", "digest cbf43926", "10s", "7", "matched 3, applied 1, already ok 2, skipped 0"} {
		if !strings.Contains(joined, want) {
			t.Fatalf("missing %q in:\n%s", want, joined)
		}
	}

	idle := ipc.SchedulerStatus{State: "idle", IntervalMillis: 10000, LastError: "read rules: no such file"}
	joined = strings.Join(schedulerStatusLines(idle, false), "\n")
	if !strings.Contains(joined, "No valid rule set loaded") || !strings.Contains(joined, "no such file") {
		t.Fatalf("unexpected idle output:\n%s", joined)
	}
}
