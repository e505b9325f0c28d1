package daemon_test

import (
	"context"
	"testing"
	"time"

	"tamer/internal/daemon"
	"tamer/internal/enforcer"
	"tamer/internal/logging"
	"tamer/internal/procs"
	"tamer/internal/rules"
	"tamer/internal/scheduler"
	"tamer/internal/testsupport"
)

func newDaemon(t *testing.T, table *testsupport.FakeTable) *daemon.Daemon {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	testsupport.WriteRules(t, cfg, `
[Service]
Interval=20

[Processes]
Process1_Name=ffmpeg
Process1_Prio=19
`)
	rulesPath, err := cfg.RulesPath()
	if err != nil {
		t.Fatalf("RulesPath: %v", err)
	}
	store := rules.NewStore(rulesPath)
	enf := enforcer.New(table, logging.NewNop())
	sched := scheduler.New(store, enf, nil, logging.NewNop())
	d, err := daemon.New(cfg, store, sched, logging.NewNop())
	if err != nil {
		t.Fatalf("daemon.New: %v", err)
	}
	t.Cleanup(func() { d.Close() })
	return d
}

func TestDaemonStartEnforcesAndStops(t *testing.T) {
	table := testsupport.NewFakeTable(procs.Process{PID: 100, Name: "ffmpeg"})
	d := newDaemon(t, table)

	if err := d.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}

	deadline := time.After(5 * time.Second)
	for d.Status().Scheduler.Cycles == 0 {
		select {
		case <-deadline:
			t.Fatal("timed out waiting for a cycle")
		case <-time.After(5 * time.Millisecond):
		}
	}

	status := d.Status()
	if !status.Running || status.PID <= 0 || status.SessionID == "" {
		t.Fatalf("unexpected status: %+v", status)
	}
	if status.Scheduler.State != scheduler.StateReady {
		t.Fatalf("scheduler state = %q, want ready", status.Scheduler.State)
	}
	if got := table.CurrentPriority(100); got != 19 {
		t.Fatalf("ffmpeg nice = %d, want 19", got)
	}

	d.Stop()
	if d.Status().Running {
		t.Fatal("daemon still reported running after Stop")
	}
}

func TestDaemonRejectsSecondStart(t *testing.T) {
	table := testsupport.NewFakeTable()
	d := newDaemon(t, table)

	if err := d.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := d.Start(context.Background()); err == nil {
		t.Fatal("expected second Start to fail")
	}
	d.Stop()
}

func TestDaemonRunCycleOnDemand(t *testing.T) {
	table := testsupport.NewFakeTable(procs.Process{PID: 100, Name: "ffmpeg"})
	d := newDaemon(t, table)

	status := d.RunCycle()
	if status.LastSummary.Applied != 1 {
		t.Fatalf("unexpected summary: %+v", status.LastSummary)
	}
	if current := d.CurrentRules(); current == nil || current.Len() != 1 {
		t.Fatalf("unexpected current rules: %+v", current)
	}
}

func TestDaemonStopIsIdempotent(t *testing.T) {
	d := newDaemon(t, testsupport.NewFakeTable())
	d.Stop()
	d.Stop()
}
