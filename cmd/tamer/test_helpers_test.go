package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"tamer/internal/config"
	"tamer/internal/daemon"
	"tamer/internal/enforcer"
	"tamer/internal/ipc"
	"tamer/internal/logging"
	"tamer/internal/procs"
	"tamer/internal/rules"
	"tamer/internal/scheduler"
	"tamer/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	table      *testsupport.FakeTable
	daemon     *daemon.Daemon
	server     *ipc.Server
	socketPath string
	configPath string
	rulesPath  string
	cancel     context.CancelFunc
}

func setupCLITestEnv(t *testing.T, processes ...procs.Process) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Paths.RulesFile = filepath.Join(base, "rules.ini")
	cfg := &cfgVal

	configPath := filepath.Join(base, "config.toml")
	writeTestConfig(t, configPath, cfg)

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}
	writeRuleFile(t, cfg.Paths.RulesFile, `
[Service]
DisplayName=Process Tamer
Interval=60000

[Processes]
Process1_Name=ffmpeg
Process1_Prio=19
`)

	logger := logging.NewNop()
	table := testsupport.NewFakeTable(processes...)
	store := rules.NewStore(cfg.Paths.RulesFile)
	sched := scheduler.New(store, enforcer.New(table, logger), nil, logger)
	d, err := daemon.New(cfg, store, sched, logger)
	if err != nil {
		t.Fatalf("daemon.New: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	socketPath := filepath.Join(cfg.Paths.LogDir, "tamerd.sock")
	server, err := ipc.NewServer(ctx, socketPath, d, logger)
	if err != nil {
		cancel()
		if strings.Contains(err.Error(), "operation not permitted") {
			t.Skipf("skipping CLI IPC test: %v", err)
		}
		t.Fatalf("ipc.NewServer: %v", err)
	}
	server.Serve()
	time.Sleep(50 * time.Millisecond)

	env := &cliTestEnv{
		cfg:        cfg,
		table:      table,
		daemon:     d,
		server:     server,
		socketPath: socketPath,
		configPath: configPath,
		rulesPath:  cfg.Paths.RulesFile,
		cancel:     cancel,
	}
	t.Cleanup(func() {
		env.server.Close()
		env.daemon.Close()
		env.cancel()
	})
	return env
}

func runCLI(t *testing.T, args []string, socket, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	flags := []string{"--socket", socket}
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	content := fmt.Sprintf(
		"[paths]\nlog_dir = %q\nrules_file = %q\n",
		cfg.Paths.LogDir,
		cfg.Paths.RulesFile,
	)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write test config: %v", err)
	}
}

func writeRuleFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write rule file: %v", err)
	}
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
