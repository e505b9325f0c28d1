// Package daemonrun boots the daemon runtime: logging, rule store, process
// table, scheduler, IPC, and metrics, then blocks until shutdown.
package daemonrun

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"tamer/internal/config"
	"tamer/internal/daemon"
	"tamer/internal/enforcer"
	"tamer/internal/ipc"
	"tamer/internal/logging"
	"tamer/internal/metrics"
	"tamer/internal/procs"
	"tamer/internal/rules"
	"tamer/internal/scheduler"
)

// Options configures daemon process runtime behavior.
type Options struct {
	LogLevel   string
	SocketPath string
}

// Run starts the tamer daemon runtime loop. It returns once the context is
// cancelled or a termination signal arrives.
func Run(cmdCtx context.Context, cfg *config.Config, opts Options) error {
	if cfg == nil {
		return fmt.Errorf("config is required")
	}

	signalCtx, cancel := signal.NotifyContext(cmdCtx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := cfg.EnsureDirectories(); err != nil {
		return fmt.Errorf("prepare directories: %w", err)
	}

	level := opts.LogLevel
	if level == "" {
		level = cfg.Logging.Level
	}
	logger, err := logging.New(logging.Options{
		Level:       level,
		Format:      cfg.Logging.Format,
		OutputPaths: []string{"stdout", cfg.LogFilePath()},
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	pidPath := cfg.PIDFilePath()
	if err := writePIDFile(pidPath); err != nil {
		return fmt.Errorf("write pid file: %w", err)
	}
	defer os.Remove(pidPath)

	rulesPath, err := cfg.RulesPath()
	if err != nil {
		return fmt.Errorf("resolve rules path: %w", err)
	}

	store := rules.NewStore(rulesPath)
	collector := metrics.NewCollector(nil)
	enf := enforcer.New(procs.System(), logger)
	sched := scheduler.New(store, enf, collector, logger)

	d, err := daemon.New(cfg, store, sched, logger)
	if err != nil {
		return fmt.Errorf("create daemon: %w", err)
	}
	defer d.Close()
	d.SetMetricsCollector(collector)

	socketPath := opts.SocketPath
	if socketPath == "" {
		socketPath = cfg.SocketPath()
	}
	ipcServer, err := ipc.NewServer(signalCtx, socketPath, d, logger)
	if err != nil {
		return fmt.Errorf("start IPC server: %w", err)
	}
	defer ipcServer.Close()
	ipcServer.Serve()

	if err := d.Start(signalCtx); err != nil {
		logger.Error("daemon start failed",
			logging.Error(err),
			logging.String(logging.FieldEventType, "daemon_start_failed"),
			logging.String(logging.FieldErrorHint, "check that no other tamer daemon holds the lock"))
		return err
	}

	<-signalCtx.Done()
	logger.Info("tamer daemon shutting down")
	return nil
}

func writePIDFile(path string) error {
	if path == "" {
		return nil
	}
	value := strconv.Itoa(os.Getpid()) + "\n"
	return os.WriteFile(path, []byte(value), 0o644)
}
