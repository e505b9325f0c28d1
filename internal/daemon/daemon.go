package daemon

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"sync/atomic"

	"log/slog"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"tamer/internal/config"
	"tamer/internal/logging"
	"tamer/internal/rules"
	"tamer/internal/scheduler"
)

// Daemon coordinates the enforcement loop and enforces single-instance
// execution via a file lock.
type Daemon struct {
	cfg       *config.Config
	logger    *slog.Logger
	store     *rules.Store
	scheduler *scheduler.Scheduler
	sessionID string

	logPath  string
	lockPath string
	lock     *flock.Flock

	metricsServer *metricsServer

	running atomic.Bool
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// Status represents daemon runtime information.
type Status struct {
	Running      bool
	PID          int
	SessionID    string
	RulesPath    string
	LockFilePath string
	LogFilePath  string
	Scheduler    scheduler.Status
}

// New constructs a daemon with initialized dependencies.
func New(cfg *config.Config, store *rules.Store, sched *scheduler.Scheduler, logger *slog.Logger) (*Daemon, error) {
	if cfg == nil || store == nil || sched == nil || logger == nil {
		return nil, errors.New("daemon requires config, rule store, scheduler, and logger")
	}

	lockPath := cfg.LockPath()
	return &Daemon{
		cfg:       cfg,
		logger:    logger,
		store:     store,
		scheduler: sched,
		sessionID: uuid.NewString(),
		logPath:   cfg.LogFilePath(),
		lockPath:  lockPath,
		lock:      flock.New(lockPath),
	}, nil
}

// SetMetricsCollector enables the metrics endpoint when the configuration
// carries a bind address. Must be called before Start.
func (d *Daemon) SetMetricsCollector(c metricsHandlerProvider) {
	d.metricsServer = newMetricsServer(d.cfg, c, d.logger)
}

// Start acquires the daemon lock and launches the enforcement loop.
func (d *Daemon) Start(ctx context.Context) error {
	if d.running.Load() {
		return errors.New("daemon already running")
	}

	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another tamer daemon instance is already running")
	}

	d.ctx, d.cancel = context.WithCancel(ctx)

	if err := d.metricsServer.start(d.ctx); err != nil {
		_ = d.lock.Unlock()
		d.cancel()
		d.ctx = nil
		d.cancel = nil
		return err
	}

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		_ = d.scheduler.Run(d.ctx)
	}()

	d.running.Store(true)
	d.logger.Info("tamer daemon started",
		logging.String(logging.FieldSessionID, d.sessionID),
		logging.String("lock", d.lockPath),
		logging.String("rules_file", d.store.Path()))
	return nil
}

// Stop halts the enforcement loop and releases the daemon lock. A cycle in
// flight completes before Stop returns.
func (d *Daemon) Stop() {
	if !d.running.Load() {
		return
	}

	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.wg.Wait()
	if err := d.lock.Unlock(); err != nil {
		d.logger.Warn("failed to release daemon lock", logging.Error(err))
	}
	d.ctx = nil
	d.running.Store(false)
	d.logger.Info("tamer daemon stopped")
}

// Close releases resources held by the daemon.
func (d *Daemon) Close() error {
	d.Stop()
	return nil
}

// Status reports the daemon and loop state.
func (d *Daemon) Status() Status {
	return Status{
		Running:      d.running.Load(),
		PID:          os.Getpid(),
		SessionID:    d.sessionID,
		RulesPath:    d.store.Path(),
		LockFilePath: d.lockPath,
		LogFilePath:  d.logPath,
		Scheduler:    d.scheduler.Status(),
	}
}

// RunCycle triggers one immediate refresh-and-enforce pass, independent of
// the loop's sleep. Used for operator reload and enforce commands.
func (d *Daemon) RunCycle() scheduler.Status {
	return d.scheduler.RunCycle()
}

// CurrentRules returns the active rule set, or nil before the first
// successful load.
func (d *Daemon) CurrentRules() *rules.RuleSet {
	return d.store.Current()
}

// LogPath reports the daemon log file location.
func (d *Daemon) LogPath() string {
	return d.logPath
}
