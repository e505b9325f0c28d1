package ipc

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"os"
	"sync"
	"time"

	"log/slog"

	"tamer/internal/daemon"
	"tamer/internal/logging"
	"tamer/internal/logs"
	"tamer/internal/scheduler"
)

// Server exposes daemon control via JSON-RPC over a Unix domain socket.
type Server struct {
	path      string
	daemon    *daemon.Daemon
	logger    *slog.Logger
	listener  net.Listener
	rpcServer *rpc.Server

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewServer configures the IPC server at the given socket path.
func NewServer(ctx context.Context, path string, d *daemon.Daemon, logger *slog.Logger) (*Server, error) {
	if d == nil {
		return nil, errors.New("ipc server requires daemon")
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	if err := os.RemoveAll(path); err != nil {
		return nil, fmt.Errorf("remove existing socket: %w", err)
	}

	listener, err := net.Listen("unix", path)
	if err != nil {
		return nil, fmt.Errorf("listen on socket: %w", err)
	}

	rpcServer := rpc.NewServer()
	srv := &service{daemon: d, logger: logger}
	if err := rpcServer.RegisterName("Tamer", srv); err != nil {
		listener.Close()
		return nil, fmt.Errorf("register rpc service: %w", err)
	}

	serverCtx, cancel := context.WithCancel(ctx)
	return &Server{
		path:      path,
		daemon:    d,
		logger:    logger,
		listener:  listener,
		rpcServer: rpcServer,
		ctx:       serverCtx,
		cancel:    cancel,
	}, nil
}

// Serve starts accepting RPC connections until the context is canceled.
func (s *Server) Serve() {
	s.logger.Debug("IPC server listening", logging.String("socket", s.path))
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		for {
			conn, err := s.listener.Accept()
			if err != nil {
				select {
				case <-s.ctx.Done():
					return
				default:
				}
				s.logger.Warn("accept failed",
					logging.Error(err),
					logging.String(logging.FieldEventType, "ipc_accept_failed"),
					logging.String(logging.FieldErrorHint, "Check socket permissions and restart the daemon if needed"))
				continue
			}
			s.wg.Add(1)
			go func(c net.Conn) {
				defer s.wg.Done()
				s.rpcServer.ServeCodec(jsonrpc.NewServerCodec(c))
			}(conn)
		}
	}()
}

// Close stops the server and removes the socket file.
func (s *Server) Close() {
	s.cancel()
	if s.listener != nil {
		_ = s.listener.Close()
	}
	s.wg.Wait()
	if err := os.RemoveAll(s.path); err != nil {
		s.logger.Warn("failed to remove socket",
			logging.String("socket", s.path),
			logging.Error(err),
			logging.String(logging.FieldEventType, "ipc_socket_cleanup_failed"),
			logging.String(logging.FieldErrorHint, "Remove the socket file manually or rerun tamer stop"))
	}
}

type service struct {
	daemon *daemon.Daemon
	logger *slog.Logger
}

func (s *service) log() *slog.Logger {
	if s.logger == nil {
		return logging.NewNop()
	}
	return s.logger.With(logging.String(logging.FieldComponent, "ipc"))
}

func convertSchedulerStatus(status scheduler.Status) SchedulerStatus {
	return SchedulerStatus{
		State:          string(status.State),
		Digest:         status.Digest,
		RuleCount:      status.RuleCount,
		IntervalMillis: status.Interval.Milliseconds(),
		Cycles:         status.Cycles,
		LastCycle:      status.LastCycle,
		LastReload:     status.LastReload,
		Matched:        status.LastSummary.Matched,
		Applied:        status.LastSummary.Applied,
		AlreadyOK:      status.LastSummary.AlreadyOK,
		Skipped:        status.LastSummary.Skipped,
		LastError:      status.LastError,
	}
}

func (s *service) Status(_ StatusRequest, resp *StatusResponse) error {
	status := s.daemon.Status()
	resp.Running = status.Running
	resp.PID = status.PID
	resp.SessionID = status.SessionID
	resp.RulesPath = status.RulesPath
	resp.LockPath = status.LockFilePath
	resp.LogPath = status.LogFilePath
	resp.Scheduler = convertSchedulerStatus(status.Scheduler)
	return nil
}

func (s *service) Rules(_ RulesRequest, resp *RulesResponse) error {
	resp.RulesPath = s.daemon.Status().RulesPath
	current := s.daemon.CurrentRules()
	if current == nil {
		return nil
	}
	resp.Loaded = true
	resp.Digest = current.Digest
	resp.DisplayName = current.DisplayName
	resp.Description = current.Description
	resp.IntervalMillis = current.Interval.Milliseconds()
	resp.Rules = make([]Rule, 0, len(current.Rules))
	for _, rule := range current.Rules {
		resp.Rules = append(resp.Rules, Rule{ProcessName: rule.ProcessName, Nice: rule.Nice})
	}
	return nil
}

func (s *service) Reload(_ ReloadRequest, resp *ReloadResponse) error {
	s.log().Debug("rule reload requested")
	resp.Scheduler = convertSchedulerStatus(s.daemon.RunCycle())
	s.log().Info("rule reload completed via IPC",
		logging.String(logging.FieldEventType, "rules_reload"))
	return nil
}

func (s *service) Cycle(_ CycleRequest, resp *CycleResponse) error {
	s.log().Debug("enforcement pass requested")
	resp.Scheduler = convertSchedulerStatus(s.daemon.RunCycle())
	s.log().Info("enforcement pass completed via IPC",
		logging.String(logging.FieldEventType, "enforce_cycle"))
	return nil
}

func (s *service) LogTail(req LogTailRequest, resp *LogTailResponse) error {
	logPath := s.daemon.LogPath()
	if logPath == "" {
		resp.Offset = 0
		return nil
	}
	wait := time.Duration(req.WaitMillis) * time.Millisecond
	if wait <= 0 && req.Follow {
		wait = time.Second
	}
	ctx := context.Background()
	if req.Follow && wait > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, wait+500*time.Millisecond)
		defer cancel()
	}
	result, err := logs.Tail(ctx, logPath, logs.TailOptions{
		Offset: req.Offset,
		Limit:  req.Limit,
		Follow: req.Follow,
		Wait:   wait,
	})
	if err != nil {
		if errors.Is(err, context.Canceled) {
			resp.Offset = result.Offset
			return nil
		}
		return err
	}
	resp.Lines = result.Lines
	resp.Offset = result.Offset
	return nil
}

func (s *service) Stop(_ StopRequest, resp *StopResponse) error {
	s.log().Debug("daemon stop requested")
	s.daemon.Stop()
	resp.Stopped = true
	s.log().Info("daemon stopped via IPC",
		logging.String(logging.FieldEventType, "daemon_stop"))
	return nil
}
