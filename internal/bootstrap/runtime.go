package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/turnos-app/turnos/config"
	"github.com/turnos-app/turnos/internal/adapters/reaper"
)

// workerStopTimeout bounds how long shutdown waits for each background worker.
const workerStopTimeout = 15 * time.Second

// ServiceOrchestrationConfig contains configuration for service orchestration.
type ServiceOrchestrationConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	Logger   *slog.Logger
}

// worker is a long-running component started when its service mode is enabled.
type worker struct {
	mode config.ServiceMode
	run  func(context.Context) error
}

// running tracks a started worker until its run func returns.
type running struct {
	mode config.ServiceMode
	done <-chan struct{}
}

// supervisor starts the enabled services and collects their failures on errCh.
type supervisor struct {
	cfg     *ServiceOrchestrationConfig
	logger  *slog.Logger
	enabled map[config.ServiceMode]bool
	errCh   chan error
}

func newSupervisor(cfg *ServiceOrchestrationConfig, logger *slog.Logger, enabled map[config.ServiceMode]bool) *supervisor {
	return &supervisor{
		cfg:     cfg,
		logger:  logger,
		enabled: enabled,
		errCh:   make(chan error, errBufferSize(enabled)),
	}
}

// errBufferSize leaves room for one error per enabled service plus the listener.
func errBufferSize(enabled map[config.ServiceMode]bool) int {
	n := 1
	for _, mode := range config.ValidServiceModes() {
		if enabled[mode] {
			n++
		}
	}
	return n
}

func (s *supervisor) startHTTP() *http.Server {
	if !s.enabled[config.ServiceModeHTTP] {
		return nil
	}
	return StartHTTPServer(&HTTPServerConfig{
		Config:   s.cfg.Config,
		Services: s.cfg.Services,
		Logger:   s.logger,
		ErrCh:    s.errCh,
	})
}

func (s *supervisor) workers() []worker {
	return []worker{
		{mode: config.ServiceModeReaper, run: s.runReaper},
	}
}

func (s *supervisor) runReaper(ctx context.Context) error {
	if s.cfg == nil || s.cfg.Services.Sessions == nil {
		return errors.New("session registry not configured")
	}
	var interval time.Duration
	if s.cfg.Config != nil {
		interval = s.cfg.Config.Session.SweepInterval
	}
	runner, err := reaper.NewRunner(reaper.RunnerOptions{
		Sessions: s.cfg.Services.Sessions,
		Interval: interval,
		Logger:   s.logger,
		Metrics:  s.cfg.Services.Observability.MetricsSink,
	})
	if err != nil {
		return err
	}
	return runner.Run(ctx)
}

// start launches w in its own goroutine. Disabled workers are skipped and yield nil.
func (s *supervisor) start(ctx context.Context, w worker) <-chan struct{} {
	if !s.enabled[w.mode] {
		return nil
	}
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := w.run(ctx); err != nil {
			s.report(ctx, fmt.Errorf("%s failed: %w", w.mode, err))
		}
	}()
	s.logger.InfoContext(ctx, "background service started", "service", w.mode)
	return done
}

func (s *supervisor) report(ctx context.Context, err error) {
	select {
	case s.errCh <- err:
	default:
		s.logger.WarnContext(ctx, "dropping background service error", "error", err)
	}
}

func (s *supervisor) startWorkers(ctx context.Context) []running {
	var out []running
	for _, w := range s.workers() {
		if done := s.start(ctx, w); done != nil {
			out = append(out, running{mode: w.mode, done: done})
		}
	}
	return out
}

// RunServicesWithShutdown starts all enabled services and blocks until SIGINT,
// SIGTERM or the first service failure, then stops everything.
func RunServicesWithShutdown(cfg *ServiceOrchestrationConfig) error {
	if cfg == nil || cfg.Config == nil {
		return errors.New("service orchestration config with AppConfig is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	enabled, err := cfg.Config.GetEnabledServices()
	if err != nil {
		return fmt.Errorf("determine enabled services: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sup := newSupervisor(cfg, logger, enabled)
	server := sup.startHTTP()
	workers := sup.startWorkers(ctx)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	return waitForShutdown(shutdownConfig{
		quit:          quit,
		errCh:         sup.errCh,
		cancel:        cancel,
		server:        server,
		serverTimeout: cfg.Config.HTTP.ShutdownTimeout,
		workers:       workers,
		logger:        logger,
	})
}

// shutdownConfig contains what waitForShutdown needs to stop the services.
type shutdownConfig struct {
	quit          <-chan os.Signal
	errCh         <-chan error
	cancel        context.CancelFunc
	server        *http.Server
	serverTimeout time.Duration
	workers       []running
	workerTimeout time.Duration // defaults to workerStopTimeout
	logger        *slog.Logger
}

// waitForShutdown blocks until a signal or a service error, then stops all services.
// A service error is returned even when the stop succeeds.
func waitForShutdown(cfg shutdownConfig) error {
	var cause error
	select {
	case sig := <-cfg.quit:
		cfg.logger.Info("shutdown signal received", "signal", sig.String())
	case cause = <-cfg.errCh:
		cfg.logger.Error("service failed, shutting down", "error", cause)
	}
	cfg.cancel()

	stopErr := stopAll(cfg)
	if cause == nil {
		return stopErr
	}
	if stopErr != nil {
		cfg.logger.Error("graceful stop failed", "error", stopErr)
	}
	return cause
}

// stopAll drains the HTTP server and then waits for every worker.
func stopAll(cfg shutdownConfig) error {
	var err error
	if cfg.server != nil {
		// The service context is already canceled; shutdown gets a fresh deadline.
		err = ShutdownHTTPServer(ShutdownConfig{
			Context: context.Background(),
			Server:  cfg.server,
			Timeout: cfg.serverTimeout,
			Logger:  cfg.logger,
		})
	}

	timeout := cfg.workerTimeout
	if timeout <= 0 {
		timeout = workerStopTimeout
	}
	for _, w := range cfg.workers {
		awaitStop(w.done, string(w.mode), timeout, cfg.logger)
	}
	return err
}

// awaitStop waits for done and reports whether it closed within timeout.
// A nil channel counts as stopped.
func awaitStop(done <-chan struct{}, name string, timeout time.Duration, logger *slog.Logger) bool {
	if done == nil {
		return true
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case <-done:
		logger.Info("background service stopped", "service", name)
		return true
	case <-timer.C:
		logger.Warn("timed out waiting for background service", "service", name, "timeout", timeout)
		return false
	}
}
