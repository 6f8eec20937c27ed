package bootstrap

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turnos-app/turnos/config"
)

func discardLogger() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func TestErrBufferSize(t *testing.T) {
	tests := []struct {
		name  string
		modes []config.ServiceMode
		want  int
	}{
		{name: "no services enabled", want: 1},
		{name: "http only", modes: []config.ServiceMode{config.ServiceModeHTTP}, want: 2},
		{name: "http and reaper", modes: []config.ServiceMode{config.ServiceModeHTTP, config.ServiceModeReaper}, want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enabled := make(map[config.ServiceMode]bool, len(tt.modes))
			for _, mode := range tt.modes {
				enabled[mode] = true
			}
			assert.Equal(t, tt.want, errBufferSize(enabled))
			assert.Equal(t, tt.want, cap(newSupervisor(nil, discardLogger(), enabled).errCh))
		})
	}
}

func TestWaitForShutdown_ServiceErrorStopsWorkers(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)

	done := make(chan struct{})
	go func() {
		<-ctx.Done()
		close(done)
	}()

	boom := errors.New("boom")
	errCh <- boom
	err := waitForShutdown(shutdownConfig{
		quit:          make(chan os.Signal),
		errCh:         errCh,
		cancel:        cancel,
		workers:       []running{{mode: config.ServiceModeReaper, done: done}},
		workerTimeout: time.Second,
		logger:        discardLogger(),
	})
	require.ErrorIs(t, err, boom)

	select {
	case <-done:
	default:
		t.Fatal("worker was not canceled")
	}
}

func TestWaitForShutdown_Signal(t *testing.T) {
	_, cancel := context.WithCancel(context.Background())
	quit := make(chan os.Signal, 1)
	quit <- os.Interrupt

	err := waitForShutdown(shutdownConfig{
		quit:   quit,
		errCh:  make(chan error),
		cancel: cancel,
		logger: discardLogger(),
	})
	assert.NoError(t, err)
}

func TestAwaitStop(t *testing.T) {
	start := time.Now()
	assert.False(t, awaitStop(make(chan struct{}), "stuck", 20*time.Millisecond, discardLogger()))
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)

	assert.True(t, awaitStop(nil, "absent", time.Hour, discardLogger()))

	closed := make(chan struct{})
	close(closed)
	assert.True(t, awaitStop(closed, "reaper", time.Hour, discardLogger()))
}

func TestSupervisorStart_SkipsDisabled(t *testing.T) {
	sup := newSupervisor(nil, discardLogger(), map[config.ServiceMode]bool{config.ServiceModeHTTP: true})
	done := sup.start(context.Background(), worker{
		mode: config.ServiceModeReaper,
		run:  func(context.Context) error { return nil },
	})
	assert.Nil(t, done)
}

func TestSupervisorStart_ReportsFailure(t *testing.T) {
	sup := newSupervisor(nil, discardLogger(), map[config.ServiceMode]bool{config.ServiceModeReaper: true})
	done := sup.start(context.Background(), worker{
		mode: config.ServiceModeReaper,
		run:  func(context.Context) error { return errors.New("sweep failed") },
	})
	require.NotNil(t, done)
	<-done
	assert.EqualError(t, <-sup.errCh, "reaper failed: sweep failed")
}

func TestSupervisor_ReaperWithoutRegistryFails(t *testing.T) {
	sup := newSupervisor(&ServiceOrchestrationConfig{}, discardLogger(), map[config.ServiceMode]bool{config.ServiceModeReaper: true})
	assert.EqualError(t, sup.runReaper(context.Background()), "session registry not configured")
}

func TestSupervisor_ReaperRunsUntilCanceled(t *testing.T) {
	cfg := &config.AppConfig{Session: config.SessionConfig{Backend: config.SessionBackendMemory, IdleTTL: time.Minute, SweepInterval: time.Hour}}
	services, err := NewServices(&ServiceDeps{Config: cfg, Logger: discardLogger()})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	sup := newSupervisor(
		&ServiceOrchestrationConfig{Config: cfg, Services: services},
		discardLogger(),
		map[config.ServiceMode]bool{config.ServiceModeReaper: true},
	)
	workers := sup.startWorkers(ctx)
	require.Len(t, workers, 1)

	cancel()
	select {
	case <-workers[0].done:
	case <-time.After(2 * time.Second):
		t.Fatal("reaper did not stop")
	}
	assert.Empty(t, sup.errCh)
}

func TestRunServicesWithShutdown_RequiresConfig(t *testing.T) {
	assert.Error(t, RunServicesWithShutdown(nil))
	assert.Error(t, RunServicesWithShutdown(&ServiceOrchestrationConfig{}))
}

func TestNewServices_RequiresRedisForRedisBackend(t *testing.T) {
	cfg := &config.AppConfig{Session: config.SessionConfig{Backend: config.SessionBackendRedis}}
	_, err := NewServices(&ServiceDeps{Config: cfg, Logger: discardLogger()})
	assert.ErrorContains(t, err, "redis client not configured")

	_, err = NewServices(nil)
	assert.Error(t, err)
}

func TestBuildObservability_DisabledLeavesNilSink(t *testing.T) {
	obs := buildObservability(discardLogger(), config.ObservabilityConfig{})
	assert.Nil(t, obs.MetricsSink)
	assert.NoError(t, obs.Close())
}

func TestBuildObservability_Enabled(t *testing.T) {
	obs := buildObservability(discardLogger(), config.ObservabilityConfig{
		Metrics: config.ObservabilityMetricsConfig{Enabled: true, StatsdAddress: "127.0.0.1:8125", Prefix: "turnos"},
	})
	require.NotNil(t, obs.MetricsSink)
	assert.NoError(t, obs.Close())
}
