package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/turnos-app/turnos/internal/errors"
	"github.com/turnos-app/turnos/internal/observability/statsd"
)

func TestEmitRefresh(t *testing.T) {
	var rec statsd.Recorder

	EmitRefresh(&rec, RefreshMetric{Result: RefreshSuccess, Duration: 20 * time.Millisecond})
	EmitRefresh(&rec, RefreshMetric{Result: RefreshFailure, Err: apperrors.Unauthorized("bad refresh")})
	EmitRefresh(&rec, RefreshMetric{Result: RefreshSuccess, Shared: true})

	assert.Equal(t, int64(2), rec.Total("gateway.refresh", map[string]string{"result": RefreshSuccess}))
	assert.Equal(t, int64(1), rec.Total("gateway.refresh", map[string]string{"result": RefreshFailure, "error_class": "unauthorized"}))
	assert.Equal(t, int64(1), rec.Total("gateway.refresh", map[string]string{"shared": "true"}))

	var timings int
	for _, s := range rec.Samples() {
		if s.Kind == "ms" {
			timings++
			assert.Equal(t, "gateway.refresh.duration", s.Name)
		}
	}
	assert.Equal(t, 1, timings)

	// nil sink is a no-op
	EmitRefresh(nil, RefreshMetric{Result: RefreshMissing, Err: errors.New("x")})
}

func TestEmitSweep(t *testing.T) {
	var rec statsd.Recorder
	EmitSweep(&rec, 2, 5, time.Millisecond)

	assert.Equal(t, int64(2), rec.Total("sessions.swept", nil))
	samples := rec.Samples()
	assert.Len(t, samples, 3)
	assert.Equal(t, "sessions.active", samples[1].Name)
	assert.InDelta(t, 5.0, samples[1].Value, 0.001)
}

func TestCloneTags(t *testing.T) {
	assert.Nil(t, CloneTags(nil))
	src := map[string]string{"a": "1"}
	cp := CloneTags(src)
	cp["a"] = "2"
	assert.Equal(t, "1", src["a"])
}
