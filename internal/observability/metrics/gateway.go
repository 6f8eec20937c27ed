package metrics

import (
	"time"

	obserrors "github.com/turnos-app/turnos/internal/observability/errors"
	"github.com/turnos-app/turnos/internal/observability/statsd"
)

// Refresh outcomes used as the "result" tag of gateway.refresh.
const (
	RefreshSuccess = "success" // new access token applied, request retried
	RefreshFailure = "failure" // refresh call failed; session cleared
	RefreshMissing = "missing" // no refresh token; session cleared
	RefreshStale   = "stale"   // session changed while refreshing; result discarded
)

// RefreshMetric captures one refresh attempt of the request gateway.
type RefreshMetric struct {
	Result   string
	Duration time.Duration
	Err      error
	Shared   bool // result came from a concurrent caller's refresh
}

// EmitRefresh emits gateway.refresh and, when timed, gateway.refresh.duration.
func EmitRefresh(sink statsd.Sink, in RefreshMetric) {
	if sink == nil {
		return
	}
	tags := map[string]string{"result": in.Result}
	if in.Shared {
		tags["shared"] = "true"
	}
	if in.Err != nil && in.Result == RefreshFailure {
		if class := obserrors.Classify(in.Err); class != "" {
			tags["error_class"] = class
		}
	}
	sink.Count("gateway.refresh", 1, tags)
	if in.Duration > 0 {
		sink.Timing("gateway.refresh.duration", in.Duration, CloneTags(tags))
	}
}

// EmitSweep reports an idle-session sweep of the web session registry.
func EmitSweep(sink statsd.Sink, dropped, remaining int, elapsed time.Duration) {
	if sink == nil {
		return
	}
	sink.Count("sessions.swept", int64(dropped), nil)
	sink.Gauge("sessions.active", float64(remaining), nil)
	sink.Timing("sessions.sweep.duration", elapsed, nil)
}

// CloneTags creates a shallow copy of a tag map.
func CloneTags(src map[string]string) map[string]string {
	if len(src) == 0 {
		return nil
	}
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
