package tracking

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stormkit-io/fnmanagement/src/lib/slog"
	"go.uber.org/zap"
)

const (
	StatusSuccess = "success"
	StatusFailure = "failure"
	StatusOther   = "other"
)

var (
	// LookupCounter counts environment variable lookups by response status.
	LookupCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fnm",
			Subsystem: "function",
			Name:      "env_lookups_total",
			Help:      "Number of function environment variable lookups",
		},
		[]string{"status"},
	)

	// LookupHistogram tracks lookup durations.
	LookupHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "fnm",
			Subsystem: "function",
			Name:      "env_lookup_duration_ms",
			Help:      "Function environment variable lookup duration in milliseconds",
			Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500},
		},
		[]string{"status"},
	)
)

// RecordLookup records the outcome and the duration of a lookup.
func RecordLookup(status string, duration time.Duration) {
	if status != StatusSuccess && status != StatusFailure {
		slog.Debug(slog.LogOpts{
			Msg:   "metrics unknown lookup status",
			Level: slog.DL3,
			Payload: []zap.Field{
				zap.String("status", status),
			},
		})

		status = StatusOther
	}

	LookupCounter.WithLabelValues(status).Inc()
	LookupHistogram.WithLabelValues(status).Observe(float64(duration.Milliseconds()))
}
