package tracking

import (
	"fmt"
	"net/http"
	"regexp"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stormkit-io/fnmanagement/src/lib/config"
	"github.com/stormkit-io/fnmanagement/src/lib/slog"
	"github.com/stormkit-io/fnmanagement/src/lib/utils"
	"go.uber.org/zap"
)

type PrometheusOpts struct {
	// Lookups exports the lookup counter and histogram.
	Lookups bool

	// Runtime exports the go runtime and process collectors.
	Runtime bool
}

// Registry returns a registry with the requested collectors.
func Registry(opts PrometheusOpts) *prometheus.Registry {
	reg := prometheus.NewRegistry()

	if opts.Lookups {
		reg.MustRegister(LookupCounter, LookupHistogram)
	}

	if opts.Runtime {
		reg.MustRegister(collectors.NewBuildInfoCollector())
		reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		reg.MustRegister(collectors.NewGoCollector(
			collectors.WithGoCollectorRuntimeMetrics(collectors.GoRuntimeMetricsRule{
				Matcher: regexp.MustCompile("/.*"),
			}),
		))
	}

	return reg
}

// Handler returns the /metrics handler for the given registry.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}

// Prometheus starts an HTTP server for Prometheus to scrape metrics.
// When the configured port is in use, the next free one is picked.
func Prometheus(opts PrometheusOpts) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler(Registry(opts)))

	go func() {
		conf := config.Get()

		for i := 0; i < 10; i++ {
			port := utils.StringToInt(conf.Tracking.PrometheusPort)

			if !utils.IsPortInUse(port) {
				break
			}

			slog.Debug(slog.LogOpts{
				Msg:   "prometheus port is already in use, picking a new one",
				Level: slog.DL1,
				Payload: []zap.Field{
					zap.String("port", conf.Tracking.PrometheusPort),
				},
			})

			conf.Tracking.PrometheusPort = utils.Int64ToString(int64(port + 1))
		}

		slog.Infof("prometheus metrics available at /metrics, port: %s", conf.Tracking.PrometheusPort)

		if err := http.ListenAndServe(fmt.Sprintf(":%s", conf.Tracking.PrometheusPort), mux); err != nil {
			slog.Errorf("prometheus server stopped: %s", err.Error())
		}
	}()
}
