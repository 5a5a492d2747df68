package router

import (
	"net/http"
	"net/http/pprof"

	"github.com/golang/glog"
	gometrics "github.com/rcrowley/go-metrics"

	"github.com/psat-tools/psat-server/endpoints"
	metricsConf "github.com/psat-tools/psat-server/metrics/config"
	"github.com/psat-tools/psat-server/version"
)

// Admin returns the handler for the admin listener: build info, profiling and, when
// enabled, a JSON dump of the go-metrics registry.
func Admin(metricsEngine *metricsConf.DetailedMetricsEngine) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)

	mux.HandleFunc("/version", endpoints.NewVersionEndpoint(version.Ver, version.Rev))

	if metricsEngine != nil && metricsEngine.GoMetrics != nil {
		registry := metricsEngine.GoMetrics.MetricsRegistry
		mux.HandleFunc("/metrics", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			gometrics.WriteJSONOnce(registry, w)
		})
		glog.Infof("go-metrics registry available on the admin server at /metrics")
	}

	return mux
}
