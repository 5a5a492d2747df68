package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/golang/glog"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/psat-tools/psat-server/config"
	metricsconfig "github.com/psat-tools/psat-server/metrics/config"
)

var errNoPrometheusEngine = errors.New("prometheus port is set but no prometheus metrics engine was built")

// newPrometheusServer serves the scrape endpoint of the engine's Prometheus registry on the
// configured metrics port.
func newPrometheusServer(cfg *config.Configuration, engine *metricsconfig.DetailedMetricsEngine) (*http.Server, error) {
	if engine == nil || engine.PrometheusMetrics == nil {
		return nil, errNoPrometheusEngine
	}
	return &http.Server{
		Addr: cfg.Host + ":" + strconv.Itoa(cfg.Metrics.Prometheus.Port),
		Handler: promhttp.HandlerFor(engine.PrometheusMetrics.Gatherer, promhttp.HandlerOpts{
			ErrorLog:            scrapeErrorLogger{},
			MaxRequestsInFlight: 5,
			Timeout:             cfg.Metrics.Prometheus.Timeout(),
		}),
	}, nil
}

// scrapeErrorLogger routes promhttp's gather and encode failures to glog.
type scrapeErrorLogger struct{}

func (scrapeErrorLogger) Println(v ...interface{}) {
	glog.Warningf("prometheus scrape: %s", fmt.Sprintln(v...))
}
