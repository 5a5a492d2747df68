package config

import (
	"time"

	gometrics "github.com/rcrowley/go-metrics"

	"github.com/psat-tools/psat-server/config"
	"github.com/psat-tools/psat-server/metrics"
	prometheusmetrics "github.com/psat-tools/psat-server/metrics/prometheus"
)

// NewMetricsEngine reads the configuration and returns the appropriate metrics engine
// for this instance.
func NewMetricsEngine(cfg *config.Configuration) *DetailedMetricsEngine {
	// Create a list of metrics engines to use.
	// Capacity of 2, as unlikely to have more than 2 metrics backends, and in the case
	// of 1 we won't use the list so it will be garbage collected.
	engineList := make(MultiMetricsEngine, 0, 2)
	returnEngine := DetailedMetricsEngine{}

	if cfg.Metrics.GoMetrics.Enabled {
		returnEngine.GoMetrics = metrics.NewMetrics(gometrics.NewPrefixedRegistry("psat."))
		engineList = append(engineList, returnEngine.GoMetrics)
	}
	if cfg.Metrics.Prometheus.Port != 0 {
		returnEngine.PrometheusMetrics = prometheusmetrics.NewMetrics(cfg.Metrics.Prometheus)
		engineList = append(engineList, returnEngine.PrometheusMetrics)
	}

	// Now return the proper metrics engine
	if len(engineList) > 1 {
		returnEngine.MetricsEngine = &engineList
	} else if len(engineList) == 1 {
		returnEngine.MetricsEngine = engineList[0]
	} else {
		returnEngine.MetricsEngine = &DummyMetricsEngine{}
	}

	return &returnEngine
}

// DetailedMetricsEngine is a MultiMetricsEngine that preserves links to underlying
// metrics engines.
type DetailedMetricsEngine struct {
	metrics.MetricsEngine
	GoMetrics         *metrics.Metrics
	PrometheusMetrics *prometheusmetrics.Metrics
}

// MultiMetricsEngine logs metrics to multiple metrics databases. The can be useful in
// transitioning an instance from one engine to another, you can run both in parallel to
// verify stats match up.
type MultiMetricsEngine []metrics.MetricsEngine

func (me *MultiMetricsEngine) RecordConnectionAccept(success bool) {
	for _, thisME := range *me {
		thisME.RecordConnectionAccept(success)
	}
}

func (me *MultiMetricsEngine) RecordConnectionClose(success bool) {
	for _, thisME := range *me {
		thisME.RecordConnectionClose(success)
	}
}

func (me *MultiMetricsEngine) RecordRequest(labels metrics.Labels) {
	for _, thisME := range *me {
		thisME.RecordRequest(labels)
	}
}

func (me *MultiMetricsEngine) RecordRequestTime(labels metrics.Labels, length time.Duration) {
	for _, thisME := range *me {
		thisME.RecordRequestTime(labels, length)
	}
}

func (me *MultiMetricsEngine) RecordCookieVerdict(direction metrics.Direction, verdict metrics.Verdict) {
	for _, thisME := range *me {
		thisME.RecordCookieVerdict(direction, verdict)
	}
}

func (me *MultiMetricsEngine) RecordAuctionReduction(labels metrics.AuctionLabels) {
	for _, thisME := range *me {
		thisME.RecordAuctionReduction(labels)
	}
}

func (me *MultiMetricsEngine) RecordReportGenerated() {
	for _, thisME := range *me {
		thisME.RecordReportGenerated()
	}
}

// DummyMetricsEngine is a Noop metrics engine in case no metrics are configured.
type DummyMetricsEngine struct{}

func (me *DummyMetricsEngine) RecordConnectionAccept(success bool) {}

func (me *DummyMetricsEngine) RecordConnectionClose(success bool) {}

func (me *DummyMetricsEngine) RecordRequest(labels metrics.Labels) {}

func (me *DummyMetricsEngine) RecordRequestTime(labels metrics.Labels, length time.Duration) {}

func (me *DummyMetricsEngine) RecordCookieVerdict(direction metrics.Direction, verdict metrics.Verdict) {
}

func (me *DummyMetricsEngine) RecordAuctionReduction(labels metrics.AuctionLabels) {}

func (me *DummyMetricsEngine) RecordReportGenerated() {}
