package prometheusmetrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/psat-tools/psat-server/config"
	"github.com/psat-tools/psat-server/metrics"
)

// Metrics defines the Prometheus metrics backing the MetricsEngine implementation.
type Metrics struct {
	Registry *prometheus.Registry
	Gatherer prometheus.Gatherer

	connectionsClosed prometheus.Counter
	connectionsError  *prometheus.CounterVec
	connectionsOpened prometheus.Counter

	requests         *prometheus.CounterVec
	requestsTimer    *prometheus.HistogramVec
	cookieVerdicts   *prometheus.CounterVec
	auctionsReduced  *prometheus.CounterVec
	auctionBids      *prometheus.HistogramVec
	auctionNoBids    *prometheus.HistogramVec
	reportsGenerated prometheus.Counter
}

const (
	auctionKindLabel     = "kind"
	connectionErrorLabel = "connection_error"
	directionLabel       = "direction"
	requestStatusLabel   = "request_status"
	requestTypeLabel     = "request_type"
	verdictLabel         = "verdict"
)

// NewMetrics initializes a new Prometheus metrics instance with preloaded label values.
func NewMetrics(cfg config.PrometheusMetrics) *Metrics {
	standardTimeBuckets := []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1}
	countBuckets := []float64{0, 1, 2, 5, 10, 25, 50, 100}

	metrics := Metrics{}
	reg := prometheus.NewRegistry()
	metrics.Registry = reg
	metrics.Gatherer = reg

	metrics.connectionsClosed = newCounterWithoutLabels(cfg, reg,
		"connections_closed",
		"Count of successful connections closed to the analysis server.")

	metrics.connectionsError = newCounter(cfg, reg,
		"connections_error",
		"Count of errors for connection open and close attempts to the analysis server labeled by type.",
		[]string{connectionErrorLabel})

	metrics.connectionsOpened = newCounterWithoutLabels(cfg, reg,
		"connections_opened",
		"Count of successful connections opened to the analysis server.")

	metrics.requests = newCounter(cfg, reg,
		"requests",
		"Count of total requests to the analysis endpoints labeled by type and status.",
		[]string{requestTypeLabel, requestStatusLabel})

	metrics.requestsTimer = newHistogramVec(cfg, reg,
		"request_time_seconds",
		"Seconds to serve successful requests labeled by type.",
		[]string{requestTypeLabel},
		standardTimeBuckets)

	metrics.cookieVerdicts = newCounter(cfg, reg,
		"cookie_verdicts",
		"Count of cookie blocking verdicts labeled by direction and outcome.",
		[]string{directionLabel, verdictLabel})

	metrics.auctionsReduced = newCounter(cfg, reg,
		"auctions_reduced",
		"Count of auction logs reduced to bids and no-bids labeled by kind.",
		[]string{auctionKindLabel})

	metrics.auctionBids = newHistogramVec(cfg, reg,
		"auction_received_bids",
		"Number of received bids per reduced auction log labeled by kind.",
		[]string{auctionKindLabel},
		countBuckets)

	metrics.auctionNoBids = newHistogramVec(cfg, reg,
		"auction_no_bids",
		"Number of no-bid records per reduced auction log labeled by kind.",
		[]string{auctionKindLabel},
		countBuckets)

	metrics.reportsGenerated = newCounterWithoutLabels(cfg, reg,
		"reports_generated",
		"Count of analysis reports generated.")

	preloadLabelValues(&metrics)

	return &metrics
}

func newCounter(cfg config.PrometheusMetrics, registry *prometheus.Registry, name, help string, labels []string) *prometheus.CounterVec {
	opts := prometheus.CounterOpts{
		Namespace: cfg.Namespace,
		Subsystem: cfg.Subsystem,
		Name:      name,
		Help:      help,
	}
	counter := prometheus.NewCounterVec(opts, labels)
	registry.MustRegister(counter)
	return counter
}

func newCounterWithoutLabels(cfg config.PrometheusMetrics, registry *prometheus.Registry, name, help string) prometheus.Counter {
	opts := prometheus.CounterOpts{
		Namespace: cfg.Namespace,
		Subsystem: cfg.Subsystem,
		Name:      name,
		Help:      help,
	}
	counter := prometheus.NewCounter(opts)
	registry.MustRegister(counter)
	return counter
}

func newHistogramVec(cfg config.PrometheusMetrics, registry *prometheus.Registry, name, help string, labels []string, buckets []float64) *prometheus.HistogramVec {
	opts := prometheus.HistogramOpts{
		Namespace: cfg.Namespace,
		Subsystem: cfg.Subsystem,
		Name:      name,
		Help:      help,
		Buckets:   buckets,
	}
	histogram := prometheus.NewHistogramVec(opts, labels)
	registry.MustRegister(histogram)
	return histogram
}

const (
	connectionAcceptError = "accept"
	connectionCloseError  = "close"
)

func preloadLabelValues(m *Metrics) {
	m.connectionsError.WithLabelValues(connectionAcceptError)
	m.connectionsError.WithLabelValues(connectionCloseError)

	for _, rt := range metrics.RequestTypes() {
		m.requestsTimer.WithLabelValues(string(rt))
		for _, rs := range metrics.RequestStatuses() {
			m.requests.WithLabelValues(string(rt), string(rs))
		}
	}
	for _, d := range metrics.Directions() {
		for _, v := range metrics.Verdicts() {
			m.cookieVerdicts.WithLabelValues(string(d), string(v))
		}
	}
	for _, k := range metrics.AuctionKinds() {
		m.auctionsReduced.WithLabelValues(string(k))
	}
}

func (m *Metrics) RecordConnectionAccept(success bool) {
	if success {
		m.connectionsOpened.Inc()
	} else {
		m.connectionsError.With(prometheus.Labels{
			connectionErrorLabel: connectionAcceptError,
		}).Inc()
	}
}

func (m *Metrics) RecordConnectionClose(success bool) {
	if success {
		m.connectionsClosed.Inc()
	} else {
		m.connectionsError.With(prometheus.Labels{
			connectionErrorLabel: connectionCloseError,
		}).Inc()
	}
}

func (m *Metrics) RecordRequest(labels metrics.Labels) {
	m.requests.With(prometheus.Labels{
		requestTypeLabel:   string(labels.RType),
		requestStatusLabel: string(labels.RequestStatus),
	}).Inc()
}

func (m *Metrics) RecordRequestTime(labels metrics.Labels, length time.Duration) {
	if labels.RequestStatus == metrics.RequestStatusOK {
		m.requestsTimer.With(prometheus.Labels{
			requestTypeLabel: string(labels.RType),
		}).Observe(length.Seconds())
	}
}

func (m *Metrics) RecordCookieVerdict(direction metrics.Direction, verdict metrics.Verdict) {
	m.cookieVerdicts.With(prometheus.Labels{
		directionLabel: string(direction),
		verdictLabel:   string(verdict),
	}).Inc()
}

func (m *Metrics) RecordAuctionReduction(labels metrics.AuctionLabels) {
	kind := prometheus.Labels{auctionKindLabel: string(labels.Kind)}
	m.auctionsReduced.With(kind).Inc()
	m.auctionBids.With(kind).Observe(float64(labels.ReceivedBids))
	m.auctionNoBids.With(kind).Observe(float64(labels.NoBids))
}

func (m *Metrics) RecordReportGenerated() {
	m.reportsGenerated.Inc()
}

// String reports the registered collector count, used in startup logs.
func (m *Metrics) String() string {
	families, err := m.Gatherer.Gather()
	if err != nil {
		return "prometheus metrics (unavailable)"
	}
	return "prometheus metrics (" + strconv.Itoa(len(families)) + " families)"
}
