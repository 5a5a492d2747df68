package metrics

import (
	"time"

	gometrics "github.com/rcrowley/go-metrics"
)

// Metrics is the in-process MetricsEngine backed by go-metrics. Its registry can be dumped
// as JSON from the admin server.
type Metrics struct {
	MetricsRegistry gometrics.Registry

	ConnectionCounter          gometrics.Counter
	ConnectionAcceptErrorMeter gometrics.Meter
	ConnectionCloseErrorMeter  gometrics.Meter

	RequestMeter map[RequestType]map[RequestStatus]gometrics.Meter
	RequestTimer map[RequestType]gometrics.Timer
	VerdictMeter map[Direction]map[Verdict]gometrics.Meter
	AuctionMeter map[AuctionKind]gometrics.Meter
	BidMeter     map[AuctionKind]gometrics.Meter
	NoBidMeter   map[AuctionKind]gometrics.Meter
	ReportsMeter gometrics.Meter
}

// NewMetrics creates a new Metrics object with every meter registered up front, so lookups
// never race with registration.
func NewMetrics(registry gometrics.Registry) *Metrics {
	m := &Metrics{
		MetricsRegistry:            registry,
		ConnectionCounter:          gometrics.GetOrRegisterCounter("active_connections", registry),
		ConnectionAcceptErrorMeter: gometrics.GetOrRegisterMeter("connection_accept_errors", registry),
		ConnectionCloseErrorMeter:  gometrics.GetOrRegisterMeter("connection_close_errors", registry),
		RequestMeter:               make(map[RequestType]map[RequestStatus]gometrics.Meter),
		RequestTimer:               make(map[RequestType]gometrics.Timer),
		VerdictMeter:               make(map[Direction]map[Verdict]gometrics.Meter),
		AuctionMeter:               make(map[AuctionKind]gometrics.Meter),
		BidMeter:                   make(map[AuctionKind]gometrics.Meter),
		NoBidMeter:                 make(map[AuctionKind]gometrics.Meter),
		ReportsMeter:               gometrics.GetOrRegisterMeter("reports.generated", registry),
	}

	for _, rt := range RequestTypes() {
		m.RequestMeter[rt] = make(map[RequestStatus]gometrics.Meter)
		for _, rs := range RequestStatuses() {
			m.RequestMeter[rt][rs] = gometrics.GetOrRegisterMeter("requests."+string(rs)+"."+string(rt), registry)
		}
		m.RequestTimer[rt] = gometrics.GetOrRegisterTimer("request_time."+string(rt), registry)
	}

	for _, d := range Directions() {
		m.VerdictMeter[d] = make(map[Verdict]gometrics.Meter)
		for _, v := range Verdicts() {
			m.VerdictMeter[d][v] = gometrics.GetOrRegisterMeter("cookies."+string(d)+"."+string(v), registry)
		}
	}

	for _, k := range AuctionKinds() {
		m.AuctionMeter[k] = gometrics.GetOrRegisterMeter("auctions."+string(k)+".reduced", registry)
		m.BidMeter[k] = gometrics.GetOrRegisterMeter("auctions."+string(k)+".received_bids", registry)
		m.NoBidMeter[k] = gometrics.GetOrRegisterMeter("auctions."+string(k)+".no_bids", registry)
	}

	return m
}

func (me *Metrics) RecordConnectionAccept(success bool) {
	if success {
		me.ConnectionCounter.Inc(1)
	} else {
		me.ConnectionAcceptErrorMeter.Mark(1)
	}
}

func (me *Metrics) RecordConnectionClose(success bool) {
	me.ConnectionCounter.Dec(1)
	if !success {
		me.ConnectionCloseErrorMeter.Mark(1)
	}
}

func (me *Metrics) RecordRequest(labels Labels) {
	if byStatus, ok := me.RequestMeter[labels.RType]; ok {
		if meter, ok := byStatus[labels.RequestStatus]; ok {
			meter.Mark(1)
		}
	}
}

func (me *Metrics) RecordRequestTime(labels Labels, length time.Duration) {
	if labels.RequestStatus != RequestStatusOK {
		return
	}
	if timer, ok := me.RequestTimer[labels.RType]; ok {
		timer.Update(length)
	}
}

func (me *Metrics) RecordCookieVerdict(direction Direction, verdict Verdict) {
	if byVerdict, ok := me.VerdictMeter[direction]; ok {
		if meter, ok := byVerdict[verdict]; ok {
			meter.Mark(1)
		}
	}
}

func (me *Metrics) RecordAuctionReduction(labels AuctionLabels) {
	if meter, ok := me.AuctionMeter[labels.Kind]; ok {
		meter.Mark(1)
		me.BidMeter[labels.Kind].Mark(int64(labels.ReceivedBids))
		me.NoBidMeter[labels.Kind].Mark(int64(labels.NoBids))
	}
}

func (me *Metrics) RecordReportGenerated() {
	me.ReportsMeter.Mark(1)
}
