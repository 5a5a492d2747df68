package endpoints

import (
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	"github.com/psat-tools/psat-server/cookies"
	"github.com/psat-tools/psat-server/events"
	"github.com/psat-tools/psat-server/metrics"
)

type blockingStatusRequest struct {
	Cookies map[string]*events.CookieNetworkEvents `json:"cookies"`
}

type blockingStatusEndpoint struct {
	maxRequestSize int64
	metricsEngine  metrics.MetricsEngine
}

// NewBlockingStatusEndpoint derives the blocking status of every cookie in the request body.
func NewBlockingStatusEndpoint(maxRequestSize int64, me metrics.MetricsEngine) httprouter.Handle {
	e := &blockingStatusEndpoint{
		maxRequestSize: maxRequestSize,
		metricsEngine:  me,
	}
	return e.Handle
}

func (e *blockingStatusEndpoint) Handle(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	start := time.Now()
	labels := metrics.Labels{
		RType:         metrics.ReqTypeBlockingStatus,
		RequestStatus: metrics.RequestStatusOK,
	}
	defer func() {
		e.metricsEngine.RecordRequest(labels)
		e.metricsEngine.RecordRequestTime(labels, time.Since(start))
	}()

	var req blockingStatusRequest
	if err := decodeBody(w, r, e.maxRequestSize, &req); err != nil {
		writeError(w, &labels, err)
		return
	}

	response := make(map[string]cookies.BlockingStatus, len(req.Cookies))
	for key, networkEvents := range req.Cookies {
		status := cookies.DeriveBlockingStatus(networkEvents)
		e.metricsEngine.RecordCookieVerdict(metrics.DirectionInbound, metrics.VerdictOf(status.InboundBlock))
		e.metricsEngine.RecordCookieVerdict(metrics.DirectionOutbound, metrics.VerdictOf(status.OutboundBlock))
		response[key] = status
	}

	writeJSON(w, &labels, http.StatusOK, response)
}
