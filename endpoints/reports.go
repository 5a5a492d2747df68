package endpoints

import (
	"fmt"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	"github.com/psat-tools/psat-server/errortypes"
	"github.com/psat-tools/psat-server/metrics"
	"github.com/psat-tools/psat-server/report"
)

// ReportStore persists generated reports for later retrieval.
type ReportStore interface {
	Save(r *report.Report)
	Get(id string) (*report.Report, bool)
}

// ReportGenerator assembles a report from a page's recorded events.
type ReportGenerator interface {
	Generate(in report.Input) (*report.Report, error)
}

type reportEndpoint struct {
	maxRequestSize int64
	generator      ReportGenerator
	store          ReportStore
	metricsEngine  metrics.MetricsEngine
}

// NewReportEndpoint generates a report from the request body, stores it and returns it with
// 201 Created.
func NewReportEndpoint(maxRequestSize int64, generator ReportGenerator, store ReportStore, me metrics.MetricsEngine) httprouter.Handle {
	e := &reportEndpoint{
		maxRequestSize: maxRequestSize,
		generator:      generator,
		store:          store,
		metricsEngine:  me,
	}
	return e.Handle
}

func (e *reportEndpoint) Handle(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	start := time.Now()
	labels := metrics.Labels{
		RType:         metrics.ReqTypeReport,
		RequestStatus: metrics.RequestStatusOK,
	}
	defer func() {
		e.metricsEngine.RecordRequest(labels)
		e.metricsEngine.RecordRequestTime(labels, time.Since(start))
	}()

	var in report.Input
	if err := decodeBody(w, r, e.maxRequestSize, &in); err != nil {
		writeError(w, &labels, err)
		return
	}

	generated, err := e.generator.Generate(in)
	if err != nil {
		writeError(w, &labels, err)
		return
	}
	e.store.Save(generated)

	w.Header().Set("Location", "/reports/"+generated.ID)
	writeJSON(w, &labels, http.StatusCreated, generated)
}

type reportFetchEndpoint struct {
	store         ReportStore
	metricsEngine metrics.MetricsEngine
}

// NewReportFetchEndpoint returns a previously generated report by id.
func NewReportFetchEndpoint(store ReportStore, me metrics.MetricsEngine) httprouter.Handle {
	e := &reportFetchEndpoint{
		store:         store,
		metricsEngine: me,
	}
	return e.Handle
}

func (e *reportFetchEndpoint) Handle(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	start := time.Now()
	labels := metrics.Labels{
		RType:         metrics.ReqTypeReportFetch,
		RequestStatus: metrics.RequestStatusOK,
	}
	defer func() {
		e.metricsEngine.RecordRequest(labels)
		e.metricsEngine.RecordRequestTime(labels, time.Since(start))
	}()

	id := ps.ByName("id")
	stored, ok := e.store.Get(id)
	if !ok {
		writeError(w, &labels, &errortypes.NotFound{Message: fmt.Sprintf("report %q does not exist or has expired", id)})
		return
	}

	writeJSON(w, &labels, http.StatusOK, stored)
}
