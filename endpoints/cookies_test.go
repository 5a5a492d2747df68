package endpoints

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/psat-tools/psat-server/metrics"
)

func TestBlockingStatusEndpoint(t *testing.T) {
	testCases := []struct {
		description    string
		body           string
		maxSize        int64
		expectedStatus int
		expectedBody   string
		expectedLabels metrics.Labels
	}{
		{
			description: "mixed-cookies",
			body: `{"cookies":{
				"sidexample.com/": {
					"requestEvents":[{"type":"CDP-extra-info-request","blocked":true}],
					"responseEvents":[{"type":"CDP-extra-info-response","blocked":true}]},
				"prefexample.com/": {
					"requestEvents":[{"type":"webrequest-headers-sent","blocked":true}],
					"responseEvents":[{"type":"webrequest-response-started"}]},
				"gone": null
			}}`,
			expectedStatus: http.StatusOK,
			expectedBody: `{
				"sidexample.com/": {"inboundBlock":true,"outboundBlock":true},
				"prefexample.com/": {"inboundBlock":null,"outboundBlock":false},
				"gone": {"inboundBlock":null,"outboundBlock":null}
			}`,
			expectedLabels: requestLabels(metrics.ReqTypeBlockingStatus, metrics.RequestStatusOK),
		},
		{
			description:    "no-cookies",
			body:           `{}`,
			expectedStatus: http.StatusOK,
			expectedBody:   `{}`,
			expectedLabels: requestLabels(metrics.ReqTypeBlockingStatus, metrics.RequestStatusOK),
		},
		{
			description:    "malformed-json",
			body:           `{"cookies":`,
			expectedStatus: http.StatusBadRequest,
			expectedLabels: requestLabels(metrics.ReqTypeBlockingStatus, metrics.RequestStatusBadInput),
		},
		{
			description:    "wrong-shape",
			body:           `{"cookies":[1,2]}`,
			expectedStatus: http.StatusBadRequest,
			expectedLabels: requestLabels(metrics.ReqTypeBlockingStatus, metrics.RequestStatusBadInput),
		},
		{
			description:    "empty-body",
			body:           ``,
			expectedStatus: http.StatusBadRequest,
			expectedLabels: requestLabels(metrics.ReqTypeBlockingStatus, metrics.RequestStatusBadInput),
		},
		{
			description:    "too-large",
			body:           `{"cookies":{}}`,
			maxSize:        4,
			expectedStatus: http.StatusRequestEntityTooLarge,
			expectedLabels: requestLabels(metrics.ReqTypeBlockingStatus, metrics.RequestStatusBadInput),
		},
	}

	for _, test := range testCases {
		t.Run(test.description, func(t *testing.T) {
			me := newMetricsMock()
			handler := NewBlockingStatusEndpoint(test.maxSize, me)

			req := httptest.NewRequest(http.MethodPost, "/cookies/blocking-status", strings.NewReader(test.body))
			rec := httptest.NewRecorder()
			handler(rec, req, nil)

			assert.Equal(t, test.expectedStatus, rec.Code)
			if test.expectedBody != "" {
				assert.JSONEq(t, test.expectedBody, rec.Body.String())
				assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			}
			me.AssertCalled(t, "RecordRequest", test.expectedLabels)
		})
	}
}

func TestBlockingStatusEndpointRecordsVerdicts(t *testing.T) {
	me := newMetricsMock()
	handler := NewBlockingStatusEndpoint(0, me)

	body := `{"cookies":{"a":{"requestEvents":[],"responseEvents":[]}}}`
	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodPost, "/cookies/blocking-status", strings.NewReader(body)), nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	me.AssertCalled(t, "RecordCookieVerdict", metrics.DirectionInbound, metrics.VerdictNotBlocked)
	me.AssertCalled(t, "RecordCookieVerdict", metrics.DirectionOutbound, metrics.VerdictNotBlocked)
	me.AssertNumberOfCalls(t, "RecordCookieVerdict", 2)
}
