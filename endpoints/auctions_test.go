package endpoints

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/psat-tools/psat-server/metrics"
)

const singleSellerLog = `{
	"a1": [
		{"type":"configResolved","uniqueAuctionId":"a1",
		 "auctionConfig":{"interestGroupBuyers":["https://dsp-a.example","https://dsp-b.example"],
		                  "auctionSignals":{"value":"{\"divId\":\"slot-1\"}"}}},
		{"eventType":"interestGroupAccessed","type":"bid","ownerOrigin":"https://dsp-a.example","name":"shoes"}
	]
}`

const multiSellerLog = `{
	"parent": {
		"0": [
			{"type":"configResolved","uniqueAuctionId":"c1",
			 "auctionConfig":{"interestGroupBuyers":["https://dsp-a.example"]}}
		]
	}
}`

func TestAuctionBidsEndpoint(t *testing.T) {
	testCases := []struct {
		description    string
		query          string
		body           string
		expectedStatus int
		expectedBody   string
		expectedLabels metrics.Labels
	}{
		{
			description:    "single-seller",
			body:           singleSellerLog,
			expectedStatus: http.StatusOK,
			expectedBody: `{
				"receivedBids":[{"type":"bid","eventType":"interestGroupAccessed","ownerOrigin":"https://dsp-a.example","name":"shoes","adUnitCode":"slot-1"}],
				"noBids":{"a1":{"ownerOrigin":"https://dsp-b.example","name":"shoes","uniqueAuctionId":"a1","adUnitCode":"slot-1"}}
			}`,
			expectedLabels: requestLabels(metrics.ReqTypeAuctionBids, metrics.RequestStatusOK),
		},
		{
			description:    "multi-seller",
			query:          "?multiSeller=true",
			body:           multiSellerLog,
			expectedStatus: http.StatusOK,
			expectedBody: `{
				"receivedBids":[],
				"noBids":{"c1":{"ownerOrigin":"https://dsp-a.example","uniqueAuctionId":"c1"}}
			}`,
			expectedLabels: requestLabels(metrics.ReqTypeAuctionBids, metrics.RequestStatusOK),
		},
		{
			description:    "empty-log",
			query:          "?multiSeller=false",
			body:           `{}`,
			expectedStatus: http.StatusOK,
			expectedBody:   `null`,
			expectedLabels: requestLabels(metrics.ReqTypeAuctionBids, metrics.RequestStatusOK),
		},
		{
			description:    "bad-multi-seller-parameter",
			query:          "?multiSeller=maybe",
			body:           `{}`,
			expectedStatus: http.StatusBadRequest,
			expectedLabels: requestLabels(metrics.ReqTypeAuctionBids, metrics.RequestStatusBadInput),
		},
		{
			description:    "log-not-an-object",
			body:           `[1,2,3]`,
			expectedStatus: http.StatusBadRequest,
			expectedLabels: requestLabels(metrics.ReqTypeAuctionBids, metrics.RequestStatusBadInput),
		},
	}

	for _, test := range testCases {
		t.Run(test.description, func(t *testing.T) {
			me := newMetricsMock()
			handler := NewAuctionBidsEndpoint(0, me)

			req := httptest.NewRequest(http.MethodPost, "/auctions/bids"+test.query, strings.NewReader(test.body))
			rec := httptest.NewRecorder()
			handler(rec, req, nil)

			assert.Equal(t, test.expectedStatus, rec.Code)
			if test.expectedBody != "" {
				assert.JSONEq(t, test.expectedBody, rec.Body.String())
			}
			me.AssertCalled(t, "RecordRequest", test.expectedLabels)
		})
	}
}

func TestAuctionBidsEndpointRecordsReduction(t *testing.T) {
	me := newMetricsMock()
	handler := NewAuctionBidsEndpoint(0, me)

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodPost, "/auctions/bids?multiSeller=1", strings.NewReader(multiSellerLog)), nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	me.AssertCalled(t, "RecordAuctionReduction", metrics.AuctionLabels{
		Kind:   metrics.AuctionKindMultiSeller,
		NoBids: 1,
	})
}

func TestAuctionBidsEndpointSkipsEmptyReduction(t *testing.T) {
	me := newMetricsMock()
	handler := NewAuctionBidsEndpoint(0, me)

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodPost, "/auctions/bids", strings.NewReader(`null`)), nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "null", rec.Body.String())
	me.AssertNotCalled(t, "RecordAuctionReduction", mock.Anything)
}
