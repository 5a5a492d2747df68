package endpoints

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/julienschmidt/httprouter"

	"github.com/psat-tools/psat-server/auction"
	"github.com/psat-tools/psat-server/errortypes"
	"github.com/psat-tools/psat-server/metrics"
)

const multiSellerParameter = "multiSeller"

type auctionBidsEndpoint struct {
	maxRequestSize int64
	metricsEngine  metrics.MetricsEngine
}

// NewAuctionBidsEndpoint reconciles received bids and no-bids for the auction log in the
// request body. The multiSeller query parameter selects the two-level log shape.
func NewAuctionBidsEndpoint(maxRequestSize int64, me metrics.MetricsEngine) httprouter.Handle {
	e := &auctionBidsEndpoint{
		maxRequestSize: maxRequestSize,
		metricsEngine:  me,
	}
	return e.Handle
}

func (e *auctionBidsEndpoint) Handle(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	start := time.Now()
	labels := metrics.Labels{
		RType:         metrics.ReqTypeAuctionBids,
		RequestStatus: metrics.RequestStatusOK,
	}
	defer func() {
		e.metricsEngine.RecordRequest(labels)
		e.metricsEngine.RecordRequestTime(labels, time.Since(start))
	}()

	isMultiSeller, err := parseMultiSeller(r)
	if err != nil {
		writeError(w, &labels, err)
		return
	}

	data, err := readBody(w, r, e.maxRequestSize)
	if err != nil {
		writeError(w, &labels, err)
		return
	}

	result, err := auction.Compute(data, isMultiSeller)
	if err != nil {
		writeError(w, &labels, err)
		return
	}

	if result != nil {
		kind := metrics.AuctionKindSingleSeller
		if isMultiSeller {
			kind = metrics.AuctionKindMultiSeller
		}
		e.metricsEngine.RecordAuctionReduction(metrics.AuctionLabels{
			Kind:         kind,
			ReceivedBids: len(result.ReceivedBids),
			NoBids:       len(result.NoBids),
		})
	}

	writeJSON(w, &labels, http.StatusOK, result)
}

func parseMultiSeller(r *http.Request) (bool, error) {
	value := r.URL.Query().Get(multiSellerParameter)
	if value == "" {
		return false, nil
	}
	isMultiSeller, err := strconv.ParseBool(value)
	if err != nil {
		return false, &errortypes.BadInput{Message: fmt.Sprintf("%s must be true or false. Got %q", multiSellerParameter, value)}
	}
	return isMultiSeller, nil
}
