package auction

import (
	"fmt"

	"github.com/psat-tools/psat-server/errortypes"
	"github.com/psat-tools/psat-server/events"
)

// Compute decodes a raw auction log of either shape and reduces it. A nil result with a nil
// error means the log held no auction data.
func Compute(data []byte, isMultiSeller bool) (*BidsResult, error) {
	if isMultiSeller {
		var log events.MultiSellerAuctionLog
		if err := log.UnmarshalJSON(data); err != nil {
			return nil, &errortypes.BadInput{Message: fmt.Sprintf("multi-seller auction log: %v", err)}
		}
		return ComputeMultiSellerReceivedBidsAndNoBids(&log), nil
	}

	var log events.AuctionLog
	if err := log.UnmarshalJSON(data); err != nil {
		return nil, &errortypes.BadInput{Message: fmt.Sprintf("auction log: %v", err)}
	}
	return ComputeReceivedBidsAndNoBids(&log), nil
}
