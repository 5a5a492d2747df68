package metrics

import "time"

// Labels defines the labels that can be attached to request metrics.
type Labels struct {
	RType         RequestType
	RequestStatus RequestStatus
}

// RequestType : Request type enumeration
type RequestType string

// The request types (endpoints)
const (
	ReqTypeBlockingStatus RequestType = "blocking_status"
	ReqTypeAuctionBids    RequestType = "auction_bids"
	ReqTypeReport         RequestType = "report"
	ReqTypeReportFetch    RequestType = "report_fetch"
)

func RequestTypes() []RequestType {
	return []RequestType{
		ReqTypeBlockingStatus,
		ReqTypeAuctionBids,
		ReqTypeReport,
		ReqTypeReportFetch,
	}
}

// RequestStatus : The request return status
type RequestStatus string

// Request/return status
const (
	RequestStatusOK       RequestStatus = "ok"
	RequestStatusBadInput RequestStatus = "badinput"
	RequestStatusNotFound RequestStatus = "notfound"
	RequestStatusErr      RequestStatus = "err"
)

func RequestStatuses() []RequestStatus {
	return []RequestStatus{
		RequestStatusOK,
		RequestStatusBadInput,
		RequestStatusNotFound,
		RequestStatusErr,
	}
}

// Direction is the side of a cookie exchange a blocking verdict applies to.
type Direction string

const (
	DirectionInbound  Direction = "inbound"
	DirectionOutbound Direction = "outbound"
)

func Directions() []Direction {
	return []Direction{
		DirectionInbound,
		DirectionOutbound,
	}
}

// Verdict is a tri-state blocking outcome.
type Verdict string

const (
	VerdictBlocked    Verdict = "blocked"
	VerdictNotBlocked Verdict = "not_blocked"
	VerdictUnknown    Verdict = "unknown"
)

func Verdicts() []Verdict {
	return []Verdict{
		VerdictBlocked,
		VerdictNotBlocked,
		VerdictUnknown,
	}
}

// VerdictOf maps a tri-state blocked flag to its Verdict.
func VerdictOf(blocked *bool) Verdict {
	switch {
	case blocked == nil:
		return VerdictUnknown
	case *blocked:
		return VerdictBlocked
	default:
		return VerdictNotBlocked
	}
}

// AuctionKind tells single-seller and multi-seller reductions apart.
type AuctionKind string

const (
	AuctionKindSingleSeller AuctionKind = "single_seller"
	AuctionKindMultiSeller  AuctionKind = "multi_seller"
)

func AuctionKinds() []AuctionKind {
	return []AuctionKind{
		AuctionKindSingleSeller,
		AuctionKindMultiSeller,
	}
}

// AuctionLabels describes the outcome of one bid reconciliation.
type AuctionLabels struct {
	Kind         AuctionKind
	ReceivedBids int
	NoBids       int
}

// MetricsEngine is a generic interface to record metrics into the desired backend.
// Implementations must be safe for concurrent use.
type MetricsEngine interface {
	RecordConnectionAccept(success bool)
	RecordConnectionClose(success bool)
	RecordRequest(labels Labels)
	RecordRequestTime(labels Labels, length time.Duration)
	RecordCookieVerdict(direction Direction, verdict Verdict)
	RecordAuctionReduction(labels AuctionLabels)
	RecordReportGenerated()
}
