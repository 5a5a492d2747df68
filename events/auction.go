package events

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
)

// Auction event discriminators.
const (
	EventTypeInterestGroupAccessed       = "interestGroupAccessed"
	EventTypeInterestGroupAuctionOccured = "interestGroupAuctionEventOccurred"
	EventTypeAuctionNetworkRequest       = "interestGroupAuctionNetworkRequestCreated"

	TypeConfigResolved        = "configResolved"
	TypeBid                   = "bid"
	TypeAdditionalBid         = "additionalBid"
	TypeTopLevelBid           = "topLevelBid"
	TypeTopLevelAdditionalBid = "topLevelAdditionalBid"
)

var biddingTypes = map[string]struct{}{
	TypeBid:                   {},
	TypeAdditionalBid:         {},
	TypeTopLevelBid:           {},
	TypeTopLevelAdditionalBid: {},
}

// AuctionEvent is one entry of a recorded Protected Audience auction. The concrete type is
// one of *ConfigResolvedEvent, *InterestGroupAccessedEvent or *OtherAuctionEvent.
type AuctionEvent interface {
	// Kind returns the event's "type" tag.
	Kind() string
	// Source returns the event's "eventType" tag.
	Source() string
	// Raw returns the event exactly as it was decoded.
	Raw() json.RawMessage

	auctionEvent()
}

// EventHeader carries the fields common to every auction event.
type EventHeader struct {
	Type            string
	EventType       string
	UniqueAuctionID string
	ParentAuctionID string

	raw json.RawMessage
}

func (h *EventHeader) Kind() string         { return h.Type }
func (h *EventHeader) Source() string       { return h.EventType }
func (h *EventHeader) Raw() json.RawMessage { return h.raw }
func (h *EventHeader) auctionEvent()        {}

// MarshalJSON writes the event back out unchanged.
func (h *EventHeader) MarshalJSON() ([]byte, error) {
	if len(h.raw) == 0 {
		return []byte("{}"), nil
	}
	return h.raw, nil
}

// SignalField wraps an opaque JSON-encoded signal payload.
type SignalField struct {
	Value *string
}

// Text returns the encoded payload, or nil when the field is missing.
func (f *SignalField) Text() *string {
	if f == nil {
		return nil
	}
	return f.Value
}

// AuctionConfig is the subset of a resolved auction configuration used for reconciliation.
type AuctionConfig struct {
	InterestGroupBuyers []string
	AuctionSignals      *SignalField
	SellerSignals       *SignalField
}

// ConfigResolvedEvent is emitted once the seller's auction configuration is known.
type ConfigResolvedEvent struct {
	EventHeader
	AuctionConfig *AuctionConfig
}

// InterestGroupAccessedEvent records a browser access to an interest group: joins, loads,
// bids and wins.
type InterestGroupAccessedEvent struct {
	EventHeader
	OwnerOrigin string
	Name        string
}

// IsBid reports whether the access produced a bid.
func (e *InterestGroupAccessedEvent) IsBid() bool {
	_, ok := biddingTypes[e.Type]
	return ok
}

// OtherAuctionEvent is any auction event the reducers have no special handling for.
type OtherAuctionEvent struct {
	EventHeader
}

// DecodeAuctionEvent builds the concrete AuctionEvent for a JSON object. Fields of an
// unexpected JSON type are treated as missing.
func DecodeAuctionEvent(data []byte) (AuctionEvent, error) {
	parsed := gjson.ParseBytes(data)
	if !gjson.ValidBytes(data) || !parsed.IsObject() {
		return nil, fmt.Errorf("auction event is not a JSON object: %.64s", data)
	}

	header := EventHeader{
		Type:            stringField(parsed, "type"),
		EventType:       stringField(parsed, "eventType"),
		UniqueAuctionID: stringField(parsed, "uniqueAuctionId"),
		ParentAuctionID: stringField(parsed, "parentAuctionId"),
		raw:             append(json.RawMessage(nil), data...),
	}

	switch {
	case header.Type == TypeConfigResolved:
		return &ConfigResolvedEvent{
			EventHeader:   header,
			AuctionConfig: decodeAuctionConfig(parsed.Get("auctionConfig")),
		}, nil
	case header.EventType == EventTypeInterestGroupAccessed:
		return &InterestGroupAccessedEvent{
			EventHeader: header,
			OwnerOrigin: stringField(parsed, "ownerOrigin"),
			Name:        stringField(parsed, "name"),
		}, nil
	default:
		return &OtherAuctionEvent{EventHeader: header}, nil
	}
}

func decodeAuctionConfig(config gjson.Result) *AuctionConfig {
	if !config.IsObject() {
		return nil
	}

	var buyers []string
	if list := config.Get("interestGroupBuyers"); list.IsArray() {
		for _, buyer := range list.Array() {
			if buyer.Type == gjson.String {
				buyers = append(buyers, buyer.Str)
			}
		}
	}

	return &AuctionConfig{
		InterestGroupBuyers: buyers,
		AuctionSignals:      decodeSignalField(config.Get("auctionSignals")),
		SellerSignals:       decodeSignalField(config.Get("sellerSignals")),
	}
}

func decodeSignalField(field gjson.Result) *SignalField {
	if !field.IsObject() {
		return nil
	}
	value := field.Get("value")
	if value.Type != gjson.String {
		return &SignalField{}
	}
	text := value.Str
	return &SignalField{Value: &text}
}

func stringField(obj gjson.Result, key string) string {
	if v := obj.Get(key); v.Type == gjson.String {
		return v.Str
	}
	return ""
}
