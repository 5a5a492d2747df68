// Package auction reconstructs which interest group buyers bid in recorded Protected
// Audience auctions and which declared buyers stayed silent.
package auction

import (
	"encoding/json"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/psat-tools/psat-server/auction/signals"
	"github.com/psat-tools/psat-server/events"
)

// ReceivedBid is a bidding event enriched with the slot context of its auction. Every field
// of the recorded event is kept.
type ReceivedBid struct {
	*events.InterestGroupAccessedEvent
	signals.Signals
}

// MarshalJSON writes the recorded event with the slot fields merged on top.
func (b ReceivedBid) MarshalJSON() ([]byte, error) {
	out := []byte("{}")
	if b.InterestGroupAccessedEvent != nil && len(b.Raw()) > 0 {
		out = append([]byte(nil), b.Raw()...)
	}

	var err error
	if out, err = setOrDelete(out, "adUnitCode", b.AdUnitCode); err != nil {
		return nil, err
	}
	if out, err = setOrDelete(out, "adType", b.AdType); err != nil {
		return nil, err
	}
	return setOrDelete(out, "mediaContainerSize", b.MediaContainerSize)
}

func setOrDelete(doc []byte, key string, value json.RawMessage) ([]byte, error) {
	if value == nil {
		return sjson.DeleteBytes(doc, key)
	}
	return sjson.SetRawBytes(doc, key, value)
}

// NoBidRecord is synthesized for a declared buyer that produced no bid.
type NoBidRecord struct {
	OwnerOrigin     string          `json:"ownerOrigin"`
	Name            string          `json:"name,omitempty"`
	UniqueAuctionID string          `json:"uniqueAuctionId"`
	AdUnitCode      json.RawMessage `json:"adUnitCode,omitempty"`
}

// BidsResult holds the bids received across a page's auctions and the no-bid records keyed
// by auction id.
type BidsResult struct {
	ReceivedBids []ReceivedBid          `json:"receivedBids"`
	NoBids       map[string]NoBidRecord `json:"noBids"`
}

// ComputeReceivedBidsAndNoBids reduces a single-seller auction log. It returns nil when the
// log is missing or has no keys, which is distinct from auctions that drew no bids.
func ComputeReceivedBidsAndNoBids(log *events.AuctionLog) *BidsResult {
	if log.Len() == 0 {
		return nil
	}

	r := newReduction()
	for _, entry := range log.Entries {
		if entry.UniqueAuctionID == events.GlobalEventsKey {
			continue
		}
		r.reduceAuction(entry.UniqueAuctionID, entry.Events, false)
	}
	return r.result
}

// ComputeMultiSellerReceivedBidsAndNoBids reduces a multi-seller auction log. Component
// auctions recorded under id "0" have their no-bid records keyed by the id the browser
// reported in the configResolved event instead.
func ComputeMultiSellerReceivedBidsAndNoBids(log *events.MultiSellerAuctionLog) *BidsResult {
	if log.Len() == 0 {
		return nil
	}

	r := newReduction()
	for _, parent := range log.Entries {
		for _, entry := range parent.Auctions.Entries {
			if entry.UniqueAuctionID == events.GlobalEventsKey {
				continue
			}
			r.reduceAuction(entry.UniqueAuctionID, entry.Events, true)
		}
	}
	return r.result
}

type reduction struct {
	// crossAuctionBuyerPool collects declared buyers from every auction reduced so far, not
	// just the current one, so a buyer declared in an earlier auction can be reported as a
	// no-bid in a later one.
	crossAuctionBuyerPool *orderedSet
	result                *BidsResult
}

func newReduction() *reduction {
	return &reduction{
		crossAuctionBuyerPool: newOrderedSet(),
		result: &BidsResult{
			ReceivedBids: make([]ReceivedBid, 0),
			NoBids:       make(map[string]NoBidRecord),
		},
	}
}

func (r *reduction) reduceAuction(auctionKey string, auctionEvents []events.AuctionEvent, remapComponentID bool) {
	config, configAuctionID := findAuctionConfig(auctionEvents)
	if config != nil {
		for _, buyer := range config.InterestGroupBuyers {
			r.crossAuctionBuyerPool.add(buyer)
		}
	}

	slot := signals.Extract(config)
	for _, event := range auctionEvents {
		if !events.IsBiddingEvent(event) {
			continue
		}
		r.result.ReceivedBids = append(r.result.ReceivedBids, ReceivedBid{
			InterestGroupAccessedEvent: event.(*events.InterestGroupAccessedEvent),
			Signals:                    slot,
		})
	}

	name := interestGroupName(auctionEvents)

	buyersWhoBid := make(map[string]struct{}, len(r.result.ReceivedBids))
	for _, bid := range r.result.ReceivedBids {
		buyersWhoBid[bid.OwnerOrigin] = struct{}{}
	}

	noBidKey := auctionKey
	if remapComponentID && auctionKey == "0" && configAuctionID != "" {
		noBidKey = configAuctionID
	}

	for _, buyer := range r.crossAuctionBuyerPool.values() {
		if _, ok := buyersWhoBid[buyer]; ok {
			continue
		}
		r.result.NoBids[noBidKey] = NoBidRecord{
			OwnerOrigin:     buyer,
			Name:            name,
			UniqueAuctionID: noBidKey,
			AdUnitCode:      slot.AdUnitCode,
		}
	}
}

// findAuctionConfig returns the config and auction id of the first configResolved event.
func findAuctionConfig(auctionEvents []events.AuctionEvent) (*events.AuctionConfig, string) {
	for _, event := range auctionEvents {
		if !events.IsConfigResolvedEvent(event) {
			continue
		}
		resolved := event.(*events.ConfigResolvedEvent)
		return resolved.AuctionConfig, resolved.UniqueAuctionID
	}
	return nil, ""
}

// interestGroupName returns the name carried by the first interestGroupAccessed event,
// whatever its type.
func interestGroupName(auctionEvents []events.AuctionEvent) string {
	for _, event := range auctionEvents {
		if event.Source() != events.EventTypeInterestGroupAccessed {
			continue
		}
		if accessed, ok := event.(*events.InterestGroupAccessedEvent); ok {
			return accessed.Name
		}
		if name := gjson.GetBytes(event.Raw(), "name"); name.Type == gjson.String {
			return name.Str
		}
		return ""
	}
	return ""
}

type orderedSet struct {
	order []string
	seen  map[string]struct{}
}

func newOrderedSet() *orderedSet {
	return &orderedSet{seen: make(map[string]struct{})}
}

func (s *orderedSet) add(value string) {
	if _, ok := s.seen[value]; ok {
		return
	}
	s.seen[value] = struct{}{}
	s.order = append(s.order, value)
}

func (s *orderedSet) values() []string {
	return s.order
}
