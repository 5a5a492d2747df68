package events

// IsAuthoritativeResponseEvent reports whether a response event comes from the CDP
// extra-info stream, the only response source that reliably reports blocking.
func IsAuthoritativeResponseEvent(event NetworkEvent) bool {
	return event.Type == CDPResponseExtraInfo
}

// IsAuthoritativeRequestEvent is the request-side counterpart of IsAuthoritativeResponseEvent.
func IsAuthoritativeRequestEvent(event NetworkEvent) bool {
	return event.Type == CDPRequestExtraInfo
}

// IsBiddingEvent reports whether an auction event is an interest group access that produced
// a bid.
func IsBiddingEvent(event AuctionEvent) bool {
	switch e := event.(type) {
	case *InterestGroupAccessedEvent:
		return e != nil && e.EventType == EventTypeInterestGroupAccessed && e.IsBid()
	case *ConfigResolvedEvent, *OtherAuctionEvent:
		return false
	default:
		return false
	}
}

// IsConfigResolvedEvent reports whether an auction event carries the resolved auction config.
func IsConfigResolvedEvent(event AuctionEvent) bool {
	switch e := event.(type) {
	case *ConfigResolvedEvent:
		return e != nil && e.Type == TypeConfigResolved
	case *InterestGroupAccessedEvent, *OtherAuctionEvent:
		return false
	default:
		return false
	}
}
