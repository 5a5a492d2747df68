package cookies

import "github.com/psat-tools/psat-server/events"

// BlockingStatus is the tri-state verdict for one cookie. A nil field means the recorded
// events could not settle whether the cookie was blocked in that direction.
type BlockingStatus struct {
	InboundBlock  *bool `json:"inboundBlock"`
	OutboundBlock *bool `json:"outboundBlock"`
}

// DeriveBlockingStatus reduces the network events recorded for a cookie to its blocking
// status. Only CDP extra-info events are counted.
//
// Inbound (Set-Cookie on responses) is true only when every authoritative response blocked
// the cookie, and unknown when they disagree. Outbound (Cookie on requests) is true as soon
// as any authoritative request blocked it.
func DeriveBlockingStatus(networkEvents *events.CookieNetworkEvents) BlockingStatus {
	if networkEvents == nil {
		return BlockingStatus{}
	}

	return BlockingStatus{
		InboundBlock:  inboundBlock(networkEvents.ResponseEvents),
		OutboundBlock: outboundBlock(networkEvents.RequestEvents),
	}
}

func inboundBlock(responseEvents []events.NetworkEvent) *bool {
	// Cookie was set on an earlier visit and no response touched it on this one.
	if len(responseEvents) == 0 {
		return verdict(false)
	}

	authoritative, blocked := countBlocked(responseEvents, events.IsAuthoritativeResponseEvent)
	switch {
	case authoritative == 0:
		return nil
	case blocked == 0:
		return verdict(false)
	case blocked < authoritative:
		// Blocked on some responses only, e.g. set with different attributes across redirects.
		return nil
	default:
		return verdict(true)
	}
}

func outboundBlock(requestEvents []events.NetworkEvent) *bool {
	_, blocked := countBlocked(requestEvents, events.IsAuthoritativeRequestEvent)
	return verdict(blocked > 0)
}

func countBlocked(networkEvents []events.NetworkEvent, isAuthoritative func(events.NetworkEvent) bool) (authoritative, blocked int) {
	for _, event := range networkEvents {
		if !isAuthoritative(event) {
			continue
		}
		authoritative++
		if event.Blocked != nil && *event.Blocked {
			blocked++
		}
	}
	return authoritative, blocked
}

func verdict(b bool) *bool {
	return &b
}
