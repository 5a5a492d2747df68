package cookies

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/psat-tools/psat-server/events"
)

var eventTypes = []events.EventType{
	events.CDPRequestExtraInfo,
	events.CDPResponseExtraInfo,
	events.WebRequestHeadersSent,
	events.WebRequestResponseStarted,
}

// genNetworkEvents draws event lists with every type tag and every blocked state.
func genNetworkEvents() gopter.Gen {
	return gen.SliceOf(gen.IntRange(0, len(eventTypes)*3-1)).Map(func(codes []int) []events.NetworkEvent {
		list := make([]events.NetworkEvent, 0, len(codes))
		for _, code := range codes {
			event := events.NetworkEvent{Type: eventTypes[code/3]}
			switch code % 3 {
			case 1:
				event.Blocked = verdict(false)
			case 2:
				event.Blocked = verdict(true)
			}
			list = append(list, event)
		}
		return list
	})
}

func reversed(list []events.NetworkEvent) []events.NetworkEvent {
	out := make([]events.NetworkEvent, len(list))
	for i, event := range list {
		out[len(list)-1-i] = event
	}
	return out
}

func sameVerdict(a, b *bool) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func TestProperty_BlockingStatus(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("outbound is never unknown for recorded events", prop.ForAll(
		func(requests, responses []events.NetworkEvent) bool {
			status := DeriveBlockingStatus(&events.CookieNetworkEvents{RequestEvents: requests, ResponseEvents: responses})
			return status.OutboundBlock != nil
		},
		genNetworkEvents(),
		genNetworkEvents(),
	))

	properties.Property("non authoritative events never change the verdict", prop.ForAll(
		func(requests, responses []events.NetworkEvent, blocked bool) bool {
			base := DeriveBlockingStatus(&events.CookieNetworkEvents{RequestEvents: requests, ResponseEvents: responses})
			if len(responses) == 0 {
				// An empty response list has its own rule; keep it non-empty for this check.
				return true
			}

			noise := []events.NetworkEvent{
				{Type: events.WebRequestHeadersSent, Blocked: verdict(blocked)},
				{Type: events.WebRequestResponseStarted, Blocked: verdict(blocked)},
			}
			withNoise := DeriveBlockingStatus(&events.CookieNetworkEvents{
				RequestEvents:  append(append([]events.NetworkEvent{}, requests...), noise...),
				ResponseEvents: append(append([]events.NetworkEvent{}, noise...), responses...),
			})
			return sameVerdict(base.InboundBlock, withNoise.InboundBlock) &&
				sameVerdict(base.OutboundBlock, withNoise.OutboundBlock)
		},
		genNetworkEvents(),
		genNetworkEvents(),
		gen.Bool(),
	))

	properties.Property("event order does not matter", prop.ForAll(
		func(requests, responses []events.NetworkEvent) bool {
			forward := DeriveBlockingStatus(&events.CookieNetworkEvents{RequestEvents: requests, ResponseEvents: responses})
			backward := DeriveBlockingStatus(&events.CookieNetworkEvents{RequestEvents: reversed(requests), ResponseEvents: reversed(responses)})
			return sameVerdict(forward.InboundBlock, backward.InboundBlock) &&
				sameVerdict(forward.OutboundBlock, backward.OutboundBlock)
		},
		genNetworkEvents(),
		genNetworkEvents(),
	))

	properties.Property("inbound is blocked exactly when every authoritative response blocked", prop.ForAll(
		func(responses []events.NetworkEvent) bool {
			authoritative, blocked := 0, 0
			for _, event := range responses {
				if event.Type == events.CDPResponseExtraInfo {
					authoritative++
					if event.Blocked != nil && *event.Blocked {
						blocked++
					}
				}
			}
			status := DeriveBlockingStatus(&events.CookieNetworkEvents{ResponseEvents: responses})
			isBlocked := status.InboundBlock != nil && *status.InboundBlock
			return isBlocked == (authoritative > 0 && blocked == authoritative)
		},
		genNetworkEvents(),
	))

	properties.TestingRun(t)
}
