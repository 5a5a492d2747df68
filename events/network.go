package events

import (
	"fmt"

	"github.com/psat-tools/psat-server/errortypes"
)

// EventType identifies the capture mechanism and direction of a cookie network event.
type EventType string

// Capture-source tags. Only the CDP extra-info tags carry reliable blocking information.
const (
	CDPRequestExtraInfo       EventType = "CDP-extra-info-request"
	CDPResponseExtraInfo      EventType = "CDP-extra-info-response"
	WebRequestHeadersSent     EventType = "webrequest-headers-sent"
	WebRequestResponseStarted EventType = "webrequest-response-started"
)

// NetworkEvent is a single request or response observation recorded for a cookie.
//
// Blocked is tri-state: nil means the capture source could not tell.
type NetworkEvent struct {
	Type      EventType `json:"type"`
	Blocked   *bool     `json:"blocked"`
	Timestamp float64   `json:"timestamp,omitempty"`
	RequestID string    `json:"requestId,omitempty"`
	URL       string    `json:"url,omitempty"`
}

// CookieNetworkEvents holds every request and response event observed for one cookie
// (name, domain and path) during a single page load.
type CookieNetworkEvents struct {
	RequestEvents  []NetworkEvent `json:"requestEvents"`
	ResponseEvents []NetworkEvent `json:"responseEvents"`
}

// Known reports whether t is one of the capture-source tags.
func (t EventType) Known() bool {
	switch t {
	case CDPRequestExtraInfo, CDPResponseExtraInfo, WebRequestHeadersSent, WebRequestResponseStarted:
		return true
	}
	return false
}

// Warnings flags events whose type tag is not a known capture source. Such events are still
// counted, just never as authoritative.
func (e *CookieNetworkEvents) Warnings() []error {
	if e == nil {
		return nil
	}
	var warnings []error
	check := func(side string, list []NetworkEvent) {
		for i, event := range list {
			if !event.Type.Known() {
				warnings = append(warnings, &errortypes.Warning{
					Message:     fmt.Sprintf("%s event %d has unknown type %q", side, i, event.Type),
					WarningCode: errortypes.UnknownEventTypeWarningCode,
				})
			}
		}
	}
	check("request", e.RequestEvents)
	check("response", e.ResponseEvents)
	return warnings
}
