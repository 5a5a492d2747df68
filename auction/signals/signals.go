// Package signals recovers the page slot an auction was run for from the opaque signal
// payloads attached to its configuration.
package signals

import (
	"encoding/json"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/psat-tools/psat-server/events"
)

var emptyObject = gjson.Parse("{}")

// Signals is the slot context correlated with a bid. Each field is nil when the signals
// did not carry it. AdUnitCode and AdType hold the raw JSON value, usually a string.
// MediaContainerSize is an array: a size array is kept as recorded, a comma separated
// size string is split into an array of strings.
type Signals struct {
	AdUnitCode         json.RawMessage `json:"adUnitCode,omitempty"`
	AdType             json.RawMessage `json:"adType,omitempty"`
	MediaContainerSize json.RawMessage `json:"mediaContainerSize,omitempty"`
}

// ParseOr parses text as JSON, returning fallback when text is missing or malformed.
func ParseOr(text *string, fallback gjson.Result) gjson.Result {
	if text == nil || !gjson.Valid(*text) {
		return fallback
	}
	return gjson.Parse(*text)
}

// Extract reads the ad unit code, ad type and media size out of an auction config.
//
// auctionSignals is used when it names a divId, otherwise sellerSignals. Within the chosen
// payload an "adUnit" member takes precedence over the top-level fields.
func Extract(config *events.AuctionConfig) Signals {
	var auctionText, sellerText *string
	if config != nil {
		auctionText = config.AuctionSignals.Text()
		sellerText = config.SellerSignals.Text()
	}

	chosen := ParseOr(auctionText, emptyObject)
	if !isTruthy(chosen.Get("divId")) {
		chosen = ParseOr(sellerText, emptyObject)
	}

	effective := chosen
	if adUnit := chosen.Get("adUnit"); adUnit.Exists() && adUnit.Type != gjson.Null {
		effective = adUnit
	}

	return Signals{
		AdUnitCode:         rawValue(effective.Get("divId")),
		AdType:             rawValue(effective.Get("adType")),
		MediaContainerSize: mediaContainerSize(effective.Get("size")),
	}
}

func mediaContainerSize(size gjson.Result) json.RawMessage {
	switch {
	case size.IsArray():
		return json.RawMessage(size.Raw)
	case size.Type == gjson.String:
		dimensions, err := json.Marshal(strings.Split(size.Str, ","))
		if err != nil {
			return nil
		}
		return dimensions
	default:
		return nil
	}
}

func rawValue(value gjson.Result) json.RawMessage {
	if !value.Exists() {
		return nil
	}
	return json.RawMessage(value.Raw)
}

// isTruthy applies JavaScript truthiness to a JSON value.
func isTruthy(value gjson.Result) bool {
	switch value.Type {
	case gjson.True, gjson.JSON:
		return true
	case gjson.String:
		return value.Str != ""
	case gjson.Number:
		return value.Num != 0
	default:
		return false
	}
}
