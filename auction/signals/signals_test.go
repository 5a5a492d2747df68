package signals

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tidwall/gjson"

	"github.com/psat-tools/psat-server/events"
)

func field(text string) *events.SignalField {
	return &events.SignalField{Value: &text}
}

func TestParseOr(t *testing.T) {
	fallback := gjson.Parse(`{"fallback":true}`)

	testCases := []struct {
		description string
		text        *string
		want        string
	}{
		{
			description: "missing",
			want:        `{"fallback":true}`,
		},
		{
			description: "malformed",
			text:        field(`{"divId":`).Value,
			want:        `{"fallback":true}`,
		},
		{
			description: "empty string",
			text:        field("").Value,
			want:        `{"fallback":true}`,
		},
		{
			description: "valid object",
			text:        field(` {"divId":"slot-1"} `).Value,
			want:        `{"divId":"slot-1"}`,
		},
		{
			description: "valid scalar",
			text:        field(`5`).Value,
			want:        `5`,
		},
	}

	for _, test := range testCases {
		t.Run(test.description, func(t *testing.T) {
			assert.JSONEq(t, test.want, ParseOr(test.text, fallback).Raw)
		})
	}
}

func TestExtract(t *testing.T) {
	testCases := []struct {
		description  string
		config       *events.AuctionConfig
		wantAdUnit   string
		wantAdType   string
		wantSize     string
		wantNoAdUnit bool
		wantNoAdType bool
	}{
		{
			description: "auction signals with a comma separated size",
			config: &events.AuctionConfig{
				AuctionSignals: field(`{"divId":"slot-1","adType":"banner","size":"300,250"}`),
			},
			wantAdUnit: `"slot-1"`,
			wantAdType: `"banner"`,
			wantSize:   `["300","250"]`,
		},
		{
			description: "falls back to seller signals without auction signals",
			config: &events.AuctionConfig{
				SellerSignals: field(`{"divId":"slot-2"}`),
			},
			wantAdUnit:   `"slot-2"`,
			wantNoAdType: true,
		},
		{
			description: "auction signals win when they name a div",
			config: &events.AuctionConfig{
				AuctionSignals: field(`{"divId":"from-auction","adType":"video"}`),
				SellerSignals:  field(`{"divId":"from-seller","adType":"banner"}`),
			},
			wantAdUnit: `"from-auction"`,
			wantAdType: `"video"`,
		},
		{
			description: "seller signals used when auction signals lack a div",
			config: &events.AuctionConfig{
				AuctionSignals: field(`{"adType":"video"}`),
				SellerSignals:  field(`{"divId":"from-seller","adType":"banner"}`),
			},
			wantAdUnit: `"from-seller"`,
			wantAdType: `"banner"`,
		},
		{
			description: "empty div id is not enough",
			config: &events.AuctionConfig{
				AuctionSignals: field(`{"divId":"","adType":"video"}`),
				SellerSignals:  field(`{"divId":"from-seller"}`),
			},
			wantAdUnit:   `"from-seller"`,
			wantNoAdType: true,
		},
		{
			description: "ad unit member takes precedence",
			config: &events.AuctionConfig{
				SellerSignals: field(`{"divId":"outer","adUnit":{"divId":"inner","adType":"native","size":["728","90"]}}`),
			},
			wantAdUnit: `"inner"`,
			wantAdType: `"native"`,
			wantSize:   `["728","90"]`,
		},
		{
			description: "numeric size array is kept as recorded",
			config: &events.AuctionConfig{
				AuctionSignals: field(`{"divId":"slot-3","size":[300,600]}`),
			},
			wantAdUnit:   `"slot-3"`,
			wantNoAdType: true,
			wantSize:     `[300,600]`,
		},
		{
			description: "nested size array is kept as recorded",
			config: &events.AuctionConfig{
				AuctionSignals: field(`{"divId":"slot-6","size":[[300,250],[728,90]]}`),
			},
			wantAdUnit:   `"slot-6"`,
			wantNoAdType: true,
			wantSize:     `[[300,250],[728,90]]`,
		},
		{
			description: "size of an unexpected type",
			config: &events.AuctionConfig{
				AuctionSignals: field(`{"divId":"slot-4","size":300}`),
			},
			wantAdUnit:   `"slot-4"`,
			wantNoAdType: true,
		},
		{
			description: "malformed auction signals and seller signals",
			config: &events.AuctionConfig{
				AuctionSignals: field(`{"divId":"slot-5"`),
				SellerSignals:  field(`not json`),
			},
			wantNoAdUnit: true,
			wantNoAdType: true,
		},
		{
			description: "signal field without a value",
			config: &events.AuctionConfig{
				AuctionSignals: &events.SignalField{},
			},
			wantNoAdUnit: true,
			wantNoAdType: true,
		},
		{
			description:  "nil config",
			wantNoAdUnit: true,
			wantNoAdType: true,
		},
	}

	for _, test := range testCases {
		t.Run(test.description, func(t *testing.T) {
			signals := Extract(test.config)

			if test.wantNoAdUnit {
				assert.Nil(t, signals.AdUnitCode)
			} else {
				assert.JSONEq(t, test.wantAdUnit, string(signals.AdUnitCode))
			}
			if test.wantNoAdType {
				assert.Nil(t, signals.AdType)
			} else {
				assert.JSONEq(t, test.wantAdType, string(signals.AdType))
			}
			if test.wantSize == "" {
				assert.Nil(t, signals.MediaContainerSize)
			} else {
				assert.JSONEq(t, test.wantSize, string(signals.MediaContainerSize))
			}
		})
	}
}

func TestIsTruthy(t *testing.T) {
	for raw, want := range map[string]bool{
		`"x"`:   true,
		`""`:    false,
		`0`:     false,
		`-1.5`:  true,
		`true`:  true,
		`false`: false,
		`null`:  false,
		`{}`:    true,
		`[]`:    true,
	} {
		assert.Equal(t, want, isTruthy(gjson.Parse(raw)), raw)
	}
	assert.False(t, isTruthy(gjson.Parse(`{}`).Get("missing")))
}
