// Package report assembles the per-page analysis report from recorded cookie and auction
// events.
package report

import (
	"fmt"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/psat-tools/psat-server/auction"
	"github.com/psat-tools/psat-server/cookies"
	"github.com/psat-tools/psat-server/errortypes"
	"github.com/psat-tools/psat-server/events"
	"github.com/psat-tools/psat-server/metrics"
	"github.com/psat-tools/psat-server/util/uuidutil"
)

// Input is everything the capture layer collected for one page load.
type Input struct {
	PageURL             string                        `json:"pageUrl"`
	Cookies             []CookieInput                 `json:"cookies"`
	Auctions            *events.AuctionLog            `json:"auctionEvents,omitempty"`
	MultiSellerAuctions *events.MultiSellerAuctionLog `json:"multiSellerAuctionEvents,omitempty"`
}

// CookieInput is one cookie and the network events recorded for it.
type CookieInput struct {
	cookies.Key
	NetworkEvents *events.CookieNetworkEvents `json:"networkEvents,omitempty"`
}

// CookieEntry is one row of the report's cookie table.
type CookieEntry struct {
	Key            string                 `json:"key"`
	Name           string                 `json:"name"`
	Domain         string                 `json:"domain"`
	Path           string                 `json:"path"`
	FirstParty     bool                   `json:"isFirstParty"`
	BlockingStatus cookies.BlockingStatus `json:"blockingStatus"`
}

// CookieCounts summarises the cookie table.
type CookieCounts struct {
	Total           int `json:"total"`
	FirstParty      int `json:"firstParty"`
	ThirdParty      int `json:"thirdParty"`
	InboundBlocked  int `json:"inboundBlocked"`
	OutboundBlocked int `json:"outboundBlocked"`
	Unknown         int `json:"unknown"`
}

// Report is the analysis of one page load. Auction results are nil when no auction data
// was recorded.
type Report struct {
	ID                  string              `json:"id"`
	GeneratedAt         time.Time           `json:"generatedAt"`
	PageURL             string              `json:"pageUrl"`
	Cookies             []CookieEntry       `json:"cookies"`
	CookieCounts        CookieCounts        `json:"cookieCounts"`
	Auctions            *auction.BidsResult `json:"auctions"`
	MultiSellerAuctions *auction.BidsResult `json:"multiSellerAuctions"`
	Warnings            []string            `json:"warnings,omitempty"`
}

// Generator builds reports. It is safe for concurrent use.
type Generator struct {
	clock         clock.Clock
	uuidGenerator uuidutil.UUIDGenerator
	metrics       metrics.MetricsEngine
}

// NewGenerator returns a Generator stamping reports with times from clk and ids from
// uuidGenerator.
func NewGenerator(clk clock.Clock, uuidGenerator uuidutil.UUIDGenerator, me metrics.MetricsEngine) *Generator {
	return &Generator{
		clock:         clk,
		uuidGenerator: uuidGenerator,
		metrics:       me,
	}
}

// Generate runs both reductions over the input and assembles the report.
func (g *Generator) Generate(in Input) (*Report, error) {
	id, err := g.uuidGenerator.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate report id: %v", err)
	}

	report := &Report{
		ID:          id,
		GeneratedAt: g.clock.Now().UTC(),
		PageURL:     in.PageURL,
		Cookies:     make([]CookieEntry, 0, len(in.Cookies)),
	}

	for _, cookie := range in.Cookies {
		entry := CookieEntry{
			Key:            cookie.Key.String(),
			Name:           cookie.Name,
			Domain:         cookie.Domain,
			Path:           cookie.Path,
			FirstParty:     cookies.IsFirstParty(cookie.Domain, in.PageURL),
			BlockingStatus: cookies.DeriveBlockingStatus(cookie.NetworkEvents),
		}
		report.Cookies = append(report.Cookies, entry)
		report.CookieCounts.add(entry)
		g.recordVerdicts(entry.BlockingStatus)
		report.addWarnings("cookie "+entry.Key+": ", cookie.NetworkEvents.Warnings())
	}
	if in.Auctions != nil {
		report.addWarnings("", in.Auctions.Warnings)
	}
	report.addWarnings("", in.MultiSellerAuctions.Warnings())

	report.Auctions = auction.ComputeReceivedBidsAndNoBids(in.Auctions)
	g.recordAuction(metrics.AuctionKindSingleSeller, report.Auctions)
	report.MultiSellerAuctions = auction.ComputeMultiSellerReceivedBidsAndNoBids(in.MultiSellerAuctions)
	g.recordAuction(metrics.AuctionKindMultiSeller, report.MultiSellerAuctions)

	g.metrics.RecordReportGenerated()
	return report, nil
}

func (r *Report) addWarnings(prefix string, warnings []error) {
	for _, w := range errortypes.WarningOnly(warnings) {
		r.Warnings = append(r.Warnings, prefix+w.Error())
	}
}

func (c *CookieCounts) add(entry CookieEntry) {
	c.Total++
	if entry.FirstParty {
		c.FirstParty++
	} else {
		c.ThirdParty++
	}

	status := entry.BlockingStatus
	if status.InboundBlock != nil && *status.InboundBlock {
		c.InboundBlocked++
	}
	if status.OutboundBlock != nil && *status.OutboundBlock {
		c.OutboundBlocked++
	}
	if status.InboundBlock == nil || status.OutboundBlock == nil {
		c.Unknown++
	}
}

func (g *Generator) recordVerdicts(status cookies.BlockingStatus) {
	g.metrics.RecordCookieVerdict(metrics.DirectionInbound, metrics.VerdictOf(status.InboundBlock))
	g.metrics.RecordCookieVerdict(metrics.DirectionOutbound, metrics.VerdictOf(status.OutboundBlock))
}

func (g *Generator) recordAuction(kind metrics.AuctionKind, result *auction.BidsResult) {
	if result == nil {
		return
	}
	g.metrics.RecordAuctionReduction(metrics.AuctionLabels{
		Kind:         kind,
		ReceivedBids: len(result.ReceivedBids),
		NoBids:       len(result.NoBids),
	})
}
