package metrics

import (
	"time"

	"github.com/stretchr/testify/mock"
)

// MetricsEngineMock is mock for the MetricsEngine interface
type MetricsEngineMock struct {
	mock.Mock
}

// RecordConnectionAccept mock
func (me *MetricsEngineMock) RecordConnectionAccept(success bool) {
	me.Called(success)
}

// RecordConnectionClose mock
func (me *MetricsEngineMock) RecordConnectionClose(success bool) {
	me.Called(success)
}

// RecordRequest mock
func (me *MetricsEngineMock) RecordRequest(labels Labels) {
	me.Called(labels)
}

// RecordRequestTime mock
func (me *MetricsEngineMock) RecordRequestTime(labels Labels, length time.Duration) {
	me.Called(labels, length)
}

// RecordCookieVerdict mock
func (me *MetricsEngineMock) RecordCookieVerdict(direction Direction, verdict Verdict) {
	me.Called(direction, verdict)
}

// RecordAuctionReduction mock
func (me *MetricsEngineMock) RecordAuctionReduction(labels AuctionLabels) {
	me.Called(labels)
}

// RecordReportGenerated mock
func (me *MetricsEngineMock) RecordReportGenerated() {
	me.Called()
}
