package endpoints

import (
	"github.com/stretchr/testify/mock"

	"github.com/psat-tools/psat-server/metrics"
)

func newMetricsMock() *metrics.MetricsEngineMock {
	me := &metrics.MetricsEngineMock{}
	me.On("RecordRequest", mock.Anything).Return()
	me.On("RecordRequestTime", mock.Anything, mock.Anything).Return()
	me.On("RecordCookieVerdict", mock.Anything, mock.Anything).Return()
	me.On("RecordAuctionReduction", mock.Anything).Return()
	me.On("RecordReportGenerated").Return()
	return me
}

func requestLabels(rType metrics.RequestType, status metrics.RequestStatus) metrics.Labels {
	return metrics.Labels{
		RType:         rType,
		RequestStatus: status,
	}
}
