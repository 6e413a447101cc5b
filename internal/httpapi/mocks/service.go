package mocks

import (
	"context"
	"errors"

	"github.com/nttm-tools/sla-server/internal/ingest"
	"github.com/nttm-tools/sla-server/internal/service"
)

// MockReportBuilder is a mock implementation of the ReportBuilder interface
// for testing the HTTP layer.
type MockReportBuilder struct {
	BuildReportsFunc func(ctx context.Context, ds *ingest.Dataset, sourceName string) ([]service.ReportBlock, error)
	Calls            int
}

// BuildReports implements the ReportBuilder interface.
func (m *MockReportBuilder) BuildReports(ctx context.Context, ds *ingest.Dataset, sourceName string) ([]service.ReportBlock, error) {
	m.Calls++
	if m.BuildReportsFunc != nil {
		return m.BuildReportsFunc(ctx, ds, sourceName)
	}
	return nil, errors.New("BuildReportsFunc not implemented")
}
