package httpapi

import (
	"context"
	"time"

	"github.com/nttm-tools/sla-server/internal/ingest"
	"github.com/nttm-tools/sla-server/internal/service"
)

// Cacher defines the cache operations the handlers rely on.
type Cacher interface {
	Close() error
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
}

// ReportBuilder turns a decoded dataset into rendered report blocks.
type ReportBuilder interface {
	BuildReports(ctx context.Context, ds *ingest.Dataset, sourceName string) ([]service.ReportBlock, error)
}
