// Package metrics holds the Prometheus instruments for the SLA report server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry is the application registry, exposed on /metrics.
var Registry = prometheus.NewRegistry()

var factory = promauto.With(Registry)

// UploadsTotal counts every upload attempt, accepted or not.
var UploadsTotal = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "sla",
	Name:      "uploads_total",
	Help:      "Total uploads received",
})

// RejectsTotal counts rejected uploads by rejection reason.
var RejectsTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "sla",
	Name:      "rejects_total",
	Help:      "Uploads rejected before a report was produced, by reason",
}, []string{"reason"})

// RowsIngestedTotal counts data rows seen across all processed datasets.
var RowsIngestedTotal = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "sla",
	Name:      "rows_ingested_total",
	Help:      "Data rows read from processed datasets",
})

// RowsEligibleTotal counts rows that survived the eligibility filter.
var RowsEligibleTotal = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "sla",
	Name:      "rows_eligible_total",
	Help:      "Rows that passed the eligibility filter",
})

// ValueAnomaliesTotal counts violation flags outside the 0/1 domain that had
// to be coerced.
var ValueAnomaliesTotal = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "sla",
	Name:      "value_anomalies_total",
	Help:      "Violation flag values outside {0, 1, blank} coerced during normalization",
})

// UnrecognizedTierRowsTotal counts eligible rows excluded from reporting
// because their tier is outside the recognized set.
var UnrecognizedTierRowsTotal = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "sla",
	Name:      "unrecognized_tier_rows_total",
	Help:      "Eligible rows skipped for carrying an unrecognized tier",
})

// NonCompliantBucketsTotal counts reported tier buckets below the target.
var NonCompliantBucketsTotal = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "sla",
	Name:      "non_compliant_buckets_total",
	Help:      "Reported tier buckets below the compliance target",
})

// ProcessingDurationSeconds tracks time from decoded dataset to rendered
// report blocks.
var ProcessingDurationSeconds = factory.NewHistogram(prometheus.HistogramOpts{
	Namespace: "sla",
	Name:      "processing_duration_seconds",
	Help:      "Time taken to filter, normalize, aggregate and render one dataset",
	Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5},
})
