package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/nttm-tools/sla-server/internal/ingest"
	"github.com/nttm-tools/sla-server/internal/metrics"
	"github.com/nttm-tools/sla-server/internal/report"
)

// Required columns, exact names as exported. The grouping columns are
// optional; which of them are present decides the grouping depth.
const (
	colEligibility      = "3LTP flag"
	colTier             = "Tier"
	colCEExclusion      = "CE exclusion flag"
	colServiceExclusion = "Service exclusion flag"
	colServiceType      = "Service type"
	colViolation        = "SLA violation"
	colViolationNoWait  = "SLA violation without customer wait"
	colMacroRegion      = "Macro-region"
	colRegion           = "Region"
)

// Sentinel cell values a row must carry to be eligible.
const (
	sentinelNoCE     = "no CE flag"
	sentinelBillable = "billable services"
)

var requiredColumns = []string{
	colEligibility,
	colTier,
	colCEExclusion,
	colServiceExclusion,
	colServiceType,
	colViolation,
	colViolationNoWait,
}

// ReportService turns decoded datasets into rendered SLA report blocks.
type ReportService struct {
	targetRatio float64
	logger      *zap.Logger
}

// NewReportService creates a ReportService. Target ratios outside (0, 1)
// fall back to the default.
func NewReportService(targetRatio float64, logger *zap.Logger) *ReportService {
	if targetRatio <= 0 || targetRatio >= 1 {
		targetRatio = report.DefaultTargetRatio
	}
	if logger == nil {
		l, _ := zap.NewProduction()
		logger = l
	}
	return &ReportService{
		targetRatio: targetRatio,
		logger:      logger,
	}
}

// BuildReports runs the full pipeline for one dataset: variant check, schema
// check, eligibility filter, normalization, aggregation, rendering. All
// rejections come back as typed errors; nothing is fatal to the server.
func (s *ReportService) BuildReports(ctx context.Context, ds *ingest.Dataset, sourceName string) ([]ReportBlock, error) {
	start := time.Now()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if !ingest.HasVariantMarker(sourceName) {
		return nil, ErrUnknownVariant
	}

	if missing := missingColumns(ds); len(missing) > 0 {
		return nil, &SchemaError{Missing: missing}
	}

	metrics.RowsIngestedTotal.Add(float64(ds.Len()))

	records := eligibleRecords(ds)
	metrics.RowsEligibleTotal.Add(float64(len(records)))
	if len(records) == 0 {
		return nil, ErrEmptyResult
	}

	normalized := make([]report.NormalizedRecord, 0, len(records))
	anomalies := 0
	for _, rec := range records {
		n, anomalous := report.Normalize(rec)
		if anomalous {
			anomalies++
		}
		normalized = append(normalized, n)
	}
	if anomalies > 0 {
		metrics.ValueAnomaliesTotal.Add(float64(anomalies))
		s.logger.Warn("violation flags outside the 0/1 domain were coerced",
			zap.Int("rows", anomalies),
			zap.String("source", sourceName))
	}

	res := report.Aggregate(normalized, report.Options{
		TargetRatio: s.targetRatio,
		Levels:      groupLevels(ds),
	})
	if res.UnrecognizedTiers > 0 {
		metrics.UnrecognizedTierRowsTotal.Add(float64(res.UnrecognizedTiers))
		s.logger.Warn("rows with unrecognized tier excluded from reporting",
			zap.Int("rows", res.UnrecognizedTiers),
			zap.String("source", sourceName))
	}
	countNonCompliant(res)

	texts := report.RenderBlocks(res)
	blocks := make([]ReportBlock, len(texts))
	for i, text := range texts {
		blocks[i] = ReportBlock{
			MacroRegion: res.Groups[i].MacroRegion,
			Text:        text,
		}
	}

	metrics.ProcessingDurationSeconds.Observe(time.Since(start).Seconds())
	s.logger.Info("report built",
		zap.String("source", sourceName),
		zap.Int("rows", ds.Len()),
		zap.Int("eligible", len(records)),
		zap.Int("blocks", len(blocks)),
		zap.Duration("duration", time.Since(start)))

	return blocks, nil
}

func missingColumns(ds *ingest.Dataset) []string {
	var missing []string
	for _, col := range requiredColumns {
		if !ds.HasColumn(col) {
			missing = append(missing, col)
		}
	}
	return missing
}

// groupLevels derives the grouping depth from the optional columns present.
// Region grouping only makes sense under macro-region grouping, matching the
// export variants in the wild.
func groupLevels(ds *ingest.Dataset) report.GroupLevels {
	switch {
	case ds.HasColumn(colMacroRegion) && ds.HasColumn(colRegion):
		return report.GroupMacroRegionRegion
	case ds.HasColumn(colMacroRegion):
		return report.GroupMacroRegion
	}
	return report.GroupNone
}

// eligibleRecords applies the fixed business-eligibility filter and extracts
// the fields the core needs.
func eligibleRecords(ds *ingest.Dataset) []report.TicketRecord {
	var records []report.TicketRecord
	for i := 0; i < ds.Len(); i++ {
		if !isFlagSet(ds.Cell(i, colEligibility)) {
			continue
		}
		if strings.TrimSpace(ds.Cell(i, colCEExclusion)) != sentinelNoCE {
			continue
		}
		if strings.TrimSpace(ds.Cell(i, colServiceExclusion)) != sentinelBillable {
			continue
		}
		records = append(records, report.TicketRecord{
			Tier:               strings.TrimSpace(ds.Cell(i, colTier)),
			ServiceType:        strings.TrimSpace(ds.Cell(i, colServiceType)),
			SLAViolation:       ds.Cell(i, colViolation),
			SLAViolationNoWait: ds.Cell(i, colViolationNoWait),
			MacroRegion:        strings.TrimSpace(ds.Cell(i, colMacroRegion)),
			Region:             strings.TrimSpace(ds.Cell(i, colRegion)),
		})
	}
	return records
}

// isFlagSet reports whether a raw cell parses to the numeric value 1.
func isFlagSet(raw string) bool {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	return err == nil && v == 1
}

func countNonCompliant(res report.Result) {
	for _, g := range res.Groups {
		for _, r := range g.Regions {
			for _, b := range r.Buckets {
				if !b.Compliant {
					metrics.NonCompliantBucketsTotal.Inc()
				}
			}
		}
	}
}
