package report

import (
	"strconv"
	"strings"
)

// Normalize decides the effective SLA-violation flag for a single record.
//
// OTT tickets take their flag from the no-customer-wait column: 1 when that
// column is exactly 1, 0 otherwise. Every other ticket uses its own violation
// column, with blank or unparseable values coerced to 1 — missing data is
// never assumed compliant.
//
// anomalous reports a numeric value outside {0, 1} in the column that decided
// the flag. The value is still coerced into the 0/1 domain; the caller is
// expected to surface the count instead of swallowing it.
func Normalize(rec TicketRecord) (out NormalizedRecord, anomalous bool) {
	out = NormalizedRecord{
		Tier:        rec.Tier,
		MacroRegion: rec.MacroRegion,
		Region:      rec.Region,
	}

	if rec.ServiceType == ServiceTypeOTT {
		v, ok := parseFlag(rec.SLAViolationNoWait)
		if ok && v == 1 {
			out.Violation = 1
		} else {
			out.Violation = 0
		}
		anomalous = ok && v != 0 && v != 1
		return out, anomalous
	}

	v, ok := parseFlag(rec.SLAViolation)
	if !ok {
		out.Violation = 1
		return out, false
	}
	switch v {
	case 0:
		out.Violation = 0
	case 1:
		out.Violation = 1
	default:
		out.Violation = 1
		anomalous = true
	}
	return out, anomalous
}

// parseFlag parses a raw cell as a number. ok is false for blank or
// non-numeric cells.
func parseFlag(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
