package report

// Tier levels as they appear in the export.
const (
	TierPlatinum = "Platinum"
	TierGold     = "Gold"
	TierSilver   = "Silver"
	TierBronze   = "Bronze"
)

// Reporting buckets. Platinum is reported alone; the remaining recognized
// tiers are merged under Other.
const (
	BucketPlatinum = "Platinum"
	BucketOther    = "Other"
)

// ServiceTypeOTT marks tickets whose violation flag must be taken from the
// no-customer-wait column instead of the regular one.
const ServiceTypeOTT = "OTT"

// TicketRecord is one eligible row of the export, before normalization.
// Flag fields carry the raw cell values and may be blank.
type TicketRecord struct {
	Tier               string
	ServiceType        string
	SLAViolation       string
	SLAViolationNoWait string
	MacroRegion        string
	Region             string
}

// NormalizedRecord carries the effective violation flag, always exactly 0 or 1.
type NormalizedRecord struct {
	Tier        string
	MacroRegion string
	Region      string
	Violation   int
}

// TierBucket maps a tier level to its reporting bucket. ok is false for
// unrecognized levels, which belong to neither bucket.
func TierBucket(tier string) (bucket string, ok bool) {
	switch tier {
	case TierPlatinum:
		return BucketPlatinum, true
	case TierGold, TierSilver, TierBronze:
		return BucketOther, true
	}
	return "", false
}
