package report

import "math"

// DefaultTargetRatio is the contractual compliance threshold tickets must
// collectively meet.
const DefaultTargetRatio = 0.87

// GroupLevels selects how many grouping dimensions sit above the tier-bucket
// split.
type GroupLevels int

const (
	// GroupNone reports a single implicit "all" group.
	GroupNone GroupLevels = iota
	// GroupMacroRegion reports one group per macro-region.
	GroupMacroRegion
	// GroupMacroRegionRegion nests regions under macro-regions.
	GroupMacroRegionRegion
)

// Options configures a single aggregation run.
type Options struct {
	// TargetRatio in (0, 1); DefaultTargetRatio when zero.
	TargetRatio float64
	Levels      GroupLevels
}

// BucketResult is the computed compliance state of one tier bucket.
type BucketResult struct {
	Bucket        string  `json:"bucket"`
	Total         int     `json:"total"`
	OnTime        int     `json:"on_time"`
	CompliancePct float64 `json:"compliance_pct"`
	Compliant     bool    `json:"compliant"`
	// Need is the minimum number of additional on-time tickets, counted in
	// both the numerator and the denominator, required to reach the target.
	// Zero when compliant.
	Need int `json:"need,omitempty"`
}

// RegionResult holds the tier buckets of one second-level grouping key.
// Region is empty when region grouping is not active.
type RegionResult struct {
	Region  string         `json:"region,omitempty"`
	Buckets []BucketResult `json:"buckets"`
}

// GroupResult is one top-level reporting group, rendered as an independent
// block. MacroRegion is empty for the implicit "all" group.
type GroupResult struct {
	MacroRegion       string         `json:"macro_region,omitempty"`
	Regions           []RegionResult `json:"regions"`
	UnrecognizedTiers int            `json:"unrecognized_tiers,omitempty"`
}

// Result is the outcome of one aggregation run.
type Result struct {
	TargetRatio       float64       `json:"target_ratio"`
	Groups            []GroupResult `json:"groups"`
	UnrecognizedTiers int           `json:"unrecognized_tiers,omitempty"`
}

type tally struct {
	total  int
	onTime int
}

type regionTally struct {
	key          string
	buckets      map[string]*tally
	unrecognized int
}

type groupTally struct {
	key     string
	regions []*regionTally
	index   map[string]*regionTally
}

// Aggregate partitions records by grouping key and tier bucket and computes
// per-bucket compliance against the target ratio. Groups are emitted in
// first-seen record order so output is deterministic for a given input.
// Records whose tier is outside the recognized set are counted as
// unrecognized and excluded from both buckets.
func Aggregate(records []NormalizedRecord, opts Options) Result {
	target := opts.TargetRatio
	if target <= 0 || target >= 1 {
		target = DefaultTargetRatio
	}

	var groups []*groupTally
	index := make(map[string]*groupTally)

	for _, rec := range records {
		groupKey, regionKey := "", ""
		switch opts.Levels {
		case GroupMacroRegion:
			groupKey = rec.MacroRegion
		case GroupMacroRegionRegion:
			groupKey = rec.MacroRegion
			regionKey = rec.Region
		}

		g, seen := index[groupKey]
		if !seen {
			g = &groupTally{key: groupKey, index: make(map[string]*regionTally)}
			index[groupKey] = g
			groups = append(groups, g)
		}
		r, seen := g.index[regionKey]
		if !seen {
			r = &regionTally{
				key: regionKey,
				buckets: map[string]*tally{
					BucketPlatinum: {},
					BucketOther:    {},
				},
			}
			g.index[regionKey] = r
			g.regions = append(g.regions, r)
		}

		bucket, ok := TierBucket(rec.Tier)
		if !ok {
			r.unrecognized++
			continue
		}
		t := r.buckets[bucket]
		t.total++
		if rec.Violation == 0 {
			t.onTime++
		}
	}

	res := Result{TargetRatio: target}
	for _, g := range groups {
		gr := GroupResult{MacroRegion: g.key}
		for _, r := range g.regions {
			rr := RegionResult{Region: r.key}
			for _, bucket := range []string{BucketPlatinum, BucketOther} {
				rr.Buckets = append(rr.Buckets, computeBucket(bucket, *r.buckets[bucket], target))
			}
			gr.UnrecognizedTiers += r.unrecognized
			gr.Regions = append(gr.Regions, rr)
		}
		res.UnrecognizedTiers += gr.UnrecognizedTiers
		res.Groups = append(res.Groups, gr)
	}
	return res
}

// computeBucket derives the compliance state of one tier bucket. An empty
// bucket trivially satisfies the target: 100%, compliant, nothing needed.
func computeBucket(name string, t tally, target float64) BucketResult {
	r := BucketResult{Bucket: name, Total: t.total, OnTime: t.onTime}
	if t.total == 0 {
		r.CompliancePct = 100.0
		r.Compliant = true
		return r
	}

	r.CompliancePct = math.Round(float64(t.onTime)/float64(t.total)*1000) / 10

	minRequired := ceilTol(target * float64(t.total))
	if t.onTime >= minRequired {
		r.Compliant = true
		return r
	}

	// Minimum k >= 0 with (onTime+k)/(total+k) >= target. Added tickets grow
	// both the numerator and the denominator.
	r.Need = ceilTol((target*float64(t.total) - float64(t.onTime)) / (1 - target))
	return r
}

// ceilTol rounds up while tolerating float artifacts on exact products:
// 0.87 * 100 must require 87 on-time tickets, not 88.
func ceilTol(v float64) int {
	return int(math.Ceil(v - 1e-9))
}
