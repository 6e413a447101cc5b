package report

import (
	"fmt"
	"strings"
)

// Status glyphs used in rendered blocks.
const (
	glyphCompliant    = "✅"
	glyphNonCompliant = "❌"
)

// RenderBlocks renders one plain-text block per top-level group, in group
// order. Each block is a standalone message for the delivery side to forward
// verbatim.
func RenderBlocks(res Result) []string {
	blocks := make([]string, 0, len(res.Groups))
	for _, g := range res.Groups {
		blocks = append(blocks, renderGroup(g, res.TargetRatio))
	}
	return blocks
}

func renderGroup(g GroupResult, target float64) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "📊 SLA report (3LTP), target: %.1f%%\n\n", target*100)
	if g.MacroRegion != "" {
		fmt.Fprintf(&sb, "📍 %s\n\n", g.MacroRegion)
	}

	for _, r := range g.Regions {
		if r.Region != "" {
			fmt.Fprintf(&sb, "📌 %s\n\n", r.Region)
		}
		for _, b := range r.Buckets {
			glyph := glyphCompliant
			if !b.Compliant {
				glyph = glyphNonCompliant
			}
			fmt.Fprintf(&sb, "SLA 3LTP %s\n", b.Bucket)
			fmt.Fprintf(&sb, "On time: %d\n", b.OnTime)
			fmt.Fprintf(&sb, "Total: %d\n", b.Total)
			fmt.Fprintf(&sb, "SLA: %.1f%% %s\n", b.CompliancePct, glyph)
			if !b.Compliant {
				fmt.Fprintf(&sb, "Needed to reach target: %d\n", b.Need)
			}
			sb.WriteString("\n")
		}
	}

	if g.UnrecognizedTiers > 0 {
		fmt.Fprintf(&sb, "⚠️ Rows with unrecognized tier skipped: %d\n", g.UnrecognizedTiers)
	}

	return strings.TrimRight(sb.String(), "\n")
}
