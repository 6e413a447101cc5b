package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDatasetCellLookup(t *testing.T) {
	ds := NewDataset(
		[]string{"Tier", "Region"},
		[][]string{
			{"Platinum", "Moscow"},
			{"Gold"}, // short row
		},
	)

	assert.Equal(t, 2, ds.Len())
	assert.True(t, ds.HasColumn("Tier"))
	assert.False(t, ds.HasColumn("tier"), "column matching is case-sensitive")

	assert.Equal(t, "Platinum", ds.Cell(0, "Tier"))
	assert.Equal(t, "Moscow", ds.Cell(0, "Region"))
	assert.Equal(t, "", ds.Cell(1, "Region"), "short rows read as blank")
	assert.Equal(t, "", ds.Cell(0, "Missing"))
	assert.Equal(t, "", ds.Cell(5, "Tier"), "out of range rows read as blank")
}

func TestDatasetDuplicateColumnFirstWins(t *testing.T) {
	ds := NewDataset(
		[]string{"Tier", "Tier"},
		[][]string{{"Platinum", "Gold"}},
	)

	assert.Equal(t, "Platinum", ds.Cell(0, "Tier"))
}

func TestSourceNameChecks(t *testing.T) {
	assert.True(t, HasWorkbookExtension("export_DWH.XLSX"))
	assert.False(t, HasWorkbookExtension("export_dwh.csv"))

	assert.True(t, HasVariantMarker("weekly_DWH_export.xlsx"))
	assert.True(t, HasVariantMarker("sla-2026-08.xlsx"))
	assert.False(t, HasVariantMarker("tickets.xlsx"))
}
