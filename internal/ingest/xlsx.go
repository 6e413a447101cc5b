package ingest

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrBadFormat marks an upload that is not a readable workbook of the
// expected shape.
var ErrBadFormat = errors.New("not a readable workbook")

// headerRow is the zero-based index of the header row. The export carries two
// title rows above it, so the header sits on the third row of the sheet.
const headerRow = 2

// ParseWorkbook decodes the first sheet of an XLSX stream into a Dataset.
// Cell values are taken as formatted strings.
func ParseWorkbook(r io.Reader) (*Dataset, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadFormat, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", ErrBadFormat)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadFormat, err)
	}
	if len(rows) <= headerRow {
		return nil, fmt.Errorf("%w: header row missing", ErrBadFormat)
	}

	return NewDataset(rows[headerRow], rows[headerRow+1:]), nil
}

// HasWorkbookExtension reports whether the source name ends in .xlsx,
// case-insensitively.
func HasWorkbookExtension(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), ".xlsx")
}

// HasVariantMarker reports whether the source name carries one of the
// recognized export markers ("dwh" or "sla"), case-insensitively.
func HasVariantMarker(name string) bool {
	lower := strings.ToLower(name)
	return strings.Contains(lower, "dwh") || strings.Contains(lower, "sla")
}
