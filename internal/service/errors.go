package service

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownVariant rejects uploads whose source name carries no
	// recognized export marker.
	ErrUnknownVariant = errors.New("source name must contain 'dwh' or 'sla'")

	// ErrEmptyResult rejects datasets with no rows left after the
	// eligibility filter.
	ErrEmptyResult = errors.New("no eligible rows after filtering")
)

// SchemaError reports required columns missing from the uploaded dataset.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("missing required columns: %s", strings.Join(e.Missing, ", "))
}
