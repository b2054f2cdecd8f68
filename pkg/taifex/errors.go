package taifex

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSchemaMismatch matches any *SchemaMismatchError through errors.Is.
var ErrSchemaMismatch = errors.New("taifex: feed schema mismatch")

// AcquisitionError reports a non-2xx response from an upstream endpoint.
type AcquisitionError struct {
	URL        string
	StatusCode int
}

func (e *AcquisitionError) Error() string {
	return fmt.Sprintf("taifex: http status %d: %s", e.StatusCode, e.URL)
}

// SchemaMismatchError means required bulk feed columns could not be resolved,
// which usually signals that the upstream layout changed.
type SchemaMismatchError struct {
	Missing []string
	Header  []string
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("taifex: unresolved feed fields [%s] in header [%s]",
		strings.Join(e.Missing, ", "), strings.Join(e.Header, ", "))
}

func (e *SchemaMismatchError) Is(target error) bool {
	return target == ErrSchemaMismatch
}
