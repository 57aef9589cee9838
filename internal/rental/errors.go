package rental

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput is returned by aggregations that need at least one
	// record to produce a meaningful answer (extrema, means, best cluster).
	ErrEmptyInput = errors.New("no records in input")

	// ErrMalformedRecord matches any *MalformedRecordError via errors.Is.
	ErrMalformedRecord = errors.New("malformed record")
)

// MalformedRecordError describes a record field that failed type or range
// expectations.
type MalformedRecordError struct {
	Row    int
	Field  string
	Value  string
	Reason string
}

func (e *MalformedRecordError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("row %d: field %s: %s", e.Row, e.Field, e.Reason)
	}
	return fmt.Sprintf("row %d: field %s=%q: %s", e.Row, e.Field, e.Value, e.Reason)
}

func (e *MalformedRecordError) Is(target error) bool {
	return target == ErrMalformedRecord
}
