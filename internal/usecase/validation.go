package usecase

import (
	"errors"
	"sort"
	"strings"

	"github.com/juju/clock"
)

var ErrValidation = errors.New("validation failed")

// Violations maps a request field to the reason it was rejected.
type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

func (v Violations) required(field, value string) {
	if strings.TrimSpace(value) == "" {
		v[field] = "required"
	}
}

// Err returns nil when there are no violations.
func (v Violations) Err() error {
	if v.Empty() {
		return nil
	}
	return &ValidationError{Violations: v}
}

// ValidationError matches ErrValidation with errors.Is.
type ValidationError struct {
	Violations Violations
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Violations))
	for f := range e.Violations {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+"="+e.Violations[f])
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, ", ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// optionalString trims s and turns blank input into nil.
func optionalString(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func orWallClock(clk clock.Clock) clock.Clock {
	if clk == nil {
		return clock.WallClock
	}
	return clk
}
