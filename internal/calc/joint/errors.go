package joint

import (
	"fmt"
	"math"
)

// ValidationError reports input that violates an invariant of a fastener,
// washer, member or joint. The caller can correct the input and retry.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Msg
	}
	return e.Field + ": " + e.Msg
}

// positive is false for zero, negative, NaN and infinite values.
func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Msg: fmt.Sprintf(format, args...)}
}

// DomainComputationError reports a calculation on a joint whose state should
// have been impossible to build. It is not caused by user input.
type DomainComputationError struct {
	Op  string
	Msg string
}

func (e *DomainComputationError) Error() string {
	return e.Op + ": " + e.Msg
}
