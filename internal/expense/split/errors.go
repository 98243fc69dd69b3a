package split

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput       = errors.New("invalid split input")
	ErrAmountMismatch     = errors.New("share amounts do not add up to the expense amount")
	ErrPercentageMismatch = errors.New("percentages must add up to 100")
	ErrEmptyShareSet      = errors.New("an expense must be split with at least one other person")
)

// InvalidInputError reports malformed calculator input.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}

func invalidInput(field, format string, args ...any) error {
	return &InvalidInputError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// ValidationKind identifies why a set of shares was rejected
type ValidationKind string

const (
	AmountMismatch     ValidationKind = "AMOUNT_MISMATCH"
	PercentageMismatch ValidationKind = "PERCENTAGE_MISMATCH"
	EmptyShareSet      ValidationKind = "EMPTY_SHARE_SET"
)

// ValidationError is returned by the Validator. Expected and Actual are minor
// units for AmountMismatch, hundredths of a percent for PercentageMismatch and
// participant counts for EmptyShareSet.
type ValidationError struct {
	Kind     ValidationKind
	Expected int64
	Actual   int64
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case AmountMismatch:
		return fmt.Sprintf("%s (expected %d, got %d minor units)", ErrAmountMismatch, e.Expected, e.Actual)
	case PercentageMismatch:
		return fmt.Sprintf("%s (got %s)", ErrPercentageMismatch, Percent(e.Actual))
	default:
		return ErrEmptyShareSet.Error()
	}
}

// Is lets callers match the package sentinels with errors.Is
func (e *ValidationError) Is(target error) bool {
	switch e.Kind {
	case AmountMismatch:
		return target == ErrAmountMismatch
	case PercentageMismatch:
		return target == ErrPercentageMismatch
	case EmptyShareSet:
		return target == ErrEmptyShareSet
	}
	return false
}
