package conversion

import "errors"

// Request errors. These describe malformed calls rather than domain rule violations.
var (
	ErrUnknownDomain = errors.New("unknown domain")
	ErrUnknownUnit   = errors.New("unknown unit")
)

// ErrorKind classifies a domain validation failure.
type ErrorKind string

const (
	KindNegativeKelvin    ErrorKind = "negative_kelvin"
	KindBelowAbsoluteZero ErrorKind = "below_absolute_zero"
	KindNegativeAmount    ErrorKind = "negative_amount"
)

// ValidationError reports a violated domain rule. Message is meant for end users.
type ValidationError struct {
	Kind    ErrorKind
	Message string
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return e.Message
}

// Is matches any ValidationError of the same kind, so wrapped copies still compare equal
// to the sentinels below.
func (e *ValidationError) Is(target error) bool {
	var ve *ValidationError
	if !errors.As(target, &ve) {
		return false
	}
	return ve.Kind == e.Kind
}

var (
	ErrNegativeKelvin = &ValidationError{
		Kind:    KindNegativeKelvin,
		Message: "Temperature in Kelvin cannot be negative",
	}
	ErrBelowAbsoluteZero = &ValidationError{
		Kind:    KindBelowAbsoluteZero,
		Message: "Resulting temperature below absolute zero",
	}
	ErrNegativeAmount = &ValidationError{
		Kind:    KindNegativeAmount,
		Message: "Amount cannot be negative",
	}
)

// AsValidationError unwraps err into a ValidationError when it is one.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
