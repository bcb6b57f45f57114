package entity

import (
	"errors"
	"fmt"
)

// Kind separates malformed values from values of the wrong data type.
type Kind int

const (
	KindValue Kind = iota
	KindType
)

func (k Kind) String() string {
	if k == KindType {
		return "type"
	}
	return "value"
}

// ValidationError reports the first field that violated an entity invariant.
type ValidationError struct {
	Field  string
	Reason string
	Kind   Kind
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("entity: invalid %s: %s", e.Field, e.Reason)
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason, Kind: KindValue}
}

func wrongType(field, want string) error {
	return &ValidationError{Field: field, Reason: "must be " + want, Kind: KindType}
}

// NewValidationError builds a value-kind error for callers that enforce
// their own field rules, such as immutability.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason, Kind: KindValue}
}

// AsValidation unwraps err into a ValidationError.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
