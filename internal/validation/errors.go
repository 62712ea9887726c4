// Package validation holds the atomic field validators shared by the forms: phone numbers,
// Kenyan ID numbers, dates of birth, PINs, verification codes, passwords and money amounts.
//
// Validators return either a normalized value or an *Error carrying a Kind and the
// user-facing message. They have no dependencies on request handling or persistence.
package validation

import (
	"errors"
	"fmt"
)

// Kind classifies a validation failure. Every kind is recoverable by resubmitting the form.
type Kind string

const (
	// KindFormat covers regex, length, type and required-field mismatches.
	KindFormat Kind = "format"
	// KindRange covers amounts and ages outside their bound.
	KindRange Kind = "range"
	// KindConsistency covers confirmation pairs that differ.
	KindConsistency Kind = "consistency"
	// KindUniqueness covers values already registered to another user.
	KindUniqueness Kind = "uniqueness"
	// KindStateConflict covers account state that forbids the operation.
	KindStateConflict Kind = "state_conflict"
	// KindCredential covers a wrong current PIN or password.
	KindCredential Kind = "credential"
	// KindWeakness covers blacklisted PINs and weak passwords.
	KindWeakness Kind = "weakness"
)

// Error is a single validation failure.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Errorf returns an *Error of the given kind.
func Errorf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// AsError returns err as an *Error. Any other error becomes a KindFormat error with its text.
func AsError(err error) *Error {
	if err == nil {
		return nil
	}
	var ve *Error
	if errors.As(err, &ve) {
		return ve
	}
	return &Error{Kind: KindFormat, Message: err.Error()}
}
