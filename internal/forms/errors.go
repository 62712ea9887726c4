package forms

import (
	"errors"
	"strings"

	"mpesa-forms/backend/internal/validation"
)

// NonFieldErrors is the field key for errors that belong to the form as a whole.
const NonFieldErrors = "__all__"

// FieldError is one validation failure attached to a field (or to NonFieldErrors).
type FieldError struct {
	Field   string          `json:"field"`
	Kind    validation.Kind `json:"kind"`
	Message string          `json:"message"`
}

// Errors is the full list of validation failures for one submission, in field order.
type Errors []FieldError

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return "forms: invalid submission: " + strings.Join(parts, "; ")
}

func (e Errors) add(field string, ve *validation.Error) Errors {
	return append(e, FieldError{Field: field, Kind: ve.Kind, Message: ve.Message})
}

// Field returns the errors attached to name.
func (e Errors) Field(name string) []FieldError {
	var out []FieldError
	for _, fe := range e {
		if fe.Field == name {
			out = append(out, fe)
		}
	}
	return out
}

// HasKind reports whether any error is of kind.
func (e Errors) HasKind(kind validation.Kind) bool {
	for _, fe := range e {
		if fe.Kind == kind {
			return true
		}
	}
	return false
}

// Messages groups messages by field, the shape templates and JSON clients expect.
func (e Errors) Messages() map[string][]string {
	out := make(map[string][]string, len(e))
	for _, fe := range e {
		out[fe.Field] = append(out[fe.Field], fe.Message)
	}
	return out
}

// AsErrors extracts validation errors from err. ok is false for nil and for collaborator failures.
func AsErrors(err error) (Errors, bool) {
	var errs Errors
	if errors.As(err, &errs) {
		return errs, true
	}
	return nil, false
}
