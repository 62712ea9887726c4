// Package forms validates the user-facing M-Pesa operations: registration, account creation,
// deposits, withdrawals, agent float, loans, profile edits, PIN and password changes, savings
// accounts and verification codes.
//
// Each form declares its fields as FieldSpecs. Validate cleans every field, collecting all field
// errors, and runs the form's cross-field checks only when every field passed. Validation
// failures are returned as Errors; collaborator failures (database, cache) are returned as
// ordinary wrapped errors. Forms never write; their collaborators are read-only lookups.
package forms

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"mpesa-forms/backend/internal/validation"
)

// Values holds the raw submitted fields by name.
type Values map[string]string

// Context carries the acting user and the reference time for one validation pass.
type Context struct {
	// UserID is the acting user; required by profile edit, PIN change, loan and savings forms.
	UserID string
	// Now is the reference time for age checks. Zero means time.Now.
	Now time.Time
}

func (c Context) now() time.Time {
	if c.Now.IsZero() {
		return time.Now()
	}
	return c.Now
}

// FieldType is the semantic type a raw value is cleaned into.
type FieldType int

const (
	// TypeString cleans into a string.
	TypeString FieldType = iota
	// TypeDecimal cleans into a decimal.Decimal rounded to two places.
	TypeDecimal
	// TypeDate cleans into a time.Time parsed from YYYY-MM-DD.
	TypeDate
	// TypeChoice cleans into one of Choices.
	TypeChoice
)

// CleanFunc runs after a field's declarative checks and may consult collaborators. Returning a
// *validation.Error rejects the field; any other error aborts the whole validation.
type CleanFunc func(ctx context.Context, fc Context, value any) (any, error)

// FieldSpec declares one form field. Specs are built once per form and never modified.
type FieldSpec struct {
	Name     string
	Label    string
	Type     FieldType
	Required bool
	// KeepWhitespace disables trimming, for secrets such as passwords.
	KeepWhitespace bool
	MinLength      int
	MaxLength      int
	Choices        []string
	// Bounds apply to TypeDecimal fields after rounding.
	Bounds []validation.Bound
	// Normalize rewrites a string value before its validators run.
	Normalize  func(string) string
	Validators []func(string) error
	Clean      CleanFunc
}

// Form is an ordered set of field specs.
type Form struct {
	Name   string
	Fields []FieldSpec
}

// Cleaned holds normalized field values by name. Empty optional fields are absent.
type Cleaned map[string]any

// String returns the cleaned string for name, or "".
func (c Cleaned) String(name string) string {
	s, _ := c[name].(string)
	return s
}

// Decimal returns the cleaned decimal for name, or zero.
func (c Cleaned) Decimal(name string) decimal.Decimal {
	d, _ := c[name].(decimal.Decimal)
	return d
}

// Date returns the cleaned date for name, or nil when the field was left empty.
func (c Cleaned) Date(name string) *time.Time {
	t, ok := c[name].(time.Time)
	if !ok {
		return nil
	}
	return &t
}

// clean runs every field spec against raw. It returns the cleaned values and the field errors;
// err is non-nil only when a collaborator failed.
func (f *Form) clean(ctx context.Context, raw Values, fc Context) (Cleaned, Errors, error) {
	cleaned := make(Cleaned, len(f.Fields))
	var errs Errors
	for _, spec := range f.Fields {
		value, err := spec.clean(ctx, fc, raw[spec.Name])
		if err != nil {
			var ve *validation.Error
			if !errors.As(err, &ve) {
				return nil, nil, fmt.Errorf("forms: %s: %s: %w", f.Name, spec.Name, err)
			}
			errs = errs.add(spec.Name, ve)
			continue
		}
		if value != nil {
			cleaned[spec.Name] = value
		}
	}
	return cleaned, errs, nil
}

func (s FieldSpec) clean(ctx context.Context, fc Context, raw string) (any, error) {
	value := raw
	if !s.KeepWhitespace {
		value = strings.TrimSpace(raw)
	}
	if value == "" {
		if s.Required {
			return nil, validation.Errorf(validation.KindFormat, validation.MsgRequired)
		}
		return nil, nil
	}
	if s.Normalize != nil {
		value = s.Normalize(value)
	}
	if s.MaxLength > 0 {
		if err := validation.MaxLength(value, s.MaxLength); err != nil {
			return nil, err
		}
	}
	if s.MinLength > 0 {
		if err := validation.MinLength(value, s.MinLength); err != nil {
			return nil, err
		}
	}

	var out any
	switch s.Type {
	case TypeDecimal:
		d, err := validation.Amount(value, s.Bounds...)
		if err != nil {
			return nil, err
		}
		out = d
	case TypeDate:
		t, err := validation.ParseDate(value)
		if err != nil {
			return nil, err
		}
		out = t
	case TypeChoice:
		if err := validation.OneOf(value, s.Choices); err != nil {
			return nil, err
		}
		out = value
	default:
		for _, v := range s.Validators {
			if err := v(value); err != nil {
				return nil, err
			}
		}
		out = value
	}

	if s.Clean != nil {
		return s.Clean(ctx, fc, out)
	}
	return out, nil
}

func lowerEmail(s string) string {
	return strings.ToLower(s)
}
