package forms

import (
	"context"

	"mpesa-forms/backend/internal/validation"
)

// VerificationData is an accepted verification code submission.
type VerificationData struct {
	Code string `json:"verification_code"`
}

// AccountVerification accepts a 6-digit verification code.
type AccountVerification struct {
	form Form
}

// NewAccountVerification returns the verification code form.
func NewAccountVerification() *AccountVerification {
	return &AccountVerification{form: Form{
		Name: FormAccountVerification,
		Fields: []FieldSpec{
			{Name: "verification_code", Label: "Verification Code", Required: true, Validators: []func(string) error{validation.VerificationCode}},
		},
	}}
}

// Validate checks the code format. Whether the code matches an issued one is up to the caller.
func (f *AccountVerification) Validate(ctx context.Context, raw Values, fc Context) (*VerificationData, error) {
	return observe(ctx, f.form.Name, func(ctx context.Context) (*VerificationData, error) {
		c, errs, err := f.form.clean(ctx, raw, fc)
		if err != nil {
			return nil, err
		}
		if len(errs) > 0 {
			return nil, errs
		}
		return &VerificationData{Code: c.String("verification_code")}, nil
	})
}
