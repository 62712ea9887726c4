package forms

import (
	"context"

	"mpesa-forms/backend/internal/validation"
)

const (
	msgPINMismatch    = "PINs do not match."
	msgNewPINMismatch = "New PIN and confirmation PIN do not match."
	msgPINIncorrect   = "Current PIN is incorrect."
	msgNoMPesaAccount = "No M-Pesa account found."
)

// AccountCreationData is an accepted M-Pesa account creation. PIN is plaintext and must be
// hashed before it is stored.
type AccountCreationData struct {
	PIN string `json:"-"`
}

// MPesaAccountCreation opens a new M-Pesa account protected by a 4-digit PIN.
type MPesaAccountCreation struct {
	form Form
}

// NewMPesaAccountCreation returns the account creation form.
func NewMPesaAccountCreation() *MPesaAccountCreation {
	return &MPesaAccountCreation{form: Form{
		Name: FormMPesaAccountCreation,
		Fields: []FieldSpec{
			pinField("pin", "4-digit PIN"),
			{Name: "confirm_pin", Label: "Confirm PIN", Required: true, MinLength: validation.PINLength, MaxLength: validation.PINLength},
		},
	}}
}

// Validate checks the PIN pair. A mismatched pair and a weak PIN are both reported.
func (f *MPesaAccountCreation) Validate(ctx context.Context, raw Values, fc Context) (*AccountCreationData, error) {
	return observe(ctx, f.form.Name, func(ctx context.Context) (*AccountCreationData, error) {
		c, errs, err := f.form.clean(ctx, raw, fc)
		if err != nil {
			return nil, err
		}
		if len(errs) > 0 {
			return nil, errs
		}
		pin := c.String("pin")
		if pin != c.String("confirm_pin") {
			errs = errs.add(NonFieldErrors, validation.Errorf(validation.KindConsistency, msgPINMismatch))
		}
		if err := validation.StrongPIN(pin); err != nil {
			errs = errs.add(NonFieldErrors, validation.AsError(err))
		}
		if len(errs) > 0 {
			return nil, errs
		}
		return &AccountCreationData{PIN: pin}, nil
	})
}

// PinChangeData is an accepted PIN change. NewPIN is plaintext and must be hashed before it is stored.
type PinChangeData struct {
	NewPIN string `json:"-"`
}

// MPesaPinChange replaces the acting user's PIN after verifying the current one.
type MPesaPinChange struct {
	form     Form
	accounts MPesaAccountGetter
	creds    CredentialVerifier
}

// NewMPesaPinChange returns the PIN change form. accounts supplies the stored PIN hash and creds
// verifies the current PIN against it.
func NewMPesaPinChange(accounts MPesaAccountGetter, creds CredentialVerifier) *MPesaPinChange {
	f := &MPesaPinChange{accounts: accounts, creds: creds}
	current := pinField("current_pin", "Current PIN")
	current.Clean = f.verifyCurrentPIN
	newPIN := pinField("new_pin", "New PIN")
	newPIN.Validators = append(newPIN.Validators, validation.StrongPIN)
	f.form = Form{
		Name: FormMPesaPinChange,
		Fields: []FieldSpec{
			current,
			newPIN,
			pinField("confirm_new_pin", "Confirm New PIN"),
		},
	}
	return f
}

// Validate checks a PIN change for fc.UserID. A wrong current PIN rejects the submission whether
// or not the new PINs match.
func (f *MPesaPinChange) Validate(ctx context.Context, raw Values, fc Context) (*PinChangeData, error) {
	return observe(ctx, f.form.Name, func(ctx context.Context) (*PinChangeData, error) {
		c, errs, err := f.form.clean(ctx, raw, fc)
		if err != nil {
			return nil, err
		}
		if len(errs) > 0 {
			return nil, errs
		}
		newPIN := c.String("new_pin")
		if newPIN != c.String("confirm_new_pin") {
			return nil, errs.add(NonFieldErrors, validation.Errorf(validation.KindConsistency, msgNewPINMismatch))
		}
		return &PinChangeData{NewPIN: newPIN}, nil
	})
}

func (f *MPesaPinChange) verifyCurrentPIN(ctx context.Context, fc Context, value any) (any, error) {
	pin := value.(string)
	account, err := f.accounts.GetMPesaAccountByUser(ctx, fc.UserID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, validation.Errorf(validation.KindStateConflict, msgNoMPesaAccount)
	}
	if !f.creds.Verify(account.PINHash, pin) {
		return nil, validation.Errorf(validation.KindCredential, msgPINIncorrect)
	}
	return pin, nil
}

func pinField(name, label string) FieldSpec {
	return FieldSpec{Name: name, Label: label, Required: true, Validators: []func(string) error{validation.PIN}}
}
