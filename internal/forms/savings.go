package forms

import (
	"context"

	savingsdomain "mpesa-forms/backend/internal/savings/domain"
	"mpesa-forms/backend/internal/validation"
)

const (
	msgHasSavings     = "You already have a savings account."
	msgSavingsNoMPesa = "You must have an M-Pesa account before opening a savings account."
)

// SavingsData is an accepted savings account application.
type SavingsData struct {
	NextOfKinName         string                     `json:"next_of_kin_name"`
	NextOfKinPhone        string                     `json:"next_of_kin_phone"`
	NextOfKinRelationship savingsdomain.Relationship `json:"next_of_kin_relationship"`
}

// SavingsAccountOpen opens a savings account for a user who holds an M-Pesa account and no
// savings account yet.
type SavingsAccountOpen struct {
	form     Form
	savings  SavingsAccountChecker
	accounts MPesaAccountGetter
}

// NewSavingsAccountOpen returns the savings account form.
func NewSavingsAccountOpen(savings SavingsAccountChecker, accounts MPesaAccountGetter) *SavingsAccountOpen {
	choices := make([]string, len(savingsdomain.Relationships))
	for i, r := range savingsdomain.Relationships {
		choices[i] = string(r)
	}
	return &SavingsAccountOpen{
		form: Form{
			Name: FormSavingsAccount,
			Fields: []FieldSpec{
				{Name: "next_of_kin_name", Label: "Next of Kin Name", Required: true, MaxLength: 255},
				phoneField("next_of_kin_phone", "Next of Kin Phone", true),
				{Name: "next_of_kin_relationship", Label: "Relationship", Type: TypeChoice, Required: true, Choices: choices},
			},
		},
		savings:  savings,
		accounts: accounts,
	}
}

// Validate checks the next-of-kin details, then the account state of fc.UserID.
func (f *SavingsAccountOpen) Validate(ctx context.Context, raw Values, fc Context) (*SavingsData, error) {
	return observe(ctx, f.form.Name, func(ctx context.Context) (*SavingsData, error) {
		c, errs, err := f.form.clean(ctx, raw, fc)
		if err != nil {
			return nil, err
		}
		if len(errs) > 0 {
			return nil, errs
		}
		hasSavings, err := f.savings.HasSavingsAccount(ctx, fc.UserID)
		if err != nil {
			return nil, err
		}
		if hasSavings {
			errs = errs.add(NonFieldErrors, validation.Errorf(validation.KindStateConflict, msgHasSavings))
		}
		account, err := f.accounts.GetMPesaAccountByUser(ctx, fc.UserID)
		if err != nil {
			return nil, err
		}
		if account == nil {
			errs = errs.add(NonFieldErrors, validation.Errorf(validation.KindStateConflict, msgSavingsNoMPesa))
		}
		if len(errs) > 0 {
			return nil, errs
		}
		return &SavingsData{
			NextOfKinName:         c.String("next_of_kin_name"),
			NextOfKinPhone:        c.String("next_of_kin_phone"),
			NextOfKinRelationship: savingsdomain.Relationship(c.String("next_of_kin_relationship")),
		}, nil
	})
}
