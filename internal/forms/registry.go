package forms

import (
	"context"
	"sort"

	"mpesa-forms/backend/internal/loan"
)

// ValidateFunc validates one submission and returns the accepted data bundle.
type ValidateFunc func(ctx context.Context, raw Values, fc Context) (any, error)

// Deps are the collaborators the stateful forms need. Forms whose collaborators are nil are left
// out of the registry.
type Deps struct {
	Accounts  MPesaAccountGetter
	Savings   SavingsAccountChecker
	Users     UniquenessChecker
	Passwords PasswordHashGetter
	Creds     CredentialVerifier
	Tiers     loan.Tiers
}

// Registry maps form names to their validators.
type Registry map[string]ValidateFunc

// NewRegistry builds every form that deps can support.
func NewRegistry(deps Deps) Registry {
	r := Registry{
		FormCustomerRegistration: adapt(NewCustomerRegistration().Validate),
		FormMPesaAccountCreation: adapt(NewMPesaAccountCreation().Validate),
		FormAgentFloat:           adapt(NewAgentFloat().Validate),
		FormInitialDeposit:       adapt(NewInitialDeposit().Validate),
		FormWithdrawal:           adapt(NewWithdrawal().Validate),
		FormAccountVerification:  adapt(NewAccountVerification().Validate),
	}
	if deps.Accounts != nil {
		r[FormLoanRequest] = adapt(NewLoanRequest(deps.Accounts, deps.Tiers).Validate)
	}
	if deps.Users != nil {
		r[FormUserProfile] = adapt(NewUserProfile(deps.Users).Validate)
	}
	if deps.Accounts != nil && deps.Creds != nil {
		r[FormMPesaPinChange] = adapt(NewMPesaPinChange(deps.Accounts, deps.Creds).Validate)
	}
	if deps.Passwords != nil && deps.Creds != nil {
		r[FormPasswordChange] = adapt(NewPasswordChange(deps.Passwords, deps.Creds).Validate)
	}
	if deps.Savings != nil && deps.Accounts != nil {
		r[FormSavingsAccount] = adapt(NewSavingsAccountOpen(deps.Savings, deps.Accounts).Validate)
	}
	return r
}

// Names returns the registered form names in sorted order.
func (r Registry) Names() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func adapt[T any](fn func(context.Context, Values, Context) (*T, error)) ValidateFunc {
	return func(ctx context.Context, raw Values, fc Context) (any, error) {
		out, err := fn(ctx, raw, fc)
		if err != nil {
			return nil, err
		}
		return out, nil
	}
}
