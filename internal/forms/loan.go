package forms

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"mpesa-forms/backend/internal/loan"
	"mpesa-forms/backend/internal/validation"
)

// LoanData is an accepted loan request.
type LoanData struct {
	Amount  decimal.Decimal `json:"amount"`
	MaxLoan decimal.Decimal `json:"max_loan"`
}

// LoanRequest asks for a loan of at most the amount the user's M-Pesa balance unlocks.
type LoanRequest struct {
	form     Form
	accounts MPesaAccountGetter
	tiers    loan.Tiers
}

// NewLoanRequest returns the loan form. tiers are sorted ascending whatever their input order.
func NewLoanRequest(accounts MPesaAccountGetter, tiers loan.Tiers) *LoanRequest {
	return &LoanRequest{
		form: Form{
			Name:   FormLoanRequest,
			Fields: []FieldSpec{amountField("amount", "Loan Amount", positiveAmount)},
		},
		accounts: accounts,
		tiers:    loan.NewTiers(tiers...),
	}
}

// MaxLoan returns the largest loan userID is eligible for. A user without an M-Pesa account
// is eligible for zero; that is not an error.
func (f *LoanRequest) MaxLoan(ctx context.Context, userID string) (decimal.Decimal, error) {
	account, err := f.accounts.GetMPesaAccountByUser(ctx, userID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("forms: %s: balance: %w", f.form.Name, err)
	}
	if account == nil {
		return decimal.Zero, nil
	}
	return f.tiers.MaxLoan(account.Balance), nil
}

// Validate checks a loan request for fc.UserID against the user's current eligibility.
func (f *LoanRequest) Validate(ctx context.Context, raw Values, fc Context) (*LoanData, error) {
	return observe(ctx, f.form.Name, func(ctx context.Context) (*LoanData, error) {
		maxLoan, err := f.MaxLoan(ctx, fc.UserID)
		if err != nil {
			return nil, err
		}
		c, errs, err := f.form.clean(ctx, raw, fc)
		if err != nil {
			return nil, err
		}
		if len(errs) > 0 {
			return nil, errs
		}
		amount := c.Decimal("amount")
		if amount.GreaterThan(maxLoan) {
			return nil, errs.add("amount", validation.Errorf(validation.KindRange,
				"Loan amount cannot exceed your limit of KES %s.", validation.FormatAmount(maxLoan)))
		}
		return &LoanData{Amount: amount, MaxLoan: maxLoan}, nil
	})
}
