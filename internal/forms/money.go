package forms

import (
	"context"

	"github.com/shopspring/decimal"

	"mpesa-forms/backend/internal/validation"
)

// FloatDirection is the kind of agent float adjustment.
type FloatDirection string

const (
	FloatIncrease FloatDirection = "increase"
	FloatDecrease FloatDirection = "decrease"
)

var (
	// MinInitialDeposit is the smallest first deposit into a new M-Pesa account.
	MinInitialDeposit = decimal.RequireFromString("50.00")
	// MinWithdrawal is the smallest withdrawal.
	MinWithdrawal = decimal.NewFromInt(50)
)

var (
	positiveAmount = validation.Bound{Min: decimal.Zero, Message: "Amount must be greater than 0"}
	initialDeposit = validation.Bound{Min: MinInitialDeposit, Inclusive: true, Message: "Initial deposit must be at least KES 50.00"}
	withdrawalMin  = validation.Bound{Min: MinWithdrawal, Inclusive: true, Message: "Ensure this value is greater than or equal to 50."}
)

// AmountData is an accepted single-amount submission. Amount has exactly two decimal places.
type AmountData struct {
	Amount decimal.Decimal `json:"amount"`
}

// FloatData is an accepted agent float adjustment.
type FloatData struct {
	Amount    decimal.Decimal `json:"amount"`
	Direction FloatDirection  `json:"transaction_type"`
}

// AgentFloat adjusts an agent's float up or down by a positive amount.
type AgentFloat struct {
	form Form
}

// NewAgentFloat returns the agent float form.
func NewAgentFloat() *AgentFloat {
	return &AgentFloat{form: Form{
		Name: FormAgentFloat,
		Fields: []FieldSpec{
			amountField("amount", "Amount (KES)", positiveAmount),
			{
				Name:     "transaction_type",
				Label:    "Transaction Type",
				Type:     TypeChoice,
				Required: true,
				Choices:  []string{string(FloatIncrease), string(FloatDecrease)},
			},
		},
	}}
}

// Validate checks a float adjustment.
func (f *AgentFloat) Validate(ctx context.Context, raw Values, fc Context) (*FloatData, error) {
	return observe(ctx, f.form.Name, func(ctx context.Context) (*FloatData, error) {
		c, errs, err := f.form.clean(ctx, raw, fc)
		if err != nil {
			return nil, err
		}
		if len(errs) > 0 {
			return nil, errs
		}
		return &FloatData{
			Amount:    c.Decimal("amount"),
			Direction: FloatDirection(c.String("transaction_type")),
		}, nil
	})
}

// AmountForm validates a single amount field against one lower bound. InitialDeposit and
// Withdrawal are AmountForms.
type AmountForm struct {
	form Form
}

// NewInitialDeposit returns the form for the first deposit into a new account (at least KES 50.00).
func NewInitialDeposit() *AmountForm {
	return &AmountForm{form: Form{
		Name:   FormInitialDeposit,
		Fields: []FieldSpec{amountField("amount", "Amount (KES)", initialDeposit)},
	}}
}

// NewWithdrawal returns the withdrawal form (at least 50).
func NewWithdrawal() *AmountForm {
	return &AmountForm{form: Form{
		Name:   FormWithdrawal,
		Fields: []FieldSpec{amountField("amount", "Amount to Withdraw", withdrawalMin)},
	}}
}

// Validate checks the amount.
func (f *AmountForm) Validate(ctx context.Context, raw Values, fc Context) (*AmountData, error) {
	return observe(ctx, f.form.Name, func(ctx context.Context) (*AmountData, error) {
		c, errs, err := f.form.clean(ctx, raw, fc)
		if err != nil {
			return nil, err
		}
		if len(errs) > 0 {
			return nil, errs
		}
		return &AmountData{Amount: c.Decimal("amount")}, nil
	})
}

func amountField(name, label string, bounds ...validation.Bound) FieldSpec {
	return FieldSpec{Name: name, Label: label, Type: TypeDecimal, Required: true, Bounds: bounds}
}
