package forms

import (
	"context"
	"time"

	"mpesa-forms/backend/internal/validation"
)

// Form names, used for telemetry and by cmd/formcheck.
const (
	FormCustomerRegistration = "customer_registration"
	FormMPesaAccountCreation = "mpesa_account_creation"
	FormAgentFloat           = "agent_float"
	FormInitialDeposit       = "initial_deposit"
	FormWithdrawal           = "withdrawal"
	FormLoanRequest          = "loan_request"
	FormUserProfile          = "user_profile"
	FormMPesaPinChange       = "mpesa_pin_change"
	FormPasswordChange       = "password_change"
	FormSavingsAccount       = "savings_account"
	FormAccountVerification  = "account_verification"
)

// RegistrationData is an accepted customer registration.
type RegistrationData struct {
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	IDNumber    string    `json:"id_number"`
	PhoneNumber string    `json:"phone_number"`
	Email       string    `json:"email"`
	DateOfBirth time.Time `json:"date_of_birth"`
}

// CustomerRegistration registers a new M-Pesa customer. Customers must be at least 18.
type CustomerRegistration struct {
	form Form
}

// NewCustomerRegistration returns the registration form.
func NewCustomerRegistration() *CustomerRegistration {
	return &CustomerRegistration{form: Form{
		Name: FormCustomerRegistration,
		Fields: []FieldSpec{
			nameField("first_name", "First Name"),
			nameField("last_name", "Last Name"),
			{Name: "id_number", Label: "ID Number", Required: true, MaxLength: 8, Validators: []func(string) error{validation.KenyanID}},
			phoneField("phone_number", "Phone Number", true),
			{Name: "email", Label: "Email", Required: true, MaxLength: 50, Normalize: lowerEmail, Validators: []func(string) error{validation.Email}},
			{Name: "date_of_birth", Label: "Date of Birth", Type: TypeDate, Required: true, Clean: requireAdult},
		},
	}}
}

// Validate checks a registration submission.
func (f *CustomerRegistration) Validate(ctx context.Context, raw Values, fc Context) (*RegistrationData, error) {
	return observe(ctx, f.form.Name, func(ctx context.Context) (*RegistrationData, error) {
		c, errs, err := f.form.clean(ctx, raw, fc)
		if err != nil {
			return nil, err
		}
		if len(errs) > 0 {
			return nil, errs
		}
		return &RegistrationData{
			FirstName:   c.String("first_name"),
			LastName:    c.String("last_name"),
			IDNumber:    c.String("id_number"),
			PhoneNumber: c.String("phone_number"),
			Email:       c.String("email"),
			DateOfBirth: *c.Date("date_of_birth"),
		}, nil
	})
}

func requireAdult(_ context.Context, fc Context, value any) (any, error) {
	dob := value.(time.Time)
	if err := validation.Adult(dob, fc.now()); err != nil {
		return nil, err
	}
	return dob, nil
}

func nameField(name, label string) FieldSpec {
	return FieldSpec{Name: name, Label: label, Required: true, MaxLength: 30}
}

func phoneField(name, label string, required bool) FieldSpec {
	return FieldSpec{Name: name, Label: label, Required: required, MaxLength: 13, Validators: []func(string) error{validation.Phone}}
}
