package forms

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"

	mpesadomain "mpesa-forms/backend/internal/mpesa/domain"
	"mpesa-forms/backend/internal/validation"
)

var testNow = time.Date(2026, time.October, 16, 9, 0, 0, 0, time.UTC)

type memAccounts struct {
	mu     sync.Mutex
	byUser map[string]*mpesadomain.MPesaAccount
	err    error
}

func newMemAccounts() *memAccounts {
	return &memAccounts{byUser: make(map[string]*mpesadomain.MPesaAccount)}
}

func (m *memAccounts) put(userID, balance, pinHash string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byUser[userID] = &mpesadomain.MPesaAccount{
		ID:      "acc-" + userID,
		UserID:  userID,
		Balance: decimal.RequireFromString(balance),
		PINHash: pinHash,
		Status:  mpesadomain.AccountStatusActive,
	}
}

func (m *memAccounts) GetMPesaAccountByUser(_ context.Context, userID string) (*mpesadomain.MPesaAccount, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return m.byUser[userID], nil
}

type memSavings struct {
	mu    sync.Mutex
	users map[string]bool
	err   error
}

func (m *memSavings) HasSavingsAccount(_ context.Context, userID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}
	return m.users[userID], nil
}

type memUser struct {
	id, email, phone, idNumber string
}

type memUsers struct {
	mu    sync.Mutex
	users []memUser
	err   error
}

func (m *memUsers) taken(excludeID string, match func(memUser) bool) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}
	for _, u := range m.users {
		if u.id != excludeID && match(u) {
			return true, nil
		}
	}
	return false, nil
}

func (m *memUsers) EmailTakenByOther(_ context.Context, excludeID, email string) (bool, error) {
	return m.taken(excludeID, func(u memUser) bool { return strings.EqualFold(u.email, email) })
}

func (m *memUsers) PhoneTakenByOther(_ context.Context, excludeID, phone string) (bool, error) {
	return m.taken(excludeID, func(u memUser) bool { return u.phone == phone })
}

func (m *memUsers) IDNumberTakenByOther(_ context.Context, excludeID, idNumber string) (bool, error) {
	return m.taken(excludeID, func(u memUser) bool { return u.idNumber == idNumber })
}

type memPasswords struct {
	mu     sync.Mutex
	hashes map[string]string
	err    error
}

func (m *memPasswords) GetPasswordHash(_ context.Context, userID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return "", m.err
	}
	return m.hashes[userID], nil
}

// prefixVerifier treats "hash:"+secret as the hash of secret.
type prefixVerifier struct{}

func (prefixVerifier) Verify(hash, candidate string) bool {
	return hash != "" && hash == "hash:"+candidate
}

func fieldErrors(t *testing.T, err error) Errors {
	t.Helper()
	errs, ok := AsErrors(err)
	if !ok {
		t.Fatalf("error = %v, want validation Errors", err)
	}
	return errs
}

func requireMessage(t *testing.T, errs Errors, field, msg string) {
	t.Helper()
	for _, fe := range errs.Field(field) {
		if fe.Message == msg {
			return
		}
	}
	t.Errorf("errors on %q = %v, want message %q", field, errs.Field(field), msg)
}

func validRegistration() Values {
	return Values{
		"first_name":    "Wanjiru",
		"last_name":     "Kamau",
		"id_number":     "12345678",
		"phone_number":  "+254712345678",
		"email":         "Wanjiru@Example.COM",
		"date_of_birth": "1990-05-20",
	}
}

func TestCustomerRegistration_Valid(t *testing.T) {
	out, err := NewCustomerRegistration().Validate(context.Background(), validRegistration(), Context{Now: testNow})
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if out.Email != "wanjiru@example.com" {
		t.Errorf("Email = %q, want lowercased", out.Email)
	}
	if out.DateOfBirth.Format(validation.DateLayout) != "1990-05-20" {
		t.Errorf("DateOfBirth = %v", out.DateOfBirth)
	}
}

func TestCustomerRegistration_AgeBoundary(t *testing.T) {
	form := NewCustomerRegistration()
	ctx := context.Background()
	fc := Context{Now: testNow}

	raw := validRegistration()
	raw["date_of_birth"] = "2008-10-16"
	if _, err := form.Validate(ctx, raw, fc); err != nil {
		t.Errorf("18th birthday today: %v", err)
	}

	raw["date_of_birth"] = "2008-10-17"
	_, err := form.Validate(ctx, raw, fc)
	errs := fieldErrors(t, err)
	requireMessage(t, errs, "date_of_birth", validation.MsgUnderage)
	if !errs.HasKind(validation.KindRange) {
		t.Error("underage should be a range error")
	}
}

func TestCustomerRegistration_CollectsAllFieldErrors(t *testing.T) {
	raw := Values{
		"first_name":    "",
		"last_name":     "Kamau",
		"id_number":     "12345",
		"phone_number":  "0712345678",
		"email":         "not-an-email",
		"date_of_birth": "20-05-1990",
	}
	_, err := NewCustomerRegistration().Validate(context.Background(), raw, Context{Now: testNow})
	errs := fieldErrors(t, err)
	if len(errs) != 5 {
		t.Fatalf("len(errs) = %d, want 5: %v", len(errs), errs)
	}
	requireMessage(t, errs, "first_name", validation.MsgRequired)
	requireMessage(t, errs, "id_number", validation.MsgKenyanID)
	requireMessage(t, errs, "phone_number", validation.MsgPhone)
	requireMessage(t, errs, "email", validation.MsgEmail)
	requireMessage(t, errs, "date_of_birth", validation.MsgDate)
	if got := errs.Messages(); len(got["id_number"]) != 1 {
		t.Errorf("Messages()[id_number] = %v", got["id_number"])
	}
}

func TestMPesaAccountCreation(t *testing.T) {
	form := NewMPesaAccountCreation()
	ctx := context.Background()

	out, err := form.Validate(ctx, Values{"pin": "2580", "confirm_pin": "2580"}, Context{})
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if out.PIN != "2580" {
		t.Errorf("PIN = %q", out.PIN)
	}

	_, err = form.Validate(ctx, Values{"pin": "2580", "confirm_pin": "2581"}, Context{})
	requireMessage(t, fieldErrors(t, err), NonFieldErrors, msgPINMismatch)

	_, err = form.Validate(ctx, Values{"pin": "12a4", "confirm_pin": "12a4"}, Context{})
	requireMessage(t, fieldErrors(t, err), "pin", validation.MsgPINDigits)

	_, err = form.Validate(ctx, Values{"pin": "123", "confirm_pin": "123"}, Context{})
	errs := fieldErrors(t, err)
	requireMessage(t, errs, "pin", validation.MsgPINLength)
	if len(errs.Field("confirm_pin")) != 1 {
		t.Errorf("confirm_pin errors = %v, want one length error", errs.Field("confirm_pin"))
	}
}

func TestMPesaAccountCreation_WeakPINRejectedEvenWhenConfirmed(t *testing.T) {
	form := NewMPesaAccountCreation()
	for _, pin := range []string{"1234", "4321", "0000", "7777"} {
		_, err := form.Validate(context.Background(), Values{"pin": pin, "confirm_pin": pin}, Context{})
		errs := fieldErrors(t, err)
		if !errs.HasKind(validation.KindWeakness) {
			t.Errorf("pin %s: errs = %v, want weakness", pin, errs)
		}
	}

	_, err := form.Validate(context.Background(), Values{"pin": "1111", "confirm_pin": "2222"}, Context{})
	errs := fieldErrors(t, err)
	if !errs.HasKind(validation.KindWeakness) || !errs.HasKind(validation.KindConsistency) {
		t.Errorf("errs = %v, want both mismatch and weakness", errs)
	}
}

func TestAgentFloat(t *testing.T) {
	form := NewAgentFloat()
	ctx := context.Background()

	out, err := form.Validate(ctx, Values{"amount": "1500.555", "transaction_type": "increase"}, Context{})
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if validation.FormatAmount(out.Amount) != "1500.56" {
		t.Errorf("Amount = %s, want 1500.56", out.Amount)
	}
	if out.Direction != FloatIncrease {
		t.Errorf("Direction = %q", out.Direction)
	}

	_, err = form.Validate(ctx, Values{"amount": "0", "transaction_type": "sideways"}, Context{})
	errs := fieldErrors(t, err)
	requireMessage(t, errs, "amount", "Amount must be greater than 0")
	if len(errs.Field("transaction_type")) != 1 {
		t.Errorf("transaction_type errors = %v", errs.Field("transaction_type"))
	}
}

func TestInitialDeposit_Boundary(t *testing.T) {
	form := NewInitialDeposit()
	ctx := context.Background()
	for _, tc := range []struct {
		amount string
		ok     bool
	}{
		{"50", true},
		{"50.00", true},
		{"49.995", true},
		{"49.99", false},
		{"-100", false},
		{"abc", false},
		{"123456789.00", false},
	} {
		_, err := form.Validate(ctx, Values{"amount": tc.amount}, Context{})
		if (err == nil) != tc.ok {
			t.Errorf("amount %q: err = %v, want ok=%v", tc.amount, err, tc.ok)
		}
	}
}

func TestWithdrawal(t *testing.T) {
	form := NewWithdrawal()
	out, err := form.Validate(context.Background(), Values{"amount": " 75.5 "}, Context{})
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if validation.FormatAmount(out.Amount) != "75.50" {
		t.Errorf("Amount = %s", out.Amount)
	}
	_, err = form.Validate(context.Background(), Values{"amount": "49"}, Context{})
	requireMessage(t, fieldErrors(t, err), "amount", "Ensure this value is greater than or equal to 50.")

	_, err = form.Validate(context.Background(), Values{"amount": "1e200000000"}, Context{})
	requireMessage(t, fieldErrors(t, err), "amount", validation.MsgAmountMaxDigits)
}

func TestAccountVerification(t *testing.T) {
	form := NewAccountVerification()
	out, err := form.Validate(context.Background(), Values{"verification_code": "004211"}, Context{})
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if out.Code != "004211" {
		t.Errorf("Code = %q", out.Code)
	}
	for _, code := range []string{"12345", "1234567", "12a456", ""} {
		if _, err := form.Validate(context.Background(), Values{"verification_code": code}, Context{}); err == nil {
			t.Errorf("code %q accepted", code)
		}
	}
}

func TestValidate_DoesNotMutateInput(t *testing.T) {
	raw := validRegistration()
	before := make(Values, len(raw))
	for k, v := range raw {
		before[k] = v
	}
	if _, err := NewCustomerRegistration().Validate(context.Background(), raw, Context{Now: testNow}); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	for k, v := range before {
		if raw[k] != v {
			t.Errorf("raw[%q] = %q, want %q", k, raw[k], v)
		}
	}
}

func TestAsErrors(t *testing.T) {
	if _, ok := AsErrors(nil); ok {
		t.Error("nil should not be Errors")
	}
	if _, ok := AsErrors(errors.New("db down")); ok {
		t.Error("plain error should not be Errors")
	}
	var err error = Errors{{Field: "amount", Kind: validation.KindRange, Message: "too small"}}
	errs, ok := AsErrors(err)
	if !ok || len(errs) != 1 {
		t.Fatalf("AsErrors = %v, %v", errs, ok)
	}
	if err.Error() != "forms: invalid submission: amount: too small" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestErrors_Messages(t *testing.T) {
	_, err := NewMPesaAccountCreation().Validate(context.Background(), Values{"pin": "1111", "confirm_pin": "2222"}, Context{})
	got := fieldErrors(t, err).Messages()
	want := map[string][]string{
		NonFieldErrors: {msgPINMismatch, validation.MsgPINWeak},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Messages() mismatch (-want +got):\n%s", diff)
	}
}
