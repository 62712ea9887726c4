package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// MPesaAccount is the mobile-money wallet tied to one user.
type MPesaAccount struct {
	ID      string
	UserID  string
	Balance decimal.Decimal
	// PINHash is the bcrypt hash of the 4-digit PIN. The PIN itself is never stored.
	PINHash   string
	Status    AccountStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

type AccountStatus string

const (
	AccountStatusActive AccountStatus = "active"
	AccountStatusFrozen AccountStatus = "frozen"
)

// Validate validates the account for persistence. Returns an error describing the first validation failure.
func (a *MPesaAccount) Validate() error {
	if a.UserID == "" {
		return errors.New("user_id is required")
	}
	if a.PINHash == "" {
		return errors.New("pin_hash is required")
	}
	if a.Balance.IsNegative() {
		return errors.New("balance must not be negative")
	}
	if a.Status == "" {
		a.Status = AccountStatusActive
	}
	return nil
}
