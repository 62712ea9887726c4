// Package lookup adapts the user, M-Pesa and savings repositories to the read-only collaborator
// interfaces the forms consume.
package lookup

import (
	"context"
	"fmt"

	mpesadomain "mpesa-forms/backend/internal/mpesa/domain"
	mpesarepo "mpesa-forms/backend/internal/mpesa/repository"
	savingsrepo "mpesa-forms/backend/internal/savings/repository"
	userrepo "mpesa-forms/backend/internal/user/repository"
)

// Accounts answers account-state questions about a user from the repositories.
type Accounts struct {
	users   userrepo.Repository
	mpesa   mpesarepo.Repository
	savings savingsrepo.Repository
}

// NewAccounts returns an Accounts backed by the given repositories.
func NewAccounts(users userrepo.Repository, mpesa mpesarepo.Repository, savings savingsrepo.Repository) *Accounts {
	return &Accounts{users: users, mpesa: mpesa, savings: savings}
}

// GetMPesaAccountByUser returns the user's M-Pesa account, or nil if the user has none.
func (a *Accounts) GetMPesaAccountByUser(ctx context.Context, userID string) (*mpesadomain.MPesaAccount, error) {
	if userID == "" {
		return nil, nil
	}
	acc, err := a.mpesa.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("lookup: mpesa account: %w", err)
	}
	return acc, nil
}

// HasSavingsAccount reports whether the user already holds a savings account.
func (a *Accounts) HasSavingsAccount(ctx context.Context, userID string) (bool, error) {
	if userID == "" {
		return false, nil
	}
	ok, err := a.savings.ExistsForUser(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("lookup: savings account: %w", err)
	}
	return ok, nil
}

// GetPasswordHash returns the user's password hash, or "" when the user does not exist.
func (a *Accounts) GetPasswordHash(ctx context.Context, userID string) (string, error) {
	if userID == "" {
		return "", nil
	}
	u, err := a.users.GetByID(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("lookup: user: %w", err)
	}
	if u == nil {
		return "", nil
	}
	return u.PasswordHash, nil
}

func (a *Accounts) EmailTakenByOther(ctx context.Context, excludeUserID, email string) (bool, error) {
	return a.taken(ctx, "email", a.users.EmailTakenByOther, excludeUserID, email)
}

func (a *Accounts) PhoneTakenByOther(ctx context.Context, excludeUserID, phone string) (bool, error) {
	return a.taken(ctx, "phone", a.users.PhoneTakenByOther, excludeUserID, phone)
}

func (a *Accounts) IDNumberTakenByOther(ctx context.Context, excludeUserID, idNumber string) (bool, error) {
	return a.taken(ctx, "id number", a.users.IDNumberTakenByOther, excludeUserID, idNumber)
}

func (a *Accounts) taken(ctx context.Context, what string, fn func(context.Context, string, string) (bool, error), excludeUserID, value string) (bool, error) {
	ok, err := fn(ctx, excludeUserID, value)
	if err != nil {
		return false, fmt.Errorf("lookup: %s uniqueness: %w", what, err)
	}
	return ok, nil
}
