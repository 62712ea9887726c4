package repository

import (
	"context"

	"mpesa-forms/backend/internal/savings/domain"
)

// Repository defines persistence for savings accounts.
type Repository interface {
	// ExistsForUser reports whether userID already holds a savings account.
	ExistsForUser(ctx context.Context, userID string) (bool, error)
	Create(ctx context.Context, a *domain.SavingsAccount) error
}
