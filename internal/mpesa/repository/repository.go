package repository

import (
	"context"

	"mpesa-forms/backend/internal/mpesa/domain"
)

// Repository defines persistence for M-Pesa accounts.
type Repository interface {
	// GetByUserID returns the user's account, or nil if the user has none.
	GetByUserID(ctx context.Context, userID string) (*domain.MPesaAccount, error)
	Create(ctx context.Context, a *domain.MPesaAccount) error
}
