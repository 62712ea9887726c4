package repository

import (
	"context"
	"database/sql"
	"errors"

	"mpesa-forms/backend/internal/mpesa/domain"
)

type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns an M-Pesa account repository that uses the given db for persistence.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// GetByUserID returns the account owned by userID, or nil if not found.
// It returns an error only for database failures, not for missing rows.
func (r *PostgresRepository) GetByUserID(ctx context.Context, userID string) (*domain.MPesaAccount, error) {
	var a domain.MPesaAccount
	var status string
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, balance, pin_hash, status, created_at, updated_at FROM mpesa_accounts WHERE user_id = $1`,
		userID,
	).Scan(&a.ID, &a.UserID, &a.Balance, &a.PINHash, &status, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	a.Status = domain.AccountStatus(status)
	return &a, nil
}

// Create persists the account. The account must have ID set; it is not assigned by this method.
func (r *PostgresRepository) Create(ctx context.Context, a *domain.MPesaAccount) error {
	if err := a.Validate(); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO mpesa_accounts (id, user_id, balance, pin_hash, status, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		a.ID, a.UserID, a.Balance, a.PINHash, string(a.Status), a.CreatedAt, a.UpdatedAt,
	)
	return err
}
