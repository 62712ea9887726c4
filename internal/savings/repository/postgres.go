package repository

import (
	"context"
	"database/sql"

	"mpesa-forms/backend/internal/savings/domain"
)

type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns a savings account repository that uses the given db for persistence.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// ExistsForUser reports whether userID already holds a savings account.
func (r *PostgresRepository) ExistsForUser(ctx context.Context, userID string) (bool, error) {
	var ok bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM savings_accounts WHERE user_id = $1)`, userID).Scan(&ok)
	if err != nil {
		return false, err
	}
	return ok, nil
}

// Create persists the account. The account must have ID set; it is not assigned by this method.
func (r *PostgresRepository) Create(ctx context.Context, a *domain.SavingsAccount) error {
	if err := a.Validate(); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO savings_accounts (id, user_id, balance, next_of_kin_name, next_of_kin_phone, next_of_kin_relationship, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		a.ID, a.UserID, a.Balance, a.NextOfKinName, a.NextOfKinPhone, string(a.NextOfKinRelationship), a.CreatedAt,
	)
	return err
}
