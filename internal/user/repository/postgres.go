package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"mpesa-forms/backend/internal/user/domain"
)

const userColumns = `id, first_name, last_name, email, phone_number, id_number, date_of_birth, password_hash, created_at, updated_at`

type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns a user repository that uses the given db for persistence.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// GetByID returns the user for id, or nil if not found.
// It returns an error only for database failures, not for missing rows.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

// GetByEmail returns the user with the given email, compared case-insensitively, or nil if not found.
// It returns an error only for database failures, not for missing rows.
func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`, email)
	return scanUser(row)
}

// Create persists the user to the database. The user must have ID set; it is not assigned by this method.
// Email is stored lowercased.
func (r *PostgresRepository) Create(ctx context.Context, u *domain.User) error {
	if err := u.Validate(); err != nil {
		return err
	}
	u.Email = strings.ToLower(u.Email)
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (`+userColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		u.ID, u.FirstName, u.LastName, u.Email,
		nullString(u.PhoneNumber), nullString(u.IDNumber), nullTime(u),
		u.PasswordHash, u.CreatedAt, u.UpdatedAt,
	)
	return err
}

// EmailTakenByOther reports whether any user except excludeID is registered with email, ignoring case.
func (r *PostgresRepository) EmailTakenByOther(ctx context.Context, excludeID, email string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE lower(email) = lower($1) AND id <> $2)`, email, excludeID)
}

// PhoneTakenByOther reports whether any user except excludeID is registered with phone.
func (r *PostgresRepository) PhoneTakenByOther(ctx context.Context, excludeID, phone string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE phone_number = $1 AND id <> $2)`, phone, excludeID)
}

// IDNumberTakenByOther reports whether any user except excludeID is registered with idNumber.
func (r *PostgresRepository) IDNumberTakenByOther(ctx context.Context, excludeID, idNumber string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id_number = $1 AND id <> $2)`, idNumber, excludeID)
}

func (r *PostgresRepository) exists(ctx context.Context, query string, args ...any) (bool, error) {
	var ok bool
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}

func scanUser(row *sql.Row) (*domain.User, error) {
	var (
		u           domain.User
		phone, idNo sql.NullString
		dob         sql.NullTime
	)
	err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &phone, &idNo, &dob, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	u.PhoneNumber = phone.String
	u.IDNumber = idNo.String
	if dob.Valid {
		t := dob.Time
		u.DateOfBirth = &t
	}
	return &u, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullTime(u *domain.User) sql.NullTime {
	if u.DateOfBirth == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *u.DateOfBirth, Valid: true}
}
