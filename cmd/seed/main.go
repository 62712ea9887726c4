// seed inserts development sample data for local testing: go run ./cmd/seed.
// Idempotent: skips inserts if the dev user (dev@example.com) already exists. Every record is
// run through the same forms a real submission would pass.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"mpesa-forms/backend/internal/config"
	"mpesa-forms/backend/internal/db"
	"mpesa-forms/backend/internal/forms"
	"mpesa-forms/backend/internal/logger"
	"mpesa-forms/backend/internal/lookup"
	mpesadomain "mpesa-forms/backend/internal/mpesa/domain"
	mpesarepo "mpesa-forms/backend/internal/mpesa/repository"
	savingsdomain "mpesa-forms/backend/internal/savings/domain"
	savingsrepo "mpesa-forms/backend/internal/savings/repository"
	"mpesa-forms/backend/internal/security"
	userdomain "mpesa-forms/backend/internal/user/domain"
	userrepo "mpesa-forms/backend/internal/user/repository"
)

const (
	devUserEmail = "dev@example.com"
	devPassword  = "Password123!"
	devPIN       = "2580"
)

type seeder struct {
	users   userrepo.Repository
	mpesa   mpesarepo.Repository
	savings savingsrepo.Repository
	hasher  *security.Hasher
	log     *logger.Logger
	now     time.Time
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	defer log.Sync()

	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is not set; create a .env or set DATABASE_URL")
	}
	conn, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("db open failed", "error", err)
	}
	defer conn.Close()

	s := &seeder{
		users:   userrepo.NewPostgresRepository(conn),
		mpesa:   mpesarepo.NewPostgresRepository(conn),
		savings: savingsrepo.NewPostgresRepository(conn),
		hasher:  security.NewHasher(cfg.BcryptCost),
		log:     log,
		now:     time.Now().UTC(),
	}
	if err := s.run(context.Background()); err != nil {
		log.Fatal("seed failed", "error", err)
	}
}

func (s *seeder) run(ctx context.Context) error {
	existing, err := s.users.GetByEmail(ctx, devUserEmail)
	if err != nil {
		return fmt.Errorf("seed check: %w", err)
	}
	if existing != nil {
		s.log.Info("seed already applied; skipping", "email", devUserEmail)
		return nil
	}

	devUser, err := s.createUser(ctx, forms.Values{
		"first_name":    "Dev",
		"last_name":     "User",
		"id_number":     "12345678",
		"phone_number":  "+254712345678",
		"email":         devUserEmail,
		"date_of_birth": "1990-01-15",
	})
	if err != nil {
		return err
	}
	if _, err := s.createUser(ctx, forms.Values{
		"first_name":    "Member",
		"last_name":     "User",
		"id_number":     "7654321",
		"phone_number":  "+254798765432",
		"email":         "member@example.com",
		"date_of_birth": "1985-07-30",
	}); err != nil {
		return err
	}

	if err := s.createMPesaAccount(ctx, devUser.ID, "6000.00"); err != nil {
		return err
	}
	if err := s.createSavingsAccount(ctx, devUser.ID); err != nil {
		return err
	}
	s.log.Info("seed applied", "email", devUserEmail, "user_id", devUser.ID)
	return nil
}

func (s *seeder) createUser(ctx context.Context, raw forms.Values) (*userdomain.User, error) {
	data, err := forms.NewCustomerRegistration().Validate(ctx, raw, forms.Context{Now: s.now})
	if err != nil {
		return nil, fmt.Errorf("registration %s: %w", raw["email"], err)
	}
	passwordHash, err := s.hasher.Hash(devPassword)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	dob := data.DateOfBirth
	u := &userdomain.User{
		ID:           uuid.NewString(),
		FirstName:    data.FirstName,
		LastName:     data.LastName,
		Email:        data.Email,
		PhoneNumber:  data.PhoneNumber,
		IDNumber:     data.IDNumber,
		DateOfBirth:  &dob,
		PasswordHash: passwordHash,
		CreatedAt:    s.now,
		UpdatedAt:    s.now,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("create user %s: %w", u.Email, err)
	}
	return u, nil
}

func (s *seeder) createMPesaAccount(ctx context.Context, userID, deposit string) error {
	pin, err := forms.NewMPesaAccountCreation().Validate(ctx, forms.Values{"pin": devPIN, "confirm_pin": devPIN}, forms.Context{UserID: userID})
	if err != nil {
		return fmt.Errorf("account creation: %w", err)
	}
	amount, err := forms.NewInitialDeposit().Validate(ctx, forms.Values{"amount": deposit}, forms.Context{UserID: userID})
	if err != nil {
		return fmt.Errorf("initial deposit: %w", err)
	}
	pinHash, err := s.hasher.Hash(pin.PIN)
	if err != nil {
		return fmt.Errorf("hash pin: %w", err)
	}
	return s.mpesa.Create(ctx, &mpesadomain.MPesaAccount{
		ID:        uuid.NewString(),
		UserID:    userID,
		Balance:   amount.Amount,
		PINHash:   pinHash,
		Status:    mpesadomain.AccountStatusActive,
		CreatedAt: s.now,
		UpdatedAt: s.now,
	})
}

func (s *seeder) createSavingsAccount(ctx context.Context, userID string) error {
	accounts := lookup.NewAccounts(s.users, s.mpesa, s.savings)
	form := forms.NewSavingsAccountOpen(accounts, accounts)
	data, err := form.Validate(ctx, forms.Values{
		"next_of_kin_name":         "Jane Wanjiku",
		"next_of_kin_phone":        "+254700111222",
		"next_of_kin_relationship": string(savingsdomain.RelationshipSpouse),
	}, forms.Context{UserID: userID})
	if err != nil {
		return fmt.Errorf("savings account: %w", err)
	}
	return s.savings.Create(ctx, &savingsdomain.SavingsAccount{
		ID:                    uuid.NewString(),
		UserID:                userID,
		Balance:               decimal.Zero,
		NextOfKinName:         data.NextOfKinName,
		NextOfKinPhone:        data.NextOfKinPhone,
		NextOfKinRelationship: data.NextOfKinRelationship,
		CreatedAt:             s.now,
	})
}
