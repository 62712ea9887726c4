package lookup

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"mpesa-forms/backend/internal/db"
	"mpesa-forms/backend/internal/db/migrate"
	mpesadomain "mpesa-forms/backend/internal/mpesa/domain"
	mpesarepo "mpesa-forms/backend/internal/mpesa/repository"
	savingsdomain "mpesa-forms/backend/internal/savings/domain"
	savingsrepo "mpesa-forms/backend/internal/savings/repository"
	userdomain "mpesa-forms/backend/internal/user/domain"
	userrepo "mpesa-forms/backend/internal/user/repository"
)

func TestAccounts_Postgres(t *testing.T) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}
	if _, err := migrate.Run(dsn, migrate.Up); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	conn, err := db.Open(dsn)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer conn.Close()

	ctx := context.Background()
	users := userrepo.NewPostgresRepository(conn)
	mpesa := mpesarepo.NewPostgresRepository(conn)
	savings := savingsrepo.NewPostgresRepository(conn)
	accounts := NewAccounts(users, mpesa, savings)

	now := time.Now().UTC().Truncate(time.Second)
	suffix := uuid.NewString()[:8]
	u := &userdomain.User{
		ID:           uuid.NewString(),
		FirstName:    "Test",
		LastName:     "User",
		Email:        "Lookup-" + suffix + "@Example.com",
		PasswordHash: "hash",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := users.Create(ctx, u); err != nil {
		t.Fatalf("create user: %v", err)
	}
	if u.Email != "lookup-"+suffix+"@example.com" {
		t.Errorf("stored email = %q, want lowercased", u.Email)
	}
	t.Cleanup(func() {
		_, _ = conn.Exec(`DELETE FROM savings_accounts WHERE user_id = $1`, u.ID)
		_, _ = conn.Exec(`DELETE FROM mpesa_accounts WHERE user_id = $1`, u.ID)
		_, _ = conn.Exec(`DELETE FROM users WHERE id = $1`, u.ID)
	})

	if acc, err := accounts.GetMPesaAccountByUser(ctx, u.ID); err != nil || acc != nil {
		t.Fatalf("before create: %+v, %v", acc, err)
	}
	if err := mpesa.Create(ctx, &mpesadomain.MPesaAccount{
		ID: uuid.NewString(), UserID: u.ID, Balance: decimal.RequireFromString("1500.50"),
		PINHash: "pin-hash", Status: mpesadomain.AccountStatusActive, CreatedAt: now, UpdatedAt: now,
	}); err != nil {
		t.Fatalf("create mpesa account: %v", err)
	}
	acc, err := accounts.GetMPesaAccountByUser(ctx, u.ID)
	if err != nil || acc == nil {
		t.Fatalf("after create: %+v, %v", acc, err)
	}
	if !acc.Balance.Equal(decimal.RequireFromString("1500.50")) {
		t.Errorf("Balance = %s", acc.Balance)
	}

	if err := savings.Create(ctx, &savingsdomain.SavingsAccount{
		ID: uuid.NewString(), UserID: u.ID, NextOfKinName: "Kin", NextOfKinPhone: "+254700000000",
		NextOfKinRelationship: savingsdomain.RelationshipOther, CreatedAt: now,
	}); err != nil {
		t.Fatalf("create savings account: %v", err)
	}
	if has, err := accounts.HasSavingsAccount(ctx, u.ID); err != nil || !has {
		t.Errorf("HasSavingsAccount = %v, %v", has, err)
	}

	if taken, err := accounts.EmailTakenByOther(ctx, u.ID, u.Email); err != nil || taken {
		t.Errorf("own email taken = %v, %v", taken, err)
	}
	if taken, err := accounts.EmailTakenByOther(ctx, uuid.NewString(), u.Email); err != nil || !taken {
		t.Errorf("email taken by other = %v, %v", taken, err)
	}
	if taken, err := accounts.EmailTakenByOther(ctx, uuid.NewString(), strings.ToUpper(u.Email)); err != nil || !taken {
		t.Errorf("uppercased email taken by other = %v, %v", taken, err)
	}
	if got, err := users.GetByEmail(ctx, strings.ToUpper(u.Email)); err != nil || got == nil || got.ID != u.ID {
		t.Errorf("GetByEmail(upper) = %+v, %v", got, err)
	}
	if hash, err := accounts.GetPasswordHash(ctx, u.ID); err != nil || hash != "hash" {
		t.Errorf("GetPasswordHash = %q, %v", hash, err)
	}
}
