package forms

import (
	"context"

	mpesadomain "mpesa-forms/backend/internal/mpesa/domain"
)

// MPesaAccountGetter returns the acting user's M-Pesa account, or nil if the user has none.
type MPesaAccountGetter interface {
	GetMPesaAccountByUser(ctx context.Context, userID string) (*mpesadomain.MPesaAccount, error)
}

// SavingsAccountChecker reports whether a user already holds a savings account.
type SavingsAccountChecker interface {
	HasSavingsAccount(ctx context.Context, userID string) (bool, error)
}

// UniquenessChecker reports whether a value is registered to a user other than excludeUserID.
// Emails compare case-insensitively.
type UniquenessChecker interface {
	EmailTakenByOther(ctx context.Context, excludeUserID, email string) (bool, error)
	PhoneTakenByOther(ctx context.Context, excludeUserID, phone string) (bool, error)
	IDNumberTakenByOther(ctx context.Context, excludeUserID, idNumber string) (bool, error)
}

// PasswordHashGetter returns the stored password hash for a user, or "" if none is set.
type PasswordHashGetter interface {
	GetPasswordHash(ctx context.Context, userID string) (string, error)
}

// CredentialVerifier checks a candidate secret against a stored hash.
type CredentialVerifier interface {
	Verify(hash, candidate string) bool
}
