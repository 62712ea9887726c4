package verification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mpesa-forms/backend/internal/forms"
	"mpesa-forms/backend/internal/logger"
)

var (
	// ErrCodeExpired is returned when the user has no outstanding code, or it expired.
	ErrCodeExpired = errors.New("verification: code expired or not issued")
	// ErrCodeMismatch is returned when the submitted code does not match the outstanding one.
	ErrCodeMismatch = errors.New("verification: code does not match")
	// ErrUserRequired is returned when no user is given.
	ErrUserRequired = errors.New("verification: user id is required")
)

// Sender delivers a plain code to the user, e.g. by SMS or email.
type Sender interface {
	SendCode(ctx context.Context, userID, code string) error
}

// Issued describes a newly issued code. Code is only set when the service returns codes to the
// client (development).
type Issued struct {
	Code      string    `json:"code,omitempty"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Service issues and confirms verification codes.
type Service struct {
	store          Store
	form           *forms.AccountVerification
	ttl            time.Duration
	returnToClient bool
	sender         Sender
	log            *logger.Logger
	nowF           func() time.Time
	generate       func() (string, error)
}

// NewService returns a Service storing codes in store for ttl. sender may be nil. When
// returnToClient is true the plain code is also handed back from Issue.
func NewService(store Store, ttl time.Duration, returnToClient bool, sender Sender, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		store:          store,
		form:           forms.NewAccountVerification(),
		ttl:            ttl,
		returnToClient: returnToClient,
		sender:         sender,
		log:            log,
		nowF:           func() time.Time { return time.Now().UTC() },
		generate:       GenerateCode,
	}
}

// Issue generates a new code for userID, replacing any outstanding one.
func (s *Service) Issue(ctx context.Context, userID string) (*Issued, error) {
	if userID == "" {
		return nil, ErrUserRequired
	}
	code, err := s.generate()
	if err != nil {
		return nil, fmt.Errorf("verification: generate code: %w", err)
	}
	if err := s.store.Put(ctx, userID, HashCode(code), s.ttl); err != nil {
		return nil, err
	}
	if s.sender != nil {
		if err := s.sender.SendCode(ctx, userID, code); err != nil {
			return nil, fmt.Errorf("verification: send code: %w", err)
		}
	}
	issued := &Issued{ExpiresAt: s.nowF().Add(s.ttl)}
	if s.returnToClient {
		issued.Code = code
	}
	s.log.Info("verification code issued", "user_id", userID, "expires_at", issued.ExpiresAt)
	return issued, nil
}

// Confirm validates raw through the AccountVerification form and checks the code against the
// outstanding one for userID. A malformed code is returned as forms.Errors. A matching code is
// consumed.
func (s *Service) Confirm(ctx context.Context, userID string, raw forms.Values) error {
	if userID == "" {
		return ErrUserRequired
	}
	data, err := s.form.Validate(ctx, raw, forms.Context{UserID: userID})
	if err != nil {
		return err
	}
	codeHash, ok, err := s.store.Get(ctx, userID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrCodeExpired
	}
	if !CodeEqual(data.Code, codeHash) {
		s.log.Warn("verification code mismatch", "user_id", userID)
		return ErrCodeMismatch
	}
	if err := s.store.Delete(ctx, userID); err != nil {
		return err
	}
	s.log.Info("verification code confirmed", "user_id", userID)
	return nil
}
