package forms

import (
	"context"
	"time"

	"mpesa-forms/backend/internal/validation"
)

const (
	msgEmailTaken    = "This email is already registered."
	msgPhoneTaken    = "This phone number is already registered."
	msgIDNumberTaken = "This ID number is already registered."
	msgOldPassword   = "Your old password was entered incorrectly. Please enter it again."
	msgPasswordPair  = "The two password fields didn't match."
)

// ProfileData is an accepted profile edit. Optional fields left empty are zero.
type ProfileData struct {
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	Email       string     `json:"email"`
	PhoneNumber string     `json:"phone_number,omitempty"`
	IDNumber    string     `json:"id_number,omitempty"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
}

// UserProfile edits the acting user's profile. Email, phone number and ID number must not belong
// to any other user; keeping one's own values is allowed.
type UserProfile struct {
	form Form
}

// NewUserProfile returns the profile form backed by users for uniqueness checks.
func NewUserProfile(users UniquenessChecker) *UserProfile {
	f := &UserProfile{}
	email := FieldSpec{Name: "email", Label: "Email", Required: true, Normalize: lowerEmail, Validators: []func(string) error{validation.Email}}
	email.Clean = uniqueIn(users.EmailTakenByOther, msgEmailTaken)
	phone := phoneField("phone_number", "Phone Number", false)
	phone.Clean = uniqueIn(users.PhoneTakenByOther, msgPhoneTaken)
	idNumber := FieldSpec{Name: "id_number", Label: "ID Number", MaxLength: 8, Validators: []func(string) error{validation.KenyanID}}
	idNumber.Clean = uniqueIn(users.IDNumberTakenByOther, msgIDNumberTaken)
	f.form = Form{
		Name: FormUserProfile,
		Fields: []FieldSpec{
			nameField("first_name", "First Name"),
			nameField("last_name", "Last Name"),
			email,
			phone,
			idNumber,
			{Name: "date_of_birth", Label: "Date of Birth", Type: TypeDate},
		},
	}
	return f
}

// Validate checks a profile edit by fc.UserID. Without a UserID the uniqueness checks are skipped.
func (f *UserProfile) Validate(ctx context.Context, raw Values, fc Context) (*ProfileData, error) {
	return observe(ctx, f.form.Name, func(ctx context.Context) (*ProfileData, error) {
		c, errs, err := f.form.clean(ctx, raw, fc)
		if err != nil {
			return nil, err
		}
		if len(errs) > 0 {
			return nil, errs
		}
		return &ProfileData{
			FirstName:   c.String("first_name"),
			LastName:    c.String("last_name"),
			Email:       c.String("email"),
			PhoneNumber: c.String("phone_number"),
			IDNumber:    c.String("id_number"),
			DateOfBirth: c.Date("date_of_birth"),
		}, nil
	})
}

type takenByOther func(ctx context.Context, excludeUserID, value string) (bool, error)

func uniqueIn(taken takenByOther, msg string) CleanFunc {
	return func(ctx context.Context, fc Context, value any) (any, error) {
		s := value.(string)
		if fc.UserID == "" {
			return s, nil
		}
		exists, err := taken(ctx, fc.UserID, s)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, validation.Errorf(validation.KindUniqueness, "%s", msg)
		}
		return s, nil
	}
}

// PasswordChangeData is an accepted password change. NewPassword is plaintext and must be hashed
// before it is stored.
type PasswordChangeData struct {
	NewPassword string `json:"-"`
}

// PasswordChange replaces the acting user's login password after verifying the old one.
type PasswordChange struct {
	form      Form
	passwords PasswordHashGetter
	creds     CredentialVerifier
}

// NewPasswordChange returns the password change form.
func NewPasswordChange(passwords PasswordHashGetter, creds CredentialVerifier) *PasswordChange {
	f := &PasswordChange{passwords: passwords, creds: creds}
	f.form = Form{
		Name: FormPasswordChange,
		Fields: []FieldSpec{
			{Name: "old_password", Label: "Current Password", Required: true, KeepWhitespace: true, Clean: f.verifyOldPassword},
			{Name: "new_password1", Label: "New Password", Required: true, KeepWhitespace: true, Validators: []func(string) error{validation.StrongPassword}},
			{Name: "new_password2", Label: "Confirm New Password", Required: true, KeepWhitespace: true},
		},
	}
	return f
}

// Validate checks a password change for fc.UserID.
func (f *PasswordChange) Validate(ctx context.Context, raw Values, fc Context) (*PasswordChangeData, error) {
	return observe(ctx, f.form.Name, func(ctx context.Context) (*PasswordChangeData, error) {
		c, errs, err := f.form.clean(ctx, raw, fc)
		if err != nil {
			return nil, err
		}
		if len(errs) > 0 {
			return nil, errs
		}
		if c.String("new_password1") != c.String("new_password2") {
			return nil, errs.add("new_password2", validation.Errorf(validation.KindConsistency, msgPasswordPair))
		}
		return &PasswordChangeData{NewPassword: c.String("new_password1")}, nil
	})
}

func (f *PasswordChange) verifyOldPassword(ctx context.Context, fc Context, value any) (any, error) {
	password := value.(string)
	hash, err := f.passwords.GetPasswordHash(ctx, fc.UserID)
	if err != nil {
		return nil, err
	}
	if !f.creds.Verify(hash, password) {
		return nil, validation.Errorf(validation.KindCredential, msgOldPassword)
	}
	return password, nil
}
