package domain

import (
	"errors"
	"time"
)

// User is a registered M-Pesa customer.
type User struct {
	ID          string
	FirstName   string
	LastName    string
	Email       string
	PhoneNumber string // optional; +254XXXXXXXXX
	IDNumber    string // optional; Kenyan national ID
	DateOfBirth *time.Time
	// PasswordHash is the bcrypt hash of the web login password.
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FullName joins first and last name.
func (u *User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// Validate validates the user for persistence. Returns an error describing the first validation failure.
func (u *User) Validate() error {
	if u.ID == "" {
		return errors.New("id is required")
	}
	if u.Email == "" {
		return errors.New("email is required")
	}
	if u.FirstName == "" || u.LastName == "" {
		return errors.New("first and last name are required")
	}
	return nil
}
