package repository

import (
	"context"

	"mpesa-forms/backend/internal/user/domain"
)

// Repository defines persistence for users.
type Repository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, u *domain.User) error
	// EmailTakenByOther reports whether a user other than excludeID has email, ignoring case.
	EmailTakenByOther(ctx context.Context, excludeID, email string) (bool, error)
	// PhoneTakenByOther reports whether a user other than excludeID has phone.
	PhoneTakenByOther(ctx context.Context, excludeID, phone string) (bool, error)
	// IDNumberTakenByOther reports whether a user other than excludeID has idNumber.
	IDNumberTakenByOther(ctx context.Context, excludeID, idNumber string) (bool, error)
}
