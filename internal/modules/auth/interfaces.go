package auth

import (
	"context"

	"estimator/internal/domain"
)

// UserRepository is the persistence surface the auth service needs.
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetActiveByLogin(ctx context.Context, login string) (*domain.User, error)
	GetActiveByID(ctx context.Context, id int64) (*domain.User, error)
	LoginTaken(ctx context.Context, username, email string) (bool, error)
	EmailUsedByOther(ctx context.Context, email string, userID int64) (bool, error)
	UpdateProfile(ctx context.Context, id int64, firstName, lastName, email string) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	GetAll(ctx context.Context) ([]domain.User, error)
}
