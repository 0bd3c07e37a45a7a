package auth

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"estimator/internal/domain"
)

type jwtService interface {
	GenerateToken(userID int64, username string) (string, error)
}

// Service contains all business logic for authentication and account
// management.
type Service struct {
	users UserRepository
	jwt   jwtService
}

type LoginResult struct {
	User        *domain.User
	AccessToken string
}

func NewService(users UserRepository, jwt jwtService) *Service {
	return &Service{users: users, jwt: jwt}
}

// Register creates a staff account and logs it straight in.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*LoginResult, error) {
	if len(req.Password) < 6 {
		return nil, ErrPasswordTooShort
	}

	taken, err := s.users.LoginTaken(ctx, req.Username, req.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrLoginTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     strings.TrimSpace(req.Username),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: string(hash),
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		IsActive:     true,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.jwt.GenerateToken(user.ID, user.Username)
	if err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	return &LoginResult{User: user, AccessToken: token}, nil
}

// Login accepts a username or an email in the username field.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	user, err := s.users.GetActiveByLogin(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(user.ID, user.Username)
	if err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	return &LoginResult{User: user, AccessToken: token}, nil
}

// CurrentUser loads the active account behind the token.
func (s *Service) CurrentUser(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.users.GetActiveByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

func (s *Service) UpdateProfile(ctx context.Context, userID int64, req UpdateProfileRequest) error {
	inUse, err := s.users.EmailUsedByOther(ctx, req.Email, userID)
	if err != nil {
		return err
	}
	if inUse {
		return ErrEmailInUse
	}

	return s.users.UpdateProfile(ctx, userID,
		strings.TrimSpace(req.FirstName),
		strings.TrimSpace(req.LastName),
		req.Email)
}

func (s *Service) ChangePassword(ctx context.Context, userID int64, req ChangePasswordRequest) error {
	if len(req.NewPassword) < 6 {
		return ErrPasswordTooShort
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return ErrWrongPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.users.UpdatePassword(ctx, userID, string(hash))
}

func (s *Service) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.GetAll(ctx)
}
