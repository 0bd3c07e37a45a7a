package repository

import (
	"context"
	"strings"
	"time"

	"estimator/internal/domain"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

type userModel struct {
	ID           int64     `gorm:"column:id;primaryKey"`
	Username     string    `gorm:"column:username;uniqueIndex"`
	Email        string    `gorm:"column:email;uniqueIndex"`
	PasswordHash string    `gorm:"column:password_hash"`
	FirstName    string    `gorm:"column:first_name"`
	LastName     string    `gorm:"column:last_name"`
	IsActive     bool      `gorm:"column:is_active;default:true"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (userModel) TableName() string { return "users" }

func toDomainUser(m userModel) *domain.User {
	return &domain.User{
		ID:           m.ID,
		Username:     m.Username,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		FirstName:    m.FirstName,
		LastName:     m.LastName,
		IsActive:     m.IsActive,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func toUserModel(u *domain.User) userModel {
	return userModel{
		ID:           u.ID,
		Username:     strings.TrimSpace(u.Username),
		Email:        strings.TrimSpace(strings.ToLower(u.Email)),
		PasswordHash: u.PasswordHash,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		IsActive:     u.IsActive,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	m := toUserModel(u)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*u = *toDomainUser(m)
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var m userModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainUser(m), nil
}

// GetActiveByLogin finds an active user by username or email.
func (r *UserRepository) GetActiveByLogin(ctx context.Context, login string) (*domain.User, error) {
	login = strings.TrimSpace(login)
	var m userModel
	tx := r.db.WithContext(ctx).
		Where("(username = ? OR LOWER(email) = ?) AND is_active = ?", login, strings.ToLower(login), true).
		First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainUser(m), nil
}

func (r *UserRepository) GetActiveByID(ctx context.Context, id int64) (*domain.User, error) {
	var m userModel
	tx := r.db.WithContext(ctx).Where("id = ? AND is_active = ?", id, true).First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainUser(m), nil
}

func (r *UserRepository) LoginTaken(ctx context.Context, username, email string) (bool, error) {
	var count int64
	tx := r.db.WithContext(ctx).Model(&userModel{}).
		Where("username = ? OR LOWER(email) = ?", strings.TrimSpace(username), strings.ToLower(strings.TrimSpace(email))).
		Count(&count)
	return count > 0, tx.Error
}

func (r *UserRepository) EmailUsedByOther(ctx context.Context, email string, userID int64) (bool, error) {
	var count int64
	tx := r.db.WithContext(ctx).Model(&userModel{}).
		Where("LOWER(email) = ? AND id != ?", strings.ToLower(strings.TrimSpace(email)), userID).
		Count(&count)
	return count > 0, tx.Error
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id int64, firstName, lastName, email string) error {
	return r.db.WithContext(ctx).Model(&userModel{}).Where("id = ?", id).Updates(map[string]any{
		"first_name": firstName,
		"last_name":  lastName,
		"email":      strings.ToLower(strings.TrimSpace(email)),
		"updated_at": time.Now(),
	}).Error
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	return r.db.WithContext(ctx).Model(&userModel{}).Where("id = ?", id).Updates(map[string]any{
		"password_hash": passwordHash,
		"updated_at":    time.Now(),
	}).Error
}

func (r *UserRepository) GetAll(ctx context.Context) ([]domain.User, error) {
	var models []userModel
	tx := r.db.WithContext(ctx).Order("username ASC").Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}

	users := make([]domain.User, len(models))
	for i, m := range models {
		u := toDomainUser(m)
		u.PasswordHash = ""
		users[i] = *u
	}
	return users, nil
}
