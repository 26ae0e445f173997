package service

import (
	"context"
	"time"

	"markethub/internal/models"

	"github.com/google/uuid"
)

type RegisterInput struct {
	Username  string
	Email     string
	Password  string
	Password2 string
	Role      models.Role
}

type LoginResult struct {
	User        *models.User
	AccessToken string
	ExpiresAt   time.Time
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*models.User, error)
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	Me(ctx context.Context) (*models.User, error)
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}

// Claims — проверенное содержимое access-токена.
type Claims struct {
	UserID   uuid.UUID
	Username string
	Role     models.Role
	IsStaff  bool
	Exp      time.Time
}

type TokenProvider interface {
	SignAccess(ctx context.Context, u *models.User, ttl time.Duration) (token string, exp time.Time, err error)
	ParseAndValidateAccess(ctx context.Context, token string) (*Claims, error)
}
