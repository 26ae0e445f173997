package service

import (
	"context"
	"time"

	"markethub/internal/models"
	"markethub/internal/repository"

	"go.uber.org/zap"
)

const minPasswordLen = 8

type authService struct {
	repo      *repository.Repository
	hasher    PasswordHasher
	tokens    TokenProvider
	accessTTL time.Duration
	log       *zap.Logger
}

func NewAuthService(repo *repository.Repository, hasher PasswordHasher, tokens TokenProvider, accessTTL time.Duration, log *zap.Logger) AuthService {
	return &authService{
		repo:      repo,
		hasher:    hasher,
		tokens:    tokens,
		accessTTL: accessTTL,
		log:       log,
	}
}

func (s *authService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if in.Password != in.Password2 {
		return nil, ErrPasswordMismatch
	}
	if len(in.Password) < minPasswordLen {
		return nil, ErrPasswordTooShort
	}

	role := in.Role
	if role == "" {
		role = models.RoleCustomer
	}
	if role != models.RoleCustomer && role != models.RoleSeller {
		return nil, ErrInvalidRole
	}

	if exists, err := s.repo.Users.ExistsByUsername(ctx, in.Username); err != nil {
		return nil, err
	} else if exists {
		return nil, ErrUsernameExists
	}
	if exists, err := s.repo.Users.ExistsByEmail(ctx, in.Email); err != nil {
		return nil, err
	} else if exists {
		return nil, ErrEmailExists
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	u := &models.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         role,
		IsStaff:      false, // staff назначается только вручную
	}
	if err := s.repo.Users.Create(ctx, u); err != nil {
		return nil, err
	}

	s.log.Info("user registered",
		zap.String("user_id", u.ID.String()),
		zap.String("role", string(u.Role)),
	)
	return u, nil
}

func (s *authService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	u, err := s.repo.Users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if u == nil || !s.hasher.Compare(u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	token, exp, err := s.tokens.SignAccess(ctx, u, s.accessTTL)
	if err != nil {
		return nil, err
	}
	return &LoginResult{User: u, AccessToken: token, ExpiresAt: exp}, nil
}

func (s *authService) Me(ctx context.Context) (*models.User, error) {
	actor, err := requireAuth(ctx)
	if err != nil {
		return nil, err
	}
	u, err := s.repo.Users.GetByID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}
