package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"inkpost/errs"
	"inkpost/models"
	"inkpost/repository"
	"inkpost/utils"
)

type AuthService struct {
	users repository.UserRepository
	jwt   *utils.JWTManager
	log   zerolog.Logger
	now   func() time.Time
}

func NewAuthService(users repository.UserRepository, jwt *utils.JWTManager, log zerolog.Logger) *AuthService {
	return &AuthService{
		users: users,
		jwt:   jwt,
		log:   log.With().Str("component", "auth_service").Logger(),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Register creates an account and signs a token for it.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, string, error) {
	user := models.NewUser(req.Username, req.Email, req.Password)
	if err := user.HashPassword(); err != nil {
		return nil, "", errs.Internal("failed to hash password", err)
	}
	user.CreatedAt = s.now()
	user.UpdatedAt = user.CreatedAt

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, "", errs.Conflict("username or email already taken")
		}
		return nil, "", errs.Internal("failed to create user", err)
	}

	token, err := s.jwt.GenerateJWT(user.Identity())
	if err != nil {
		return nil, "", errs.Internal("failed to generate token", err)
	}

	s.log.Info().Str("user_id", user.ID).Str("username", user.Username).Msg("user registered")
	return user, token, nil
}

func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.User, string, error) {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", errs.Unauthorized("invalid credentials")
		}
		return nil, "", errs.Internal("failed to look up user", err)
	}

	if !user.CheckPassword(req.Password) {
		return nil, "", errs.Unauthorized("invalid credentials")
	}
	if !user.Profile.IsActive {
		return nil, "", errs.Forbidden("account is deactivated")
	}

	token, err := s.jwt.GenerateJWT(user.Identity())
	if err != nil {
		return nil, "", errs.Internal("failed to generate token", err)
	}
	return user, token, nil
}

func (s *AuthService) TokenTTL() time.Duration {
	return s.jwt.TTL()
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
