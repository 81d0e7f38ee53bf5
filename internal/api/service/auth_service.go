package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/akrgroup/backoffice/internal/api/middleware"
	"github.com/akrgroup/backoffice/internal/config"
	"github.com/akrgroup/backoffice/internal/domain/admin"
)

// ErrInvalidCredentials masks whether the email or the password was wrong
var ErrInvalidCredentials = errors.New("invalid email or password")

// AuthServiceImpl implements the AuthService interface
type AuthServiceImpl struct {
	logger    *slog.Logger
	adminRepo admin.Repository
	authCfg   *config.AuthConfig
}

// NewAuthService creates a new authentication service
func NewAuthService(logger *slog.Logger, adminRepo admin.Repository, authCfg *config.AuthConfig) AuthService {
	return &AuthServiceImpl{
		logger:    logger,
		adminRepo: adminRepo,
		authCfg:   authCfg,
	}
}

// Login verifies credentials and returns a signed session token. Unknown
// emails and wrong passwords both map to ErrInvalidCredentials.
func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (string, *admin.Admin, error) {
	a, err := s.adminRepo.GetByEmail(ctx, email)
	if err != nil {
		var notFound admin.ErrAdminNotFound
		if errors.As(err, &notFound) {
			s.logger.Info("Login attempt for unknown email", "email", email)
			return "", nil, ErrInvalidCredentials
		}
		s.logger.Error("Failed to look up admin", "email", email, "error", err)
		return "", nil, err
	}

	if err := a.CheckPassword(password); err != nil {
		s.logger.Info("Login attempt with wrong password", "email", email)
		return "", nil, ErrInvalidCredentials
	}

	token, err := middleware.GenerateAdminToken(s.authCfg.JWTSecret, s.authCfg.TokenTTL, a.ID.String(), a.Email, a.Name, a.Role)
	if err != nil {
		s.logger.Error("Failed to sign session token", "email", email, "error", err)
		return "", nil, err
	}

	s.logger.Info("Admin logged in", "email", email, "admin_id", a.ID)
	return token, a, nil
}
