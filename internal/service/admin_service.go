package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/spec-kit/complaint-service/internal/config"
	"github.com/spec-kit/complaint-service/internal/store"
	apperrors "github.com/spec-kit/complaint-service/pkg/util/errorutil"
)

// DefaultAdminPassword is the documented insecure default seeded outside
// production when no ADMIN_PASSWORD is supplied.
const DefaultAdminPassword = "admin123"

// AdminService owns the store-backed admin credential: seeding it at startup
// and verifying login attempts against it.
type AdminService struct {
	settings   store.SettingsStore
	logger     *zap.Logger
	seed       string
	production bool
}

// NewAdminService constructs the service.
func NewAdminService(cfg *config.Config, settings store.SettingsStore, logger *zap.Logger) *AdminService {
	return &AdminService{
		settings:   settings,
		logger:     logger,
		seed:       cfg.Auth.AdminPassword,
		production: cfg.App.IsProduction(),
	}
}

// EnsureAdminPassword seeds the credential on first run. In production a
// missing password is fatal; elsewhere the insecure default is used with a
// warning so local setups work out of the box.
func (s *AdminService) EnsureAdminPassword(ctx context.Context) error {
	_, err := s.settings.AdminPassword(ctx)
	if err == nil {
		return nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	password := s.seed
	if password == "" {
		if s.production {
			return errors.New("ADMIN_PASSWORD must be set in production")
		}
		password = DefaultAdminPassword
		s.logger.Warn("using default admin password; set ADMIN_PASSWORD before deploying")
	}
	return s.settings.SetAdminPassword(ctx, password)
}

// VerifyPassword validates a login attempt. Missing input fails before the
// store is consulted; a mismatch reports invalid credentials.
func (s *AdminService) VerifyPassword(ctx context.Context, password string) error {
	if password == "" {
		return apperrors.NewMissingCredentials("Password required")
	}

	stored, err := s.settings.AdminPassword(ctx)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperrors.NewInvalidCredentials("Invalid password")
		}
		return err
	}
	if password != stored {
		return apperrors.NewInvalidCredentials("Invalid password")
	}
	return nil
}

// RotatePassword replaces the stored credential.
func (s *AdminService) RotatePassword(ctx context.Context, password string) error {
	if password == "" {
		return apperrors.NewMissingCredentials("Password required")
	}
	return s.settings.SetAdminPassword(ctx, password)
}
