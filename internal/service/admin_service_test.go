package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/complaint-service/internal/config"
	"github.com/spec-kit/complaint-service/internal/service"
	"github.com/spec-kit/complaint-service/internal/store"
	apperrors "github.com/spec-kit/complaint-service/pkg/util/errorutil"
)

func adminConfig(env, seed string) *config.Config {
	return &config.Config{
		App:  config.AppConfig{Env: env},
		Auth: config.AuthConfig{AdminPassword: seed},
	}
}

func TestEnsureAdminPasswordSeedsDefaultOutsideProduction(t *testing.T) {
	st := store.NewMemoryStore()
	admin := service.NewAdminService(adminConfig("development", ""), st, zap.NewNop())

	require.NoError(t, admin.EnsureAdminPassword(context.Background()))

	stored, err := st.AdminPassword(context.Background())
	require.NoError(t, err)
	assert.Equal(t, service.DefaultAdminPassword, stored)
}

func TestEnsureAdminPasswordPrefersEnvironmentSeed(t *testing.T) {
	st := store.NewMemoryStore()
	admin := service.NewAdminService(adminConfig("development", "from-env"), st, zap.NewNop())

	require.NoError(t, admin.EnsureAdminPassword(context.Background()))

	stored, err := st.AdminPassword(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "from-env", stored)
}

func TestEnsureAdminPasswordFatalInProductionWithoutSeed(t *testing.T) {
	st := store.NewMemoryStore()
	admin := service.NewAdminService(adminConfig("production", ""), st, zap.NewNop())

	assert.Error(t, admin.EnsureAdminPassword(context.Background()))
}

func TestEnsureAdminPasswordKeepsExistingCredential(t *testing.T) {
	st := store.NewMemoryStore()
	require.NoError(t, st.SetAdminPassword(context.Background(), "already-set"))

	admin := service.NewAdminService(adminConfig("development", "from-env"), st, zap.NewNop())
	require.NoError(t, admin.EnsureAdminPassword(context.Background()))

	stored, err := st.AdminPassword(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "already-set", stored)
}

func TestVerifyPassword(t *testing.T) {
	st := store.NewMemoryStore()
	admin := service.NewAdminService(adminConfig("development", "super-secret"), st, zap.NewNop())
	require.NoError(t, admin.EnsureAdminPassword(context.Background()))

	err := admin.VerifyPassword(context.Background(), "")
	require.Error(t, err)
	assert.Equal(t, "MISSING_CREDENTIALS", apperrors.ToDomainError(err).Code)

	err = admin.VerifyPassword(context.Background(), "wrong")
	require.Error(t, err)
	assert.Equal(t, "INVALID_CREDENTIALS", apperrors.ToDomainError(err).Code)

	assert.NoError(t, admin.VerifyPassword(context.Background(), "super-secret"))
}

func TestRotatePassword(t *testing.T) {
	st := store.NewMemoryStore()
	admin := service.NewAdminService(adminConfig("development", "super-secret"), st, zap.NewNop())
	require.NoError(t, admin.EnsureAdminPassword(context.Background()))

	require.NoError(t, admin.RotatePassword(context.Background(), "rotated"))
	assert.Error(t, admin.VerifyPassword(context.Background(), "super-secret"))
	assert.NoError(t, admin.VerifyPassword(context.Background(), "rotated"))
}
