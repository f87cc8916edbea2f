package integration_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"notehub_backend/internal/auth"
	"notehub_backend/internal/models"
	"notehub_backend/internal/repositories"
	"notehub_backend/internal/services"
	"notehub_backend/internal/workers"
	"notehub_backend/test/helpers"

	"github.com/stretchr/testify/require"
)

// The worker deletes from the shared pool, so this test runs against ts.DB
// directly instead of a per-test transaction and cleans up after itself.
func TestTokenWorker_SweepsExpiredTokens(t *testing.T) {
	ts := GetTestServer(t)

	user := &models.User{
		Name:     "Sweeper",
		Email:    helpers.UniqueEmail("sweep"),
		Password: "password123",
	}
	helpers.CreateUser(t, ts.DB, user)
	defer ts.DB.Where("user_id = ?", user.ID).Delete(&models.Token{})
	defer ts.DB.Delete(user)

	tokenRepo := repositories.NewTokenRepository()

	expiredValue, err := auth.GenerateOpaqueToken()
	require.NoError(t, err)
	liveValue, err := auth.GenerateOpaqueToken()
	require.NoError(t, err)

	require.NoError(t, tokenRepo.Create(ts.DB, &models.Token{
		UserID:    user.ID,
		Type:      models.TokenTypeRefresh,
		Value:     expiredValue,
		ExpiresAt: time.Now().Add(-time.Hour),
	}))
	require.NoError(t, tokenRepo.Create(ts.DB, &models.Token{
		UserID:    user.ID,
		Type:      models.TokenTypeRefresh,
		Value:     liveValue,
		ExpiresAt: time.Now().Add(time.Hour),
	}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	worker := workers.NewTokenWorker(ts.DB, services.NewTokenService(ts.Config, tokenRepo), 10*time.Millisecond)
	worker.Start(ctx)

	require.Eventually(t, func() bool {
		_, err := tokenRepo.FindByValue(ts.DB, expiredValue, models.TokenTypeRefresh)
		return errors.Is(err, repositories.ErrTokenNotFound)
	}, 2*time.Second, 20*time.Millisecond, "expired token should be swept")

	live, err := tokenRepo.FindByValue(ts.DB, liveValue, models.TokenTypeRefresh)
	require.NoError(t, err)
	require.Equal(t, user.ID, live.UserID)
}
