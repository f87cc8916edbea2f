package services

import (
	"testing"

	"notehub_backend/internal/models"
	"notehub_backend/internal/repositories"
	"notehub_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gorm.io/gorm"
)

type stubTokenService struct {
	TokenService
	deleteErr error
	consumed  bool
}

func (s *stubTokenService) FindToken(db *gorm.DB, value string, tokenType models.TokenType) (*models.Token, error) {
	return &models.Token{
		BaseModel: models.BaseModel{ID: "11111111-1111-1111-1111-111111111111"},
		UserID:    "22222222-2222-2222-2222-222222222222",
		Type:      tokenType,
		Value:     value,
	}, nil
}

func (s *stubTokenService) DeleteToken(db *gorm.DB, id string) error {
	return s.deleteErr
}

func (s *stubTokenService) ConsumeSingleUseToken(db *gorm.DB, value string, tokenType models.TokenType) (string, error) {
	s.consumed = true
	return "22222222-2222-2222-2222-222222222222", nil
}

// A refresh token consumed by a concurrent request between the lookup and
// the delete still counts as a successful logout.
func TestLogoutToleratesAlreadyConsumedToken(t *testing.T) {
	svc := NewAuthService(nil, &stubTokenService{deleteErr: repositories.ErrTokenNotFound}, nil)

	require.NoError(t, svc.Logout(nil, "some-refresh-token"))
}

func TestLogoutPropagatesUnexpectedDeleteError(t *testing.T) {
	svc := NewAuthService(nil, &stubTokenService{deleteErr: gorm.ErrInvalidDB}, nil)

	err := svc.Logout(nil, "some-refresh-token")
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeInternalError, appErr.Code)
}

// A password failing the policy must not burn the one-time reset token.
func TestResetPasswordChecksPolicyBeforeConsumingToken(t *testing.T) {
	stub := &stubTokenService{}
	svc := NewAuthService(nil, stub, nil)

	err := svc.ResetPassword(nil, "reset-token", "lettersonly")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrWeakPassword))
	assert.False(t, stub.consumed)
}
