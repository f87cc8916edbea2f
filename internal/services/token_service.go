package services

import (
	"time"

	"notehub_backend/internal/auth"
	"notehub_backend/internal/config"
	"notehub_backend/internal/models"
	"notehub_backend/internal/repositories"
	"notehub_backend/pkg/apperrors"

	"gorm.io/gorm"
)

const (
	verifyEmailTokenTTL   = 24 * time.Hour
	resetPasswordTokenTTL = time.Hour
)

// TokenService owns the token lifecycle: stateless signed access tokens and
// persisted single-use opaque tokens (refresh, verify-email, reset-password).
type TokenService interface {
	GenerateAccessToken(userID string) (string, error)

	// GenerateAuthTokenPair issues an access token plus a persisted refresh
	// token row with the configured max-age.
	GenerateAuthTokenPair(db *gorm.DB, userID string) (accessToken, refreshToken string, err error)

	// IssueSingleUseToken creates and persists an opaque token of the given
	// type. Refresh tokens go through GenerateAuthTokenPair instead.
	IssueSingleUseToken(db *gorm.DB, userID string, tokenType models.TokenType) (string, error)

	FindToken(db *gorm.DB, value string, tokenType models.TokenType) (*models.Token, error)
	DeleteToken(db *gorm.DB, id string) error

	// ConsumeSingleUseToken validates and atomically deletes the token,
	// returning the owning user ID. A second consumption of the same value
	// always fails, even back-to-back.
	ConsumeSingleUseToken(db *gorm.DB, value string, tokenType models.TokenType) (string, error)

	// RevokeUserTokens deletes every live token of one type for a user.
	RevokeUserTokens(db *gorm.DB, userID string, tokenType models.TokenType) error

	CleanExpired(db *gorm.DB) error
}

type tokenServiceImpl struct {
	cfg       *config.Config
	tokenRepo repositories.TokenRepository
}

func NewTokenService(cfg *config.Config, tokenRepo repositories.TokenRepository) TokenService {
	return &tokenServiceImpl{
		cfg:       cfg,
		tokenRepo: tokenRepo,
	}
}

func (s *tokenServiceImpl) GenerateAccessToken(userID string) (string, error) {
	ttl := time.Duration(s.cfg.JWT.TTLMinutes) * time.Minute
	return auth.GenerateToken(userID, []byte(s.cfg.JWT.Secret), ttl)
}

func (s *tokenServiceImpl) GenerateAuthTokenPair(db *gorm.DB, userID string) (string, string, error) {
	accessToken, err := s.GenerateAccessToken(userID)
	if err != nil {
		return "", "", apperrors.InternalError(err)
	}

	refreshToken, err := s.issueToken(db, userID, models.TokenTypeRefresh, s.refreshTokenTTL())
	if err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}

func (s *tokenServiceImpl) IssueSingleUseToken(db *gorm.DB, userID string, tokenType models.TokenType) (string, error) {
	return s.issueToken(db, userID, tokenType, singleUseTTL(tokenType))
}

func (s *tokenServiceImpl) FindToken(db *gorm.DB, value string, tokenType models.TokenType) (*models.Token, error) {
	return s.tokenRepo.FindByValue(db, value, tokenType)
}

func (s *tokenServiceImpl) DeleteToken(db *gorm.DB, id string) error {
	return s.tokenRepo.DeleteByID(db, id)
}

func (s *tokenServiceImpl) ConsumeSingleUseToken(db *gorm.DB, value string, tokenType models.TokenType) (string, error) {
	token, err := s.tokenRepo.ConsumeSingleUse(db, value, tokenType)
	if err != nil {
		if apperrors.Is(err, repositories.ErrTokenNotFound) {
			return "", apperrors.ErrInvalidToken
		}
		return "", apperrors.InternalError(err)
	}
	return token.UserID, nil
}

func (s *tokenServiceImpl) RevokeUserTokens(db *gorm.DB, userID string, tokenType models.TokenType) error {
	return s.tokenRepo.DeleteByUserID(db, userID, tokenType)
}

func (s *tokenServiceImpl) CleanExpired(db *gorm.DB) error {
	return s.tokenRepo.CleanExpired(db)
}

func (s *tokenServiceImpl) issueToken(db *gorm.DB, userID string, tokenType models.TokenType, ttl time.Duration) (string, error) {
	value, err := auth.GenerateOpaqueToken()
	if err != nil {
		return "", apperrors.InternalError(err)
	}

	token := &models.Token{
		UserID:    userID,
		Type:      tokenType,
		Value:     value,
		ExpiresAt: time.Now().Add(ttl),
	}
	if err := s.tokenRepo.Create(db, token); err != nil {
		return "", apperrors.InternalError(err)
	}
	return value, nil
}

func (s *tokenServiceImpl) refreshTokenTTL() time.Duration {
	return time.Duration(s.cfg.RefreshToken.MaxAgeHours) * time.Hour
}

func singleUseTTL(tokenType models.TokenType) time.Duration {
	switch tokenType {
	case models.TokenTypeResetPassword:
		return resetPasswordTokenTTL
	default:
		return verifyEmailTokenTTL
	}
}
