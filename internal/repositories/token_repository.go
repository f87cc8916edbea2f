package repositories

import (
	"errors"
	"time"

	"notehub_backend/internal/models"

	"gorm.io/gorm"
)

var (
	// ErrTokenNotFound covers absent, expired and already-consumed tokens
	// alike.
	ErrTokenNotFound = errors.New("token not found")
)

// TokenRepository persists opaque single-use tokens. Every method takes the
// db handle (pool or transaction) so callers control the transaction scope.
type TokenRepository interface {
	Create(db *gorm.DB, token *models.Token) error
	FindByValue(db *gorm.DB, value string, tokenType models.TokenType) (*models.Token, error)
	DeleteByID(db *gorm.DB, id string) error

	// ConsumeSingleUse looks the token up by (value, type), verifies expiry
	// and deletes it, all in one transaction. Exactly one concurrent caller
	// can win; everyone else gets ErrTokenNotFound.
	ConsumeSingleUse(db *gorm.DB, value string, tokenType models.TokenType) (*models.Token, error)

	DeleteByUserID(db *gorm.DB, userID string, tokenType models.TokenType) error
	CleanExpired(db *gorm.DB) error
}

type tokenRepository struct{}

func NewTokenRepository() TokenRepository {
	return &tokenRepository{}
}

func (r *tokenRepository) Create(db *gorm.DB, token *models.Token) error {
	return db.Create(token).Error
}

func (r *tokenRepository) FindByValue(db *gorm.DB, value string, tokenType models.TokenType) (*models.Token, error) {
	var token models.Token
	err := db.Where("value = ? AND type = ?", value, tokenType).First(&token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTokenNotFound
		}
		return nil, err
	}
	return &token, nil
}

func (r *tokenRepository) DeleteByID(db *gorm.DB, id string) error {
	result := db.Where("id = ?", id).Delete(&models.Token{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTokenNotFound
	}
	return nil
}

func (r *tokenRepository) ConsumeSingleUse(db *gorm.DB, value string, tokenType models.TokenType) (*models.Token, error) {
	var token models.Token

	err := db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("value = ? AND type = ?", value, tokenType).First(&token).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTokenNotFound
			}
			return err
		}

		if token.IsExpired() {
			// Expired tokens are deleted on sight; the caller still sees a
			// plain not-found.
			tx.Where("id = ?", token.ID).Delete(&models.Token{})
			return ErrTokenNotFound
		}

		// The RowsAffected guard is what makes consumption single-use under
		// concurrency: of two racing transactions only one delete hits.
		result := tx.Where("id = ?", token.ID).Delete(&models.Token{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrTokenNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &token, nil
}

func (r *tokenRepository) DeleteByUserID(db *gorm.DB, userID string, tokenType models.TokenType) error {
	return db.Where("user_id = ? AND type = ?", userID, tokenType).Delete(&models.Token{}).Error
}

func (r *tokenRepository) CleanExpired(db *gorm.DB) error {
	return db.Where("expires_at < ?", time.Now()).Delete(&models.Token{}).Error
}
