package models

import "time"

// TokenType discriminates the purpose of a persisted opaque token.
type TokenType string

const (
	TokenTypeRefresh       TokenType = "refresh"
	TokenTypeVerifyEmail   TokenType = "verify_email"
	TokenTypeResetPassword TokenType = "reset_password"
)

// Token is a single-use opaque token. A consumed token row is deleted, never
// retained: the delete is what prevents replay.
type Token struct {
	BaseModel
	UserID    string    `gorm:"type:uuid;not null;index" json:"userId"`
	Type      TokenType `gorm:"type:varchar(20);not null;index:idx_tokens_value_type" json:"type"`
	Value     string    `gorm:"uniqueIndex;not null;index:idx_tokens_value_type" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expiresAt"`
}

// IsExpired reports whether the token is past its expiry.
func (t *Token) IsExpired() bool {
	return time.Now().After(t.ExpiresAt)
}
