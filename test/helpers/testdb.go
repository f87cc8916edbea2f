package helpers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"notehub_backend/internal/models"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// CreateUser inserts a user, hashing the raw password in Password if it is
// not already a bcrypt hash. Users are verified by default.
func CreateUser(t *testing.T, db *gorm.DB, user *models.User) {
	if user.Password != "" && !strings.HasPrefix(user.Password, "$2a$") {
		hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
		require.NoError(t, err, "failed to hash password")
		user.Password = string(hashed)
	}

	if user.EmailVerifiedAt == nil {
		now := time.Now()
		user.EmailVerifiedAt = &now
	}

	require.NoError(t, db.Create(user).Error, "failed to create test user")
}

// TokenPair mirrors the login/refresh response body.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// CreateAndLoginUser creates a verified user and logs in through the API,
// returning the issued token pair.
func CreateAndLoginUser(t *testing.T, ts *TestServer, tx *gorm.DB, name, email, password string) (TokenPair, *models.User) {
	user := &models.User{
		Name:     name,
		Email:    email,
		Password: password,
	}
	CreateUser(t, tx, user)

	loginBody := map[string]interface{}{
		"email":    email,
		"password": password,
	}
	res, bodyStr := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/auth/login", "", loginBody)
	require.Equal(t, http.StatusOK, res.StatusCode, "login should succeed, got: "+bodyStr)

	var pair TokenPair
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &pair))
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	user.Password = password
	return pair, user
}

// UniqueEmail returns an address that will not collide across parallel tests.
func UniqueEmail(prefix string) string {
	return fmt.Sprintf("%s_%d@test.com", prefix, time.Now().UnixNano())
}

// CreateCategory inserts a category owned by authorID.
func CreateCategory(t *testing.T, tx *gorm.DB, name, authorID string) models.Category {
	category := models.Category{Name: name, AuthorID: authorID}
	require.NoError(t, tx.Create(&category).Error, "failed to create test category")
	return category
}

// CreateTag inserts a tag owned by authorID.
func CreateTag(t *testing.T, tx *gorm.DB, name, authorID string) models.Tag {
	tag := models.Tag{Name: name, AuthorID: authorID}
	require.NoError(t, tx.Create(&tag).Error, "failed to create test tag")
	return tag
}

// CreateNote inserts a note owned by authorID.
func CreateNote(t *testing.T, tx *gorm.DB, title, content, authorID string, categoryID *string) models.Note {
	note := models.Note{
		Title:      title,
		Content:    content,
		AuthorID:   authorID,
		CategoryID: categoryID,
	}
	require.NoError(t, tx.Create(&note).Error, "failed to create test note")
	return note
}
