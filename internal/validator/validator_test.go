package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Confirm  string `json:"confirm" validate:"eqfield=Password"`
	Hidden   string `json:"-" validate:"omitempty"`
}

func TestValidate_OK(t *testing.T) {
	v := New()
	err := v.Validate(&sampleRequest{
		Email:    "user@example.com",
		Password: "password123",
		Confirm:  "password123",
	})
	assert.NoError(t, err)
}

func TestValidate_ReportsJSONFieldNames(t *testing.T) {
	v := New()
	err := v.Validate(&sampleRequest{
		Email:    "not-an-email",
		Password: "short",
		Confirm:  "mismatch",
	})
	require.Error(t, err)

	vErr, ok := err.(*ValidationError)
	require.True(t, ok)

	assert.Contains(t, vErr.Errors, "email")
	assert.Contains(t, vErr.Errors, "password")
	assert.Contains(t, vErr.Errors, "confirm")
	assert.Equal(t, "must be a valid email address", vErr.Errors["email"])
	assert.Equal(t, "must be at least 8 characters", vErr.Errors["password"])
	assert.Equal(t, "must match password", vErr.Errors["confirm"])
}

func TestValidate_RequiredMessage(t *testing.T) {
	v := New()
	err := v.Validate(&sampleRequest{})
	require.Error(t, err)

	vErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Equal(t, "email is required", vErr.Errors["email"])
}
