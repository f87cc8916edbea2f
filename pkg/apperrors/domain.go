package apperrors

import "net/http"

// Predeclared errors for the auth and notes domains.

var (
	// ErrInvalidCredentials is deliberately vague: it never reveals whether
	// the email or the password was wrong.
	ErrInvalidCredentials = New(
		CodeInvalidCredentials,
		"auth",
		"Invalid email or password",
		http.StatusUnauthorized,
	)

	ErrUnauthorized = New(
		CodeUnauthorized,
		"auth",
		"Authentication required",
		http.StatusUnauthorized,
	)

	// ErrInvalidToken covers refresh, verify-email and reset-password tokens.
	// Absent and expired are indistinguishable to the caller.
	ErrInvalidToken = New(
		CodeInvalidToken,
		"auth",
		"Invalid or expired token",
		http.StatusBadRequest,
	)

	ErrEmailAlreadyExists = New(
		CodeAlreadyExists,
		"auth",
		"Email already in use",
		http.StatusBadRequest,
	)

	ErrUserNotVerified = New(
		CodeForbidden,
		"auth",
		"Please verify your email address",
		http.StatusForbidden,
	)

	ErrWeakPassword = New(
		CodeWeakPassword,
		"validation",
		"Password must be at least 8 characters and contain a letter and a number",
		http.StatusBadRequest,
	)

	ErrValidationFailed = New(
		CodeValidationFailed,
		"validation",
		"Validation failed",
		http.StatusBadRequest,
	)

	// ErrTooManyTags guards the per-note tag limit.
	ErrTooManyTags = New(
		CodeInvalidOperation,
		"notes",
		"a note can't have more than 4 tags",
		http.StatusBadRequest,
	)
)
