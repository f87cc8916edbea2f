package email

// Provider abstracts email delivery so services never talk SMTP directly
// and tests can swap in a mock.
type Provider interface {
	// SendVerification mails the account-activation link carrying token.
	SendVerification(to, token string) error

	// SendPasswordReset mails the password-reset link carrying token.
	SendPasswordReset(to, token string) error
}
