package email

import "sync"

// MockProvider records outgoing mail instead of sending it. Used in tests
// and in development when no SMTP host is configured.
type MockProvider struct {
	mu sync.Mutex

	Verifications  []MockMessage
	PasswordResets []MockMessage
}

type MockMessage struct {
	To    string
	Token string
}

func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

func (p *MockProvider) SendVerification(to, token string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Verifications = append(p.Verifications, MockMessage{To: to, Token: token})
	return nil
}

func (p *MockProvider) SendPasswordReset(to, token string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.PasswordResets = append(p.PasswordResets, MockMessage{To: to, Token: token})
	return nil
}

// LastVerification returns the most recent verification message, if any.
func (p *MockProvider) LastVerification() (MockMessage, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.Verifications) == 0 {
		return MockMessage{}, false
	}
	return p.Verifications[len(p.Verifications)-1], true
}

// LastPasswordReset returns the most recent reset message, if any.
func (p *MockProvider) LastPasswordReset() (MockMessage, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.PasswordResets) == 0 {
		return MockMessage{}, false
	}
	return p.PasswordResets[len(p.PasswordResets)-1], true
}
