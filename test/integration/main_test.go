package integration_test

import (
	"os"
	"sync"
	"testing"
	"time"

	"notehub_backend/internal/email"
	"notehub_backend/test/helpers"

	"github.com/stretchr/testify/require"
)

var (
	globalTestServer *helpers.TestServer
	serverOnce       sync.Once
)

// GetTestServer lazily boots the shared test server. Integration tests need
// a postgres instance; they are skipped when DATABASE_URL is not set.
func GetTestServer(t *testing.T) *helpers.TestServer {
	if os.Getenv("DATABASE_URL") == "" {
		t.Skip("DATABASE_URL not set, skipping integration tests")
	}

	serverOnce.Do(func() {
		os.Setenv("SERVER_ENV", "test")
		if os.Getenv("JWT_SECRET") == "" {
			os.Setenv("JWT_SECRET", "integration-test-secret-12345")
		}

		globalTestServer = helpers.NewTestServer(t)
	})
	return globalTestServer
}

// waitForMail polls the mock provider until a message shows up. Email
// delivery is fire-and-forget, so the goroutine may lag the response.
func waitForMail(t *testing.T, last func() (email.MockMessage, bool)) email.MockMessage {
	t.Helper()
	var msg email.MockMessage
	require.Eventually(t, func() bool {
		m, ok := last()
		if ok {
			msg = m
		}
		return ok
	}, 2*time.Second, 10*time.Millisecond, "expected an email to be recorded")
	return msg
}

func TestMain(m *testing.M) {
	code := m.Run()

	if globalTestServer != nil {
		globalTestServer.Close()
	}

	os.Exit(code)
}
