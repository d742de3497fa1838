package auth_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devtasks/internal/core/auth"
)

type memRevoker struct {
	mu   sync.Mutex
	dead map[string]time.Time
}

func newMemRevoker() *memRevoker { return &memRevoker{dead: map[string]time.Time{}} }

func (m *memRevoker) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dead[jti] = time.Now().Add(ttl)
	return nil
}

func (m *memRevoker) Revoked(_ context.Context, jti string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	exp, ok := m.dead[jti]
	return ok && time.Now().Before(exp), nil
}

func newSessions(r auth.Revoker) *auth.Sessions {
	return &auth.Sessions{
		Secret:      []byte("test-secret"),
		Issuer:      "devtasks-test",
		CookieName:  "devtasks_session",
		TTL:         time.Hour,
		RememberTTL: 30 * 24 * time.Hour,
		Revoker:     r,
	}
}

func TestIssueAndParse(t *testing.T) {
	s := newSessions(nil)

	tok, maxAge, err := s.Issue("uid-1", true, false)
	require.NoError(t, err)
	assert.Zero(t, maxAge, "plain login gets a browser-session cookie")

	claims, err := s.Parse(context.Background(), tok)
	require.NoError(t, err)
	assert.Equal(t, "uid-1", claims.UID)
	assert.True(t, claims.Admin)
	assert.NotEmpty(t, claims.ID)
}

func TestRememberMeExtendsLifetime(t *testing.T) {
	s := newSessions(nil)

	_, maxAge, err := s.Issue("uid-1", false, true)
	require.NoError(t, err)
	assert.Equal(t, int(s.RememberTTL/time.Second), maxAge)
}

func TestParseRejectsGarbageAndWrongKey(t *testing.T) {
	s := newSessions(nil)
	_, err := s.Parse(context.Background(), "not-a-jwt")
	assert.Error(t, err)

	other := newSessions(nil)
	other.Secret = []byte("different")
	tok, _, err := other.Issue("uid-1", false, false)
	require.NoError(t, err)
	_, err = s.Parse(context.Background(), tok)
	assert.Error(t, err)
}

func TestRevokeInvalidatesImmediately(t *testing.T) {
	s := newSessions(newMemRevoker())
	ctx := context.Background()

	tok, _, err := s.Issue("uid-1", false, false)
	require.NoError(t, err)
	claims, err := s.Parse(ctx, tok)
	require.NoError(t, err)

	require.NoError(t, s.Revoke(ctx, claims))

	_, err = s.Parse(ctx, tok)
	assert.ErrorIs(t, err, auth.ErrRevoked)

	// 其它会话不受影响
	tok2, _, err := s.Issue("uid-1", false, false)
	require.NoError(t, err)
	_, err = s.Parse(ctx, tok2)
	assert.NoError(t, err)
}
