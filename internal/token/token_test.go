package token

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrohold/kanban-api/internal/models"
)

func testUser() *models.User {
	return &models.User{
		ID:       42,
		Username: "jane",
		Role:     "business-manager",
	}
}

func TestNewManager_RequiresSecret(t *testing.T) {
	_, err := NewManager("", 24*time.Hour)
	assert.ErrorIs(t, err, ErrMissingSecret)

	_, err = NewManager("   ", 24*time.Hour)
	assert.ErrorIs(t, err, ErrMissingSecret)

	_, err = NewManager("secret", 0)
	assert.Error(t, err)
}

func TestIssueAndVerify_Roundtrip(t *testing.T) {
	m, err := NewManager("test-secret", 24*time.Hour)
	require.NoError(t, err)

	signed, err := m.Issue(testUser())
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	claims, err := m.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), claims.UserID)
	assert.Equal(t, "jane", claims.Username)
	assert.Equal(t, "business-manager", claims.Role)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestVerify_Expired(t *testing.T) {
	m, err := NewManager("test-secret", time.Hour)
	require.NoError(t, err)

	// Issue a token in the past so its one-hour lifetime is already over.
	m.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	signed, err := m.Issue(testUser())
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_Tampered(t *testing.T) {
	m, err := NewManager("test-secret", time.Hour)
	require.NoError(t, err)

	signed, err := m.Issue(testUser())
	require.NoError(t, err)

	// Flip a character inside the signature segment.
	parts := strings.Split(signed, ".")
	require.Len(t, parts, 3)
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	parts[2] = string(sig)

	_, err = m.Verify(strings.Join(parts, "."))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_WrongSecret(t *testing.T) {
	issuerMgr, err := NewManager("secret-one", time.Hour)
	require.NoError(t, err)
	verifierMgr, err := NewManager("secret-two", time.Hour)
	require.NoError(t, err)

	signed, err := issuerMgr.Issue(testUser())
	require.NoError(t, err)

	_, err = verifierMgr.Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_Garbage(t *testing.T) {
	m, err := NewManager("test-secret", time.Hour)
	require.NoError(t, err)

	for _, raw := range []string{"", "   ", "not-a-token", "a.b.c"} {
		_, err := m.Verify(raw)
		assert.ErrorIs(t, err, ErrInvalidToken, "input %q", raw)
	}
}
