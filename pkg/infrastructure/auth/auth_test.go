package auth

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"storefront/pkg/account/domain/model"
)

func TestTokenIssuer(t *testing.T) {
	issuerClock := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	tokens, err := NewTokenIssuer("top-secret", time.Hour)
	require.NoError(t, err)
	tokens.now = func() time.Time { return issuerClock }

	user := &model.User{ID: uuid.New(), Email: "jane@example.com"}

	t.Run("Issued token parses back into the same session", func(t *testing.T) {
		token, session, err := tokens.Issue(user)
		require.NoError(t, err)
		assert.Equal(t, user.ID, session.UserID)
		assert.Equal(t, issuerClock.Add(time.Hour), session.ExpiresAt)
		assert.NotEmpty(t, session.TokenID)

		parsed, err := tokens.Parse(token)
		require.NoError(t, err)
		assert.Equal(t, session.UserID, parsed.UserID)
		assert.Equal(t, session.Email, parsed.Email)
		assert.Equal(t, session.TokenID, parsed.TokenID)
		assert.True(t, session.ExpiresAt.Equal(parsed.ExpiresAt))
	})

	t.Run("Each token gets its own id", func(t *testing.T) {
		_, first, err := tokens.Issue(user)
		require.NoError(t, err)
		_, second, err := tokens.Issue(user)
		require.NoError(t, err)
		assert.NotEqual(t, first.TokenID, second.TokenID)
	})

	t.Run("Expired token is rejected", func(t *testing.T) {
		token, _, err := tokens.Issue(user)
		require.NoError(t, err)

		later, err := NewTokenIssuer("top-secret", time.Hour)
		require.NoError(t, err)
		later.now = func() time.Time { return issuerClock.Add(2 * time.Hour) }

		_, err = later.Parse(token)
		assert.ErrorIs(t, err, jwt.ErrTokenExpired)
	})

	t.Run("Token signed with another secret is rejected", func(t *testing.T) {
		other, err := NewTokenIssuer("another-secret", time.Hour)
		require.NoError(t, err)
		other.now = tokens.now
		token, _, err := other.Issue(user)
		require.NoError(t, err)

		_, err = tokens.Parse(token)
		assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
	})

	t.Run("Garbage is rejected", func(t *testing.T) {
		_, err := tokens.Parse("not-a-token")
		assert.Error(t, err)

		_, err = tokens.Parse("")
		assert.Error(t, err)
	})

	t.Run("Empty secret is refused", func(t *testing.T) {
		_, err := NewTokenIssuer("", time.Hour)
		assert.ErrorIs(t, err, ErrEmptySecret)
	})
}

func TestPasswordManager(t *testing.T) {
	passwords := NewPasswordManager(bcrypt.MinCost)

	hash, err := passwords.Hash("password123")
	require.NoError(t, err)
	assert.NotEqual(t, "password123", hash)

	ok, err := passwords.Check(hash, "password123")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = passwords.Check(hash, "password124")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = passwords.Check("not-a-bcrypt-hash", "password123")
	assert.Error(t, err)

	_, err = passwords.Hash(strings.Repeat("x", 100))
	assert.Error(t, err)
}

func TestRevocationList(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	list := NewRevocationList()
	list.now = func() time.Time { return now }

	list.Revoke("a", now.Add(time.Hour))
	list.Revoke("b", now.Add(time.Minute))

	assert.True(t, list.IsRevoked("a"))
	assert.True(t, list.IsRevoked("b"))
	assert.False(t, list.IsRevoked("c"))

	now = now.Add(2 * time.Minute)
	assert.False(t, list.IsRevoked("b"), "expired tokens no longer need tracking")
	assert.True(t, list.IsRevoked("a"))
	assert.Equal(t, 1, list.Len())

	t.Run("Concurrent revocations are safe", func(t *testing.T) {
		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				id := uuid.NewString()
				list.Revoke(id, now.Add(time.Hour))
				assert.True(t, list.IsRevoked(id))
			}()
		}
		wg.Wait()
		assert.Equal(t, 51, list.Len())
	})
}
