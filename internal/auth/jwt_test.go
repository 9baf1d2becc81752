package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/screenlog/screenlog-core/internal/users"
)

func TestGenerateAndParseTokenPair(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	u := &users.User{ID: 42, Email: "mod@example.com", IsStaff: true}
	pair, err := GenerateTokenPair(u)
	require.NoError(t, err)
	require.NotEmpty(t, pair.Access)
	require.NotEmpty(t, pair.Refresh)

	access, err := ParseToken(pair.Access)
	require.NoError(t, err)
	assert.Equal(t, uint(42), access.UserID)
	assert.Equal(t, "mod@example.com", access.Email)
	assert.True(t, access.IsStaff)
	assert.Equal(t, TokenTypeAccess, access.TokenType)

	refresh, err := ParseToken(pair.Refresh)
	require.NoError(t, err)
	assert.Equal(t, TokenTypeRefresh, refresh.TokenType)
}

func TestParseTokenRejectsBadSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	pair, err := GenerateTokenPair(&users.User{ID: 1, Email: "a@example.com"})
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "other-secret")
	_, err = ParseToken(pair.Access)
	assert.Error(t, err)
}
