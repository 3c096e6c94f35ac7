package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGeneratePairAndParse(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	access, refresh, err := generatePair("user-1")
	assert.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)

	sub, ok := parseRefreshToken(refresh)
	assert.True(t, ok)
	assert.Equal(t, "user-1", sub)
}

func TestParseRefreshTokenRejectsAccessToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	access, _, err := generatePair("user-1")
	assert.NoError(t, err)

	_, ok := parseRefreshToken(access)
	assert.False(t, ok)
}

func TestParseRefreshTokenRejectsWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	_, refresh, err := generatePair("user-1")
	assert.NoError(t, err)

	t.Setenv("JWT_SECRET", "other-secret")
	_, ok := parseRefreshToken(refresh)
	assert.False(t, ok)
}

func TestParseRefreshTokenRejectsGarbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	_, ok := parseRefreshToken("not-a-token")
	assert.False(t, ok)
}
