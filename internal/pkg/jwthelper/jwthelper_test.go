package jwthelper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseToken(t *testing.T) {
	key := []byte("test-signing-key")

	token, err := GenerateToken(key, 42, "test-agent")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseToken(key, token, "test-agent")
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
}

func TestParseTokenRejectsWrongKey(t *testing.T) {
	token, err := GenerateToken([]byte("right-key"), 42, "test-agent")
	require.NoError(t, err)

	_, err = ParseToken([]byte("wrong-key"), token, "test-agent")
	assert.Error(t, err)
}

func TestParseTokenRejectsWrongUserAgent(t *testing.T) {
	key := []byte("test-signing-key")

	token, err := GenerateToken(key, 42, "original-agent")
	require.NoError(t, err)

	_, err = ParseToken(key, token, "different-agent")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	_, err := ParseToken([]byte("key"), "not-a-token", "agent")
	assert.Error(t, err)
}
