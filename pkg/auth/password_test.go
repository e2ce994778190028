package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := HashPassword("s3cret!")
	require.NoError(t, err)
	assert.Contains(t, hash, "$argon2id$")

	ok, err := VerifyPassword("s3cret!", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword("wrong", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashPassword_Salted(t *testing.T) {
	a, err := HashPassword("same")
	require.NoError(t, err)
	b, err := HashPassword("same")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestVerifyPassword_Bcrypt(t *testing.T) {
	raw, err := bcrypt.GenerateFromPassword([]byte("pastor"), bcrypt.MinCost)
	require.NoError(t, err)

	ok, err := VerifyPassword("pastor", string(raw))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword("elder", string(raw))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyPassword_InvalidHash(t *testing.T) {
	_, err := VerifyPassword("x", "plain-text")
	assert.ErrorIs(t, err, ErrInvalidHash)
}

func TestGenerateRandomToken(t *testing.T) {
	a, err := GenerateRandomToken(32)
	require.NoError(t, err)
	b, err := GenerateRandomToken(32)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
	assert.Len(t, a, 43)
}
