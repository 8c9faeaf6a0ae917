package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Low cost to keep the test suite fast
const testBcryptCost = 4

func TestHashPassword(t *testing.T) {
	t.Run("hashes a valid password", func(t *testing.T) {
		hash, err := HashPassword("correct horse battery", testBcryptCost)

		require.NoError(t, err)
		assert.NotEmpty(t, hash)
		assert.NotEqual(t, "correct horse battery", hash)
	})

	t.Run("rejects a short password", func(t *testing.T) {
		_, err := HashPassword("short", testBcryptCost)
		assert.ErrorIs(t, err, ErrPasswordTooShort)
	})

	t.Run("rejects a password over the bcrypt limit", func(t *testing.T) {
		_, err := HashPassword(strings.Repeat("x", 73), testBcryptCost)
		assert.ErrorIs(t, err, ErrPasswordTooLong)
	})
}

func TestCheckPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery", testBcryptCost)
	require.NoError(t, err)

	t.Run("accepts the right password", func(t *testing.T) {
		assert.NoError(t, CheckPassword("correct horse battery", hash))
	})

	t.Run("rejects the wrong password", func(t *testing.T) {
		err := CheckPassword("wrong password here", hash)
		assert.ErrorIs(t, err, ErrInvalidPassword)
	})
}

func TestGenerateSessionSecret(t *testing.T) {
	first, err := GenerateSessionSecret()
	require.NoError(t, err)
	assert.Len(t, first, 64) // 32 bytes hex encoded

	second, err := GenerateSessionSecret()
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}
