package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPasswordRoundTrip(t *testing.T) {
	encoded, err := HashPassword("test_password")
	require.NoError(t, err)
	assert.NotEqual(t, "test_password", encoded)
	assert.True(t, VerifyPassword(encoded, "test_password"))
	assert.False(t, VerifyPassword(encoded, "wrong_password"))
}

func TestHashPasswordSaltedPerCall(t *testing.T) {
	first, err := HashPassword("same_password")
	require.NoError(t, err)
	second, err := HashPassword("same_password")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
	assert.True(t, VerifyPassword(first, "same_password"))
	assert.True(t, VerifyPassword(second, "same_password"))
}

func TestHashPasswordEncoding(t *testing.T) {
	encoded, err := HashPassword("some_password")
	require.NoError(t, err)

	parts := strings.Split(encoded, "$")
	require.Len(t, parts, 6)
	assert.Equal(t, "scrypt", parts[0])
	assert.Equal(t, "16384", parts[1])
	assert.Equal(t, "8", parts[2])
	assert.Equal(t, "1", parts[3])

	hash, err := ParsePasswordHash(encoded)
	require.NoError(t, err)
	assert.Len(t, hash.Salt, 16)
	assert.Equal(t, encoded, hash.Encode())
}

func TestVerifyPasswordMalformedHash(t *testing.T) {
	malformed := []string{
		"",
		"123k12op3123qk123",
		"scrypt$16384$8$1",
		"scrypt$16384$8$1$short$AAAA",
		"scrypt$not-a-number$8$1$AAAAAAAAAAAAAAAAAAAAAA==$AAAA",
		"bcrypt$16384$8$1$AAAAAAAAAAAAAAAAAAAAAA==$AAAA",
		"scrypt$16384$8$1$%%%$AAAA",
	}
	for _, hash := range malformed {
		assert.False(t, VerifyPassword(hash, "asdl120123"), "hash %q should not verify", hash)
	}
}

func TestParsePasswordHashRejectsBadParameters(t *testing.T) {
	encoded, err := HashPassword("some_password")
	require.NoError(t, err)

	parts := strings.Split(encoded, "$")
	parts[1] = "0"
	_, err = ParsePasswordHash(strings.Join(parts, "$"))
	assert.Error(t, err)
}
