package utils

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateKeyShape(t *testing.T) {
	key, storedHash, err := GenerateKey()
	require.NoError(t, err)
	assert.NotEqual(t, key, storedHash)

	// XXXX-XXXX-XXXX-XXXX from the uppercase alphanumeric charset.
	groups := strings.Split(key, "-")
	require.Len(t, groups, 4)
	for _, group := range groups {
		assert.Len(t, group, 4)
		for _, r := range group {
			assert.Contains(t, keyCharset, string(r))
		}
	}

	digestHex, pepper, found := strings.Cut(storedHash, ".")
	require.True(t, found)
	_, err = hex.DecodeString(digestHex)
	assert.NoError(t, err)
	assert.Len(t, strings.Split(pepper, "-"), 2)
}

func TestVerifyKey(t *testing.T) {
	key, storedHash, err := GenerateKey()
	require.NoError(t, err)

	assert.True(t, VerifyKey(key, storedHash))
	assert.False(t, VerifyKey("wrong_key", storedHash))

	digestHex, pepper, _ := strings.Cut(storedHash, ".")
	assert.False(t, VerifyKey(key, "wrong_hash."+pepper))
	assert.False(t, VerifyKey(key, digestHex+"."+hex.EncodeToString([]byte("wrong_salt"))))
}

func TestVerifyKeyMalformedHash(t *testing.T) {
	assert.False(t, VerifyKey("!@#$%^&*()ADKMW31';]", "asdaksdwqeqwe"))
	assert.False(t, VerifyKey("AAAA-AAAA-AAAA-AAAA", ""))
	assert.False(t, VerifyKey("AAAA-AAAA-AAAA-AAAA", "nothex.PEPR-PEPR"))
	assert.False(t, VerifyKey("AAAA-AAAA-AAAA-AAAA", "abcdef.PEPR-PEPR"))
}

func TestGeneratedKeysAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 32; i++ {
		key, _, err := GenerateKey()
		require.NoError(t, err)
		assert.False(t, seen[key])
		seen[key] = true
	}
}
