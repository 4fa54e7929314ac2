package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"math/big"
	"strings"
)

// License keys and reset tokens share the same mechanics: a human-typable
// high-entropy key handed out once, and a stored hash that embeds a random
// pepper so the key verifies against exactly one record.
const (
	keyCharset      = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	keyGroupLength  = 4
	keyGroupCount   = 4
	pepperGroups    = 2
	keyGroupJoinSep = "-"
)

func randomGroups(count int) (string, error) {
	max := big.NewInt(int64(len(keyCharset)))
	groups := make([]string, count)
	for i := range groups {
		var sb strings.Builder
		for j := 0; j < keyGroupLength; j++ {
			n, err := rand.Int(rand.Reader, max)
			if err != nil {
				return "", err
			}
			sb.WriteByte(keyCharset[n.Int64()])
		}
		groups[i] = sb.String()
	}
	return strings.Join(groups, keyGroupJoinSep), nil
}

// GenerateKey returns a new public key and the hash to store for it. The
// stored form is "<sha256(key||pepper) hex>.<pepper>"; the public key itself
// is never persisted.
func GenerateKey() (key, storedHash string, err error) {
	key, err = randomGroups(keyGroupCount)
	if err != nil {
		return "", "", err
	}
	pepper, err := randomGroups(pepperGroups)
	if err != nil {
		return "", "", err
	}

	digest := sha256.Sum256([]byte(key + pepper))
	return key, hex.EncodeToString(digest[:]) + "." + pepper, nil
}

// VerifyKey reports whether the candidate key matches the stored hash.
// Malformed stored hashes never raise; they simply do not match.
func VerifyKey(candidate, storedHash string) bool {
	expected, pepper, found := strings.Cut(storedHash, ".")
	if !found {
		return false
	}
	expectedDigest, err := hex.DecodeString(expected)
	if err != nil || len(expectedDigest) != sha256.Size {
		return false
	}

	digest := sha256.Sum256([]byte(candidate + pepper))
	return subtle.ConstantTimeCompare(digest[:], expectedDigest) == 1
}
