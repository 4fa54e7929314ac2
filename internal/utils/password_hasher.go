package utils

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/scrypt"
)

// scrypt cost parameters. Stored hashes embed their own parameters, so these
// can be raised without invalidating existing credentials.
const (
	scryptN       = 16384
	scryptR       = 8
	scryptP       = 1
	saltLength    = 16
	digestLength  = 32
	passwordAlgo  = "scrypt"
	hashFieldSize = 6
)

// PasswordHash is the parsed form of a stored password hash. It only exists
// at the encode/decode boundary; business logic passes the encoded string
// around as an opaque value.
type PasswordHash struct {
	N      int
	R      int
	P      int
	Salt   []byte
	Digest []byte
}

var errMalformedHash = errors.New("malformed password hash")

// Encode serializes the hash into its canonical single-string form:
// scrypt$N$r$p$<base64 salt>$<base64 digest>.
func (h *PasswordHash) Encode() string {
	return fmt.Sprintf("%s$%d$%d$%d$%s$%s",
		passwordAlgo, h.N, h.R, h.P,
		base64.StdEncoding.EncodeToString(h.Salt),
		base64.StdEncoding.EncodeToString(h.Digest))
}

// ParsePasswordHash parses the canonical string form back into its tagged
// structure. Any structural defect is an error, never a panic.
func ParsePasswordHash(encoded string) (*PasswordHash, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != hashFieldSize || parts[0] != passwordAlgo {
		return nil, errMalformedHash
	}

	n, errN := strconv.Atoi(parts[1])
	r, errR := strconv.Atoi(parts[2])
	p, errP := strconv.Atoi(parts[3])
	if errN != nil || errR != nil || errP != nil || n <= 1 || r <= 0 || p <= 0 {
		return nil, errMalformedHash
	}

	salt, err := base64.StdEncoding.DecodeString(parts[4])
	if err != nil || len(salt) < saltLength {
		return nil, errMalformedHash
	}
	digest, err := base64.StdEncoding.DecodeString(parts[5])
	if err != nil || len(digest) == 0 {
		return nil, errMalformedHash
	}

	return &PasswordHash{N: n, R: r, P: p, Salt: salt, Digest: digest}, nil
}

// HashPassword derives a salted scrypt hash of the password and returns the
// canonical encoded form.
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}

	digest, err := scrypt.Key([]byte(password), salt, scryptN, scryptR, scryptP, digestLength)
	if err != nil {
		return "", err
	}

	hash := &PasswordHash{N: scryptN, R: scryptR, P: scryptP, Salt: salt, Digest: digest}
	return hash.Encode(), nil
}

// VerifyPassword reports whether the password matches the encoded hash.
// A structurally invalid hash or any internal failure counts as a mismatch.
func VerifyPassword(encoded, password string) bool {
	hash, err := ParsePasswordHash(encoded)
	if err != nil {
		return false
	}

	digest, err := scrypt.Key([]byte(password), hash.Salt, hash.N, hash.R, hash.P, len(hash.Digest))
	if err != nil {
		return false
	}

	return subtle.ConstantTimeCompare(digest, hash.Digest) == 1
}
