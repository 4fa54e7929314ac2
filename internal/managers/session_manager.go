package managers

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// SessionCookieName is the cookie the session token travels in.
const SessionCookieName = "cu2m_session"

const sessionLifetime = 24 * time.Hour

// SessionMgr manages the signed-cookie sessions that bind a request to a
// username. The cookie only carries the username; the auth guard resolves it
// to a live user row on every request.
type SessionMgr interface {
	GenerateToken(username string) (string, error)
	Establish(c *gin.Context, username string)
	Clear(c *gin.Context)
	Resolve(c *gin.Context) (string, error)
}

// SessionManager signs session tokens with an Ed25519 key pair.
type SessionManager struct {
	privateKey ed25519.PrivateKey
	publicKey  ed25519.PublicKey
}

var errInvalidSession = errors.New("invalid session token")

// NewSessionManager creates a SessionManager around an existing key pair.
func NewSessionManager(privateKey ed25519.PrivateKey, publicKey ed25519.PublicKey) SessionMgr {
	return &SessionManager{privateKey: privateKey, publicKey: publicKey}
}

// NewSessionManagerFromFile loads the signing key from KEY_PAIR_PATH,
// generating and persisting a fresh pair on first run.
func NewSessionManagerFromFile() (SessionMgr, error) {
	path := os.Getenv("KEY_PAIR_PATH")

	privateKey, publicKey, err := loadKeyPair(path)
	if err != nil {
		privateKey, publicKey, err = generateKeyPair(path)
		if err != nil {
			return nil, err
		}
	}

	return NewSessionManager(privateKey, publicKey), nil
}

// GenerateToken signs a session token carrying the username.
func (sm *SessionManager) GenerateToken(username string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"iss": "cu2m-backend",
		"iat": now.Unix(),
		"exp": now.Add(sessionLifetime).Unix(),
		"sub": username,
	}
	return jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims).SignedString(sm.privateKey)
}

// Establish stores the username in a signed, HTTP-only session cookie.
func (sm *SessionManager) Establish(c *gin.Context, username string) {
	token, err := sm.GenerateToken(username)
	if err != nil {
		// Signing with a valid Ed25519 key cannot fail at runtime; if it
		// does, the caller ends up with no session and a 401 on the next
		// request.
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, token, int(sessionLifetime.Seconds()), "/", "", false, true)
}

// Clear removes the session cookie. Idempotent.
func (sm *SessionManager) Clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, "", -1, "/", "", false, true)
}

// Resolve returns the username bound to the request's session cookie, or an
// error if the cookie is absent, expired or tampered with.
func (sm *SessionManager) Resolve(c *gin.Context) (string, error) {
	tokenString, err := c.Cookie(SessionCookieName)
	if err != nil || tokenString == "" {
		return "", errInvalidSession
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodEdDSA.Alg() {
			return nil, fmt.Errorf("invalid signing method")
		}
		return sm.publicKey, nil
	})
	if err != nil || !token.Valid {
		return "", errInvalidSession
	}

	username, err := token.Claims.GetSubject()
	if err != nil || username == "" {
		return "", errInvalidSession
	}

	return username, nil
}

func loadKeyPair(path string) (ed25519.PrivateKey, ed25519.PublicKey, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}

	seed, err := base64.StdEncoding.DecodeString(string(raw))
	if err != nil || len(seed) != ed25519.SeedSize {
		return nil, nil, errors.New("malformed key pair file")
	}

	privateKey := ed25519.NewKeyFromSeed(seed)
	return privateKey, privateKey.Public().(ed25519.PublicKey), nil
}

func generateKeyPair(path string) (ed25519.PrivateKey, ed25519.PublicKey, error) {
	publicKey, privateKey, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, nil, err
	}

	encoded := base64.StdEncoding.EncodeToString(privateKey.Seed())
	if err := os.WriteFile(path, []byte(encoded), 0600); err != nil {
		return nil, nil, err
	}

	return privateKey, publicKey, nil
}
