// Package auth implements the household PIN login: bcrypt-verified PINs
// and opaque session tokens stored server-side as SHA-256 hashes.
package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"regexp"
	"time"

	"golang.org/x/crypto/bcrypt"
)

const (
	SessionCookieName = "meal_planner_session"
	// DefaultSessionTTL applies when no explicit TTL is configured.
	DefaultSessionTTL = 30 * 24 * time.Hour
)

var pinRe = regexp.MustCompile(`^\d{4,8}$`)

// ValidPin accepts 4 to 8 digits.
func ValidPin(pin string) bool {
	return pinRe.MatchString(pin)
}

func HashPin(pin string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func VerifyPin(pin, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pin)) == nil
}

// NewSessionToken returns a random token and its storable hash. Only the
// hash touches the database; the raw token lives in the cookie.
func NewSessionToken() (token, tokenHash string, err error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", "", err
	}
	token = hex.EncodeToString(buf)
	return token, HashToken(token), nil
}

func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func SessionExpiry(ttl time.Duration) time.Time {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return time.Now().Add(ttl)
}

func SessionCookie(token string, ttl time.Duration, secure bool) *http.Cookie {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func ClearSessionCookie(secure bool) *http.Cookie {
	c := SessionCookie("", DefaultSessionTTL, secure)
	c.MaxAge = -1
	return c
}
