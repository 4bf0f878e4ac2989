package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidKey is returned when a presented API key does not match.
var ErrInvalidKey = errors.New("auth: invalid API key")

// HashAPIKey hashes a plaintext API key using bcrypt with cost 12.
func HashAPIKey(key string) (string, error) {
	if key == "" {
		return "", errors.New("hash api key: empty key")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(key), 12)
	if err != nil {
		return "", fmt.Errorf("hash api key: %w", err)
	}
	return string(hash), nil
}

// CheckAPIKey compares a plaintext API key against a bcrypt hash.
func CheckAPIKey(key, hash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(key)); err != nil {
		return ErrInvalidKey
	}
	return nil
}

// GenerateToken produces a cryptographically random token suitable for
// API keys (32 bytes, base64url-encoded, 43 characters).
func GenerateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// KeyChecker verifies API keys against one bcrypt hash. Keys that already
// passed are remembered by digest so repeat requests skip bcrypt.
type KeyChecker struct {
	hash     string
	mu       sync.RWMutex
	verified map[[sha256.Size]byte]struct{}
}

func NewKeyChecker(hash string) *KeyChecker {
	return &KeyChecker{hash: hash, verified: make(map[[sha256.Size]byte]struct{})}
}

// Enabled reports whether a key hash is configured.
func (c *KeyChecker) Enabled() bool {
	return c != nil && c.hash != ""
}

func (c *KeyChecker) Check(key string) error {
	if key == "" {
		return ErrInvalidKey
	}
	sum := sha256.Sum256([]byte(key))

	c.mu.RLock()
	_, ok := c.verified[sum]
	c.mu.RUnlock()
	if ok {
		return nil
	}

	if err := CheckAPIKey(key, c.hash); err != nil {
		return err
	}
	c.mu.Lock()
	c.verified[sum] = struct{}{}
	c.mu.Unlock()
	return nil
}
