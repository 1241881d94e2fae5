package hash

import (
	"crypto/rand"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

// PBKDF2 implements Salted using PBKDF2-HMAC-SHA512 with hex encoded output.
type PBKDF2 struct {
	iterations int
	keyLength  int
	saltLength int
}

// NewPBKDF2 returns a PBKDF2 hasher. Zero values fall back to 10000 iterations,
// a 64-byte key and a 32-byte salt.
func NewPBKDF2(iterations, keyLength, saltLength int) *PBKDF2 {
	if iterations <= 0 {
		iterations = 10000
	}
	if keyLength <= 0 {
		keyLength = 64
	}
	if saltLength <= 0 {
		saltLength = 32
	}

	return &PBKDF2{iterations: iterations, keyLength: keyLength, saltLength: saltLength}
}

// Derive generates a random salt and returns it together with the derived key.
func (p *PBKDF2) Derive(plaintext string) (string, string, error) {
	raw := make([]byte, p.saltLength)
	if _, err := rand.Read(raw); err != nil {
		return "", "", fmt.Errorf("failed to generate salt: %w", err)
	}

	salt := hex.EncodeToString(raw)

	return salt, p.derive(salt, plaintext), nil
}

// Verify re-derives the key from plaintext and salt and compares it in constant time.
func (p *PBKDF2) Verify(salt, hashed, plaintext string) bool {
	if salt == "" || hashed == "" || plaintext == "" {
		return false
	}

	return subtle.ConstantTimeCompare([]byte(hashed), []byte(p.derive(salt, plaintext))) == 1
}

// the hex salt string itself is the KDF salt
func (p *PBKDF2) derive(salt, plaintext string) string {
	key := pbkdf2.Key([]byte(plaintext), []byte(salt), p.iterations, p.keyLength, sha512.New)
	return hex.EncodeToString(key)
}
