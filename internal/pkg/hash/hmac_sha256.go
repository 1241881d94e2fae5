package hash

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
)

// HMACSHA256 signs values with the current secret and accepts signatures from
// the current or any retired secret, so secrets can be rotated without
// invalidating live sessions.
type HMACSHA256 struct {
	keys [][]byte
}

// NewHMACSHA256 returns a signer for secret. Retired secrets are only used by Verify.
func NewHMACSHA256(secret string, retired ...string) *HMACSHA256 {
	keys := make([][]byte, 0, 1+len(retired))
	keys = append(keys, []byte(secret))
	for _, r := range retired {
		if r != "" {
			keys = append(keys, []byte(r))
		}
	}
	return &HMACSHA256{keys: keys}
}

// Sign returns the unpadded base64url MAC of value under the current secret.
func (s *HMACSHA256) Sign(value string) string {
	return base64.RawURLEncoding.EncodeToString(sum(s.keys[0], value))
}

func (s *HMACSHA256) Verify(value, signature string) bool {
	got, err := base64.RawURLEncoding.DecodeString(signature)
	if err != nil || len(got) != sha256.Size {
		return false
	}

	for _, key := range s.keys {
		if hmac.Equal(got, sum(key, value)) {
			return true
		}
	}
	return false
}

func sum(key []byte, value string) []byte {
	mac := hmac.New(sha256.New, key)
	_, _ = mac.Write([]byte(value))
	return mac.Sum(nil)
}
