// Package hash provides helpers for hashing and verifying secrets.
//
// Credentials are derived with PBKDF2 and stored as a salt/hash pair, then
// verified by re-deriving from the plaintext. Short-lived values such as session
// identifiers are signed with HMAC-SHA256.
package hash

// Salted derives and verifies credentials stored as separate salt and hash values.
type Salted interface {
	Derive(plaintext string) (salt, hashed string, err error)
	Verify(salt, hashed, plaintext string) bool
}

// Signer produces and checks detached signatures for opaque values.
type Signer interface {
	Sign(value string) string
	Verify(value, signature string) bool
}
