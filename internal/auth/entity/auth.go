package entity

// Credential is what login needs to check a password. Salt and Hash are empty
// for users created through the profile endpoint, which can never log in.
type Credential struct {
	UserID   int64
	Username string
	Salt     string
	Hash     string
}

type NewCredential struct {
	Username string
	Salt     string
	Hash     string
}

// Identity is the logged-in user as remembered by the session.
type Identity struct {
	UserID   int64
	Username string
}
