package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/password_hasher_mock.go -package=mock

// PasswordHasher derives and checks password hashes.
//
// Encoded hashes are self-contained: the salt travels with the derived key,
// so a hash produced by one process can be verified by any other process
// using the same fixed KDF parameters.
type PasswordHasher interface {
	// Hash derives a key from password using a fresh random salt and returns
	// salt and key encoded as a single string. It only fails when the system
	// cannot provide randomness or the KDF rejects its parameters; both are
	// fatal for the calling operation.
	Hash(password string) (string, error)

	// Verify reports whether candidate matches encodedHash. It never returns
	// an error: malformed, truncated or otherwise unusable input is simply
	// "not verified".
	Verify(encodedHash, candidate string) bool
}
