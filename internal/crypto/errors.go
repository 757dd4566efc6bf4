package crypto

import "errors"

var (
	// ErrHashingFailed is returned by [PasswordHasher.Hash] when a salt
	// cannot be generated or the KDF fails.
	ErrHashingFailed = errors.New("failed to hash password")
)
