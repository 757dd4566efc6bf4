// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package crypto implements password hashing for the authentication core.
package crypto

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"io"

	"golang.org/x/crypto/scrypt"
)

// scrypt parameters. N=2^14, r=8, p=1 keeps a single derivation in the
// tens of milliseconds on commodity hardware.
const (
	scryptN      = 16384
	scryptR      = 8
	scryptP      = 1
	scryptKeyLen = 64
	saltLen      = 32
)

// scryptHasher is the private implementation of [PasswordHasher].
type scryptHasher struct {
	// scrypt tuning parameters. Fixed for production; tests may lower the
	// cost factor to keep the suite fast.
	n, r, p int
	keyLen  int
	saltLen int

	// random is the salt source, crypto/rand.Reader outside tests.
	random io.Reader
}

// NewPasswordHasher constructs a [PasswordHasher] backed by scrypt with the
// fixed production parameters:
//   - CPU/memory cost: 16384
//   - block size:      8
//   - parallelism:     1
//   - key length:      64 bytes
//   - salt length:     32 bytes
func NewPasswordHasher() PasswordHasher {
	return &scryptHasher{
		n:       scryptN,
		r:       scryptR,
		p:       scryptP,
		keyLen:  scryptKeyLen,
		saltLen: saltLen,
		random:  rand.Reader,
	}
}

// Hash implements [PasswordHasher]. The result is
// base64(salt || scrypt(password, salt)).
func (h *scryptHasher) Hash(password string) (string, error) {
	salt := make([]byte, h.saltLen)
	if _, err := io.ReadFull(h.random, salt); err != nil {
		return "", fmt.Errorf("%w: reading salt: %w", ErrHashingFailed, err)
	}

	key, err := scrypt.Key([]byte(password), salt, h.n, h.r, h.p, h.keyLen)
	if err != nil {
		return "", fmt.Errorf("%w: deriving key: %w", ErrHashingFailed, err)
	}

	combined := make([]byte, 0, len(salt)+len(key))
	combined = append(combined, salt...)
	combined = append(combined, key...)

	return base64.StdEncoding.EncodeToString(combined), nil
}

// Verify implements [PasswordHasher].
//
// Every failure path (empty input, bad base64, short payload, key length
// mismatch, KDF error, even a panic inside the KDF) yields false, so callers
// have exactly one branch for "not verified".
func (h *scryptHasher) Verify(encodedHash, candidate string) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()

	if encodedHash == "" || candidate == "" {
		return false
	}

	combined, err := base64.StdEncoding.DecodeString(encodedHash)
	if err != nil {
		return false
	}

	if len(combined) < h.saltLen+h.keyLen {
		return false
	}

	salt := combined[:h.saltLen]
	storedKey := combined[h.saltLen:]
	if len(storedKey) != h.keyLen {
		return false
	}

	derivedKey, err := scrypt.Key([]byte(candidate), salt, h.n, h.r, h.p, h.keyLen)
	if err != nil {
		return false
	}

	return subtle.ConstantTimeCompare(storedKey, derivedKey) == 1
}
