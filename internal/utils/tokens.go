package utils

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	// SessionTokenLength is the length of session tokens.
	SessionTokenLength = 32
	// UserIDLength is the length of user identifiers.
	UserIDLength = 21
)

//go:generate mockgen -source=tokens.go -destination=../mock/token_generator_mock.go -package=mock

// TokenGenerator produces URL-safe random identifiers.
type TokenGenerator interface {
	SessionToken() (string, error)
	UserID() (string, error)
}

// NanoIDGenerator implements [TokenGenerator] with nanoid over the default
// URL-safe alphabet (A-Za-z0-9_-), drawing from crypto/rand.
type NanoIDGenerator struct{}

func NewNanoIDGenerator() *NanoIDGenerator {
	return &NanoIDGenerator{}
}

// SessionToken returns a fresh 32-character session token.
func (g *NanoIDGenerator) SessionToken() (string, error) {
	token, err := gonanoid.New(SessionTokenLength)
	if err != nil {
		return "", fmt.Errorf("error generating session token: %w", err)
	}
	return token, nil
}

// UserID returns a fresh 21-character user identifier.
func (g *NanoIDGenerator) UserID() (string, error) {
	id, err := gonanoid.New(UserIDLength)
	if err != nil {
		return "", fmt.Errorf("error generating user id: %w", err)
	}
	return id, nil
}
