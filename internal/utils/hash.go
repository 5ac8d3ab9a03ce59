package utils

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrPasswordMismatch is returned by CheckPassword when the plaintext does not
// match the stored digest.
var ErrPasswordMismatch = errors.New("password does not match")

// HashPassword returns a salted bcrypt digest of password.
//
// A cost outside [bcrypt.MinCost, bcrypt.MaxCost] falls back to
// bcrypt.DefaultCost. Passwords longer than 72 bytes are rejected by bcrypt
// and reported as an error.
//
// Example usage:
//
//	digest, err := utils.HashPassword("s3cret", bcrypt.DefaultCost)
func HashPassword(password string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}

	digest, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}

	return string(digest), nil
}

// CheckPassword compares password with a digest produced by HashPassword.
//
// Returns nil on match, ErrPasswordMismatch on a wrong password, and a
// wrapped bcrypt error when the digest itself is malformed.
func CheckPassword(digest, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(password))
	if err == nil {
		return nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrPasswordMismatch
	}

	return fmt.Errorf("error comparing password: %w", err)
}
