package utils

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"time"

	"aidanwoods.dev/go-paseto"

	"github.com/MKhiriev/go-movie-favorites/models"
)

// NewPasetoKey derives a v4.local symmetric key from an arbitrary-length
// secret by taking its SHA-256 digest.
func NewPasetoKey(secret string) (paseto.V4SymmetricKey, error) {
	if secret == "" {
		return paseto.V4SymmetricKey{}, errors.New("empty PASETO secret")
	}

	sum := sha256.Sum256([]byte(secret))
	key, err := paseto.V4SymmetricKeyFromBytes(sum[:])
	if err != nil {
		return paseto.V4SymmetricKey{}, fmt.Errorf("failed to create symmetric key: %w", err)
	}

	return key, nil
}

// GeneratePasetoToken creates an encrypted and authenticated PASETO v4.local
// token with iss, sub (username), iat, nbf and exp claims.
func GeneratePasetoToken(issuer, username string, tokenDuration time.Duration, key paseto.V4SymmetricKey) (models.Token, error) {
	if issuer == "" || username == "" || tokenDuration == 0 {
		return models.Token{}, errInvalidTokenParams
	}

	now := time.Now()
	expiresAt := now.Add(tokenDuration)

	token := paseto.NewToken()
	token.SetIssuer(issuer)
	token.SetSubject(username)
	token.SetIssuedAt(now)
	token.SetNotBefore(now)
	token.SetExpiration(expiresAt)

	return models.Token{
		SignedString: token.V4Encrypt(key, nil),
		Username:     username,
		IssuedAt:     now,
		ExpiresAt:    expiresAt,
	}, nil
}

// ValidateAndParsePasetoToken decrypts tokenString, checks the issuer and the
// expiry, and returns the bound username.
//
// An elapsed expiry is reported as an error wrapping [ErrTokenExpired];
// every other failure (bad key, tampering, wrong issuer, missing claims)
// is a plain error.
func ValidateAndParsePasetoToken(tokenString string, key paseto.V4SymmetricKey, tokenIssuer string) (models.Token, error) {
	parser := paseto.NewParserWithoutExpiryCheck()
	parser.AddRule(paseto.IssuedBy(tokenIssuer))

	token, err := parser.ParseV4Local(key, tokenString, nil)
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred validating and parsing token: %w", err)
	}

	expiresAt, err := token.GetExpiration()
	if err != nil {
		return models.Token{}, fmt.Errorf("token has no expiration: %w", err)
	}
	if !time.Now().Before(expiresAt) {
		return models.Token{}, ErrTokenExpired
	}

	username, err := token.GetSubject()
	if err != nil || username == "" {
		return models.Token{}, errors.New("empty subject error")
	}

	issuedAt, err := token.GetIssuedAt()
	if err != nil {
		return models.Token{}, fmt.Errorf("token has no issued-at: %w", err)
	}

	return models.Token{
		SignedString: tokenString,
		Username:     username,
		IssuedAt:     issuedAt,
		ExpiresAt:    expiresAt,
	}, nil
}
