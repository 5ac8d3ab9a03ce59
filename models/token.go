package models

import "time"

// Token is a signed, time-bounded identity credential.
//
// The same model is used for every supported token format (JWT, PASETO);
// SignedString is the only part ever transmitted to clients. The server keeps
// no record of issued tokens.
type Token struct {
	// SignedString is the compact serialized form of the token, ready to be
	// sent in the "Authorization: Bearer" header.
	SignedString string `json:"token"`

	// Username is the identity bound into the token subject.
	Username string `json:"-"`

	// IssuedAt is the token's issuance time.
	IssuedAt time.Time `json:"-"`

	// ExpiresAt is the instant after which the token is rejected.
	ExpiresAt time.Time `json:"-"`
}

// String returns the compact serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t *Token) String() string {
	return t.SignedString
}
