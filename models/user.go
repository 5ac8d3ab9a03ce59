package models

import "time"

// User represents a registered account together with its favorite movies.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// UserID is the internal unique identifier of the user.
	// Assigned by the database at creation and never changed afterwards.
	UserID int64 `json:"id"`

	// Username is the unique account name used for login and in routes.
	Username string `json:"username"`

	// PasswordHash stores the salted one-way hash of the user's password.
	// It is never serialized into any response.
	PasswordHash string `json:"-"`

	// Email is the user's contact address.
	Email string `json:"email"`

	// DateOfBirth is optional.
	DateOfBirth *Date `json:"date_of_birth,omitempty"`

	// FavoriteMovies holds movie identifiers referencing the catalog.
	// Semantically a set: an identifier appears at most once.
	FavoriteMovies []string `json:"favorite_movies"`

	// CreatedAt is the timestamp when the user account was created.
	CreatedAt time.Time `json:"created_at"`
}

// UserUpdate is a partial update applied by the credential store.
// Only non-nil fields are written.
type UserUpdate struct {
	Username     *string
	PasswordHash *string
	Email        *string
	DateOfBirth  *Date
}

// IsEmpty reports whether the update carries no fields at all.
func (u UserUpdate) IsEmpty() bool {
	return u.Username == nil && u.PasswordHash == nil && u.Email == nil && u.DateOfBirth == nil
}
