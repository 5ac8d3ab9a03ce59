package service

import (
	"errors"

	"github.com/MKhiriev/go-movie-favorites/internal/validators"
)

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrInvalidCredentials  = errors.New("invalid username or password")

	ErrTokenIsExpired      = errors.New("token is expired")
	ErrTokenIsInvalid      = errors.New("token is invalid")
	ErrTokenCreationFailed = errors.New("token creation failed")
	ErrUnknownTokenFormat  = errors.New("unknown token format")

	ErrPermissionDenied = errors.New("permission denied")

	ErrEmptyMovieID = errors.New("movie id is required")
)

// ValidationError is returned when request fields break the account rules.
// Fields maps each failing JSON field to a short message.
type ValidationError = validators.ValidationError
