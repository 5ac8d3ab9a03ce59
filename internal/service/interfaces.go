package service

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock -exclude_interfaces=AccountServiceWrapper

import (
	"context"

	"github.com/MKhiriev/go-movie-favorites/models"
)

// PasswordHasher turns plaintext passwords into salted one-way digests and
// checks candidates against them.
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Verify reports whether password matches hash. A malformed hash is a
	// mismatch.
	Verify(password, hash string) bool
}

// TokenService issues and verifies bearer tokens bound to a username.
type TokenService interface {
	Issue(ctx context.Context, user models.User) (models.Token, error)
	// Verify returns ErrTokenIsExpired or ErrTokenIsInvalid on failure.
	Verify(ctx context.Context, tokenString string) (models.Token, error)
}

type AccountService interface {
	Register(ctx context.Context, request models.RegisterRequest) (models.User, error)
	Login(ctx context.Context, username, password string) (models.User, models.Token, error)
	GetUser(ctx context.Context, username string) (models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateProfile(ctx context.Context, username string, request models.UpdateUserRequest) (models.User, error)
	Deregister(ctx context.Context, username string) error
}

type FavoritesService interface {
	AddFavorite(ctx context.Context, username, movieID string) (models.User, error)
	RemoveFavorite(ctx context.Context, username, movieID string) (models.User, error)
}

type MovieService interface {
	ListMovies(ctx context.Context) ([]models.Movie, error)
	GetMovieByTitle(ctx context.Context, title string) (models.Movie, error)
	GetGenreByName(ctx context.Context, name string) (models.Genre, error)
	GetDirectorByName(ctx context.Context, name string) (models.Director, error)
}

type AppInfoService interface {
	GetBuildInfo(ctx context.Context) models.BuildInfoResponse
}

// AccountServiceWrapper defines middleware composition for AccountService.
// Implementations wrap an existing AccountService to add behavior such as
// validation.
type AccountServiceWrapper interface {
	Wrap(AccountService) AccountService // returns a decorated AccountService applying additional behavior
}
