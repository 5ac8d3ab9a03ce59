package store

import (
	"context"

	"github.com/MKhiriev/go-movie-favorites/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository persists user accounts and their favorite movies.
// Every returned [models.User] carries its favorites ordered by the time
// they were added.
type UserRepository interface {
	FindUserByUsername(ctx context.Context, username string) (models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	UpdateUser(ctx context.Context, username string, update models.UserUpdate) (models.User, error)
	DeleteUser(ctx context.Context, username string) error
	AddFavoriteMovie(ctx context.Context, username, movieID string) (models.User, error)
	RemoveFavoriteMovie(ctx context.Context, username, movieID string) (models.User, error)
}

// MovieRepository is a read-only view of the movie catalog.
type MovieRepository interface {
	ListMovies(ctx context.Context) ([]models.Movie, error)
	FindMovieByTitle(ctx context.Context, title string) (models.Movie, error)
	FindGenreByName(ctx context.Context, name string) (models.Genre, error)
	FindDirectorByName(ctx context.Context, name string) (models.Director, error)
}
