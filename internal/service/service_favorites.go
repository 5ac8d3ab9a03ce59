package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-movie-favorites/internal/logger"
	"github.com/MKhiriev/go-movie-favorites/internal/store"
	"github.com/MKhiriev/go-movie-favorites/models"
)

// favoritesService keeps a user's favorites set. Movie ids are opaque and
// are not looked up in the catalog.
type favoritesService struct {
	userRepository store.UserRepository

	logger *logger.Logger
}

func NewFavoritesService(userRepository store.UserRepository, logger *logger.Logger) FavoritesService {
	return &favoritesService{
		userRepository: userRepository,
		logger:         logger,
	}
}

// AddFavorite puts movieID into the set. Adding it twice changes nothing.
func (f *favoritesService) AddFavorite(ctx context.Context, username, movieID string) (models.User, error) {
	if strings.TrimSpace(movieID) == "" {
		return models.User{}, ErrEmptyMovieID
	}

	user, err := f.userRepository.AddFavoriteMovie(ctx, username, movieID)
	if err != nil {
		return models.User{}, fmt.Errorf("adding favorite movie failed: %w", err)
	}

	logger.FromContext(ctx).Debug().Str("username", username).Str("movie_id", movieID).Msg("favorite added")
	return user, nil
}

// RemoveFavorite takes movieID out of the set. Removing an absent id is not
// an error.
func (f *favoritesService) RemoveFavorite(ctx context.Context, username, movieID string) (models.User, error) {
	if strings.TrimSpace(movieID) == "" {
		return models.User{}, ErrEmptyMovieID
	}

	user, err := f.userRepository.RemoveFavoriteMovie(ctx, username, movieID)
	if err != nil {
		return models.User{}, fmt.Errorf("removing favorite movie failed: %w", err)
	}

	logger.FromContext(ctx).Debug().Str("username", username).Str("movie_id", movieID).Msg("favorite removed")
	return user, nil
}
