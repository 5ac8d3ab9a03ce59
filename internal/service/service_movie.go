package service

import (
	"context"

	"github.com/MKhiriev/go-movie-favorites/internal/logger"
	"github.com/MKhiriev/go-movie-favorites/internal/store"
	"github.com/MKhiriev/go-movie-favorites/models"
)

type movieService struct {
	movieRepository store.MovieRepository

	logger *logger.Logger
}

func NewMovieService(movieRepository store.MovieRepository, logger *logger.Logger) MovieService {
	return &movieService{
		movieRepository: movieRepository,
		logger:          logger,
	}
}

func (m *movieService) ListMovies(ctx context.Context) ([]models.Movie, error) {
	return m.movieRepository.ListMovies(ctx)
}

func (m *movieService) GetMovieByTitle(ctx context.Context, title string) (models.Movie, error) {
	return m.movieRepository.FindMovieByTitle(ctx, title)
}

func (m *movieService) GetGenreByName(ctx context.Context, name string) (models.Genre, error) {
	return m.movieRepository.FindGenreByName(ctx, name)
}

func (m *movieService) GetDirectorByName(ctx context.Context, name string) (models.Director, error) {
	return m.movieRepository.FindDirectorByName(ctx, name)
}
