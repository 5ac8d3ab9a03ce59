package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-movie-favorites/internal/logger"
	"github.com/MKhiriev/go-movie-favorites/models"
)

// movieRepository is the SQL implementation of [MovieRepository].
// It only ever reads from the "movies" table.
type movieRepository struct {
	logger *logger.Logger
	db     *DB
}

func NewMovieRepository(db *DB, logger *logger.Logger) MovieRepository {
	logger.Debug().Msg("creating movie repository")
	return &movieRepository{
		db:     db,
		logger: logger,
	}
}

// ListMovies returns the whole catalog ordered by title.
func (r *movieRepository) ListMovies(ctx context.Context) ([]models.Movie, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListMoviesQuery(r.db.builder)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*movieRepository.ListMovies").Msg("failed to query movies")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, r.db.wrapDBError(err))
	}
	defer rows.Close()

	movies := make([]models.Movie, 0)
	for rows.Next() {
		movie, scanErr := scanMovie(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "*movieRepository.ListMovies").Msg("failed to scan movie row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		movies = append(movies, movie)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return movies, nil
}

// FindMovieByTitle returns the movie with exactly the given title, or
// [ErrMovieNotFound].
func (r *movieRepository) FindMovieByTitle(ctx context.Context, title string) (models.Movie, error) {
	query, args, err := buildFindMovieByTitleQuery(r.db.builder, title)
	if err != nil {
		return models.Movie{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	row := r.db.QueryRowContext(ctx, query, args...)
	if err = row.Err(); err != nil {
		return models.Movie{}, r.db.wrapDBError(err)
	}

	movie, err := scanMovie(row)
	if err != nil {
		return models.Movie{}, r.notFoundOr(ctx, err, ErrMovieNotFound, "FindMovieByTitle")
	}

	return movie, nil
}

// FindGenreByName returns the genre carried by any movie of that genre, or
// [ErrGenreNotFound].
func (r *movieRepository) FindGenreByName(ctx context.Context, name string) (models.Genre, error) {
	query, args, err := buildFindGenreQuery(r.db.builder, name)
	if err != nil {
		return models.Genre{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var genre models.Genre
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&genre.Name, &genre.Description)
	if err != nil {
		return models.Genre{}, r.notFoundOr(ctx, err, ErrGenreNotFound, "FindGenreByName")
	}

	return genre, nil
}

// FindDirectorByName returns the director carried by any movie they
// directed, or [ErrDirectorNotFound].
func (r *movieRepository) FindDirectorByName(ctx context.Context, name string) (models.Director, error) {
	query, args, err := buildFindDirectorQuery(r.db.builder, name)
	if err != nil {
		return models.Director{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var (
		director   models.Director
		birth, end sql.NullInt64
	)
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&director.Name, &director.Bio, &birth, &end)
	if err != nil {
		return models.Director{}, r.notFoundOr(ctx, err, ErrDirectorNotFound, "FindDirectorByName")
	}
	director.BirthYear = nullIntPtr(birth)
	director.DeathYear = nullIntPtr(end)

	return director, nil
}

func (r *movieRepository) notFoundOr(ctx context.Context, err, notFound error, fn string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return notFound
	}

	logger.FromContext(ctx).Err(err).Str("func", "*movieRepository."+fn).Msg("failed to read catalog")
	return r.db.wrapDBError(err)
}

func scanMovie(row rowScanner) (models.Movie, error) {
	var (
		movie      models.Movie
		birth, end sql.NullInt64
	)

	err := row.Scan(
		&movie.MovieID,
		&movie.Title,
		&movie.Description,
		&movie.Genre.Name,
		&movie.Genre.Description,
		&movie.Director.Name,
		&movie.Director.Bio,
		&birth,
		&end,
		&movie.ImagePath,
		&movie.Featured,
	)
	if err != nil {
		return models.Movie{}, err
	}

	movie.Director.BirthYear = nullIntPtr(birth)
	movie.Director.DeathYear = nullIntPtr(end)

	return movie, nil
}

func nullIntPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}
