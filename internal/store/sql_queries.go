package store

import (
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-movie-favorites/models"
)

const (
	usersTable          = "users"
	favoriteMoviesTable = "user_favorite_movies"
	moviesTable         = "movies"
)

var userColumns = []string{
	"user_id",
	"username",
	"password_hash",
	"email",
	"date_of_birth",
	"created_at",
}

var movieColumns = []string{
	"movie_id",
	"title",
	"description",
	"genre_name",
	"genre_description",
	"director_name",
	"director_bio",
	"director_birth_year",
	"director_death_year",
	"image_path",
	"featured",
}

// users

func buildFindUserByUsernameQuery(b sq.StatementBuilderType, username string) (string, []any, error) {
	return b.Select(userColumns...).
		From(usersTable).
		Where(sq.Eq{"username": username}).
		ToSql()
}

func buildListUsersQuery(b sq.StatementBuilderType) (string, []any, error) {
	return b.Select(userColumns...).
		From(usersTable).
		OrderBy("user_id").
		ToSql()
}

// buildCreateUserQuery inserts a user and returns the generated user_id.
// created_at is supplied by the caller so that every dialect stores the same
// value that is returned to the client.
func buildCreateUserQuery(b sq.StatementBuilderType, user models.User) (string, []any, error) {
	return b.Insert(usersTable).
		Columns("username", "password_hash", "email", "date_of_birth", "created_at").
		Values(user.Username, user.PasswordHash, user.Email, dateValue(user.DateOfBirth), user.CreatedAt).
		Suffix("RETURNING user_id").
		ToSql()
}

// buildUpdateUserQuery sets only the non-nil fields of update.
func buildUpdateUserQuery(b sq.StatementBuilderType, username string, update models.UserUpdate) (string, []any, error) {
	set := make(map[string]any, 4)
	if update.Username != nil {
		set["username"] = *update.Username
	}
	if update.PasswordHash != nil {
		set["password_hash"] = *update.PasswordHash
	}
	if update.Email != nil {
		set["email"] = *update.Email
	}
	if update.DateOfBirth != nil {
		set["date_of_birth"] = dateValue(update.DateOfBirth)
	}

	return b.Update(usersTable).
		SetMap(set).
		Where(sq.Eq{"username": username}).
		ToSql()
}

func buildDeleteUserQuery(b sq.StatementBuilderType, userID int64) (string, []any, error) {
	return b.Delete(usersTable).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
}

// favorites

func buildListFavoritesQuery(b sq.StatementBuilderType, userID int64) (string, []any, error) {
	return b.Select("movie_id").
		From(favoriteMoviesTable).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("added_at", "movie_id").
		ToSql()
}

func buildListAllFavoritesQuery(b sq.StatementBuilderType) (string, []any, error) {
	return b.Select("user_id", "movie_id").
		From(favoriteMoviesTable).
		OrderBy("user_id", "added_at", "movie_id").
		ToSql()
}

// buildAddFavoriteQuery is a set insert: adding an existing pair is a no-op.
func buildAddFavoriteQuery(b sq.StatementBuilderType, userID int64, movieID string, addedAt time.Time) (string, []any, error) {
	return b.Insert(favoriteMoviesTable).
		Columns("user_id", "movie_id", "added_at").
		Values(userID, movieID, addedAt).
		Suffix("ON CONFLICT (user_id, movie_id) DO NOTHING").
		ToSql()
}

func buildRemoveFavoriteQuery(b sq.StatementBuilderType, userID int64, movieID string) (string, []any, error) {
	return b.Delete(favoriteMoviesTable).
		Where(sq.Eq{"user_id": userID, "movie_id": movieID}).
		ToSql()
}

func buildDeleteAllFavoritesQuery(b sq.StatementBuilderType, userID int64) (string, []any, error) {
	return b.Delete(favoriteMoviesTable).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
}

// movies

func buildListMoviesQuery(b sq.StatementBuilderType) (string, []any, error) {
	return b.Select(movieColumns...).
		From(moviesTable).
		OrderBy("title").
		ToSql()
}

func buildFindMovieByTitleQuery(b sq.StatementBuilderType, title string) (string, []any, error) {
	return b.Select(movieColumns...).
		From(moviesTable).
		Where(sq.Eq{"title": title}).
		Limit(1).
		ToSql()
}

func buildFindGenreQuery(b sq.StatementBuilderType, name string) (string, []any, error) {
	return b.Select("genre_name", "genre_description").
		From(moviesTable).
		Where(sq.Eq{"genre_name": name}).
		OrderBy("movie_id").
		Limit(1).
		ToSql()
}

func buildFindDirectorQuery(b sq.StatementBuilderType, name string) (string, []any, error) {
	return b.Select("director_name", "director_bio", "director_birth_year", "director_death_year").
		From(moviesTable).
		Where(sq.Eq{"director_name": name}).
		OrderBy("movie_id").
		Limit(1).
		ToSql()
}

func dateValue(d *models.Date) any {
	if d == nil {
		return nil
	}
	return d.Time
}
