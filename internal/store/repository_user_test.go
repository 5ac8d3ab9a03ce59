package store

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-movie-favorites/internal/config"
	"github.com/MKhiriev/go-movie-favorites/internal/logger"
	"github.com/MKhiriev/go-movie-favorites/models"
)

const (
	selectUserSQL      = `SELECT user_id, username, password_hash, email, date_of_birth, created_at FROM users WHERE username = $1`
	selectFavoritesSQL = `SELECT movie_id FROM user_favorite_movies WHERE user_id = $1 ORDER BY added_at, movie_id`
)

var userRowColumns = []string{"user_id", "username", "password_hash", "email", "date_of_birth", "created_at"}

func newTestUserRepo(t *testing.T) (*userRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	repo := &userRepository{
		db:     newDB(db, config.DriverPostgres, l),
		logger: l,
	}
	return repo, mock, db
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

func aliceRow(now time.Time) *sqlmock.Rows {
	return sqlmock.NewRows(userRowColumns).
		AddRow(int64(1), "alice01", "hash", "alice@example.com", nil, now)
}

func expectFindAlice(mock sqlmock.Sqlmock, now time.Time) {
	mock.ExpectQuery(regexp.QuoteMeta(selectUserSQL)).
		WithArgs("alice01").
		WillReturnRows(aliceRow(now))
}

func expectFavorites(mock sqlmock.Sqlmock, userID int64, movieIDs ...string) {
	rows := sqlmock.NewRows([]string{"movie_id"})
	for _, id := range movieIDs {
		rows.AddRow(id)
	}
	mock.ExpectQuery(regexp.QuoteMeta(selectFavoritesSQL)).
		WithArgs(userID).
		WillReturnRows(rows)
}

// ── CreateUser ────────────────────────────────────────────────────────────────

func TestCreateUser_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	dob := models.NewDate(time.Date(1990, 5, 17, 0, 0, 0, 0, time.UTC))
	user := models.User{
		Username:     "alice01",
		PasswordHash: "hash",
		Email:        "alice@example.com",
		DateOfBirth:  &dob,
	}

	mock.ExpectQuery("INSERT INTO users").
		WithArgs("alice01", "hash", "alice@example.com", dob.Time, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(int64(7)))

	created, err := repo.CreateUser(context.Background(), user)
	require.NoError(t, err)

	assert.Equal(t, int64(7), created.UserID)
	assert.Equal(t, "alice01", created.Username)
	assert.False(t, created.CreatedAt.IsZero())
	assert.NotNil(t, created.FavoriteMovies)
	assert.Empty(t, created.FavoriteMovies)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUser_UniqueViolation(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	_, err := repo.CreateUser(context.Background(), models.User{Username: "alice01"})
	if !errors.Is(err, ErrUsernameAlreadyExists) {
		t.Fatalf("expected ErrUsernameAlreadyExists, got %v", err)
	}
}

func TestCreateUser_ConnectionFailure(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(pgError(pgerrcode.ConnectionFailure))

	_, err := repo.CreateUser(context.Background(), models.User{Username: "alice01"})
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestCreateUser_UnexpectedDBError(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(errors.New("db network error"))

	_, err := repo.CreateUser(context.Background(), models.User{Username: "alice01"})
	if err == nil || !strings.Contains(err.Error(), "unexpected DB error") {
		t.Fatalf("expected wrapped unexpected DB error, got %v", err)
	}
}

func TestCreateUser_ScanError(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	rows := sqlmock.
		NewRows([]string{"user_id", "extra"}). // intentionally wrong shape → scan error
		AddRow(1, "x")

	mock.ExpectQuery("INSERT INTO users").
		WillReturnRows(rows)

	_, err := repo.CreateUser(context.Background(), models.User{Username: "alice01"})
	assert.ErrorIs(t, err, ErrScanningRow)
}

// ── FindUserByUsername ────────────────────────────────────────────────────────

func TestFindUserByUsername_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	now := time.Now()
	dob := time.Date(1990, 5, 17, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta(selectUserSQL)).
		WithArgs("alice01").
		WillReturnRows(sqlmock.NewRows(userRowColumns).
			AddRow(int64(1), "alice01", "hash", "alice@example.com", dob, now))
	expectFavorites(mock, 1, "m2", "m1")

	found, err := repo.FindUserByUsername(context.Background(), "alice01")
	require.NoError(t, err)

	assert.Equal(t, int64(1), found.UserID)
	assert.Equal(t, "hash", found.PasswordHash)
	require.NotNil(t, found.DateOfBirth)
	assert.Equal(t, "1990-05-17", found.DateOfBirth.String())
	assert.Equal(t, []string{"m2", "m1"}, found.FavoriteMovies, "order of addition is kept")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindUserByUsername_NotFound(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(selectUserSQL)).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows(userRowColumns))

	_, err := repo.FindUserByUsername(context.Background(), "ghost")
	if !errors.Is(err, ErrNoUserWasFound) {
		t.Fatalf("expected ErrNoUserWasFound, got %v", err)
	}
}

func TestFindUserByUsername_UnexpectedError(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(selectUserSQL)).
		WithArgs("alice01").
		WillReturnError(errors.New("db failure"))

	_, err := repo.FindUserByUsername(context.Background(), "alice01")
	if err == nil || !strings.Contains(err.Error(), "unexpected DB error") {
		t.Fatalf("expected wrapped unexpected DB error, got %v", err)
	}
}

func TestFindUserByUsername_FavoritesQueryFails(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	expectFindAlice(mock, time.Now())
	mock.ExpectQuery(regexp.QuoteMeta(selectFavoritesSQL)).
		WillReturnError(pgError(pgerrcode.AdminShutdown))

	_, err := repo.FindUserByUsername(context.Background(), "alice01")
	assert.ErrorIs(t, err, ErrExecutingQuery)
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

// ── ListUsers ─────────────────────────────────────────────────────────────────

func TestListUsers_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT user_id, username, password_hash, email, date_of_birth, created_at FROM users ORDER BY user_id`)).
		WillReturnRows(sqlmock.NewRows(userRowColumns).
			AddRow(int64(1), "alice01", "h1", "alice@example.com", nil, now).
			AddRow(int64(2), "bobby02", "h2", "bob@example.com", nil, now).
			AddRow(int64(3), "carol03", "h3", "carol@example.com", nil, now))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT user_id, movie_id FROM user_favorite_movies ORDER BY user_id, added_at, movie_id`)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "movie_id"}).
			AddRow(int64(1), "m1").
			AddRow(int64(3), "m3").
			AddRow(int64(3), "m2"))

	users, err := repo.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 3)

	assert.Equal(t, []string{"m1"}, users[0].FavoriteMovies)
	assert.Equal(t, []string{}, users[1].FavoriteMovies)
	assert.Equal(t, []string{"m3", "m2"}, users[2].FavoriteMovies)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListUsers_Empty(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT user_id, username").
		WillReturnRows(sqlmock.NewRows(userRowColumns))

	users, err := repo.ListUsers(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, users)
	assert.Empty(t, users)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListUsers_QueryError(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT user_id, username").
		WillReturnError(errors.New("boom"))

	_, err := repo.ListUsers(context.Background())
	assert.Error(t, err)
}

// ── UpdateUser ────────────────────────────────────────────────────────────────

func TestUpdateUser_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	email := "new@example.com"
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE users SET email = $1 WHERE username = $2`)).
		WithArgs(email, "alice01").
		WillReturnResult(sqlmock.NewResult(0, 1))
	expectFindAlice(mock, time.Now())
	expectFavorites(mock, 1, "m1")
	mock.ExpectCommit()

	updated, err := repo.UpdateUser(context.Background(), "alice01", models.UserUpdate{Email: &email})
	require.NoError(t, err)
	assert.Equal(t, []string{"m1"}, updated.FavoriteMovies)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateUser_RenameReadsNewUsername(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	newName := "alice99"
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE users SET username = $1 WHERE username = $2`)).
		WithArgs(newName, "alice01").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(selectUserSQL)).
		WithArgs(newName).
		WillReturnRows(sqlmock.NewRows(userRowColumns).
			AddRow(int64(1), newName, "hash", "alice@example.com", nil, time.Now()))
	expectFavorites(mock, 1)
	mock.ExpectCommit()

	updated, err := repo.UpdateUser(context.Background(), "alice01", models.UserUpdate{Username: &newName})
	require.NoError(t, err)
	assert.Equal(t, newName, updated.Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateUser_NotFound(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	email := "new@example.com"
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE users").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err := repo.UpdateUser(context.Background(), "ghost", models.UserUpdate{Email: &email})
	assert.ErrorIs(t, err, ErrNoUserWasFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateUser_DuplicateUsername(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	taken := "bobby02"
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE users").
		WillReturnError(pgError(pgerrcode.UniqueViolation))
	mock.ExpectRollback()

	_, err := repo.UpdateUser(context.Background(), "alice01", models.UserUpdate{Username: &taken})
	assert.ErrorIs(t, err, ErrUsernameAlreadyExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateUser_EmptyUpdateReadsUser(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	expectFindAlice(mock, time.Now())
	expectFavorites(mock, 1)

	user, err := repo.UpdateUser(context.Background(), "alice01", models.UserUpdate{})
	require.NoError(t, err)
	assert.Equal(t, "alice01", user.Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateUser_BeginFails(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	email := "new@example.com"
	mock.ExpectBegin().WillReturnError(errors.New("no tx"))

	_, err := repo.UpdateUser(context.Background(), "alice01", models.UserUpdate{Email: &email})
	assert.ErrorIs(t, err, ErrBeginningTransaction)
}

// ── DeleteUser ────────────────────────────────────────────────────────────────

func TestDeleteUser_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectBegin()
	expectFindAlice(mock, time.Now())
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM user_favorite_movies WHERE user_id = $1`)).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM users WHERE user_id = $1`)).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.DeleteUser(context.Background(), "alice01")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteUser_NotFound(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(selectUserSQL)).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows(userRowColumns))
	mock.ExpectRollback()

	err := repo.DeleteUser(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrNoUserWasFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteUser_FavoritesDeleteFailsRollsBack(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectBegin()
	expectFindAlice(mock, time.Now())
	mock.ExpectExec("DELETE FROM user_favorite_movies").
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err := repo.DeleteUser(context.Background(), "alice01")
	assert.ErrorIs(t, err, ErrExecutingStatement)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteUser_CommitFails(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectBegin()
	expectFindAlice(mock, time.Now())
	mock.ExpectExec("DELETE FROM user_favorite_movies").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM users").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit().WillReturnError(errors.New("commit failed"))

	err := repo.DeleteUser(context.Background(), "alice01")
	assert.ErrorIs(t, err, ErrCommitingTransaction)
}

// ── favorites ─────────────────────────────────────────────────────────────────

const insertFavoriteSQL = `INSERT INTO user_favorite_movies (user_id,movie_id,added_at) VALUES ($1,$2,$3) ON CONFLICT (user_id, movie_id) DO NOTHING`

func TestAddFavoriteMovie_RetriesSerializationFailure(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectBegin()
	expectFindAlice(mock, time.Now())
	mock.ExpectExec(regexp.QuoteMeta(insertFavoriteSQL)).WillReturnError(pgError(pgerrcode.SerializationFailure))
	mock.ExpectRollback()

	mock.ExpectBegin()
	expectFindAlice(mock, time.Now())
	mock.ExpectExec(regexp.QuoteMeta(insertFavoriteSQL)).WillReturnResult(sqlmock.NewResult(0, 1))
	expectFavorites(mock, 1, "5c3bd189515a081b363cb7e5")
	mock.ExpectCommit()

	user, err := repo.AddFavoriteMovie(context.Background(), "alice01", "5c3bd189515a081b363cb7e5")
	require.NoError(t, err)
	assert.Equal(t, []string{"5c3bd189515a081b363cb7e5"}, user.FavoriteMovies)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddFavoriteMovie_GivesUpAfterRetries(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	for i := 0; i <= txMaxRetries; i++ {
		mock.ExpectBegin()
		expectFindAlice(mock, time.Now())
		mock.ExpectExec(regexp.QuoteMeta(insertFavoriteSQL)).WillReturnError(pgError(pgerrcode.DeadlockDetected))
		mock.ExpectRollback()
	}

	_, err := repo.AddFavoriteMovie(context.Background(), "alice01", "5c3bd189515a081b363cb7e5")

	var pgErr *pgconn.PgError
	require.True(t, errors.As(err, &pgErr), "got %v", err)
	assert.Equal(t, pgerrcode.DeadlockDetected, pgErr.Code)
	assert.ErrorIs(t, err, ErrExecutingStatement)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddFavoriteMovie_NonRetryableErrorIsNotRetried(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectBegin()
	expectFindAlice(mock, time.Now())
	mock.ExpectExec(regexp.QuoteMeta(insertFavoriteSQL)).WillReturnError(pgError(pgerrcode.SyntaxError))
	mock.ExpectRollback()

	_, err := repo.AddFavoriteMovie(context.Background(), "alice01", "5c3bd189515a081b363cb7e5")
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddFavoriteMovie_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectBegin()
	expectFindAlice(mock, time.Now())
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO user_favorite_movies (user_id,movie_id,added_at) VALUES ($1,$2,$3) ON CONFLICT (user_id, movie_id) DO NOTHING`)).
		WithArgs(int64(1), "5c3bd189515a081b363cb7e4", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	expectFavorites(mock, 1, "5c3bd189515a081b363cb7e4")
	mock.ExpectCommit()

	user, err := repo.AddFavoriteMovie(context.Background(), "alice01", "5c3bd189515a081b363cb7e4")
	require.NoError(t, err)
	assert.Equal(t, []string{"5c3bd189515a081b363cb7e4"}, user.FavoriteMovies)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddFavoriteMovie_AlreadyPresentIsNoOp(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectBegin()
	expectFindAlice(mock, time.Now())
	mock.ExpectExec("INSERT INTO user_favorite_movies").
		WillReturnResult(sqlmock.NewResult(0, 0))
	expectFavorites(mock, 1, "m1")
	mock.ExpectCommit()

	user, err := repo.AddFavoriteMovie(context.Background(), "alice01", "m1")
	require.NoError(t, err)
	assert.Equal(t, []string{"m1"}, user.FavoriteMovies)
}

func TestAddFavoriteMovie_UserNotFound(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(selectUserSQL)).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows(userRowColumns))
	mock.ExpectRollback()

	_, err := repo.AddFavoriteMovie(context.Background(), "ghost", "m1")
	assert.ErrorIs(t, err, ErrNoUserWasFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRemoveFavoriteMovie_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectBegin()
	expectFindAlice(mock, time.Now())
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM user_favorite_movies WHERE movie_id = $1 AND user_id = $2`)).
		WithArgs("m1", int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	expectFavorites(mock, 1, "m2")
	mock.ExpectCommit()

	user, err := repo.RemoveFavoriteMovie(context.Background(), "alice01", "m1")
	require.NoError(t, err)
	assert.Equal(t, []string{"m2"}, user.FavoriteMovies)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRemoveFavoriteMovie_ExecError(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectBegin()
	expectFindAlice(mock, time.Now())
	mock.ExpectExec("DELETE FROM user_favorite_movies").
		WillReturnError(pgError(pgerrcode.ConnectionException))
	mock.ExpectRollback()

	_, err := repo.RemoveFavoriteMovie(context.Background(), "alice01", "m1")
	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.NoError(t, mock.ExpectationsWereMet())
}
