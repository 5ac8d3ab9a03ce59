package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-movie-favorites/internal/logger"
	"github.com/MKhiriev/go-movie-favorites/models"
)

// userRepository is the SQL implementation of [UserRepository]. It works
// against the "users" and "user_favorite_movies" tables on PostgreSQL and
// SQLite alike; dialect differences are absorbed by the squirrel builder
// and the error classifier held by [DB].
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// FindUserByUsername retrieves the user and its favorites.
//
// Error handling:
//   - no matching row → [ErrNoUserWasFound].
//   - connection problems → wrapped [ErrStoreUnavailable].
//   - any other driver-level error → wrapped as "unexpected DB error".
func (r *userRepository) FindUserByUsername(ctx context.Context, username string) (models.User, error) {
	user, err := r.findUser(ctx, r.db, username)
	if err != nil {
		return models.User{}, err
	}

	user.FavoriteMovies, err = r.listFavorites(ctx, r.db, user.UserID)
	if err != nil {
		return models.User{}, err
	}

	return user, nil
}

// ListUsers returns every user ordered by id, each with its favorites.
func (r *userRepository) ListUsers(ctx context.Context) ([]models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListUsersQuery(r.db.builder)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.ListUsers").Msg("failed to query users")
		return nil, r.db.wrapDBError(err)
	}
	defer rows.Close()

	users := make([]models.User, 0)
	index := make(map[int64]int)
	for rows.Next() {
		user, scanErr := scanUser(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "*userRepository.ListUsers").Msg("failed to scan user row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		index[user.UserID] = len(users)
		users = append(users, user)
	}
	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", "*userRepository.ListUsers").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	if err = r.attachAllFavorites(ctx, users, index); err != nil {
		return nil, err
	}

	return users, nil
}

// CreateUser persists a new user and returns it with the server-assigned
// UserID and CreatedAt and an empty favorites set. The caller supplies the
// already hashed password.
//
// Error handling:
//   - unique violation on username → [ErrUsernameAlreadyExists].
//   - connection problems → wrapped [ErrStoreUnavailable].
//   - any other driver-level error → wrapped as "unexpected DB error".
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	user.CreatedAt = time.Now().UTC().Truncate(time.Microsecond)
	query, args, err := buildCreateUserQuery(r.db.builder, user)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	row := r.db.QueryRowContext(ctx, query, args...)

	// create user in db
	if err = row.Err(); err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error: row is nil")

		if r.db.isUniqueViolation(err) {
			return models.User{}, ErrUsernameAlreadyExists
		}
		return models.User{}, r.db.wrapDBError(err)
	}

	// scan generated id
	if err = row.Scan(&user.UserID); err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error: scanning error")
		if r.db.isUniqueViolation(err) {
			return models.User{}, ErrUsernameAlreadyExists
		}
		return models.User{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	user.FavoriteMovies = []string{}
	return user, nil
}

// UpdateUser applies the non-nil fields of update to the user identified by
// username and returns the updated user. A rename is reflected in the
// returned value.
//
// Error handling:
//   - no matching row → [ErrNoUserWasFound].
//   - renaming onto an existing username → [ErrUsernameAlreadyExists].
func (r *userRepository) UpdateUser(ctx context.Context, username string, update models.UserUpdate) (models.User, error) {
	if update.IsEmpty() {
		return r.FindUserByUsername(ctx, username)
	}

	log := logger.FromContext(ctx)

	query, args, err := buildUpdateUserQuery(r.db.builder, username, update)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	newUsername := username
	if update.Username != nil {
		newUsername = *update.Username
	}

	var updated models.User
	err = r.db.withTx(ctx, func(tx *sql.Tx) error {
		res, execErr := tx.ExecContext(ctx, query, args...)
		if execErr != nil {
			log.Err(execErr).Str("func", "*userRepository.UpdateUser").Msg("failed to update user")
			if r.db.isUniqueViolation(execErr) {
				return ErrUsernameAlreadyExists
			}
			return fmt.Errorf("%w: %w", ErrExecutingStatement, r.db.wrapDBError(execErr))
		}

		affected, execErr := res.RowsAffected()
		if execErr != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, execErr)
		}
		if affected == 0 {
			return ErrNoUserWasFound
		}

		found, findErr := r.findUser(ctx, tx, newUsername)
		if findErr != nil {
			return findErr
		}
		found.FavoriteMovies, findErr = r.listFavorites(ctx, tx, found.UserID)
		if findErr != nil {
			return findErr
		}

		updated = found
		return nil
	})
	if err != nil {
		return models.User{}, err
	}

	return updated, nil
}

// DeleteUser removes the user's favorites and then the user itself in one
// transaction.
//
// Error handling:
//   - no matching row → [ErrNoUserWasFound].
func (r *userRepository) DeleteUser(ctx context.Context, username string) error {
	log := logger.FromContext(ctx)

	return r.db.withTx(ctx, func(tx *sql.Tx) error {
		user, err := r.findUser(ctx, tx, username)
		if err != nil {
			return err
		}

		query, args, err := buildDeleteAllFavoritesQuery(r.db.builder, user.UserID)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			log.Err(err).Str("func", "*userRepository.DeleteUser").Int64("user_id", user.UserID).Msg("failed to delete favorites")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, r.db.wrapDBError(err))
		}

		query, args, err = buildDeleteUserQuery(r.db.builder, user.UserID)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			log.Err(err).Str("func", "*userRepository.DeleteUser").Int64("user_id", user.UserID).Msg("failed to delete user")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, r.db.wrapDBError(err))
		}
		if affected, err := res.RowsAffected(); err == nil && affected == 0 {
			return ErrNoUserWasFound
		}

		return nil
	})
}

// AddFavoriteMovie inserts movieID into the user's favorites set. Adding an
// id that is already present changes nothing. Returns the updated user.
func (r *userRepository) AddFavoriteMovie(ctx context.Context, username, movieID string) (models.User, error) {
	log := logger.FromContext(ctx)

	var updated models.User
	err := r.db.withTx(ctx, func(tx *sql.Tx) error {
		user, err := r.findUser(ctx, tx, username)
		if err != nil {
			return err
		}

		query, args, err := buildAddFavoriteQuery(r.db.builder, user.UserID, movieID, time.Now().UTC())
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			log.Err(err).Str("func", "*userRepository.AddFavoriteMovie").Int64("user_id", user.UserID).Str("movie_id", movieID).Msg("failed to add favorite")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, r.db.wrapDBError(err))
		}

		user.FavoriteMovies, err = r.listFavorites(ctx, tx, user.UserID)
		if err != nil {
			return err
		}

		updated = user
		return nil
	})
	if err != nil {
		return models.User{}, err
	}

	return updated, nil
}

// RemoveFavoriteMovie deletes movieID from the user's favorites set.
// Removing an absent id changes nothing. Returns the updated user.
func (r *userRepository) RemoveFavoriteMovie(ctx context.Context, username, movieID string) (models.User, error) {
	log := logger.FromContext(ctx)

	var updated models.User
	err := r.db.withTx(ctx, func(tx *sql.Tx) error {
		user, err := r.findUser(ctx, tx, username)
		if err != nil {
			return err
		}

		query, args, err := buildRemoveFavoriteQuery(r.db.builder, user.UserID, movieID)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			log.Err(err).Str("func", "*userRepository.RemoveFavoriteMovie").Int64("user_id", user.UserID).Str("movie_id", movieID).Msg("failed to remove favorite")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, r.db.wrapDBError(err))
		}

		user.FavoriteMovies, err = r.listFavorites(ctx, tx, user.UserID)
		if err != nil {
			return err
		}

		updated = user
		return nil
	})
	if err != nil {
		return models.User{}, err
	}

	return updated, nil
}

func (r *userRepository) findUser(ctx context.Context, q querier, username string) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildFindUserByUsernameQuery(r.db.builder, username)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	row := q.QueryRowContext(ctx, query, args...)
	if err = row.Err(); err != nil {
		log.Err(err).Str("func", "*userRepository.findUser").Msg("error: row is nil")
		return models.User{}, r.db.wrapDBError(err)
	}

	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNoUserWasFound
		}
		log.Err(err).Str("func", "*userRepository.findUser").Msg("error: scanning error")
		return models.User{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return user, nil
}

func (r *userRepository) listFavorites(ctx context.Context, q querier, userID int64) ([]string, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListFavoritesQuery(r.db.builder, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.listFavorites").Int64("user_id", userID).Msg("failed to query favorites")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, r.db.wrapDBError(err))
	}
	defer rows.Close()

	favorites := make([]string, 0)
	for rows.Next() {
		var movieID string
		if err = rows.Scan(&movieID); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		favorites = append(favorites, movieID)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return favorites, nil
}

// attachAllFavorites loads every favorite in one query and distributes the
// ids over users, whose positions are given by index.
func (r *userRepository) attachAllFavorites(ctx context.Context, users []models.User, index map[int64]int) error {
	log := logger.FromContext(ctx)

	for i := range users {
		users[i].FavoriteMovies = []string{}
	}
	if len(users) == 0 {
		return nil
	}

	query, args, err := buildListAllFavoritesQuery(r.db.builder)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.attachAllFavorites").Msg("failed to query favorites")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, r.db.wrapDBError(err))
	}
	defer rows.Close()

	for rows.Next() {
		var (
			userID  int64
			movieID string
		)
		if err = rows.Scan(&userID, &movieID); err != nil {
			return fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		if i, ok := index[userID]; ok {
			users[i].FavoriteMovies = append(users[i].FavoriteMovies, movieID)
		}
	}
	if err = rows.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (models.User, error) {
	var (
		user        models.User
		dateOfBirth sql.NullTime
	)

	err := row.Scan(&user.UserID, &user.Username, &user.PasswordHash, &user.Email, &dateOfBirth, &user.CreatedAt)
	if err != nil {
		return models.User{}, err
	}

	if dateOfBirth.Valid {
		d := models.NewDate(dateOfBirth.Time)
		user.DateOfBirth = &d
	}

	return user, nil
}
