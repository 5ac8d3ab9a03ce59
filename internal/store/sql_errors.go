package store

import (
	"fmt"
)

// ErrorClassification is the result type returned by [ErrorClassificator.Classify].
// It tells the repositories how a failed driver call should be surfaced.
type ErrorClassification int

const (
	// Unclassified is the default for errors no classifier recognises.
	// They are surfaced as "unexpected DB error".
	Unclassified ErrorClassification = iota

	// UniqueViolation indicates a unique or primary key constraint was hit.
	UniqueViolation

	// Unavailable indicates the database cannot be reached or is shutting
	// down. Surfaced as [ErrStoreUnavailable].
	Unavailable

	// Retryable indicates a transient conflict (serialization failure,
	// deadlock, busy database). Transactions hitting it are run again by
	// [DB.withTx].
	Retryable
)

// ErrorClassificator maps a driver-specific error to an [ErrorClassification].
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

// wrapDBError turns a driver error into the error returned to callers.
// Unique violations are not handled here because their meaning depends on
// the statement; callers check for [UniqueViolation] first.
func (db *DB) wrapDBError(err error) error {
	if db.errorClassificator != nil && db.errorClassificator.Classify(err) == Unavailable {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	return fmt.Errorf("unexpected DB error: %w", err)
}

// isUniqueViolation reports whether err was classified as [UniqueViolation].
func (db *DB) isUniqueViolation(err error) bool {
	return db.errorClassificator != nil && db.errorClassificator.Classify(err) == UniqueViolation
}

// isRetryable reports whether err was classified as [Retryable].
func (db *DB) isRetryable(err error) bool {
	return db.errorClassificator != nil && db.errorClassificator.Classify(err) == Retryable
}
