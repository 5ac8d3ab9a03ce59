package store

import "github.com/MKhiriev/go-movie-favorites/internal/logger"

// Storages aggregates the repositories the service layer depends on.
type Storages struct {
	UserRepository  UserRepository
	MovieRepository MovieRepository
}

// NewStorages builds every repository on top of db.
func NewStorages(db *DB, logger *logger.Logger) *Storages {
	return &Storages{
		UserRepository:  NewUserRepository(db, logger),
		MovieRepository: NewMovieRepository(db, logger),
	}
}
