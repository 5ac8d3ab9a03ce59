// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides a typed client for the movie favorites REST API.
//
// [ServerAdapter] hides the HTTP details: it serializes requests, keeps the
// bearer token obtained by Login and attaches it to every protected call,
// and maps error responses to the sentinel values in errors.go so callers
// can use [errors.Is] (e.g. [ErrNotFound] for 404, [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-movie-favorites/models"
)

// ServerAdapter is a client of the movie favorites API.
type ServerAdapter interface {
	// SetToken stores the bearer token attached to authenticated requests.
	SetToken(token string)

	// Token returns the stored bearer token or an empty string.
	Token() string

	// Register creates an account. It does not log in.
	Register(ctx context.Context, req models.RegisterRequest) (models.User, error)

	// Login authenticates and stores the returned token via SetToken.
	Login(ctx context.Context, username, password string) (models.User, error)

	ListUsers(ctx context.Context) ([]models.User, error)
	GetUser(ctx context.Context, username string) (models.User, error)
	UpdateUser(ctx context.Context, username string, req models.UpdateUserRequest) (models.User, error)

	// DeleteUser deregisters username and returns the server's confirmation
	// text.
	DeleteUser(ctx context.Context, username string) (string, error)

	AddFavorite(ctx context.Context, username, movieID string) (models.User, error)
	RemoveFavorite(ctx context.Context, username, movieID string) (models.User, error)

	ListMovies(ctx context.Context) ([]models.Movie, error)
	GetMovie(ctx context.Context, title string) (models.Movie, error)
	GetGenre(ctx context.Context, name string) (models.Genre, error)
	GetDirector(ctx context.Context, name string) (models.Director, error)

	// Version returns the server's build information.
	Version(ctx context.Context) (models.BuildInfoResponse, error)
}
