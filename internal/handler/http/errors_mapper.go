package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-movie-favorites/internal/logger"
	"github.com/MKhiriev/go-movie-favorites/internal/service"
	"github.com/MKhiriev/go-movie-favorites/internal/store"
	"github.com/MKhiriev/go-movie-favorites/internal/utils"
)

var errorStatusMap = map[error]int{
	ErrEmptyAuthorizationHeader:   http.StatusUnauthorized,
	ErrInvalidAuthorizationHeader: http.StatusUnauthorized,
	ErrInvalidJSON:                http.StatusBadRequest,

	service.ErrInvalidDataProvided: http.StatusBadRequest,
	service.ErrInvalidCredentials:  http.StatusBadRequest,
	service.ErrEmptyMovieID:        http.StatusBadRequest,
	service.ErrTokenIsExpired:      http.StatusUnauthorized,
	service.ErrTokenIsInvalid:      http.StatusUnauthorized,
	service.ErrPermissionDenied:    http.StatusForbidden,

	store.ErrUsernameAlreadyExists: http.StatusBadRequest,
	store.ErrNoUserWasFound:        http.StatusNotFound,
	store.ErrMovieNotFound:         http.StatusNotFound,
	store.ErrGenreNotFound:         http.StatusNotFound,
	store.ErrDirectorNotFound:      http.StatusNotFound,
}

// statusFromError returns the status mapped to the first sentinel err wraps
// together with that sentinel. Unknown errors map to 500 and a nil sentinel.
func statusFromError(err error) (int, error) {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status, target
		}
	}
	return http.StatusInternalServerError, nil
}

// writeError logs err and writes the JSON error body for it. Validation
// failures become 422 with per-field messages. Server-side failures are
// reported with a generic message only.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)

	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		log.Info().Err(err).Msg("request failed validation")
		utils.WriteFieldErrors(w, "validation failed", validationErr.Fields, http.StatusUnprocessableEntity)
		return
	}

	status, sentinel := statusFromError(err)
	if sentinel == nil {
		log.Err(err).Msg("unexpected error occurred")
		utils.WriteError(w, http.StatusText(status), status)
		return
	}

	log.Info().Err(err).Int("status", status).Msg("request rejected")
	utils.WriteError(w, sentinel.Error(), status)
}
