// Package http implements the HTTP transport layer of the application.
// It provides middleware, route handlers, and request/response utilities
// for the REST API. Authentication, logging and tracing are handled at
// this layer before requests are forwarded to the service layer.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-movie-favorites/internal/logger"
	"github.com/MKhiriev/go-movie-favorites/internal/service"
	"github.com/MKhiriev/go-movie-favorites/internal/utils"
)

// auth is an HTTP middleware that enforces bearer-token authentication.
//
// It inspects the incoming "Authorization" header, extracts the bearer token,
// verifies it via [service.TokenService.Verify], and on success stores the
// token's username in the request context under [utils.UsernameCtxKey]
// before delegating to the next handler.
//
// The middleware rejects requests with HTTP 401 Unauthorized in the following cases:
//   - The "Authorization" header is absent ([ErrEmptyAuthorizationHeader]).
//   - The header value is not a bearer token ([ErrInvalidAuthorizationHeader]).
//   - The token has expired ([service.ErrTokenIsExpired]).
//   - The token is otherwise invalid ([service.ErrTokenIsInvalid]).
//
// The wrapped handler never runs for a rejected request.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			rejectUnauthorized(w, r, ErrEmptyAuthorizationHeader)
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			rejectUnauthorized(w, r, ErrInvalidAuthorizationHeader)
			return
		}

		ctx := r.Context()
		token, err := h.services.TokenService.Verify(ctx, tokenString)
		if err != nil {
			rejectUnauthorized(w, r, err)
			return
		}

		ctx = utils.WithUsername(ctx, token.Username)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func rejectUnauthorized(w http.ResponseWriter, r *http.Request, err error) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="movie-favorites"`)
	writeError(w, r, err)
}

// ownerOnly lets a request through only when the {username} route parameter
// names the authenticated user. Must run after auth.
func (h *Handler) ownerOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, ok := utils.GetUsernameFromContext(r.Context())
		if !ok {
			writeError(w, r, ErrEmptyAuthorizationHeader)
			return
		}

		if target := chi.URLParam(r, "username"); target != username {
			logger.FromRequest(r).Warn().
				Str("username", username).
				Str("target", target).
				Msg("access to another user's resources")
			writeError(w, r, service.ErrPermissionDenied)
			return
		}

		next.ServeHTTP(w, r)
	})
}
