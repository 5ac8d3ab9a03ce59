package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-movie-favorites/internal/service"
	"github.com/MKhiriev/go-movie-favorites/internal/utils"
	"github.com/MKhiriev/go-movie-favorites/models"
)

// captureUsername returns a handler that records the username found in the
// request context.
func captureUsername(called *bool, username *string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		*username, _ = utils.GetUsernameFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuth(t *testing.T) {
	tests := []struct {
		name         string
		header       string
		verifyToken  string
		verifyErr    error
		wantStatus   int
		wantError    string
		wantUsername string
	}{
		{
			name:       "missing header",
			wantStatus: http.StatusUnauthorized,
			wantError:  ErrEmptyAuthorizationHeader.Error(),
		},
		{
			name:       "basic scheme",
			header:     "Basic YWxpY2U6cHc=",
			wantStatus: http.StatusUnauthorized,
			wantError:  ErrInvalidAuthorizationHeader.Error(),
		},
		{
			name:        "expired token",
			header:      "Bearer old.token",
			verifyToken: "old.token",
			verifyErr:   fmt.Errorf("%w: %w", service.ErrTokenIsExpired, errors.New("exp")),
			wantStatus:  http.StatusUnauthorized,
			wantError:   service.ErrTokenIsExpired.Error(),
		},
		{
			name:        "invalid token",
			header:      "Bearer forged",
			verifyToken: "forged",
			verifyErr:   service.ErrTokenIsInvalid,
			wantStatus:  http.StatusUnauthorized,
			wantError:   service.ErrTokenIsInvalid.Error(),
		},
		{
			name:         "valid token",
			header:       "Bearer good.token",
			verifyToken:  "good.token",
			wantStatus:   http.StatusOK,
			wantUsername: "alice01",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, ts := newTestHandler(t)
			if tt.verifyToken != "" {
				ts.tokens.EXPECT().Verify(gomock.Any(), tt.verifyToken).
					Return(models.Token{SignedString: tt.verifyToken, Username: tt.wantUsername}, tt.verifyErr)
			}

			var called bool
			var username string
			handler := h.auth(captureUsername(&called, &username))

			req := injectNopLogger(httptest.NewRequest(http.MethodGet, "/movies", nil))
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus != http.StatusOK {
				assert.False(t, called, "wrapped handler must not run")
				assert.Equal(t, tt.wantError, decodeError(t, rec).Error)
				assert.NotEmpty(t, rec.Header().Get("WWW-Authenticate"))
				return
			}
			assert.True(t, called)
			assert.Equal(t, tt.wantUsername, username)
		})
	}
}

func TestOwnerOnly(t *testing.T) {
	tests := []struct {
		name       string
		authUser   string
		target     string
		wantStatus int
	}{
		{name: "own resource", authUser: "alice01", target: "alice01", wantStatus: http.StatusOK},
		{name: "someone else", authUser: "alice01", target: "bobby", wantStatus: http.StatusForbidden},
		{name: "case differs", authUser: "alice01", target: "Alice01", wantStatus: http.StatusForbidden},
		{name: "not authenticated", target: "alice01", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := newTestHandler(t)

			var called bool
			var username string
			handler := h.ownerOnly(captureUsername(&called, &username))

			req := httptest.NewRequest(http.MethodGet, "/users/"+tt.target, nil)
			req = injectNopLogger(withRouteParams(req, map[string]string{"username": tt.target}))
			if tt.authUser != "" {
				req = authenticated(req, tt.authUser)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantStatus == http.StatusOK, called)
		})
	}
}
