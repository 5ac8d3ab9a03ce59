package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-movie-favorites/models"
)

func TestRoutes_PublicEndpoints(t *testing.T) {
	h, ts := newTestHandler(t)
	ts.appInfo.EXPECT().GetBuildInfo(gomock.Any()).Return(models.BuildInfoResponse{Version: "v1"})
	ts.accounts.EXPECT().Register(gomock.Any(), gomock.Any()).Return(alice, nil)
	ts.accounts.EXPECT().Login(gomock.Any(), "alice01", "s3cret").Return(alice, models.Token{SignedString: "tok"}, nil)

	router := h.Init()

	tests := []struct {
		method, path, body string
		wantStatus         int
	}{
		{http.MethodGet, "/health", "", http.StatusOK},
		{http.MethodGet, "/version", "", http.StatusOK},
		{http.MethodPost, "/users", `{"username":"alice01","password":"s3cret","email":"alice@example.com"}`, http.StatusCreated},
		{http.MethodPost, "/login", `{"username":"alice01","password":"s3cret"}`, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			assert.NotEmpty(t, rec.Header().Get(traceIDHeader))
		})
	}
}

func TestRoutes_ProtectedEndpointsRequireToken(t *testing.T) {
	h, _ := newTestHandler(t)
	router := h.Init()

	paths := []struct{ method, path string }{
		{http.MethodGet, "/users"},
		{http.MethodGet, "/users/alice01"},
		{http.MethodPut, "/users/alice01"},
		{http.MethodDelete, "/users/alice01"},
		{http.MethodPost, "/users/alice01/movies/" + inceptionID},
		{http.MethodDelete, "/users/alice01/movies/" + inceptionID},
		{http.MethodGet, "/movies"},
		{http.MethodGet, "/movies/Inception"},
		{http.MethodGet, "/genres/Thriller"},
		{http.MethodGet, "/directors/Christopher%20Nolan"},
	}

	for _, p := range paths {
		t.Run(p.method+" "+p.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(p.method, p.path, nil))

			require.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, ErrEmptyAuthorizationHeader.Error(), decodeError(t, rec).Error)
		})
	}
}

func TestRoutes_OwnerOnly(t *testing.T) {
	h, ts := newTestHandler(t)
	ts.tokens.EXPECT().Verify(gomock.Any(), "bob.token").
		Return(models.Token{Username: "bobby"}, nil).AnyTimes()

	router := h.Init()

	for _, p := range []struct{ method, path string }{
		{http.MethodGet, "/users/alice01"},
		{http.MethodPut, "/users/alice01"},
		{http.MethodDelete, "/users/alice01"},
		{http.MethodPost, "/users/alice01/movies/" + inceptionID},
		{http.MethodDelete, "/users/alice01/movies/" + inceptionID},
	} {
		t.Run(p.method+" "+p.path, func(t *testing.T) {
			req := httptest.NewRequest(p.method, p.path, strings.NewReader(`{"email":"x@y.z"}`))
			req.Header.Set("Authorization", "Bearer bob.token")
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusForbidden, rec.Code)
		})
	}
}

func TestRoutes_AuthenticatedCatalog(t *testing.T) {
	h, ts := newTestHandler(t)
	ts.tokens.EXPECT().Verify(gomock.Any(), "alice.token").Return(models.Token{Username: "alice01"}, nil)
	ts.movies.EXPECT().GetMovieByTitle(gomock.Any(), "The Dark Knight").Return(models.Movie{Title: "The Dark Knight"}, nil)

	req := httptest.NewRequest(http.MethodGet, "/movies/The%20Dark%20Knight", nil)
	req.Header.Set("Authorization", "Bearer alice.token")
	rec := httptest.NewRecorder()

	h.Init().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"title":"The Dark Knight"`)
}

func TestRoutes_UnknownRouteAndMethod(t *testing.T) {
	h, _ := newTestHandler(t)
	router := h.Init()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nowhere", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "route not found", decodeError(t, rec).Error)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/login", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "method not allowed", decodeError(t, rec).Error)
}

func TestRoutes_CORS(t *testing.T) {
	h, _ := newTestHandler(t)
	h.cfg.TrustedOrigins = []string{"https://movies.example.com"}
	router := h.Init()

	req := httptest.NewRequest(http.MethodOptions, "/movies", nil)
	req.Header.Set("Origin", "https://movies.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	req.Header.Set("Access-Control-Request-Headers", "Authorization")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, "https://movies.example.com", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/movies", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec = httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
