package adapter

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-movie-favorites/models"
)

const (
	defaultBaseURL = "http://localhost:8080"
	defaultTimeout = 15 * time.Second
)

type HTTPClientConfig struct {
	BaseURL string
	Timeout time.Duration
}

type httpServerAdapter struct {
	client *resty.Client

	mu    sync.RWMutex
	token string
}

func NewHTTPServerAdapter(cfg HTTPClientConfig) ServerAdapter {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json")

	return &httpServerAdapter{client: cli}
}

func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

func (h *httpServerAdapter) Register(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	var user models.User
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&user).
		Post("/users")
	if err != nil {
		return models.User{}, fmt.Errorf("register request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	return user, nil
}

func (h *httpServerAdapter) Login(ctx context.Context, username, password string) (models.User, error) {
	var login models.LoginResponse
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.LoginRequest{Username: username, Password: password}).
		SetResult(&login).
		Post("/login")
	if err != nil {
		return models.User{}, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	token := login.Token
	if token == "" {
		token = strings.TrimPrefix(resp.Header().Get("Authorization"), "Bearer ")
	}
	if token == "" {
		return models.User{}, errNoToken
	}

	h.SetToken(token)
	return login.User, nil
}

func (h *httpServerAdapter) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := h.get(ctx, "/users", nil, &users); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (h *httpServerAdapter) GetUser(ctx context.Context, username string) (models.User, error) {
	var user models.User
	if err := h.get(ctx, "/users/{username}", map[string]string{"username": username}, &user); err != nil {
		return models.User{}, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

func (h *httpServerAdapter) UpdateUser(ctx context.Context, username string, req models.UpdateUserRequest) (models.User, error) {
	var user models.User
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetPathParam("username", username).
		SetBody(req).
		SetResult(&user).
		Put("/users/{username}")
	if err != nil {
		return models.User{}, fmt.Errorf("update user request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	return user, nil
}

func (h *httpServerAdapter) DeleteUser(ctx context.Context, username string) (string, error) {
	resp, err := h.authedRequest(ctx).
		SetPathParam("username", username).
		Delete("/users/{username}")
	if err != nil {
		return "", fmt.Errorf("delete user request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	return resp.String(), nil
}

func (h *httpServerAdapter) AddFavorite(ctx context.Context, username, movieID string) (models.User, error) {
	return h.changeFavorite(ctx, username, movieID, resty.MethodPost)
}

func (h *httpServerAdapter) RemoveFavorite(ctx context.Context, username, movieID string) (models.User, error) {
	return h.changeFavorite(ctx, username, movieID, resty.MethodDelete)
}

func (h *httpServerAdapter) changeFavorite(ctx context.Context, username, movieID, method string) (models.User, error) {
	var user models.User
	resp, err := h.authedRequest(ctx).
		SetPathParams(map[string]string{"username": username, "movieID": movieID}).
		SetResult(&user).
		Execute(method, "/users/{username}/movies/{movieID}")
	if err != nil {
		return models.User{}, fmt.Errorf("favorite request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	return user, nil
}

func (h *httpServerAdapter) ListMovies(ctx context.Context) ([]models.Movie, error) {
	var movies []models.Movie
	if err := h.get(ctx, "/movies", nil, &movies); err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}
	return movies, nil
}

func (h *httpServerAdapter) GetMovie(ctx context.Context, title string) (models.Movie, error) {
	var movie models.Movie
	if err := h.get(ctx, "/movies/{title}", map[string]string{"title": title}, &movie); err != nil {
		return models.Movie{}, fmt.Errorf("get movie: %w", err)
	}
	return movie, nil
}

func (h *httpServerAdapter) GetGenre(ctx context.Context, name string) (models.Genre, error) {
	var genre models.Genre
	if err := h.get(ctx, "/genres/{name}", map[string]string{"name": name}, &genre); err != nil {
		return models.Genre{}, fmt.Errorf("get genre: %w", err)
	}
	return genre, nil
}

func (h *httpServerAdapter) GetDirector(ctx context.Context, name string) (models.Director, error) {
	var director models.Director
	if err := h.get(ctx, "/directors/{name}", map[string]string{"name": name}, &director); err != nil {
		return models.Director{}, fmt.Errorf("get director: %w", err)
	}
	return director, nil
}

func (h *httpServerAdapter) Version(ctx context.Context) (models.BuildInfoResponse, error) {
	var info models.BuildInfoResponse
	resp, err := h.client.R().
		SetContext(ctx).
		SetResult(&info).
		Get("/version")
	if err != nil {
		return models.BuildInfoResponse{}, fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.BuildInfoResponse{}, err
	}

	return info, nil
}

// get performs an authenticated GET and decodes the JSON body into result.
func (h *httpServerAdapter) get(ctx context.Context, path string, params map[string]string, result any) error {
	resp, err := h.authedRequest(ctx).
		SetPathParams(params).
		SetResult(result).
		Get(path)
	if err != nil {
		return err
	}
	return mapHTTPError(resp)
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetAuthToken(token)
	}
	return req
}
