package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()

	// CORS must run before anything that can reject a preflight request.
	if len(h.cfg.TrustedOrigins) > 0 {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   h.cfg.TrustedOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", traceIDHeader},
			ExposedHeaders:   []string{"Authorization", traceIDHeader},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(withGZip)
	if h.cfg.RequestTimeout > 0 {
		router.Use(middleware.Timeout(h.cfg.RequestTimeout))
	}

	router.NotFound(notFound)
	router.MethodNotAllowed(methodNotAllowed)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Get("/health", h.health)
		r.Get("/version", h.getServerVersion)

		r.Post("/users", h.register)
		r.Post("/login", h.login)
	})

	// routes with authorization
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Get("/users", h.listUsers)
		r.Route("/users/{username}", func(r chi.Router) {
			r.Use(h.ownerOnly)

			r.Get("/", h.getUser)
			r.Put("/", h.updateUser)
			r.Delete("/", h.deleteUser)

			r.Post("/movies/{movieID}", h.addFavorite)
			r.Delete("/movies/{movieID}", h.removeFavorite)
		})

		r.Get("/movies", h.listMovies)
		r.Get("/movies/{title}", h.getMovie)
		r.Get("/genres/{name}", h.getGenre)
		r.Get("/directors/{name}", h.getDirector)
	})

	return router
}
