package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-movie-favorites/internal/utils"
)

func (h *Handler) listMovies(w http.ResponseWriter, r *http.Request) {
	movies, err := h.services.MovieService.ListMovies(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, movies, http.StatusOK)
}

func (h *Handler) getMovie(w http.ResponseWriter, r *http.Request) {
	movie, err := h.services.MovieService.GetMovieByTitle(r.Context(), chi.URLParam(r, "title"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, movie, http.StatusOK)
}

func (h *Handler) getGenre(w http.ResponseWriter, r *http.Request) {
	genre, err := h.services.MovieService.GetGenreByName(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, genre, http.StatusOK)
}

func (h *Handler) getDirector(w http.ResponseWriter, r *http.Request) {
	director, err := h.services.MovieService.GetDirectorByName(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, director, http.StatusOK)
}
