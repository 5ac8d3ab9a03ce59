package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-movie-favorites/internal/utils"
)

func (h *Handler) addFavorite(w http.ResponseWriter, r *http.Request) {
	user, err := h.services.FavoritesService.AddFavorite(r.Context(), chi.URLParam(r, "username"), chi.URLParam(r, "movieID"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, user, http.StatusOK)
}

func (h *Handler) removeFavorite(w http.ResponseWriter, r *http.Request) {
	user, err := h.services.FavoritesService.RemoveFavorite(r.Context(), chi.URLParam(r, "username"), chi.URLParam(r, "movieID"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, user, http.StatusOK)
}
