package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-movie-favorites/internal/logger"
	"github.com/MKhiriev/go-movie-favorites/internal/store"
	"github.com/MKhiriev/go-movie-favorites/internal/utils"
	"github.com/MKhiriev/go-movie-favorites/models"
)

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.services.AccountService.ListUsers(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, users, http.StatusOK)
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.services.AccountService.GetUser(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, user, http.StatusOK)
}

// updateUser handles PUT /users/{username}. Only the supplied fields change.
func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var request models.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeError(w, r, ErrInvalidJSON)
		return
	}

	user, err := h.services.AccountService.UpdateProfile(r.Context(), chi.URLParam(r, "username"), request)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, user, http.StatusOK)
}

// deleteUser handles DELETE /users/{username}. It answers in plain text.
func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	username := chi.URLParam(r, "username")

	err := h.services.AccountService.Deregister(r.Context(), username)
	switch {
	case err == nil:
		log.Info().Str("username", username).Msg("user deregistered")
		utils.WriteText(w, fmt.Sprintf("%s was deleted.", username), http.StatusOK)
	case errors.Is(err, store.ErrNoUserWasFound):
		log.Info().Str("username", username).Msg("user to delete was not found")
		utils.WriteText(w, fmt.Sprintf("%s was not found", username), http.StatusBadRequest)
	default:
		writeError(w, r, err)
	}
}
