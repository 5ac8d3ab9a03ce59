package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-movie-favorites/internal/logger"
	"github.com/MKhiriev/go-movie-favorites/internal/utils"
	"github.com/MKhiriev/go-movie-favorites/models"
)

// register handles POST /users.
func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeError(w, r, ErrInvalidJSON)
		return
	}

	registeredUser, err := h.services.AccountService.Register(ctx, request)
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.Info().Int64("id", registeredUser.UserID).Str("username", registeredUser.Username).Msg("user registered")
	utils.WriteJSON(w, registeredUser, http.StatusCreated)
}

// login handles POST /login. The token is returned both in the body and in
// the Authorization response header.
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeError(w, r, ErrInvalidJSON)
		return
	}

	user, token, err := h.services.AccountService.Login(ctx, request.Username, request.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.Debug().Int64("id", user.UserID).Msg("user successfully logged in")

	w.Header().Set("Authorization", fmt.Sprintf("Bearer %s", token.SignedString))
	utils.WriteJSON(w, models.LoginResponse{User: user, Token: token.SignedString}, http.StatusOK)
}
