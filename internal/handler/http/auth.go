package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/go-item-custody/internal/app"
	"github.com/MKhiriev/go-item-custody/internal/logger"
	"github.com/MKhiriev/go-item-custody/internal/utils"
	"github.com/MKhiriev/go-item-custody/models"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.register").Msg("Invalid JSON was passed")
		utils.WriteError(w, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	if err := h.validator.Validate(ctx, req); err != nil {
		writeError(w, r, "*Handler.register", err)
		return
	}

	registeredUser, err := h.services.AuthService.RegisterUser(ctx, req.Login, req.Password)
	if err != nil {
		writeError(w, r, "*Handler.register", err)
		return
	}

	log.Info().Int64("user_id", registeredUser.ID).Str("login", registeredUser.Login).Msg("user registered")
	utils.WriteMessage(w, app.MsgUserRegistered, http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.login").Msg("Invalid JSON was passed")
		utils.WriteError(w, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	if err := h.validator.Validate(ctx, req); err != nil {
		writeError(w, r, "*Handler.login", err)
		return
	}

	session, err := h.services.AuthService.Login(ctx, req.Login, req.Password)
	if err != nil {
		writeError(w, r, "*Handler.login", err)
		return
	}

	log.Debug().Int64("user_id", session.UserID).Time("expires_at", session.ExpiresAt).Msg("user successfully logged in")
	utils.WriteJSON(w, models.LoginResponse{Token: session.Token}, http.StatusCreated)
}
