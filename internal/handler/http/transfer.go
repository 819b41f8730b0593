// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-item-custody/internal/app"
	"github.com/MKhiriev/go-item-custody/internal/logger"
	"github.com/MKhiriev/go-item-custody/internal/utils"
	"github.com/MKhiriev/go-item-custody/models"
)

// recipientTokenPlaceholder stands in the confirmation URL for a recipient
// who is not logged in; they substitute their token after logging in.
const recipientTokenPlaceholder = "{recipient_token}"

func (h *Handler) sendItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)
	sender, _ := utils.GetUserFromContext(ctx)

	var req models.SendItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.sendItem").Msg("Invalid JSON was passed")
		utils.WriteError(w, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	if err := h.validator.Validate(ctx, req); err != nil {
		writeError(w, r, "*Handler.sendItem", err)
		return
	}

	offer, err := h.services.TransferService.SendItem(ctx, *sender, req.ID, req.Recipient)
	if err != nil {
		writeError(w, r, "*Handler.sendItem", err)
		return
	}

	log.Info().Int64("item_id", req.ID).Str("recipient", req.Recipient).Msg("item offered")
	utils.WriteJSON(w, models.SendItemResponse{
		ConfirmationURL: h.confirmationURL(offer),
	}, http.StatusCreated)
}

// confirmationURL builds http://{host}:{port}/get/{item_token}/{recipient_token}.
func (h *Handler) confirmationURL(offer models.SendingOffer) string {
	recipientToken := offer.RecipientToken
	if recipientToken == "" {
		recipientToken = recipientTokenPlaceholder
	}

	return fmt.Sprintf("http://%s/get/%s/%s",
		net.JoinHostPort(h.publicHost, strconv.Itoa(h.publicPort)), offer.ItemToken, recipientToken)
}

func (h *Handler) claimItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	recipient, _ := utils.GetUserFromContext(ctx)

	status, err := h.services.TransferService.ClaimSending(ctx, *recipient, chi.URLParam(r, "item_token"))
	if err != nil {
		writeError(w, r, "*Handler.claimItem", err)
		return
	}

	switch status {
	case models.SendingStatusCompleted:
		utils.WriteMessage(w, app.MsgItemReceived, http.StatusOK)
	case models.SendingStatusNoSending:
		utils.WriteError(w, app.MsgSendingNotFound, http.StatusNotFound)
	case models.SendingStatusFailed:
		logger.FromRequest(r).Warn().Str("func", "*Handler.claimItem").Msg("transfer failed")
		utils.WriteError(w, app.MsgInternalServerError, http.StatusInternalServerError)
	default:
		utils.WriteError(w, app.MsgInternalServerError, http.StatusInternalServerError)
	}
}
