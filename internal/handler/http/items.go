package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-item-custody/internal/app"
	"github.com/MKhiriev/go-item-custody/internal/logger"
	"github.com/MKhiriev/go-item-custody/internal/utils"
	"github.com/MKhiriev/go-item-custody/models"
)

func (h *Handler) createItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)
	user, _ := utils.GetUserFromContext(ctx)

	var req models.CreateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.createItem").Msg("Invalid JSON was passed")
		utils.WriteError(w, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	if err := h.validator.Validate(ctx, req); err != nil {
		writeError(w, r, "*Handler.createItem", err)
		return
	}

	item, err := h.services.ItemService.CreateItem(ctx, user.ID, req.Name)
	if err != nil {
		writeError(w, r, "*Handler.createItem", err)
		return
	}

	utils.WriteJSON(w, models.CreateItemResponse{
		ID:      item.ID,
		Name:    item.Name,
		Message: app.MsgItemCreated,
	}, http.StatusCreated)
}

func (h *Handler) listItems(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user, _ := utils.GetUserFromContext(ctx)

	items, err := h.services.ItemService.ListItems(ctx, user.ID)
	if err != nil {
		writeError(w, r, "*Handler.listItems", err)
		return
	}
	if items == nil {
		items = []models.Item{}
	}

	utils.WriteJSON(w, items, http.StatusOK)
}

// deleteItem answers 200 when the item was removed and a bare 204 when
// there was nothing of the caller's to remove.
func (h *Handler) deleteItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)
	user, _ := utils.GetUserFromContext(ctx)

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		log.Err(err).Str("func", "*Handler.deleteItem").Msg("invalid item id")
		utils.WriteError(w, app.MsgInvalidItemID, http.StatusBadRequest)
		return
	}

	deleted, err := h.services.ItemService.DeleteItem(ctx, user.ID, id)
	if err != nil {
		writeError(w, r, "*Handler.deleteItem", err)
		return
	}

	if !deleted {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	utils.WriteMessage(w, app.MsgItemRemoved, http.StatusOK)
}
