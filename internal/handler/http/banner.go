package http

import (
	"net/http"

	"github.com/MKhiriev/go-item-custody/internal/app"
	"github.com/MKhiriev/go-item-custody/internal/utils"
	"github.com/MKhiriev/go-item-custody/models"
)

func (h *Handler) banner(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, models.BannerResponse{
		Message: app.MsgServiceBanner,
		Version: h.services.AppInfoService.GetAppVersion(r.Context()),
	}, http.StatusOK)
}
