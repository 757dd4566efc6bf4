package http

import (
	"net/http"

	"github.com/MKhiriev/go-crm-auth/internal/utils"
	"github.com/MKhiriev/go-crm-auth/models"
)

func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	version := h.services.AppInfoService.GetAppVersion(r.Context())
	_, _ = utils.WriteJSON(w, models.VersionResponse{Version: version}, http.StatusOK)
}
