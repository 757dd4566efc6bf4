package http

import (
	"net/http"

	"github.com/MKhiriev/go-crm-auth/internal/ratelimit"
	"github.com/MKhiriev/go-crm-auth/internal/utils"
	"github.com/MKhiriev/go-crm-auth/models"
)

type homeResponse struct {
	User *models.User `json:"user"`
}

func (h *Handler) home(w http.ResponseWriter, r *http.Request) {
	user, _ := utils.GetUserFromContext(r.Context())
	_, _ = utils.WriteJSON(w, homeResponse{User: user}, http.StatusOK)
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	user, _ := utils.GetUserFromContext(r.Context())
	_, _ = utils.WriteJSON(w, user, http.StatusOK)
}

// changePassword replaces the caller's password. All of the user's
// sessions are revoked and the response carries the cookie of a fresh one.
func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	user, _ := utils.GetUserFromContext(r.Context())

	var req models.ChangePasswordRequest
	if err := decodeRequest(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	result, err := h.services.AuthService.ChangePassword(r.Context(), user.ID, req, ratelimit.OriginFromRequest(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.replaceSessionCookie(w, result.Session.ID, result.Session.ExpiresAt)
	utils.WriteMessage(w, "password changed", http.StatusOK)
}

// rateLimitStatus shows the limiter state of the caller's origin. Only
// routed in development.
func (h *Handler) rateLimitStatus(w http.ResponseWriter, r *http.Request) {
	status := h.services.Limiter.Status(ratelimit.OriginFromRequest(r))
	_, _ = utils.WriteJSON(w, status, http.StatusOK)
}
