package http

import (
	"net/http"

	"github.com/MKhiriev/go-crm-auth/internal/logger"
	"github.com/MKhiriev/go-crm-auth/internal/ratelimit"
	"github.com/MKhiriev/go-crm-auth/internal/utils"
	"github.com/MKhiriev/go-crm-auth/models"
)

const registeredMessage = "account created, you can now log in"

func (h *Handler) loginPage(w http.ResponseWriter, r *http.Request) {
	var page models.AuthPageResponse
	if r.URL.Query().Get("registered") == "true" {
		page.Message = registeredMessage
	}
	_, _ = utils.WriteJSON(w, page, http.StatusOK)
}

// login authenticates the posted credentials. On success the session cookie
// is set and the client is sent home with 302.
//
// An undecodable body is passed on as empty credentials, so it is rate
// limited and counted as a failed attempt like any other invalid input.
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var creds models.Credentials
	if err := decodeRequest(r, &creds); err != nil {
		log.Info().AnErr("reason", err).Msg("undecodable login payload")
		creds = models.Credentials{}
	}

	result, err := h.services.AuthService.Login(r.Context(), creds, ratelimit.OriginFromRequest(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.replaceSessionCookie(w, result.Session.ID, result.Session.ExpiresAt)
	http.Redirect(w, r, homePath, http.StatusFound)
}

func (h *Handler) registerPage(w http.ResponseWriter, r *http.Request) {
	_, _ = utils.WriteJSON(w, models.AuthPageResponse{}, http.StatusOK)
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := decodeRequest(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	if _, err := h.services.AuthService.Register(r.Context(), req); err != nil {
		h.writeError(w, r, err)
		return
	}

	http.Redirect(w, r, loginPath+"?registered=true", http.StatusFound)
}

// logout ends the current session. The cookie is deleted even when the
// session could not be removed from storage.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	session, ok := utils.GetSessionFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, loginPath, http.StatusFound)
		return
	}

	h.services.AuthService.Logout(r.Context(), session.ID)
	h.replaceSessionCookie(w, "", session.ExpiresAt)

	logger.FromRequest(r).Info().Str("session", session.ShortID()).Msg("user logged out")
	http.Redirect(w, r, loginPath, http.StatusFound)
}
