// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"strings"

	"github.com/MKhiriev/go-crm-auth/internal/logger"
	"github.com/MKhiriev/go-crm-auth/internal/utils"
)

// publicRoutes are reachable without a session. An authenticated request to
// any of them is sent home instead.
var publicRoutes = map[string]struct{}{
	loginPath:    {},
	registerPath: {},
}

// gate resolves the session cookie into an identity and enforces route
// protection.
//
// A valid session has its cookie reissued with the (possibly refreshed)
// expiry, and the session and user are stored in the request context. A
// cookie that does not validate is deleted. Then:
//   - anonymous requests to non-public paths are redirected to the login
//     page with 303, except for /api and /_app/ which reach the router and
//     answer on their own;
//   - authenticated requests to public paths are redirected to / with 303.
func (h *Handler) gate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authenticated := false

		if token := h.sessionToken(r); token != "" {
			validation := h.services.SessionService.ValidateSessionToken(r.Context(), token)
			if validation.Valid() {
				h.setSessionCookie(w, validation.Session.ID, validation.Session.ExpiresAt)
				r = r.WithContext(utils.WithIdentity(r.Context(), validation.Session, validation.User))
				authenticated = true
			} else {
				logger.FromRequest(r).Debug().Msg("session cookie rejected")
				h.deleteSessionCookie(w)
			}
		}

		path := r.URL.Path
		_, public := publicRoutes[path]

		switch {
		case !authenticated && !public && !bypassesLoginRedirect(path):
			http.Redirect(w, r, loginPath, http.StatusSeeOther)
			return
		case authenticated && public:
			http.Redirect(w, r, homePath, http.StatusSeeOther)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// bypassesLoginRedirect reports whether an anonymous request to path is
// passed through rather than redirected. /api matches on a segment
// boundary, which is stricter than a plain "/api" prefix: /apiary and
// /api-docs are still redirected to the login page.
func bypassesLoginRedirect(path string) bool {
	return path == "/api" || strings.HasPrefix(path, "/api/") || strings.HasPrefix(path, "/_app/")
}

// requireUser answers 401 to anonymous requests.
func (h *Handler) requireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := utils.GetUserFromContext(r.Context()); !ok {
			h.writeError(w, r, errUnauthenticated)
			return
		}
		next.ServeHTTP(w, r)
	})
}
