package http

import (
	"net/http"
	"time"
)

func (h *Handler) sessionToken(r *http.Request) string {
	cookie, err := r.Cookie(h.cookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// setSessionCookie (re)issues the session cookie carrying token until
// expiresAt.
func (h *Handler) setSessionCookie(w http.ResponseWriter, token string, expiresAt time.Time) {
	http.SetCookie(w, h.sessionCookie(token, expiresAt, 0))
}

// deleteSessionCookie tells the client to drop the session cookie.
func (h *Handler) deleteSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, h.sessionCookie("", time.Time{}, -1))
}

// replaceSessionCookie discards the cookie the gate already queued for this
// response and sets a new one. An empty token deletes the cookie.
func (h *Handler) replaceSessionCookie(w http.ResponseWriter, token string, expiresAt time.Time) {
	w.Header().Del("Set-Cookie")
	if token == "" {
		h.deleteSessionCookie(w)
		return
	}
	h.setSessionCookie(w, token, expiresAt)
}

func (h *Handler) sessionCookie(value string, expiresAt time.Time, maxAge int) *http.Cookie {
	cookie := &http.Cookie{
		Name:     h.cookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   !h.development,
		SameSite: http.SameSiteLaxMode,
	}
	if !expiresAt.IsZero() {
		cookie.Expires = expiresAt.UTC()
	}
	return cookie
}
