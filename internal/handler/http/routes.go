package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const (
	homePath     = "/"
	loginPath    = "/auth/login"
	registerPath = "/auth/register"
	logoutPath   = "/auth/logout"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging, h.withSecurityHeaders)
	router.Use(middleware.Timeout(h.requestTimeout))
	router.Use(h.gate)

	router.Get(homePath, h.home)

	// public routes
	router.Group(func(r chi.Router) {
		r.Get(loginPath, h.loginPage)
		r.Post(loginPath, h.login)
		r.Get(registerPath, h.registerPage)
		r.Post(registerPath, h.register)
	})

	router.Get(logoutPath, h.logout)
	router.Post(logoutPath, h.logout)

	router.Get("/api/version", h.getServerVersion)

	// api routes answer 401 instead of redirecting
	router.Group(func(r chi.Router) {
		r.Use(h.requireUser)
		r.Get("/api/me", h.me)
		r.Post("/api/user/password", h.changePassword)
	})

	if h.development {
		router.Get("/api/auth/rate-limit", h.rateLimitStatus)
	}

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
