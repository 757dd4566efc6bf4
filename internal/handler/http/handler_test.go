package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/go-crm-auth/internal/config"
	"github.com/MKhiriev/go-crm-auth/internal/logger"
	"github.com/MKhiriev/go-crm-auth/internal/mock"
	"github.com/MKhiriev/go-crm-auth/internal/service"
	"github.com/MKhiriev/go-crm-auth/models"
	"go.uber.org/mock/gomock"
)

const (
	testCookieName = "auth-session"
	testToken      = "V1StGXR8_Z5jdHi6B-myTV1StGXR8_Z5"
	testUserID     = "Uakgb_J5m9g-0JDMbcJqL"
)

var testNow = time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)

type handlerMocks struct {
	sessions *mock.MockSessionService
	auth     *mock.MockAuthService
	limiter  *mock.MockLoginLimiter
	appInfo  *mock.MockAppInfoService
}

func testConfig(env string) config.StructuredConfig {
	return config.StructuredConfig{
		App:    config.App{Env: env, Version: "1.0.0"},
		Auth:   config.Auth{SessionCookieName: testCookieName, SessionDuration: 720 * time.Hour, RefreshThreshold: 360 * time.Hour},
		Server: config.Server{RequestTimeout: 5 * time.Second},
	}
}

func newTestHandler(t *testing.T, env string) (*Handler, handlerMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)

	m := handlerMocks{
		sessions: mock.NewMockSessionService(ctrl),
		auth:     mock.NewMockAuthService(ctrl),
		limiter:  mock.NewMockLoginLimiter(ctrl),
		appInfo:  mock.NewMockAppInfoService(ctrl),
	}
	services := &service.Services{
		AuthService:    m.auth,
		SessionService: m.sessions,
		AppInfoService: m.appInfo,
		Limiter:        m.limiter,
	}

	h := NewHandler(services, testConfig(env), logger.Nop())
	h.now = func() time.Time { return testNow }
	return h, m
}

func testUser() *models.User {
	return &models.User{ID: testUserID, Username: "jane", Role: models.RoleUser, IsActive: true}
}

func testSession() *models.Session {
	return &models.Session{ID: testToken, UserID: testUserID, ExpiresAt: testNow.Add(30 * 24 * time.Hour)}
}

// expectValidSession makes the session service accept testToken once.
func (m handlerMocks) expectValidSession() {
	m.sessions.EXPECT().ValidateSessionToken(gomock.Any(), testToken).
		Return(models.SessionValidation{Session: testSession(), User: testUser()})
}

func serve(h *Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.Init().ServeHTTP(rr, req)
	return rr
}

func withSessionCookie(req *http.Request) *http.Request {
	req.AddCookie(&http.Cookie{Name: testCookieName, Value: testToken})
	return req
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func findCookie(rr *httptest.ResponseRecorder, name string) *http.Cookie {
	cookies := rr.Result().Cookies()
	for i := len(cookies) - 1; i >= 0; i-- {
		if cookies[i].Name == name {
			return cookies[i]
		}
	}
	return nil
}
