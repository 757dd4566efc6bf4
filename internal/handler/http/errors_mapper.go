package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/MKhiriev/go-crm-auth/internal/logger"
	"github.com/MKhiriev/go-crm-auth/internal/service"
	"github.com/MKhiriev/go-crm-auth/internal/utils"
	"github.com/MKhiriev/go-crm-auth/internal/validators"
	"github.com/MKhiriev/go-crm-auth/models"
)

type errorReply struct {
	status  int
	message string
}

// errorReplies is checked in order; the first matching target wins. Messages
// are what the client sees, internal causes are only logged.
var errorReplies = []struct {
	target error
	reply  errorReply
}{
	{service.ErrRateLimited, errorReply{http.StatusTooManyRequests, service.ErrRateLimited.Error()}},
	{ErrInvalidRequestBody, errorReply{http.StatusBadRequest, service.ErrInvalidDataProvided.Error()}},
	{service.ErrInvalidDataProvided, errorReply{http.StatusBadRequest, service.ErrInvalidDataProvided.Error()}},
	{service.ErrInvalidCredentials, errorReply{http.StatusBadRequest, service.ErrInvalidCredentials.Error()}},
	{errUnauthenticated, errorReply{http.StatusUnauthorized, errUnauthenticated.Error()}},
	{service.ErrWrongPassword, errorReply{http.StatusBadRequest, service.ErrWrongPassword.Error()}},
	{service.ErrUserAlreadyExists, errorReply{http.StatusConflict, service.ErrUserAlreadyExists.Error()}},
	{service.ErrUserNotFound, errorReply{http.StatusNotFound, service.ErrUserNotFound.Error()}},
	{service.ErrLoginFailed, errorReply{http.StatusInternalServerError, service.ErrLoginFailed.Error()}},
	{service.ErrRegistrationFailed, errorReply{http.StatusInternalServerError, service.ErrRegistrationFailed.Error()}},
	{service.ErrChangePassword, errorReply{http.StatusInternalServerError, service.ErrChangePassword.Error()}},
	{service.ErrInvalidateSessions, errorReply{http.StatusInternalServerError, service.ErrInvalidateSessions.Error()}},
}

func replyFromError(err error) errorReply {
	for _, e := range errorReplies {
		if errors.Is(err, e.target) {
			return e.reply
		}
	}
	return errorReply{http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)}
}

func statusFromError(err error) int {
	return replyFromError(err).status
}

// writeError answers err as JSON. Validation details and rate limit reset
// times are passed through; everything else collapses to the generic
// message of its class.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)
	reply := replyFromError(err)

	body := models.ErrorResponse{Message: reply.message}

	var invalid *validators.ValidationError
	if errors.As(err, &invalid) {
		body.Fields = invalid.Fields
	}

	var limited *service.RateLimitedError
	if errors.As(err, &limited) {
		if limited.Decision.Reason != "" {
			body.Message = limited.Decision.Reason
		}
		body.ResetTime = limited.Decision.ResetTime
		if retryAfter := limited.RetryAfter(h.now()); retryAfter > 0 {
			w.Header().Set("Retry-After", strconv.Itoa(int(retryAfter/time.Second)))
		}
	}

	if reply.status >= http.StatusInternalServerError {
		log.Err(err).Int("status", reply.status).Msg("request failed")
	} else {
		log.Info().AnErr("reason", err).Int("status", reply.status).Msg("request rejected")
	}

	if _, werr := utils.WriteJSON(w, body, reply.status); werr != nil {
		log.Err(werr).Msg("writing error response failed")
	}
}
