package http

import (
	"errors"
	"net/http"

	"github.com/gatekit/gatekit/internal/auth/domain"
	"github.com/gatekit/gatekit/internal/auth/service"
	"github.com/gatekit/gatekit/pkg/authsdk"
	"github.com/gatekit/gatekit/pkg/httpx"
	"github.com/gatekit/gatekit/pkg/slogx"
)

// ResetRequestHandler serves POST /v1/auth/reset/request. The response
// does not reveal whether the account exists.
type ResetRequestHandler struct {
	AuthService *service.Service
}

func (h *ResetRequestHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authsdk.ResetRequestRequest
	if err := decodeAndValidate(r, &req); err != nil {
		authsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	resp, err := h.AuthService.RequestPasswordReset(ctx, domain.ResetRequest{
		Username: req.Username,
		Origin:   req.Origin,
	})
	switch {
	case errors.Is(err, service.ErrNotificationFailed):
		log.Warn("reset notification failed", "username", req.Username)
	case err != nil:
		log.Error("reset request failed", "err", err)
		authsdk.ErrServerError.WriteError(w)
		return
	}

	if !resp.Success {
		log.Info("reset requested for unknown username", "username", req.Username)
	}
	httpx.WriteJSON(w, http.StatusAccepted, authsdk.ResetRequestResponse{
		Success: true,
		Message: "if the account exists, a reset link has been sent",
	})
}

// ResetPerformHandler serves POST /v1/auth/reset. Redeeming the reset
// token consumes it and revokes the principal's refresh tokens.
type ResetPerformHandler struct {
	AuthService *service.Service
}

func (h *ResetPerformHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authsdk.ResetPerformRequest
	if err := decodeAndValidate(r, &req); err != nil {
		authsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	sec, err := h.AuthService.AuthenticateResetToken(ctx, req.Token)
	if err != nil {
		log.Error("reset authentication failed", "err", err)
		authsdk.ErrServerError.WriteError(w)
		return
	}
	if !sec.Authenticated {
		authsdk.ErrInvalidToken.WriteError(w)
		return
	}

	if _, err := h.AuthService.ResetPassword(ctx, sec.Token.Principal, req.NewPassword); err != nil {
		log.Error("password reset failed", "err", err)
		authsdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.ResetPerformResponse{Success: true})
}
