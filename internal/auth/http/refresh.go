package http

import (
	"net/http"

	"github.com/gatekit/gatekit/internal/auth/service"
	"github.com/gatekit/gatekit/pkg/authsdk"
	"github.com/gatekit/gatekit/pkg/httpx"
	"github.com/gatekit/gatekit/pkg/slogx"
)

// RefreshHandler serves POST /v1/auth/refresh. A successful rotation
// invalidates the presented refresh token.
type RefreshHandler struct {
	AuthService *service.Service
}

func (h *RefreshHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authsdk.RefreshRequest
	if err := decodeAndValidate(r, &req); err != nil {
		authsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	sec, err := h.AuthService.AuthenticateRefreshToken(ctx, req.RefreshToken)
	if err != nil {
		log.Error("refresh authentication failed", "err", err)
		authsdk.ErrServerError.WriteError(w)
		return
	}
	if !sec.Authenticated {
		authsdk.ErrInvalidToken.WriteError(w)
		return
	}

	pair, err := h.AuthService.RefreshTokenPair(ctx, *sec.Token)
	if err != nil {
		log.Error("token rotation failed", "err", err)
		authsdk.ErrServerError.WriteError(w)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, tokenResponse(pair))
}
