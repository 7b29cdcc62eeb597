package http

import (
	"net/http"

	"github.com/gatekit/gatekit/internal/auth/service"
	"github.com/gatekit/gatekit/pkg/authsdk"
	"github.com/gatekit/gatekit/pkg/httpx"
	"github.com/gatekit/gatekit/pkg/slogx"
)

// VerifyHandler serves POST /v1/auth/verify. The verification token is
// consumed on success, so redeeming it twice fails.
type VerifyHandler struct {
	AuthService *service.Service
}

func (h *VerifyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authsdk.VerifyRequest
	if err := decodeAndValidate(r, &req); err != nil {
		authsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	sec, err := h.AuthService.AuthenticateVerifyToken(ctx, req.Token)
	if err != nil {
		log.Error("verify authentication failed", "err", err)
		authsdk.ErrServerError.WriteError(w)
		return
	}
	if !sec.Authenticated {
		authsdk.ErrInvalidToken.WriteError(w)
		return
	}

	verified, err := h.AuthService.MarkVerified(ctx, sec.Token.Principal)
	if err != nil {
		log.Error("mark verified failed", "err", err)
		authsdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.VerifyResponse{
		Verified: true,
		Username: verified.Username,
	})
}
