package http

import (
	"net/http"

	"github.com/gatekit/gatekit/internal/auth/domain"
	"github.com/gatekit/gatekit/internal/auth/service"
	"github.com/gatekit/gatekit/pkg/authsdk"
	"github.com/gatekit/gatekit/pkg/httpx"
	"github.com/gatekit/gatekit/pkg/slogx"
)

// LoginHandler serves POST /v1/auth/login. Wrong password and unknown
// username return the same 401 body.
type LoginHandler struct {
	AuthService *service.Service
}

func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authsdk.LoginRequest
	if err := decodeAndValidate(r, &req); err != nil {
		authsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	sec, err := h.AuthService.AuthenticatePassword(ctx, domain.NewPasswordClaim(req.Username, req.Password))
	if err != nil {
		log.Error("login failed", "err", err)
		authsdk.ErrServerError.WriteError(w)
		return
	}
	if !sec.Authenticated {
		authsdk.ErrInvalidCredentials.WriteError(w)
		return
	}

	pair, err := h.AuthService.IssueTokenPair(ctx, *sec.Principal)
	if err != nil {
		log.Error("token issuance failed", "err", err)
		authsdk.ErrServerError.WriteError(w)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, tokenResponse(pair))
}

func tokenResponse(pair domain.TokenPair) authsdk.TokenResponse {
	return authsdk.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    pair.TokenType,
		ExpiresIn:    int(pair.ExpiresIn.Seconds()),
	}
}
