package http

import (
	"net/http"

	"github.com/gatekit/gatekit/internal/auth/service"
	"github.com/gatekit/gatekit/pkg/authsdk"
	"github.com/gatekit/gatekit/pkg/httpx"
	"github.com/gatekit/gatekit/pkg/slogx"
)

// LogoutHandler serves POST /v1/auth/logout. Unknown or already revoked
// tokens still return 200 so the endpoint cannot be used to probe which
// tokens exist.
type LogoutHandler struct {
	AuthService *service.Service
}

func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authsdk.LogoutRequest
	if err := decodeAndValidate(r, &req); err != nil {
		authsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	if err := h.AuthService.Revoke(ctx, req.RefreshToken); err != nil {
		log.Warn("logout revoke failed", "err", err)
	}

	httpx.NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("{}"))
}
