package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gatekit/gatekit/internal/auth/store"
	"github.com/gatekit/gatekit/pkg/authsdk"
	"github.com/gatekit/gatekit/pkg/httpx"
	"github.com/gatekit/gatekit/pkg/slogx"
)

// UserInfoHandler serves GET /v1/userinfo for the principal behind the
// bearer access token. Requires AuthnMiddleware.
type UserInfoHandler struct {
	Store store.Store
}

func (h *UserInfoHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	username, ok := httpx.PrincipalFromContext(ctx)
	if !ok {
		authsdk.ErrInvalidToken.WriteError(w)
		return
	}

	principal, err := h.Store.Principals().GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			authsdk.ErrInvalidToken.WriteError(w)
			return
		}
		slogx.FromContext(ctx).Error("userinfo lookup failed", "err", err)
		authsdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.UserInfoResponse{
		Username:  principal.Username,
		Verified:  principal.Verified,
		CreatedAt: principal.CreatedAt.UTC().Format(time.RFC3339),
	})
}
