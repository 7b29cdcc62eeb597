package http

import (
	"errors"
	"net/http"

	"github.com/gatekit/gatekit/internal/auth/domain"
	"github.com/gatekit/gatekit/internal/auth/service"
	"github.com/gatekit/gatekit/internal/auth/store"
	"github.com/gatekit/gatekit/pkg/authsdk"
	"github.com/gatekit/gatekit/pkg/httpx"
	"github.com/gatekit/gatekit/pkg/slogx"
)

// RegisterHandler serves POST /v1/auth/register. A new account starts
// unverified; the verification token goes out through the notifier, not
// in the response.
type RegisterHandler struct {
	AuthService *service.Service
}

func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authsdk.RegisterRequest
	if err := decodeAndValidate(r, &req); err != nil {
		authsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	resp, err := h.AuthService.Register(ctx, domain.RegisterRequest{
		Username: req.Username,
		Password: req.Password,
	})
	switch {
	case errors.Is(err, store.ErrAlreadyExists):
		authsdk.ErrUsernameTaken.WriteError(w)
		return
	case errors.Is(err, service.ErrNotificationFailed):
		// The account exists; the caller can request a new mail later.
		log.Warn("registration notification failed", "username", req.Username)
	case err != nil:
		log.Error("registration failed", "err", err)
		authsdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, authsdk.RegisterResponse{
		Success: true,
		Message: resp.Message,
	})
}
