package http

import (
	"net/http"
	"strings"

	"github.com/gatekit/gatekit/internal/auth/service"
	"github.com/gatekit/gatekit/pkg/authsdk"
	"github.com/gatekit/gatekit/pkg/httpx"
)

// AuthnMiddleware verifies the bearer access token on the request and
// stores the authenticated username in the request context. Requests
// without a valid token get a uniform 401.
func AuthnMiddleware(svc *service.Service) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				authsdk.ErrInvalidToken.WriteError(w)
				return
			}

			sec, err := svc.AuthenticateAccessToken(r.Context(), token)
			if err != nil {
				authsdk.ErrServerError.WriteError(w)
				return
			}
			if !sec.Authenticated {
				authsdk.ErrInvalidToken.WriteError(w)
				return
			}

			ctx := httpx.ContextWithPrincipal(r.Context(), sec.Principal.Username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
