package http

import (
	"net/http"
	"time"

	"github.com/gatekit/gatekit/pkg/authsdk"
	"github.com/gatekit/gatekit/pkg/httpx"
)

// LivezHandler reports basic service health, uptime and version. It
// always returns 200 while the process is running.
func LivezHandler(startTime time.Time, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, authsdk.HealthResponse{
			Status:  "ok",
			Uptime:  time.Since(startTime).String(),
			Version: version,
		})
	}
}
