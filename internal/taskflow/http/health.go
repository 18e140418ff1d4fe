package http

import (
	"encoding/json"
	"net/http"

	"github.com/Jaymin-PCA240/Task-Management-BE/internal/taskflow/store"
	"github.com/Jaymin-PCA240/Task-Management-BE/pkg/httpx"
	"github.com/Jaymin-PCA240/Task-Management-BE/pkg/jwtx"
	"github.com/Jaymin-PCA240/Task-Management-BE/pkg/taskflowsdk"
)

// LivezHandler godoc
//
//	@Summary		Liveness probe
//	@Description	Returns 200 while the process is serving requests.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	taskflowsdk.Envelope[taskflowsdk.HealthResponse]	"Alive"
//	@Router			/livez [get].
func LivezHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteSuccess(w, http.StatusOK, "Service is alive", taskflowsdk.HealthResponse{Status: "ok"})
	}
}

// ReadyzHandler godoc
//
//	@Summary		Readiness probe
//	@Description	Checks the database connection and that signing keys are loaded.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	taskflowsdk.Envelope[taskflowsdk.HealthResponse]	"Ready"
//	@Failure		503	{object}	taskflowsdk.Envelope[taskflowsdk.HealthResponse]	"Not ready"
//	@Router			/readyz [get].
func ReadyzHandler(st store.Store, keys *jwtx.KeySet) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := map[string]string{"database": "ok", "signer": "ok"}
		ready := true

		if err := st.Ping(r.Context()); err != nil {
			checks["database"] = "error: " + err.Error()
			ready = false
		}
		if !keys.IsReady() {
			checks["signer"] = "error: no keys loaded"
			ready = false
		}

		if !ready {
			httpx.WriteJSON(w, http.StatusServiceUnavailable, httpx.Envelope{
				Success: false,
				Status:  http.StatusServiceUnavailable,
				Message: "Service is not ready",
				Data:    taskflowsdk.HealthResponse{Status: "degraded", Checks: checks},
			})
			return
		}
		httpx.WriteSuccess(w, http.StatusOK, "Service is ready", taskflowsdk.HealthResponse{Status: "ok", Checks: checks})
	}
}

// JWKSHandler exposes the public keys that verify access tokens.
//
//	@Summary		Get JWKS
//	@Description	Returns the JSON Web Key Set used to verify access tokens.
//	@Tags			well-known
//	@Produce		json
//	@Success		200	{object}	jwtx.JWKS	"The JSON Web Key Set"
//	@Router			/.well-known/jwks.json [get].
func JWKSHandler(keys *jwtx.KeySet) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "public, max-age=300")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(keys.PublicJWKS())
	}
}
